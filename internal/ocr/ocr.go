// Package ocr defines the OCR provider contract used by the multi-pass
// extraction engine, decoupling the pipeline from any single recognition
// backend.
package ocr

import (
	"context"
	"image"
)

// Input is a single preprocessed image crop submitted for recognition.
type Input struct {
	// ID is a caller-provided identifier echoed back in the Result. The
	// pipeline uses "<zone-id>/<pass>" so results correlate with zones.
	ID string
	// Image is the decoded, already-preprocessed crop to recognize.
	Image image.Image
	// DPI carries the effective dots-per-inch; zero means unknown.
	DPI int
	// Languages lists trained-data hints such as "eng".
	Languages []string
	// Metadata passes provider-specific variables (e.g. Tesseract's
	// page segmentation mode) without widening the API surface.
	Metadata map[string]string
}

// Word is a single recognized token with its position and confidence in [0,1].
type Word struct {
	Text       string
	Bounds     image.Rectangle
	Confidence float64
}

// Result is the recognition output for one input.
type Result struct {
	// InputID mirrors the Input.ID that produced this result.
	InputID string
	// Text is the linearized recognized text.
	Text string
	// Words carries per-token positions and confidences.
	Words []Word
	// Confidence is the mean word confidence, zero when no words were found.
	Confidence float64
}

// Engine is the OCR provider contract: one image in, one result out.
type Engine interface {
	Name() string
	Recognize(ctx context.Context, input Input) (Result, error)
}
