package ocr

import (
	"image"
	"strconv"
)

// InputOption mutates an OCR input before submission.
type InputOption func(*Input)

// NewInput builds an input for the given crop with the options applied.
func NewInput(id string, img image.Image, opts ...InputOption) Input {
	in := Input{ID: id, Image: img}
	for _, opt := range opts {
		opt(&in)
	}
	return in
}

// WithLanguages sets language hints on the input.
func WithLanguages(langs ...string) InputOption {
	return func(in *Input) { in.Languages = append([]string(nil), langs...) }
}

// WithDPI overrides the DPI value on the input.
func WithDPI(dpi int) InputOption {
	return func(in *Input) { in.DPI = dpi }
}

// WithPSM sets Tesseract's page segmentation mode. Single-line crops such as
// section headings recognize best with mode 7; body blocks use mode 6.
func WithPSM(mode int) InputOption {
	return WithVariable("tessedit_pageseg_mode", strconv.Itoa(mode))
}

// WithVariable sets a provider-specific variable on the input.
func WithVariable(key, value string) InputOption {
	return func(in *Input) {
		if in.Metadata == nil {
			in.Metadata = make(map[string]string)
		}
		in.Metadata[key] = value
	}
}
