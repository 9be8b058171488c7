// Package tesseract provides the Tesseract-backed OCR engine via the
// gosseract client.
package tesseract

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/jonathan/resume-formatter/internal/ocr"
)

// Engine implements ocr.Engine using gosseract. A fresh client is created per
// call; the client is not safe for concurrent use.
type Engine struct {
	clientFactory func() *gosseract.Client
}

// NewEngine constructs a Tesseract-backed OCR engine.
func NewEngine() *Engine {
	return &Engine{clientFactory: gosseract.NewClient}
}

func (e *Engine) Name() string { return "tesseract" }

// Recognize performs OCR on a single crop.
func (e *Engine) Recognize(ctx context.Context, in ocr.Input) (ocr.Result, error) {
	select {
	case <-ctx.Done():
		return ocr.Result{}, ctx.Err()
	default:
	}

	c := e.clientFactory()
	defer c.Close()

	var buf bytes.Buffer
	if err := png.Encode(&buf, in.Image); err != nil {
		return ocr.Result{}, fmt.Errorf("encode crop: %w", err)
	}
	if err := c.SetImageFromBytes(buf.Bytes()); err != nil {
		return ocr.Result{}, fmt.Errorf("set image: %w", err)
	}
	if len(in.Languages) > 0 {
		if err := c.SetLanguage(in.Languages...); err != nil {
			return ocr.Result{}, fmt.Errorf("set languages: %w", err)
		}
	}
	if in.DPI > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(in.DPI)); err != nil {
			return ocr.Result{}, fmt.Errorf("set dpi: %w", err)
		}
	}
	for k, v := range in.Metadata {
		if err := c.SetVariable(gosseract.SettableVariable(k), v); err != nil {
			return ocr.Result{}, fmt.Errorf("set variable %s: %w", k, err)
		}
	}

	text, err := c.Text()
	if err != nil {
		return ocr.Result{}, fmt.Errorf("recognize text: %w", err)
	}

	words, avgConf := extractWords(c)
	return ocr.Result{
		InputID:    in.ID,
		Text:       strings.TrimSpace(text),
		Words:      words,
		Confidence: avgConf,
	}, nil
}

func extractWords(c *gosseract.Client) ([]ocr.Word, float64) {
	boxes, err := c.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil || len(boxes) == 0 {
		return nil, 0
	}
	words := make([]ocr.Word, 0, len(boxes))
	var sum float64
	for _, b := range boxes {
		conf := b.Confidence / 100.0
		sum += conf
		words = append(words, ocr.Word{
			Text:       b.Word,
			Bounds:     b.Box,
			Confidence: conf,
		})
	}
	return words, sum / float64(len(words))
}
