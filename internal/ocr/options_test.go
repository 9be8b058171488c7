package ocr

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInputAppliesOptions(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	in := NewInput("z1/body", img,
		WithLanguages("eng"),
		WithDPI(300),
		WithPSM(6),
		WithVariable("tessedit_char_blacklist", "|"),
	)

	assert.Equal(t, "z1/body", in.ID)
	assert.Equal(t, []string{"eng"}, in.Languages)
	assert.Equal(t, 300, in.DPI)
	assert.Equal(t, "6", in.Metadata["tessedit_pageseg_mode"])
	assert.Equal(t, "|", in.Metadata["tessedit_char_blacklist"])
}
