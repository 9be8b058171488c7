// Package document loads resume input files. Raster images decode directly
// into a single page; PDFs are probed for native text first and fall back to
// their embedded page scans when the text layer is too thin to use.
package document

import (
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Raster formats accepted as direct input or embedded in PDFs.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// NativeTextMinChars is the smallest native-text length that counts as a
// usable text layer. PDFs below it are treated as scans and routed to OCR.
const NativeTextMinChars = 200

// Kind distinguishes the two input families.
type Kind string

const (
	KindImage Kind = "image"
	KindPDF   Kind = "pdf"
)

// Document is a loaded resume input: one page image per page, plus whatever
// native text a PDF carried. Documents are read-only after Load.
type Document struct {
	Source     string
	Kind       Kind
	Pages      []image.Image
	PageCount  int
	NativeText string
}

// HasNativeText reports whether the PDF text layer is substantial enough to
// use directly.
func (d *Document) HasNativeText() bool {
	return len(d.NativeText) >= NativeTextMinChars
}

// NeedsOCR reports whether the document must go through the OCR pipeline.
// Images always do; PDFs only when their native text is too thin.
func (d *Document) NeedsOCR() bool {
	return !d.HasNativeText()
}

// Load reads a resume file from disk. The extension selects the loader; an
// unrecognized extension is still tried as a raster image before giving up.
func Load(path string) (*Document, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, &UnreadableInputError{Path: path, Message: "file not accessible", Cause: err}
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return loadPDF(path)
	}
	return loadImage(path)
}

func loadImage(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Message: "cannot open file", Cause: err}
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Message: "not a decodable image", Cause: err}
	}

	return &Document{
		Source:    path,
		Kind:      KindImage,
		Pages:     []image.Image{img},
		PageCount: 1,
	}, nil
}

// FromImage wraps an already-decoded page image, for callers that rasterize
// upstream.
func FromImage(img image.Image) (*Document, error) {
	if img == nil {
		return nil, fmt.Errorf("document: nil image")
	}
	return &Document{
		Source:    "memory",
		Kind:      KindImage,
		Pages:     []image.Image{img},
		PageCount: 1,
	}, nil
}
