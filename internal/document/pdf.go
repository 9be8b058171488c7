package document

import (
	"bytes"
	"image"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func loadPDF(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Message: "cannot open file", Cause: err}
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pdfCtx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, &UnreadableInputError{Path: path, Message: "corrupt or unsupported PDF", Cause: err}
	}

	doc := &Document{
		Source:    path,
		Kind:      KindPDF,
		PageCount: pdfCtx.PageCount,
	}

	var text strings.Builder
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		pageText := extractPageText(pdfCtx, pageNr)
		if pageText != "" {
			if text.Len() > 0 {
				text.WriteByte('\n')
			}
			text.WriteString(pageText)
		}
	}
	doc.NativeText = text.String()

	// A usable text layer means no OCR; skip the image decode work.
	if doc.HasNativeText() {
		return doc, nil
	}

	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if img := extractPageScan(pdfCtx, pageNr); img != nil {
			doc.Pages = append(doc.Pages, img)
		}
	}
	if len(doc.Pages) == 0 {
		return nil, &UnreadableInputError{Path: path, Message: "PDF has neither a text layer nor page images"}
	}
	return doc, nil
}

// extractPageText pulls text out of one page's content stream. Only the
// common text-showing operators are handled; this is a probe, not a full
// layout-preserving extractor.
func extractPageText(pdfCtx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil || r == nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return textFromContentStream(data)
}

// extractPageScan returns the largest embedded image on the page, which for
// scanned resumes is the full-page scan itself.
func extractPageScan(pdfCtx *model.Context, pageNr int) image.Image {
	images, err := pdfcpu.ExtractPageImages(pdfCtx, pageNr, false)
	if err != nil || len(images) == 0 {
		return nil
	}

	var best image.Image
	bestArea := 0
	for _, pdfImg := range images {
		decoded, _, err := image.Decode(pdfImg)
		if err != nil {
			continue
		}
		if area := decoded.Bounds().Dx() * decoded.Bounds().Dy(); area > bestArea {
			best, bestArea = decoded, area
		}
	}
	return best
}

// pdfString matches PDF literal strings: (text here)
var pdfString = regexp.MustCompile(`\(([^)]*)\)`)

// textFromContentStream scans content-stream lines for Tj/TJ/' show
// operators and T*/Td positioning.
func textFromContentStream(data []byte) string {
	var sb strings.Builder
	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfString.FindAllSubmatch(line, -1) {
				sb.WriteString(decodePDFString(m[1]))
			}
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfString.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodePDFString(m[1]))
			}
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte('\n')
			}
		}
	}
	return normalizeProbeText(sb.String())
}

// decodePDFString resolves the basic escape sequences inside a PDF literal
// string, including octal byte escapes.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// normalizeProbeText collapses whitespace runs but keeps line structure, so
// the text path can still split the result into paragraph blocks.
func normalizeProbeText(text string) string {
	lines := strings.Split(text, "\n")
	var out []string
	for _, line := range lines {
		var sb strings.Builder
		prevSpace := false
		for _, r := range line {
			switch {
			case unicode.IsSpace(r):
				if !prevSpace && sb.Len() > 0 {
					sb.WriteByte(' ')
					prevSpace = true
				}
			case unicode.IsPrint(r):
				sb.WriteRune(r)
				prevSpace = false
			}
		}
		out = append(out, strings.TrimRight(sb.String(), " "))
	}
	// Trim leading/trailing blank lines without disturbing interior blanks.
	start, end := 0, len(out)
	for start < end && out[start] == "" {
		start++
	}
	for end > start && out[end-1] == "" {
		end--
	}
	return strings.Join(out[start:end], "\n")
}
