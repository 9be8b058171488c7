package pipeline

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-formatter/internal/sections"
	"github.com/jonathan/resume-formatter/internal/types"
)

// sectionsFromText classifies plain resume text without layout information.
// It serves the native PDF text layer and the whole-page OCR fallback: the
// first paragraph becomes the header candidate, single-line paragraphs that
// match the section vocabulary open sections, and everything else is
// classified by content alone.
func sectionsFromText(text string) (*types.SectionSet, *types.PassResult) {
	set := types.NewSectionSet()
	paragraphs := splitParagraphs(text)
	if len(paragraphs) == 0 {
		return set, nil
	}

	headerPass := &types.PassResult{
		Pass:       types.PassHeader,
		ZoneID:     "text",
		Text:       paragraphs[0],
		Confidence: 1.0,
	}

	var current types.SectionLabel
	rank := 1
	for _, para := range paragraphs[1:] {
		block := types.ContentBlock{
			ZoneID:      fmt.Sprintf("t%d", rank),
			Text:        para,
			Confidence:  1.0,
			ReadingRank: rank,
		}
		rank++

		firstLine, rest := splitFirstLine(para)
		if label, ok := sections.MatchHeader(firstLine); ok {
			current = label
			if rest != "" {
				block.Text = rest
				set.Record(current).AddBlock(block)
			}
			continue
		}
		if label, ok := sections.ClassifyContent(para); ok {
			set.Record(label).AddBlock(block)
			current = label
			continue
		}
		if current != "" {
			set.Record(current).AddBlock(block)
			continue
		}
		set.Overflow = append(set.Overflow, block)
	}
	return set, headerPass
}

// splitParagraphs breaks text into blocks at blank lines.
func splitParagraphs(text string) []string {
	var out []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n") {
		if para = strings.TrimSpace(para); para != "" {
			out = append(out, para)
		}
	}
	return out
}

func splitFirstLine(para string) (first, rest string) {
	first, rest, found := strings.Cut(para, "\n")
	if !found {
		return strings.TrimSpace(para), ""
	}
	return strings.TrimSpace(first), strings.TrimSpace(rest)
}
