// Package sections implements section identification: it reconciles the
// heading and body OCR passes into labeled section records, matching headers
// by alias, fuzzy similarity and keyword stems, and classifying headerless
// content by its own evidence. Unlabeled content lands in an overflow bucket
// instead of being dropped.
package sections

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Identifier turns multi-pass OCR output into a SectionSet.
type Identifier struct{}

// NewIdentifier returns a section identifier.
func NewIdentifier() *Identifier { return &Identifier{} }

type orderedBlock struct {
	heading bool
	block   types.ContentBlock
}

// Identify walks pass results in reading order, opening a section at each
// recognized heading and attaching body blocks to the open section. A body
// block whose own evidence points at a different label relocates there. The
// content validator may rewrite these assignments afterwards.
func (id *Identifier) Identify(layout *types.Layout, mp *types.MultiPassResult) *types.SectionSet {
	set := types.NewSectionSet()
	blocks := collectBlocks(layout, mp)

	var current types.SectionLabel
	var unmatched []types.ContentBlock

	for _, ob := range blocks {
		if ob.heading {
			if label, ok := MatchHeader(ob.block.Text); ok {
				current = label
				continue
			}
			if label, ok := ClassifyContent(ob.block.Text); ok {
				current = label
				continue
			}
			// Unreadable heading: its text still belongs somewhere.
			if current != "" {
				set.Record(current).AddBlock(ob.block)
			} else {
				unmatched = append(unmatched, ob.block)
			}
			continue
		}

		if current == "" {
			unmatched = append(unmatched, ob.block)
			continue
		}
		if label, ok := ClassifyContent(ob.block.Text); ok && label != current {
			set.Record(label).AddBlock(ob.block)
			continue
		}
		set.Record(current).AddBlock(ob.block)
	}

	for _, block := range unmatched {
		if label, ok := ClassifyContent(block.Text); ok {
			set.Record(label).AddBlock(block)
			continue
		}
		set.Overflow = append(set.Overflow, block)
	}

	finalizeConfidences(set)
	return set
}

// collectBlocks merges heading and body pass results into reading order,
// skipping failed and empty passes.
func collectBlocks(layout *types.Layout, mp *types.MultiPassResult) []orderedBlock {
	ranks := make(map[string]int, len(layout.Zones))
	for _, z := range layout.Zones {
		ranks[z.ID] = z.ReadingRank
	}

	var out []orderedBlock
	add := func(pr types.PassResult, heading bool) {
		if pr.Failed || strings.TrimSpace(pr.Text) == "" {
			return
		}
		out = append(out, orderedBlock{
			heading: heading,
			block: types.ContentBlock{
				ZoneID:      pr.ZoneID,
				Text:        pr.Text,
				Confidence:  pr.Confidence,
				ReadingRank: ranks[pr.ZoneID],
				Flagged:     hasLowConfidenceToken(pr.Tokens),
			},
		})
	}
	for _, pr := range mp.SectionHeaders {
		add(pr, true)
	}
	for _, pr := range mp.Body {
		add(pr, false)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].block.ReadingRank < out[j].block.ReadingRank
	})
	return out
}

func hasLowConfidenceToken(tokens []types.Token) bool {
	for _, t := range tokens {
		if t.LowConfidence {
			return true
		}
	}
	return false
}

// finalizeConfidences sets each record's confidence to the mean of its
// blocks' pass confidences.
func finalizeConfidences(set *types.SectionSet) {
	for _, rec := range set.Records {
		if len(rec.Blocks) == 0 {
			continue
		}
		var sum float64
		for _, b := range rec.Blocks {
			sum += b.Confidence
		}
		rec.Confidence = sum / float64(len(rec.Blocks))
	}
}
