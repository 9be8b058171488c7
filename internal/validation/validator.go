// Package validation implements the content validator: it independently
// re-scores every block against its section's signature, relocates blocks
// whose evidence clearly points elsewhere, drops hopeless ones with a
// warning, strips header echoes, and deduplicates content across sections.
// It is the one layer allowed to rewrite the section identifier's output.
package validation

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/jonathan/resume-formatter/internal/sections"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Config tunes the validator's decision thresholds.
type Config struct {
	// KeepThreshold accepts a block in its assigned section.
	KeepThreshold float64
	// DropThreshold removes a block entirely; between the two it is kept
	// but flagged.
	DropThreshold float64
	// RelocateMargin is how much better a rival section must score before a
	// block moves there.
	RelocateMargin float64
	// DedupMinSpan is the minimum normalized length at which overlapping
	// text across sections counts as a duplicate.
	DedupMinSpan int
}

// DefaultConfig returns the calibrated validation thresholds.
func DefaultConfig() Config {
	return Config{
		KeepThreshold:  0.5,
		DropThreshold:  0.3,
		RelocateMargin: 0.15,
		DedupMinSpan:   40,
	}
}

// Move records a block relocated between sections.
type Move struct {
	ZoneID string
	From   types.SectionLabel
	To     types.SectionLabel
}

// Report summarizes what validation changed.
type Report struct {
	Moves    []Move
	Warnings []string
}

// Validator re-scores section content against the signatures.
type Validator struct {
	cfg Config
}

// NewValidator returns a validator with the given thresholds.
func NewValidator(cfg Config) *Validator {
	return &Validator{cfg: cfg}
}

// Score rates how well text fits the given section label, roughly in [0,1].
// Negative keyword pileups can push it below zero. Labels without a
// signature score 1.
func Score(text string, label types.SectionLabel) float64 {
	sig, ok := signatures[label]
	if !ok {
		return 1.0
	}
	lower := strings.ToLower(text)

	var score, maxScore float64
	if len(sig.requiredPatterns) > 0 {
		maxScore += 2.0
		for _, p := range sig.requiredPatterns {
			if p.MatchString(lower) {
				score += 2.0
				break
			}
		}
	}
	if len(sig.positiveKeywords) > 0 {
		maxScore += 3.0
		if matches := countContains(sig.positiveKeywords, lower); matches > 0 {
			score += math.Min(3.0, float64(matches)/2)
		}
	}
	if len(sig.negativeKeywords) > 0 {
		weight := sig.negativeWeight
		if weight == 0 {
			weight = 1.0
		}
		maxScore += 2.0 * weight
		if neg := countContains(sig.negativeKeywords, lower); neg == 0 {
			score += 2.0 * weight
		} else {
			score -= float64(neg) * weight
		}
	}
	if sig.format != formatAny {
		maxScore += 1.0
		if sig.format == formatList && isListFormat(text) {
			score += 1.0
		}
		if sig.format == formatParagraph && isParagraphFormat(text) {
			score += 1.0
		}
	}
	if maxScore == 0 {
		return 1.0
	}
	return score / maxScore
}

// BestLabel returns the signature label scoring highest for the text, and
// that score.
func BestLabel(text string) (types.SectionLabel, float64) {
	var best types.SectionLabel
	bestScore := math.Inf(-1)
	for _, label := range signatureLabels {
		if s := Score(text, label); s > bestScore {
			best, bestScore = label, s
		}
	}
	return best, bestScore
}

// Validate rewrites the section set: blocks that echo the page header or
// lead with their own section heading are stripped, misplaced blocks relocate
// when a rival section scores clearly better, blocks below the drop threshold
// are removed with a warning, and duplicated spans across sections keep only
// their highest-confidence copy.
func (v *Validator) Validate(set *types.SectionSet, headerText string) (*types.SectionSet, *Report) {
	report := &Report{}
	out := types.NewSectionSet()
	header := normalizeText(headerText)

	for _, label := range types.AllSectionLabels() {
		rec := set.Records[label]
		if rec == nil {
			continue
		}
		for _, block := range rec.Blocks {
			if v.isHeaderEcho(header, block.Text) {
				report.Warnings = append(report.Warnings,
					fmt.Sprintf("removed header echo from %s (zone %s)", label, block.ZoneID))
				continue
			}
			block = stripOwnHeading(block, label)
			if block.Text == "" {
				continue
			}
			v.placeBlock(out, report, label, block)
		}
	}

	for _, block := range set.Overflow {
		if v.isHeaderEcho(header, block.Text) {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("removed header echo from overflow (zone %s)", block.ZoneID))
			continue
		}
		out.Overflow = append(out.Overflow, block)
	}

	v.dedup(out, report)
	refreshConfidences(out)
	return out, report
}

// placeBlock decides where a validated block lands.
func (v *Validator) placeBlock(out *types.SectionSet, report *Report, label types.SectionLabel, block types.ContentBlock) {
	conf := Score(block.Text, label)
	if conf >= v.cfg.KeepThreshold {
		out.Record(label).AddBlock(block)
		return
	}

	rival, rivalConf := BestLabel(block.Text)
	if rival != label && rivalConf >= v.cfg.KeepThreshold && rivalConf-conf >= v.cfg.RelocateMargin &&
		hasPositiveEvidence(block.Text, rival) {
		out.Record(rival).AddBlock(block)
		report.Moves = append(report.Moves, Move{ZoneID: block.ZoneID, From: label, To: rival})
		return
	}

	if conf < v.cfg.DropThreshold {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("dropped low-confidence block from %s (zone %s, score %.2f)", label, block.ZoneID, conf))
		return
	}

	block.Flagged = true
	out.Record(label).AddBlock(block)
	report.Warnings = append(report.Warnings,
		fmt.Sprintf("kept questionable block in %s (zone %s, score %.2f)", label, block.ZoneID, conf))
}

// dedup removes cross-section duplicate spans, keeping the highest-confidence
// copy of each.
func (v *Validator) dedup(set *types.SectionSet, report *Report) {
	type entry struct {
		label      types.SectionLabel // empty for overflow
		index      int
		normalized string
		confidence float64
	}

	var entries []entry
	for _, label := range set.Labels() {
		rec := set.Records[label]
		for i, b := range rec.Blocks {
			entries = append(entries, entry{label, i, normalizeText(b.Text), b.Confidence})
		}
	}
	for i, b := range set.Overflow {
		entries = append(entries, entry{"", i, normalizeText(b.Text), b.Confidence})
	}

	order := make([]int, len(entries))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return entries[order[a]].confidence > entries[order[b]].confidence
	})

	removed := make(map[int]bool)
	var accepted []int
	for _, idx := range order {
		dup := false
		for _, kept := range accepted {
			if v.isDuplicate(entries[idx].normalized, entries[kept].normalized) {
				dup = true
				break
			}
		}
		if dup {
			removed[idx] = true
			e := entries[idx]
			where := string(e.label)
			if where == "" {
				where = "overflow"
			}
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("removed duplicate content from %s", where))
			continue
		}
		accepted = append(accepted, idx)
	}
	if len(removed) == 0 {
		return
	}

	removedByLabel := map[types.SectionLabel]map[int]bool{}
	removedOverflow := map[int]bool{}
	for i, e := range entries {
		if !removed[i] {
			continue
		}
		if e.label == "" {
			removedOverflow[e.index] = true
			continue
		}
		if removedByLabel[e.label] == nil {
			removedByLabel[e.label] = map[int]bool{}
		}
		removedByLabel[e.label][e.index] = true
	}
	for label, idxs := range removedByLabel {
		rec := set.Records[label]
		var kept []types.ContentBlock
		for i, b := range rec.Blocks {
			if !idxs[i] {
				kept = append(kept, b)
			}
		}
		rec.Blocks = kept
	}
	var overflow []types.ContentBlock
	for i, b := range set.Overflow {
		if !removedOverflow[i] {
			overflow = append(overflow, b)
		}
	}
	set.Overflow = overflow
	for label, rec := range set.Records {
		if len(rec.Blocks) == 0 {
			delete(set.Records, label)
		}
	}
}

func (v *Validator) isDuplicate(a, b string) bool {
	shorter, longer := a, b
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) < v.cfg.DedupMinSpan {
		return false
	}
	return strings.Contains(longer, shorter)
}

// ownHeadingMaxWords bounds how long a block's first line can be and still
// count as a section heading; real content lines run longer.
const ownHeadingMaxWords = 4

// stripOwnHeading removes a leading line that resolves to the block's own
// section label. Zoning sometimes fails to split a heading from the body
// below it, and the heading text must not survive as section content.
func stripOwnHeading(block types.ContentBlock, label types.SectionLabel) types.ContentBlock {
	first, rest, _ := strings.Cut(block.Text, "\n")
	if len(strings.Fields(first)) > ownHeadingMaxWords {
		return block
	}
	if matched, ok := sections.MatchHeader(first); ok && matched == label {
		block.Text = strings.TrimSpace(rest)
	}
	return block
}

// isHeaderEcho reports whether a block merely repeats text already captured
// in the page header.
func (v *Validator) isHeaderEcho(normalizedHeader, text string) bool {
	if normalizedHeader == "" {
		return false
	}
	n := normalizeText(text)
	return n != "" && strings.Contains(normalizedHeader, n)
}

// hasPositiveEvidence requires affirmative signature matches before a block
// may relocate. Without it, text matching nothing at all would drift toward
// sections whose score is mostly "no negative keywords found".
func hasPositiveEvidence(text string, label types.SectionLabel) bool {
	sig, ok := signatures[label]
	if !ok {
		return false
	}
	lower := strings.ToLower(text)
	for _, p := range sig.requiredPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return countContains(sig.positiveKeywords, lower) > 0
}

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

func normalizeText(s string) string {
	return strings.TrimSpace(nonAlnum.ReplaceAllString(strings.ToLower(s), " "))
}

func countContains(needles []string, s string) int {
	n := 0
	for _, needle := range needles {
		if strings.Contains(s, needle) {
			n++
		}
	}
	return n
}

func isListFormat(text string) bool {
	return strings.ContainsAny(text, ",•|")
}

func isParagraphFormat(text string) bool {
	return len(strings.Split(text, ".")) > 2
}

func refreshConfidences(set *types.SectionSet) {
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
