package sections

import (
	"regexp"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/jonathan/resume-formatter/internal/types"
)

// fuzzyAcceptThreshold is the minimum token-sort similarity for a header to
// claim a label. OCR errors like "EDUC4TION" still clear it.
const fuzzyAcceptThreshold = 0.80

var nonAlphaSpace = regexp.MustCompile(`[^a-z\s]`)

// MatchHeader maps a recognized heading to a canonical label. Tries exact
// alias match, then fuzzy token-sort similarity, then keyword stems. Returns
// false when nothing clears the thresholds.
func MatchHeader(header string) (types.SectionLabel, bool) {
	clean := cleanHeader(header)
	if clean == "" {
		return "", false
	}

	for _, label := range types.AllSectionLabels() {
		for _, alias := range sectionAliases[label] {
			if clean == alias {
				return label, true
			}
		}
	}

	var bestLabel types.SectionLabel
	bestScore := 0.0
	for _, label := range types.AllSectionLabels() {
		for _, alias := range sectionAliases[label] {
			if score := tokenSortRatio(clean, alias); score > bestScore {
				bestScore = score
				bestLabel = label
			}
		}
	}
	if bestScore >= fuzzyAcceptThreshold {
		return bestLabel, true
	}

	for _, entry := range keywordStems {
		for _, stem := range entry.stems {
			if strings.Contains(clean, stem) {
				return entry.label, true
			}
		}
	}
	return "", false
}

func cleanHeader(header string) string {
	clean := strings.ToLower(strings.TrimSpace(header))
	clean = nonAlphaSpace.ReplaceAllString(clean, "")
	return strings.Join(strings.Fields(clean), " ")
}

// tokenSortRatio compares two strings after sorting their tokens, so word
// order does not matter ("experience work" matches "work experience").
func tokenSortRatio(a, b string) float64 {
	sa, sb := sortTokens(a), sortTokens(b)
	if sa == sb {
		return 1.0
	}
	longest := len(sa)
	if len(sb) > longest {
		longest = len(sb)
	}
	if longest == 0 {
		return 0
	}
	dist := levenshtein.ComputeDistance(sa, sb)
	return 1.0 - float64(dist)/float64(longest)
}

func sortTokens(s string) string {
	tokens := strings.Fields(s)
	sort.Strings(tokens)
	return strings.Join(tokens, " ")
}
