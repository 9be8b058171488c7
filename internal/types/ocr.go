package types

// Pass identifies which OCR pass produced a result.
type Pass string

const (
	// PassHeader is the header-zone pass tuned for short isolated text.
	PassHeader Pass = "header"
	// PassSectionHeader is the heading pass tuned for large/bold section titles.
	PassSectionHeader Pass = "section-header"
	// PassBody is the dense-paragraph pass over zone bodies.
	PassBody Pass = "body"
)

// Token is a single recognized word with its confidence and position.
// Tokens below the configured confidence threshold are retained and flagged
// rather than dropped, so downstream layers can still recover from them.
type Token struct {
	Text          string  `json:"text"`
	Confidence    float64 `json:"confidence"`
	Bounds        Rect    `json:"bounds"`
	LowConfidence bool    `json:"low_confidence,omitempty"`
}

// PassResult is the raw output of one OCR invocation against one zone.
// Multiple pass results may cover the same zone; the section identifier
// reconciles them.
type PassResult struct {
	Pass       Pass    `json:"pass"`
	ZoneID     string  `json:"zone_id"`
	Text       string  `json:"text"`
	Tokens     []Token `json:"tokens,omitempty"`
	Confidence float64 `json:"confidence"`
	// Failed marks a zone whose OCR invocation errored or timed out. The zone
	// is excluded from this pass only; other zones and passes proceed.
	Failed bool   `json:"failed,omitempty"`
	Error  string `json:"error,omitempty"`
}

// MultiPassResult aggregates all pass results for one page.
type MultiPassResult struct {
	Header         *PassResult  `json:"header,omitempty"`
	SectionHeaders []PassResult `json:"section_headers"`
	Body           []PassResult `json:"body"`
	FullText       string       `json:"full_text"`
}

// FailedZones returns the IDs of zones that failed OCR in any pass.
func (m *MultiPassResult) FailedZones() []string {
	var out []string
	seen := map[string]bool{}
	collect := func(results []PassResult) {
		for _, r := range results {
			if r.Failed && !seen[r.ZoneID] {
				seen[r.ZoneID] = true
				out = append(out, r.ZoneID)
			}
		}
	}
	collect(m.SectionHeaders)
	collect(m.Body)
	if m.Header != nil && m.Header.Failed {
		collect([]PassResult{*m.Header})
	}
	return out
}
