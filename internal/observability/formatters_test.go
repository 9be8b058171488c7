package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/resume-formatter/internal/types"
)

func TestPrintLayout(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintLayout(&types.Layout{
		PageWidth:  1000,
		PageHeight: 600,
		Columns:    2,
		Divider:    480,
		Zones: []types.Zone{
			{ID: "z1", Kind: types.ZoneKindHeader, Bounds: types.Rect{X: 300, Y: 20, Width: 400, Height: 40}},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "PAGE LAYOUT")
	assert.Contains(t, out, "1000x600")
	assert.Contains(t, out, "divider at x=480")
	assert.Contains(t, out, "z1")
}

func TestPrintLayoutNilIsQuiet(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintLayout(nil)
	assert.Empty(t, buf.String())
}

func TestPrintSectionSet(t *testing.T) {
	var buf bytes.Buffer
	set := types.NewSectionSet()
	set.Record(types.SectionEmployment).AddBlock(types.ContentBlock{ZoneID: "z2", Text: "Engineer at Acme", Flagged: true})
	set.Records[types.SectionEmployment].Confidence = 0.8
	set.Overflow = append(set.Overflow, types.ContentBlock{ZoneID: "z9", Text: "stray"})

	NewPrinter(&buf).PrintSectionSet(set)

	out := buf.String()
	assert.Contains(t, out, "EMPLOYMENT")
	assert.Contains(t, out, "conf 0.80")
	assert.Contains(t, out, "(1 flagged)")
	assert.Contains(t, out, "overflow")
}

func TestPrintCandidate(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintCandidate(&types.CandidateInfo{Name: "Jane Doe", Email: "jane@email.com"})

	out := buf.String()
	assert.Contains(t, out, "CANDIDATE INFO")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "jane@email.com")
	assert.NotContains(t, out, "Phone:")
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	result := &types.PipelineResult{
		RunID:         "run-1",
		CandidateInfo: types.CandidateInfo{Name: "Jane Doe"},
		Sections: map[types.SectionLabel]string{
			types.SectionSkills: "Go, Python",
		},
		QualityScores:   map[string]float64{types.ScoreOverall: 0.85},
		Warnings:        []string{"something minor"},
		Recommendations: []string{"verify the skills section"},
		ProcessingTime:  1.5,
	}

	NewPrinter(&buf).PrintReport(result)

	out := buf.String()
	assert.Contains(t, out, "EXTRACTION REPORT")
	assert.Contains(t, out, "0.85 (high)")
	assert.Contains(t, out, "SKILLS")
	assert.Contains(t, out, "⚠ something minor")
	assert.Contains(t, out, "→ verify the skills section")
}

func TestPrintBoxTruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	long := "this line is definitely much longer than the box width allows for printing"
	p.printBox("TITLE", long)
	assert.Contains(t, buf.String(), "...")
	assert.NotContains(t, buf.String(), long)
}
