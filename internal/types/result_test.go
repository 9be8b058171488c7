package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQualityBand(t *testing.T) {
	tests := []struct {
		name    string
		overall float64
		band    string
	}{
		{"high quality", 0.92, "high"},
		{"exactly high threshold", 0.8, "high"},
		{"review recommended", 0.7, "review"},
		{"exactly review threshold", 0.6, "review"},
		{"manual review", 0.45, "manual"},
		{"zero", 0.0, "manual"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &PipelineResult{QualityScores: map[string]float64{ScoreOverall: tt.overall}}
			assert.Equal(t, tt.band, r.QualityBand())
		})
	}
}

func TestSectionSetRecordUniquePerLabel(t *testing.T) {
	ss := NewSectionSet()

	rec1 := ss.Record(SectionEmployment)
	rec1.AddBlock(ContentBlock{ZoneID: "z1", Text: "Software Engineer at Acme", ReadingRank: 1})

	rec2 := ss.Record(SectionEmployment)
	rec2.AddBlock(ContentBlock{ZoneID: "z2", Text: "Staff Engineer at Initech", ReadingRank: 2})

	// Both additions land in a single record for the label.
	assert.Same(t, rec1, rec2)
	assert.Len(t, ss.Records[SectionEmployment].Blocks, 2)
	assert.ElementsMatch(t, []string{"z1", "z2"}, ss.Records[SectionEmployment].SourceZones)
}

func TestSectionSetLabelsCanonicalOrder(t *testing.T) {
	ss := NewSectionSet()
	ss.Record(SectionSkills).AddBlock(ContentBlock{ZoneID: "z3", Text: "Go, Python"})
	ss.Record(SectionEmployment).AddBlock(ContentBlock{ZoneID: "z1", Text: "Engineer at Acme"})
	ss.Record(SectionEducation) // empty record should not be listed

	assert.Equal(t, []SectionLabel{SectionEmployment, SectionSkills}, ss.Labels())
}

func TestAddBlockDeduplicatesSourceZones(t *testing.T) {
	rec := &SectionRecord{Label: SectionEducation}
	rec.AddBlock(ContentBlock{ZoneID: "z1", Text: "BS in CS"})
	rec.AddBlock(ContentBlock{ZoneID: "z1", Text: "MIT, 2020"})

	assert.Equal(t, []string{"z1"}, rec.SourceZones)
	assert.Len(t, rec.Blocks, 2)
}

func TestCandidateInfoContactCount(t *testing.T) {
	c := &CandidateInfo{Email: "a@b.com", Phone: "(555) 123-4567"}
	assert.Equal(t, 2, c.ContactCount())

	empty := &CandidateInfo{}
	assert.Equal(t, 0, empty.ContactCount())
}

func TestMultiPassResultFailedZones(t *testing.T) {
	m := &MultiPassResult{
		SectionHeaders: []PassResult{
			{Pass: PassSectionHeader, ZoneID: "z1", Failed: true, Error: "timeout"},
			{Pass: PassSectionHeader, ZoneID: "z2"},
		},
		Body: []PassResult{
			{Pass: PassBody, ZoneID: "z1", Failed: true, Error: "timeout"},
			{Pass: PassBody, ZoneID: "z3"},
		},
	}

	assert.Equal(t, []string{"z1"}, m.FailedZones())
}
