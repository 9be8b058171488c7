package sections

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/types"
)

func TestMatchHeaderExact(t *testing.T) {
	tests := []struct {
		header string
		label  types.SectionLabel
	}{
		{"WORK EXPERIENCE", types.SectionEmployment},
		{"Experience", types.SectionEmployment},
		{"Education", types.SectionEducation},
		{"Technical Skills", types.SectionSkills},
		{"Professional Profile", types.SectionSummary},
		{"Key Projects", types.SectionProjects},
		{"Certifications", types.SectionCertifications},
		{"Awards and Honors", types.SectionAchievements},
		{"Languages", types.SectionLanguages},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			label, ok := MatchHeader(tt.header)
			require.True(t, ok)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestMatchHeaderSurvivesOCRErrors(t *testing.T) {
	// "4" is stripped during cleaning; the remainder fuzzy-matches.
	label, ok := MatchHeader("EDUC4TION")
	require.True(t, ok)
	assert.Equal(t, types.SectionEducation, label)

	label, ok = MatchHeader("EXPERIENCE WORK")
	require.True(t, ok)
	assert.Equal(t, types.SectionEmployment, label)
}

func TestMatchHeaderFuzzyBoundary(t *testing.T) {
	// Two substitutions over ten characters put this exactly at the
	// similarity floor, which still accepts.
	label, ok := MatchHeader("EXPXRIENZE")
	require.True(t, ok)
	assert.Equal(t, types.SectionEmployment, label)
}

func TestMatchHeaderKeywordFallback(t *testing.T) {
	label, ok := MatchHeader("My Career So Far")
	require.True(t, ok)
	assert.Equal(t, types.SectionEmployment, label)
}

func TestMatchHeaderNoMatch(t *testing.T) {
	_, ok := MatchHeader("References")
	assert.False(t, ok)

	_, ok = MatchHeader("  !!! ")
	assert.False(t, ok)
}

func TestClassifyContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
		label   types.SectionLabel
	}{
		{
			"degree line",
			"Bachelor of Science in Computer Science, MIT University, GPA: 3.8",
			types.SectionEducation,
		},
		{
			"job history",
			"Worked at Acme Inc. Position: Senior Engineer. Promoted to lead. Managed team of five.",
			types.SectionEmployment,
		},
		{
			"skills list",
			"Python, JavaScript, SQL, Docker, AWS",
			types.SectionSkills,
		},
		{
			"narrative summary",
			"Experienced professional with 10 years of experience. Passionate about building systems. Seeking new challenges.",
			types.SectionSummary,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			label, ok := ClassifyContent(tt.content)
			require.True(t, ok)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestClassifyContentEducationOutranksEmployment(t *testing.T) {
	// A degree line at a company-sounding institute must not read as a job.
	label, ok := ClassifyContent("Master of Science, Stanford University. Thesis: distributed systems. Graduated with honors.")
	require.True(t, ok)
	assert.Equal(t, types.SectionEducation, label)
}

func TestClassifyContentNoEvidence(t *testing.T) {
	_, ok := ClassifyContent("zzz qqq")
	assert.False(t, ok)
}

func identifyFixture() (*types.Layout, *types.MultiPassResult) {
	layout := &types.Layout{
		Zones: []types.Zone{
			{ID: "z2", Kind: types.ZoneKindHeading, ReadingRank: 1},
			{ID: "z3", Kind: types.ZoneKindSectionBlock, ReadingRank: 2},
			{ID: "z4", Kind: types.ZoneKindHeading, ReadingRank: 3},
			{ID: "z5", Kind: types.ZoneKindSectionBlock, ReadingRank: 4},
		},
	}
	mp := &types.MultiPassResult{
		SectionHeaders: []types.PassResult{
			{Pass: types.PassSectionHeader, ZoneID: "z2", Text: "WORK EXPERIENCE", Confidence: 0.9},
			{Pass: types.PassSectionHeader, ZoneID: "z4", Text: "EDUC4TION", Confidence: 0.7},
		},
		Body: []types.PassResult{
			{Pass: types.PassBody, ZoneID: "z3", Text: "Software Engineer at Initech Inc. Shipped the billing system.", Confidence: 0.88},
			{Pass: types.PassBody, ZoneID: "z5", Text: "Bachelor of Science in CS, MIT, 2020", Confidence: 0.92},
		},
	}
	return layout, mp
}

func TestIdentifyAttachesBodyToOpenSection(t *testing.T) {
	layout, mp := identifyFixture()

	set := NewIdentifier().Identify(layout, mp)

	emp := set.Records[types.SectionEmployment]
	require.NotNil(t, emp)
	require.Len(t, emp.Blocks, 1)
	assert.Equal(t, "z3", emp.Blocks[0].ZoneID)
	assert.InDelta(t, 0.88, emp.Confidence, 1e-9)

	edu := set.Records[types.SectionEducation]
	require.NotNil(t, edu)
	require.Len(t, edu.Blocks, 1)
	assert.Equal(t, "z5", edu.Blocks[0].ZoneID)
	assert.Empty(t, set.Overflow)
}

func TestIdentifyRelocatesMisfiledBlock(t *testing.T) {
	layout, mp := identifyFixture()
	// A degree block sitting under the employment heading moves on its own
	// evidence.
	layout.Zones = append(layout.Zones, types.Zone{ID: "z6", Kind: types.ZoneKindSectionBlock, ReadingRank: 2})
	mp.Body = append(mp.Body, types.PassResult{
		Pass: types.PassBody, ZoneID: "z6",
		Text: "Master of Science, Stanford University, GPA: 3.9", Confidence: 0.8,
	})

	set := NewIdentifier().Identify(layout, mp)

	edu := set.Records[types.SectionEducation]
	require.NotNil(t, edu)
	assert.ElementsMatch(t, []string{"z5", "z6"}, edu.SourceZones)
}

func TestIdentifySendsUnlabeledContentToOverflow(t *testing.T) {
	layout := &types.Layout{Zones: []types.Zone{
		{ID: "z1", Kind: types.ZoneKindSectionBlock, ReadingRank: 0},
	}}
	mp := &types.MultiPassResult{
		Body: []types.PassResult{
			{Pass: types.PassBody, ZoneID: "z1", Text: "zzz qqq", Confidence: 0.4},
		},
	}

	set := NewIdentifier().Identify(layout, mp)

	assert.Empty(t, set.Records)
	require.Len(t, set.Overflow, 1)
	assert.Equal(t, "z1", set.Overflow[0].ZoneID)
}

func TestIdentifySkipsFailedPasses(t *testing.T) {
	layout, mp := identifyFixture()
	mp.Body[0].Failed = true
	mp.Body[0].Text = ""

	set := NewIdentifier().Identify(layout, mp)

	assert.Nil(t, set.Records[types.SectionEmployment])
	require.NotNil(t, set.Records[types.SectionEducation])
}

func TestIdentifyPropagatesLowConfidenceFlag(t *testing.T) {
	layout, mp := identifyFixture()
	mp.Body[1].Tokens = []types.Token{
		{Text: "Bachelor", Confidence: 0.9},
		{Text: "MIT", Confidence: 0.2, LowConfidence: true},
	}

	set := NewIdentifier().Identify(layout, mp)

	edu := set.Records[types.SectionEducation]
	require.NotNil(t, edu)
	assert.True(t, edu.Blocks[0].Flagged)
}
