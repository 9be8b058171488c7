package mapping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/types"
)

func buildSet() *types.SectionSet {
	set := types.NewSectionSet()
	set.Record(types.SectionEmployment).AddBlock(types.ContentBlock{ZoneID: "z1", Text: "Engineer at Acme, 2020-2023"})
	set.Record(types.SectionEmployment).AddBlock(types.ContentBlock{ZoneID: "z2", Text: "Developer at Initech, 2018-2020"})
	set.Record(types.SectionSkills).AddBlock(types.ContentBlock{ZoneID: "z3", Text: "Go"})
	set.Record(types.SectionSkills).AddBlock(types.ContentBlock{ZoneID: "z4", Text: "Python"})
	set.Record(types.SectionSummary).AddBlock(types.ContentBlock{ZoneID: "z5", Text: "Engineer with ten years"})
	set.Record(types.SectionSummary).AddBlock(types.ContentBlock{ZoneID: "z6", Text: "of platform experience."})
	return set
}

func TestMapIdentityWithoutSchema(t *testing.T) {
	m := NewMapper()
	out, warnings := m.Map(buildSet(), nil)

	assert.Empty(t, warnings)
	assert.Equal(t, "Engineer at Acme, 2020-2023\n\nDeveloper at Initech, 2018-2020", out.Sections[types.SectionEmployment])
	assert.Equal(t, "Go, Python", out.Sections[types.SectionSkills])
	assert.Equal(t, "Engineer with ten years of platform experience.", out.Sections[types.SectionSummary])
	assert.Empty(t, out.Slots)
}

func TestMapSkillsKeepsExistingStructure(t *testing.T) {
	set := types.NewSectionSet()
	set.Record(types.SectionSkills).AddBlock(types.ContentBlock{ZoneID: "z1", Text: "Go, Python, SQL"})

	out, _ := NewMapper().Map(set, nil)
	assert.Equal(t, "Go, Python, SQL", out.Sections[types.SectionSkills])
}

func TestMapPreservesOverflow(t *testing.T) {
	set := buildSet()
	set.Overflow = append(set.Overflow, types.ContentBlock{ZoneID: "z9", Text: "Unclassifiable fragment"})

	out, _ := NewMapper().Map(set, nil)
	assert.Equal(t, []string{"Unclassifiable fragment"}, out.Overflow)
}

func TestMapFillsSlots(t *testing.T) {
	schema := &TemplateSchema{
		Name: "classic",
		Slots: []Slot{
			{ID: "work", Label: types.SectionEmployment, Required: true},
			{ID: "skills", Label: types.SectionSkills},
			{ID: "education", Label: types.SectionEducation, Required: true},
		},
	}

	out, warnings := NewMapper().Map(buildSet(), schema)

	assert.Contains(t, out.Slots["work"], "Engineer at Acme")
	assert.Equal(t, "Go, Python", out.Slots["skills"])

	// Education is required but missing; summary has no slot.
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], `required slot "education"`)
	assert.Contains(t, warnings[1], "no slot for SUMMARY")

	assert.Contains(t, out.Overflow, "Engineer with ten years of platform experience.")
}

func TestLoadSchema(t *testing.T) {
	schema, err := LoadSchema([]byte(`{
		"name": "classic",
		"slots": [
			{"id": "work", "label": "EMPLOYMENT", "required": true},
			{"id": "skills", "label": "SKILLS"}
		]
	}`))
	require.NoError(t, err)
	assert.Equal(t, "classic", schema.Name)
	require.Len(t, schema.Slots, 2)
	assert.Equal(t, types.SectionEmployment, schema.Slots[0].Label)
	assert.True(t, schema.Slots[0].Required)
}

func TestLoadSchemaRejectsUnknownLabel(t *testing.T) {
	_, err := LoadSchema([]byte(`{
		"name": "classic",
		"slots": [{"id": "work", "label": "HOBBIES"}]
	}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid template schema")
}

func TestLoadSchemaRejectsMissingSlots(t *testing.T) {
	_, err := LoadSchema([]byte(`{"name": "classic", "slots": []}`))
	assert.Error(t, err)

	_, err = LoadSchema([]byte(`{"slots": [{"id": "a", "label": "SKILLS"}]}`))
	assert.Error(t, err)
}
