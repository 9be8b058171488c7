// Package mapping implements the template mapper: validated sections are
// formatted per label and routed into template slots, with unslotted and
// unlabeled content preserved in an overflow bucket rather than dropped.
package mapping

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Mapped is the template mapper's output.
type Mapped struct {
	// Sections holds the formatted text per canonical label.
	Sections map[types.SectionLabel]string
	// Slots holds slot-id to content assignments; empty without a schema.
	Slots map[string]string
	// Overflow preserves content no section or slot claimed.
	Overflow []string
}

// Mapper formats section content and fills template slots.
type Mapper struct{}

// NewMapper returns a template mapper.
func NewMapper() *Mapper { return &Mapper{} }

// Map formats every section and, when a schema is present, assigns sections
// to slots. A nil schema performs the identity mapping: all sections pass
// through under their own labels. Returned warnings cover required slots
// that stayed empty and sections no slot claimed.
func (m *Mapper) Map(set *types.SectionSet, schema *TemplateSchema) (*Mapped, []string) {
	out := &Mapped{
		Sections: make(map[types.SectionLabel]string),
		Slots:    make(map[string]string),
	}

	for _, label := range set.Labels() {
		texts := blockTexts(set.Records[label].Blocks)
		if formatted := formatSection(label, texts); formatted != "" {
			out.Sections[label] = formatted
		}
	}
	for _, block := range set.Overflow {
		if text := strings.TrimSpace(block.Text); text != "" {
			out.Overflow = append(out.Overflow, text)
		}
	}

	if schema == nil {
		return out, nil
	}

	var warnings []string
	slotted := make(map[types.SectionLabel]bool)
	for _, slot := range schema.Slots {
		content := out.Sections[slot.Label]
		if content == "" {
			if slot.Required {
				warnings = append(warnings,
					fmt.Sprintf("template %q: required slot %q has no %s content", schema.Name, slot.ID, slot.Label))
			}
			continue
		}
		out.Slots[slot.ID] = content
		slotted[slot.Label] = true
	}

	for _, label := range types.AllSectionLabels() {
		content, ok := out.Sections[label]
		if !ok || slotted[label] {
			continue
		}
		out.Overflow = append(out.Overflow, content)
		warnings = append(warnings,
			fmt.Sprintf("template %q: no slot for %s content, moved to overflow", schema.Name, label))
	}
	return out, warnings
}

func blockTexts(blocks []types.ContentBlock) []string {
	var texts []string
	for _, b := range blocks {
		if t := strings.TrimSpace(b.Text); t != "" {
			texts = append(texts, t)
		}
	}
	return texts
}

// formatSection renders a section's blocks the way its label is usually laid
// out: entry sections get blank-line separation, skills collapse to a comma
// list unless already structured, summaries join into one paragraph.
func formatSection(label types.SectionLabel, texts []string) string {
	if len(texts) == 0 {
		return ""
	}
	switch label {
	case types.SectionEmployment, types.SectionEducation, types.SectionProjects:
		return strings.Join(texts, "\n\n")
	case types.SectionSkills:
		combined := strings.Join(texts, " ")
		if strings.ContainsAny(combined, ",•") {
			return combined
		}
		return strings.Join(texts, ", ")
	case types.SectionSummary:
		return strings.Join(texts, " ")
	default:
		return strings.Join(texts, "\n")
	}
}
