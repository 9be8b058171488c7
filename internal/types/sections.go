package types

// SectionLabel is a canonical resume section name. The vocabulary is fixed;
// free-form header text is resolved onto it by the section identifier.
type SectionLabel string

const (
	SectionEmployment     SectionLabel = "EMPLOYMENT"
	SectionEducation      SectionLabel = "EDUCATION"
	SectionSkills         SectionLabel = "SKILLS"
	SectionSummary        SectionLabel = "SUMMARY"
	SectionProjects       SectionLabel = "PROJECTS"
	SectionCertifications SectionLabel = "CERTIFICATIONS"
	SectionAchievements   SectionLabel = "ACHIEVEMENTS"
	SectionLanguages      SectionLabel = "LANGUAGES"
)

// AllSectionLabels lists the canonical vocabulary in default template order.
func AllSectionLabels() []SectionLabel {
	return []SectionLabel{
		SectionSummary,
		SectionEmployment,
		SectionEducation,
		SectionSkills,
		SectionProjects,
		SectionCertifications,
		SectionAchievements,
		SectionLanguages,
	}
}

// ContentBlock is a span of recognized text attributed to a section. Blocks
// keep their source zone and reading rank so relocated content can be
// re-ordered deterministically.
type ContentBlock struct {
	ZoneID      string  `json:"zone_id"`
	Text        string  `json:"text"`
	Confidence  float64 `json:"confidence"`
	ReadingRank int     `json:"reading_rank"`
	// Flagged marks a block the content validator could not confidently
	// confirm or relocate; it stays in place but lowers section confidence.
	Flagged bool `json:"flagged,omitempty"`
}

// SectionRecord is the canonical output unit: one label, its contributing
// blocks in reading order, and a confidence in [0,1]. Labels are unique per
// document; conflicting assignments merge rather than duplicate.
type SectionRecord struct {
	Label       SectionLabel   `json:"label"`
	Blocks      []ContentBlock `json:"blocks"`
	Confidence  float64        `json:"confidence"`
	SourceZones []string       `json:"source_zones"`
}

// AddBlock appends a block and tracks its source zone.
func (s *SectionRecord) AddBlock(b ContentBlock) {
	s.Blocks = append(s.Blocks, b)
	for _, z := range s.SourceZones {
		if z == b.ZoneID {
			return
		}
	}
	if b.ZoneID != "" {
		s.SourceZones = append(s.SourceZones, b.ZoneID)
	}
}

// SectionSet is the working collection of section records keyed by label,
// plus the overflow of blocks no label could claim. Overflow is retained so
// degraded extraction never silently drops content.
type SectionSet struct {
	Records  map[SectionLabel]*SectionRecord `json:"records"`
	Overflow []ContentBlock                  `json:"overflow,omitempty"`
}

// NewSectionSet returns an empty section set.
func NewSectionSet() *SectionSet {
	return &SectionSet{Records: make(map[SectionLabel]*SectionRecord)}
}

// Record returns the record for label, creating it on first use.
func (ss *SectionSet) Record(label SectionLabel) *SectionRecord {
	rec, ok := ss.Records[label]
	if !ok {
		rec = &SectionRecord{Label: label}
		ss.Records[label] = rec
	}
	return rec
}

// Labels returns the assigned labels in canonical order.
func (ss *SectionSet) Labels() []SectionLabel {
	var out []SectionLabel
	for _, label := range AllSectionLabels() {
		if rec, ok := ss.Records[label]; ok && len(rec.Blocks) > 0 {
			out = append(out, label)
		}
	}
	return out
}
