// Package postprocess implements the final pipeline layer: text cleanup,
// completeness validation, quality scoring and user-facing feedback.
package postprocess

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-formatter/internal/types"
)

// Quality score ladders and weights.
const (
	nameScoreFull    = 0.95 // 2-4 words
	nameScoreSingle  = 0.5  // one word, probably truncated
	nameScorePartial = 0.7  // longer than a name usually is

	sectionScoreRich   = 0.9 // over 20 words
	sectionScoreMedium = 0.7 // over 5 words
	sectionScoreThin   = 0.5

	sectionRichWords   = 20
	sectionMediumWords = 5

	// Sections under this many words draw an incompleteness warning.
	shortSectionWords = 5
)

// scoreWeights define the overall quality aggregate.
var scoreWeights = map[string]float64{
	types.ScoreName:       0.25,
	types.ScoreContact:    0.15,
	types.ScoreEmployment: 0.25,
	types.ScoreEducation:  0.20,
	types.ScoreSkills:     0.10,
	types.ScoreSummary:    0.05,
}

// overallOrder fixes the summation order so equal inputs produce
// bit-identical overall scores.
var overallOrder = []string{
	types.ScoreName,
	types.ScoreContact,
	types.ScoreEmployment,
	types.ScoreEducation,
	types.ScoreSkills,
	types.ScoreSummary,
}

// Output carries everything the post-processor computed; the pipeline folds
// it into the final result.
type Output struct {
	CandidateInfo   types.CandidateInfo
	Sections        map[types.SectionLabel]string
	Overflow        []string
	QualityScores   map[string]float64
	Completeness    map[string]bool
	Warnings        []string
	Recommendations []string
}

// Processor runs final cleanup and quality assurance.
type Processor struct{}

// NewProcessor returns a post-processor.
func NewProcessor() *Processor { return &Processor{} }

// Process cleans all text fields, validates completeness, scores quality and
// generates feedback for the caller.
func (p *Processor) Process(info *types.CandidateInfo, sections map[types.SectionLabel]string, overflow []string) *Output {
	out := &Output{
		Sections: make(map[types.SectionLabel]string, len(sections)),
	}

	cleaned := *info
	cleaned.Name = CleanField(info.Name)
	cleaned.Email = CleanField(info.Email)
	cleaned.Phone = CleanField(info.Phone)
	cleaned.LinkedIn = CleanField(info.LinkedIn)
	cleaned.GitHub = CleanField(info.GitHub)
	cleaned.Location = CleanField(info.Location)
	cleaned.Title = CleanField(info.Title)
	out.CandidateInfo = cleaned

	for label, content := range sections {
		if c := CleanText(content); c != "" {
			out.Sections[label] = c
		}
	}
	for _, text := range overflow {
		if c := CleanText(text); c != "" {
			out.Overflow = append(out.Overflow, c)
		}
	}

	out.Completeness = p.completeness(&cleaned, out.Sections)
	out.QualityScores = p.qualityScores(&cleaned, out.Sections)
	out.Warnings, out.Recommendations = p.feedback(out.QualityScores)
	out.Warnings = append(out.Warnings, p.crossReference(out.Sections)...)
	return out
}

// completeness reports which required fields made it through extraction.
func (p *Processor) completeness(info *types.CandidateInfo, sections map[types.SectionLabel]string) map[string]bool {
	c := map[string]bool{
		"name":       info.Name != "",
		"email":      info.Email != "",
		"phone":      info.Phone != "",
		"employment": sections[types.SectionEmployment] != "",
		"education":  sections[types.SectionEducation] != "",
		"skills":     sections[types.SectionSkills] != "",
		"summary":    sections[types.SectionSummary] != "",
	}
	c["contact_info"] = c["email"] || c["phone"]
	c["required_fields_present"] = c["name"] && c["contact_info"] && c["employment"] && c["education"]
	return c
}

// qualityScores rates each aspect of the extraction and computes the
// weighted overall score.
func (p *Processor) qualityScores(info *types.CandidateInfo, sections map[types.SectionLabel]string) map[string]float64 {
	scores := map[string]float64{}

	switch words := len(strings.Fields(info.Name)); {
	case words == 0:
		scores[types.ScoreName] = 0
	case words >= 2 && words <= 4:
		scores[types.ScoreName] = nameScoreFull
	case words == 1:
		scores[types.ScoreName] = nameScoreSingle
	default:
		scores[types.ScoreName] = nameScorePartial
	}

	contact := float64(info.ContactCount()) / 2
	if contact > 1 {
		contact = 1
	}
	scores[types.ScoreContact] = contact

	sectionKeys := map[string]types.SectionLabel{
		types.ScoreEmployment: types.SectionEmployment,
		types.ScoreEducation:  types.SectionEducation,
		types.ScoreSkills:     types.SectionSkills,
		types.ScoreSummary:    types.SectionSummary,
	}
	for key, label := range sectionKeys {
		scores[key] = sectionScore(sections[label])
	}

	var overall float64
	for _, key := range overallOrder {
		overall += scores[key] * scoreWeights[key]
	}
	scores[types.ScoreOverall] = overall
	return scores
}

func sectionScore(content string) float64 {
	words := len(strings.Fields(content))
	switch {
	case words == 0:
		return 0
	case words > sectionRichWords:
		return sectionScoreRich
	case words > sectionMediumWords:
		return sectionScoreMedium
	default:
		return sectionScoreThin
	}
}

// feedback converts scores into user-facing warnings and recommendations.
func (p *Processor) feedback(scores map[string]float64) ([]string, []string) {
	var warnings, recommendations []string

	if scores[types.ScoreName] < 0.6 {
		warnings = append(warnings, "Candidate name may be incomplete or unclear")
		recommendations = append(recommendations, "Please verify the candidate name manually")
	}
	if scores[types.ScoreContact] < 0.5 {
		warnings = append(warnings, "Limited contact information extracted")
		recommendations = append(recommendations, "Please add email or phone number manually")
	}
	if scores[types.ScoreEmployment] < 0.5 {
		warnings = append(warnings, "Employment section may be incomplete")
		recommendations = append(recommendations, "Please review and complete employment history")
	}
	if scores[types.ScoreEducation] < 0.5 {
		warnings = append(warnings, "Education section may be incomplete")
		recommendations = append(recommendations, "Please review and complete education details")
	}

	switch overall := scores[types.ScoreOverall]; {
	case overall < types.QualityReviewThreshold:
		warnings = append(warnings, "Overall extraction quality is low")
		recommendations = append(recommendations, "Manual review and editing strongly recommended")
	case overall < types.QualityHighThreshold:
		recommendations = append(recommendations, "Please verify all sections for accuracy")
	}
	return warnings, recommendations
}

// crossReference flags suspiciously short sections.
func (p *Processor) crossReference(sections map[types.SectionLabel]string) []string {
	var issues []string
	for _, label := range types.AllSectionLabels() {
		content := sections[label]
		if content != "" && len(strings.Fields(content)) < shortSectionWords {
			issues = append(issues, fmt.Sprintf("%s section is very short - may be incomplete", label))
		}
	}
	return issues
}
