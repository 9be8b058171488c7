package types

// Quality score category names used in PipelineResult.QualityScores.
const (
	ScoreOverall    = "overall"
	ScoreName       = "name"
	ScoreContact    = "contact"
	ScoreEmployment = "employment"
	ScoreEducation  = "education"
	ScoreSkills     = "skills"
	ScoreSummary    = "summary"
)

// Quality bands for the overall score. At or above High no review is needed;
// between Review and High a review is recommended; below Review manual
// review is required.
const (
	QualityHighThreshold   = 0.8
	QualityReviewThreshold = 0.6
)

// PipelineResult is the terminal aggregate of one pipeline run. It is
// created once per input document and immutable once returned.
type PipelineResult struct {
	RunID         string                  `json:"run_id"`
	CandidateInfo CandidateInfo           `json:"candidate_info"`
	Sections      map[SectionLabel]string `json:"sections"`
	// Slots holds template slot assignments; empty when no schema was given.
	Slots           map[string]string  `json:"slots,omitempty"`
	Overflow        []string           `json:"overflow,omitempty"`
	QualityScores   map[string]float64 `json:"quality_scores"`
	Completeness    map[string]bool    `json:"completeness"`
	Warnings        []string           `json:"warnings"`
	Recommendations []string           `json:"recommendations"`
	ProcessingTime  float64            `json:"processing_time"`
	PipelineVersion string             `json:"pipeline_version"`
}

// Overall returns the aggregate quality score.
func (r *PipelineResult) Overall() float64 {
	return r.QualityScores[ScoreOverall]
}

// QualityBand returns "high", "review" or "manual" for the overall score.
func (r *PipelineResult) QualityBand() string {
	switch overall := r.Overall(); {
	case overall >= QualityHighThreshold:
		return "high"
	case overall >= QualityReviewThreshold:
		return "review"
	default:
		return "manual"
	}
}
