// Package pipeline provides the high-level orchestration for the resume
// extraction process: layout analysis, multi-pass OCR, section
// identification, content validation, header extraction, template mapping
// and post-processing, in that order.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-formatter/internal/config"
	"github.com/jonathan/resume-formatter/internal/document"
	"github.com/jonathan/resume-formatter/internal/header"
	"github.com/jonathan/resume-formatter/internal/layout"
	"github.com/jonathan/resume-formatter/internal/mapping"
	"github.com/jonathan/resume-formatter/internal/multipass"
	"github.com/jonathan/resume-formatter/internal/observability"
	"github.com/jonathan/resume-formatter/internal/ocr"
	"github.com/jonathan/resume-formatter/internal/ocr/tesseract"
	"github.com/jonathan/resume-formatter/internal/postprocess"
	"github.com/jonathan/resume-formatter/internal/sections"
	"github.com/jonathan/resume-formatter/internal/types"
	"github.com/jonathan/resume-formatter/internal/validation"
)

// Version tags every result this pipeline produces.
const Version = "1.0.0"

// Step names reported through the progress callback.
const (
	StepLayout      = "layout"
	StepOCR         = "ocr"
	StepSections    = "sections"
	StepValidation  = "validation"
	StepHeader      = "header"
	StepMapping     = "mapping"
	StepPostprocess = "postprocess"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// Options holds configuration for running the pipeline
type Options struct {
	Config config.Config
	// Engine overrides the OCR provider; nil selects Tesseract.
	Engine     ocr.Engine
	Verbose    bool
	OnProgress ProgressCallback
}

// Runner executes the extraction pipeline against loaded documents.
type Runner struct {
	cfg      config.Config
	engine   ocr.Engine
	verbose  bool
	progress ProgressCallback
	printer  *observability.Printer
	runID    string
}

// NewRunner builds a runner from the options, filling unset configuration
// with the calibrated defaults.
func NewRunner(opts Options) *Runner {
	engine := opts.Engine
	if engine == nil {
		engine = tesseract.NewEngine()
	}
	return &Runner{
		cfg:      opts.Config.MergeWithDefaults(config.Default()),
		engine:   engine,
		verbose:  opts.Verbose,
		progress: opts.OnProgress,
		printer:  observability.NewPrinter(os.Stdout),
	}
}

// Run executes the full extraction pipeline for one document. Only
// unreadable input is fatal; every degraded condition downstream folds into
// the result's warnings instead. The returned result is complete even when
// extraction quality is poor.
func Run(ctx context.Context, doc *document.Document, schema *mapping.TemplateSchema, opts Options) (*types.PipelineResult, error) {
	return NewRunner(opts).Run(ctx, doc, schema)
}

// Run executes the pipeline once. Safe for repeated calls; each call gets
// its own run ID.
func (r *Runner) Run(ctx context.Context, doc *document.Document, schema *mapping.TemplateSchema) (*types.PipelineResult, error) {
	start := time.Now()
	r.runID = uuid.New().String()

	if doc == nil {
		return nil, &document.UnreadableInputError{Path: "", Message: "no document provided"}
	}
	if doc.NeedsOCR() && len(doc.Pages) == 0 {
		return nil, &document.UnreadableInputError{Path: doc.Source, Message: "document has no page images"}
	}

	var (
		set        *types.SectionSet
		headerPass *types.PassResult
		warnings   []string
	)
	if doc.NeedsOCR() {
		var err error
		set, headerPass, warnings, err = r.runOCR(ctx, doc)
		if err != nil {
			return nil, err
		}
	} else {
		// PDF text layer is trustworthy; classify its paragraphs directly.
		r.stepf("Using native PDF text, OCR skipped")
		set, headerPass = sectionsFromText(doc.NativeText)
		warnings = append(warnings, "native PDF text used, visual layout analysis skipped")
		r.emit(StepOCR, "classified native PDF text", nil)
	}

	result := r.finishRun(set, headerPass, schema, warnings)
	result.RunID = r.runID
	result.ProcessingTime = time.Since(start).Seconds()
	result.PipelineVersion = Version
	return result, nil
}

// runOCR performs layers 1-3 for every page and merges the per-page section
// sets. The header is taken from the first page that has one.
func (r *Runner) runOCR(ctx context.Context, doc *document.Document) (*types.SectionSet, *types.PassResult, []string, error) {
	analyzer := layout.NewAnalyzer(r.cfg.LayoutConfig())
	engine := multipass.NewEngine(r.engine, r.cfg.MultipassConfig())
	identifier := sections.NewIdentifier()

	merged := types.NewSectionSet()
	var headerPass *types.PassResult
	var warnings []string

	for pageNum, page := range doc.Pages {
		r.stepf("Step 1/7: Analyzing layout of page %d/%d...", pageNum+1, len(doc.Pages))
		pageLayout, err := analyzer.Analyze(page)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("layout analysis failed: %w", err)
		}
		if r.verbose {
			r.printer.PrintLayout(pageLayout)
		}
		r.emit(StepLayout, fmt.Sprintf("page %d: %d zones in %d columns", pageNum+1, len(pageLayout.Zones), pageLayout.Columns), pageLayout)

		r.stepf("Step 2/7: Running multi-pass OCR...")
		var mp *types.MultiPassResult
		if len(pageLayout.Zones) == 0 {
			// Zoning found nothing; recognize the whole page and fall back
			// to content-only classification.
			mp, err = engine.RecognizeWholePage(ctx, page)
			if err != nil {
				return nil, nil, nil, fmt.Errorf("whole-page OCR failed: %w", err)
			}
			warnings = append(warnings, fmt.Sprintf("page %d: no layout zones detected, fell back to whole-page OCR", pageNum+1))
			pageSet, pageHeader := sectionsFromText(mp.FullText)
			mergeSectionSets(merged, pageSet)
			if headerPass == nil {
				headerPass = pageHeader
			}
			r.emit(StepOCR, fmt.Sprintf("page %d: whole-page fallback", pageNum+1), nil)
			continue
		}

		mp, err = engine.Run(ctx, page, pageLayout)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("multi-pass OCR failed: %w", err)
		}
		for _, zoneID := range mp.FailedZones() {
			warnings = append(warnings, fmt.Sprintf("page %d: OCR failed for zone %s after retries", pageNum+1, zoneID))
		}
		r.emit(StepOCR, fmt.Sprintf("page %d: recognized %d zones", pageNum+1, len(pageLayout.Zones)), nil)

		r.stepf("Step 3/7: Identifying sections...")
		pageSet := identifier.Identify(pageLayout, mp)
		mergeSectionSets(merged, pageSet)
		if headerPass == nil && mp.Header != nil && !mp.Header.Failed {
			headerPass = mp.Header
		}
		r.emit(StepSections, fmt.Sprintf("page %d: %d sections identified", pageNum+1, len(pageSet.Labels())), nil)
	}
	return merged, headerPass, warnings, nil
}

// finishRun performs layers 4-7, shared by the OCR and native-text paths.
func (r *Runner) finishRun(set *types.SectionSet, headerPass *types.PassResult, schema *mapping.TemplateSchema, warnings []string) *types.PipelineResult {
	headerText := ""
	if headerPass != nil {
		headerText = headerPass.Text
	}

	r.stepf("Step 4/7: Validating section content...")
	validator := validation.NewValidator(r.cfg.ValidationConfig())
	validated, report := validator.Validate(set, headerText)
	warnings = append(warnings, report.Warnings...)
	if r.verbose {
		r.printer.PrintSectionSet(validated)
	}
	r.emit(StepValidation, fmt.Sprintf("%d blocks relocated, %d warnings", len(report.Moves), len(report.Warnings)), nil)

	r.stepf("Step 5/7: Extracting candidate info...")
	info := header.NewExtractor().Extract(headerPass)
	if r.verbose {
		r.printer.PrintCandidate(info)
	}
	r.emit(StepHeader, fmt.Sprintf("name %q, %d contact fields", info.Name, info.ContactCount()), info)

	r.stepf("Step 6/7: Mapping sections to template...")
	mapped, mapWarnings := mapping.NewMapper().Map(validated, schema)
	warnings = append(warnings, mapWarnings...)
	r.emit(StepMapping, fmt.Sprintf("%d sections mapped, %d overflow blocks", len(mapped.Sections), len(mapped.Overflow)), nil)

	r.stepf("Step 7/7: Post-processing...")
	out := postprocess.NewProcessor().Process(info, mapped.Sections, mapped.Overflow)
	r.emit(StepPostprocess, fmt.Sprintf("overall quality %.2f", out.QualityScores[types.ScoreOverall]), nil)

	var slots map[string]string
	if len(mapped.Slots) > 0 {
		slots = make(map[string]string, len(mapped.Slots))
		for id, content := range mapped.Slots {
			if c := postprocess.CleanText(content); c != "" {
				slots[id] = c
			}
		}
	}

	return &types.PipelineResult{
		CandidateInfo:   out.CandidateInfo,
		Sections:        out.Sections,
		Slots:           slots,
		Overflow:        out.Overflow,
		QualityScores:   out.QualityScores,
		Completeness:    out.Completeness,
		Warnings:        append(warnings, out.Warnings...),
		Recommendations: out.Recommendations,
	}
}

// mergeSectionSets appends src's blocks and overflow onto dst.
func mergeSectionSets(dst, src *types.SectionSet) {
	for _, label := range src.Labels() {
		rec := dst.Record(label)
		for _, block := range src.Records[label].Blocks {
			rec.AddBlock(block)
		}
		if rec.Confidence == 0 {
			rec.Confidence = src.Records[label].Confidence
		}
	}
	dst.Overflow = append(dst.Overflow, src.Overflow...)
}

func (r *Runner) stepf(format string, args ...any) {
	if r.verbose {
		fmt.Printf(format+"\n", args...)
	}
}

// emit calls the progress callback if configured
func (r *Runner) emit(step, message string, content any) {
	if r.progress != nil {
		r.progress(ProgressEvent{
			Step:    step,
			Message: message,
			RunID:   r.runID,
			Content: content,
		})
	}
}
