// Package multipass runs the multi-pass OCR engine: three recognition passes
// tuned for headers, section headings and body text, each with its own
// preprocessing recipe, executed concurrently across layout zones with
// per-call timeouts and bounded retry. A zone that keeps failing is isolated;
// it never aborts the page.
package multipass

import (
	"context"
	"fmt"
	"image"
	"sort"
	"strings"
	"time"

	"github.com/avast/retry-go/v4"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-formatter/internal/imaging"
	"github.com/jonathan/resume-formatter/internal/ocr"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Preprocessing recipes per pass. Headers hold short isolated text that
// benefits from aggressive contrast and sharpening; headings are large type
// that binarizes cleanly after upscaling; body text needs gentler contrast
// with adaptive thresholding to survive uneven scans.
const (
	headerContrast  = 2.0
	headerSharpness = 1.5

	headingContrast = 2.5
	headingSharpen  = 1.5
	headingScale    = 2

	bodyContrast       = 1.5
	adaptiveBlockSize  = 11
	adaptiveConstant   = 2
	cropPadding        = 4
	psmSingleBlock     = 6
	psmSingleLine      = 7
	wholePageZoneID    = "page"
)

// Config tunes the multi-pass engine.
type Config struct {
	// Languages lists Tesseract trained-data hints.
	Languages []string
	// DPI is passed through to the OCR engine; zero means unknown.
	DPI int
	// LowConfidenceThreshold flags tokens below it; flagged tokens are kept.
	LowConfidenceThreshold float64
	// CallTimeout bounds a single OCR invocation.
	CallTimeout time.Duration
	// RetryAttempts is the total tries per zone, including the first.
	RetryAttempts uint
	// RetryDelay is the fixed delay between tries.
	RetryDelay time.Duration
	// Concurrency caps zones recognized in parallel.
	Concurrency int
}

// DefaultConfig returns the calibrated engine settings.
func DefaultConfig() Config {
	return Config{
		Languages:              []string{"eng"},
		LowConfidenceThreshold: 0.50,
		CallTimeout:            15 * time.Second,
		RetryAttempts:          3,
		RetryDelay:             250 * time.Millisecond,
		Concurrency:            4,
	}
}

// Engine drives the three OCR passes over a page's layout zones.
type Engine struct {
	provider ocr.Engine
	cfg      Config
}

// NewEngine wraps an OCR provider with the multi-pass schedule.
func NewEngine(provider ocr.Engine, cfg Config) *Engine {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 1
	}
	if cfg.RetryAttempts == 0 {
		cfg.RetryAttempts = 1
	}
	return &Engine{provider: provider, cfg: cfg}
}

// Run recognizes every zone of the layout. The header zone gets the header
// pass, heading zones the section-header pass, and section blocks the body
// pass. Zone failures are recorded in the result, not returned as errors;
// only context cancellation aborts the page.
func (e *Engine) Run(ctx context.Context, page image.Image, layout *types.Layout) (*types.MultiPassResult, error) {
	if page == nil {
		return nil, fmt.Errorf("multipass: nil page image")
	}
	gray := imaging.ToGray(page)

	headings := layout.ZonesOfKind(types.ZoneKindHeading)
	blocks := layout.ZonesOfKind(types.ZoneKindSectionBlock)

	result := &types.MultiPassResult{
		SectionHeaders: make([]types.PassResult, len(headings)),
		Body:           make([]types.PassResult, len(blocks)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.cfg.Concurrency)

	if headerZone, ok := layout.HeaderZone(); ok {
		g.Go(func() error {
			pr := e.recognizeZone(gctx, gray, headerZone, types.PassHeader)
			result.Header = &pr
			return nil
		})
	}
	for i, z := range headings {
		i, z := i, z
		g.Go(func() error {
			result.SectionHeaders[i] = e.recognizeZone(gctx, gray, z, types.PassSectionHeader)
			return nil
		})
	}
	for i, z := range blocks {
		i, z := i, z
		g.Go(func() error {
			result.Body[i] = e.recognizeZone(gctx, gray, z, types.PassBody)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.FullText = assembleFullText(layout, result)
	return result, nil
}

// RecognizeWholePage runs a single body pass over the entire page. The
// pipeline falls back to this when layout analysis finds no zones.
func (e *Engine) RecognizeWholePage(ctx context.Context, page image.Image) (*types.MultiPassResult, error) {
	if page == nil {
		return nil, fmt.Errorf("multipass: nil page image")
	}
	gray := imaging.ToGray(page)
	bounds := gray.Bounds()
	zone := types.Zone{
		ID:   wholePageZoneID,
		Kind: types.ZoneKindSectionBlock,
		Bounds: types.Rect{
			X: bounds.Min.X, Y: bounds.Min.Y,
			Width: bounds.Dx(), Height: bounds.Dy(),
		},
	}
	pr := e.recognizeZone(ctx, gray, zone, types.PassBody)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &types.MultiPassResult{
		Body:     []types.PassResult{pr},
		FullText: pr.Text,
	}, nil
}

// recognizeZone crops, preprocesses and recognizes one zone under the retry
// and timeout policy. A final failure is folded into the PassResult.
func (e *Engine) recognizeZone(ctx context.Context, gray *image.Gray, zone types.Zone, pass types.Pass) types.PassResult {
	rect := image.Rect(zone.Bounds.X, zone.Bounds.Y,
		zone.Bounds.X+zone.Bounds.Width, zone.Bounds.Y+zone.Bounds.Height)
	crop := imaging.Crop(gray, rect, cropPadding)
	offset := rect.Inset(-cropPadding).Intersect(gray.Bounds()).Min

	prepared, scale := e.preprocess(crop, pass)
	id := fmt.Sprintf("%s/%s", zone.ID, pass)
	input := ocr.NewInput(id, prepared,
		ocr.WithLanguages(e.cfg.Languages...),
		ocr.WithDPI(e.cfg.DPI),
		ocr.WithPSM(psmFor(pass)),
	)

	var recognized ocr.Result
	err := retry.Do(
		func() error {
			callCtx, cancel := context.WithTimeout(ctx, e.cfg.CallTimeout)
			defer cancel()
			r, rerr := e.provider.Recognize(callCtx, input)
			if rerr != nil {
				return rerr
			}
			recognized = r
			return nil
		},
		retry.Attempts(e.cfg.RetryAttempts),
		retry.Delay(e.cfg.RetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.Context(ctx),
		retry.LastErrorOnly(true),
	)
	if err != nil {
		return types.PassResult{Pass: pass, ZoneID: zone.ID, Failed: true, Error: err.Error()}
	}

	return types.PassResult{
		Pass:       pass,
		ZoneID:     zone.ID,
		Text:       recognized.Text,
		Tokens:     e.tokensFromWords(recognized.Words, offset, scale),
		Confidence: recognized.Confidence,
	}
}

// preprocess applies the pass-specific recipe and reports the scale factor
// used, so token bounds can be mapped back to page coordinates.
func (e *Engine) preprocess(crop *image.Gray, pass types.Pass) (*image.Gray, int) {
	switch pass {
	case types.PassHeader:
		out := imaging.AdjustContrast(crop, headerContrast)
		out = imaging.Sharpen(out, headerSharpness)
		return imaging.MedianFilter3(out), 1
	case types.PassSectionHeader:
		out := imaging.AdjustContrast(crop, headingContrast)
		out = imaging.Sharpen(out, headingSharpen)
		out = imaging.ScaleUp(out, headingScale)
		return imaging.Binarize(out, imaging.OtsuThreshold(out)), headingScale
	default:
		out := imaging.AdjustContrast(crop, bodyContrast)
		out = imaging.MedianFilter3(out)
		return imaging.AdaptiveThreshold(out, adaptiveBlockSize, adaptiveConstant), 1
	}
}

func psmFor(pass types.Pass) int {
	if pass == types.PassSectionHeader {
		return psmSingleLine
	}
	return psmSingleBlock
}

// tokensFromWords translates recognized words back into page coordinates and
// flags, without dropping, tokens under the confidence threshold.
func (e *Engine) tokensFromWords(words []ocr.Word, offset image.Point, scale int) []types.Token {
	if len(words) == 0 {
		return nil
	}
	tokens := make([]types.Token, 0, len(words))
	for _, w := range words {
		b := w.Bounds
		if scale > 1 {
			b = image.Rect(b.Min.X/scale, b.Min.Y/scale, b.Max.X/scale, b.Max.Y/scale)
		}
		b = b.Add(offset)
		tokens = append(tokens, types.Token{
			Text:       w.Text,
			Confidence: w.Confidence,
			Bounds: types.Rect{
				X: b.Min.X, Y: b.Min.Y,
				Width: b.Dx(), Height: b.Dy(),
			},
			LowConfidence: w.Confidence < e.cfg.LowConfidenceThreshold,
		})
	}
	return tokens
}

// assembleFullText joins successful pass texts in reading order.
func assembleFullText(layout *types.Layout, result *types.MultiPassResult) string {
	byZone := make(map[string]*types.PassResult)
	for i := range result.SectionHeaders {
		byZone[result.SectionHeaders[i].ZoneID] = &result.SectionHeaders[i]
	}
	for i := range result.Body {
		byZone[result.Body[i].ZoneID] = &result.Body[i]
	}

	ordered := append([]types.Zone(nil), layout.Zones...)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].ReadingRank < ordered[j].ReadingRank
	})

	var parts []string
	for _, z := range ordered {
		var pr *types.PassResult
		if z.Kind == types.ZoneKindHeader {
			pr = result.Header
		} else {
			pr = byZone[z.ID]
		}
		if pr == nil || pr.Failed {
			continue
		}
		if text := strings.TrimSpace(pr.Text); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n")
}
