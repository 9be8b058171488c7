// Package layout provides visual layout analysis for resume page images:
// header-band detection, column splitting, text-line and block grouping,
// heading candidates and reading order.
package layout

import (
	"fmt"
	"image"

	"github.com/jonathan/resume-formatter/internal/imaging"
	"github.com/jonathan/resume-formatter/internal/types"
)

// Config holds the layout heuristics. Values mirror the tuning the pipeline
// was calibrated with; override through the top-level configuration.
type Config struct {
	// HeaderBandRatio is the fraction of page height treated as the header zone.
	HeaderBandRatio float64
	// ColumnGapPx is the minimum whitespace gutter width that splits columns.
	ColumnGapPx int
	// HeadingSizeRatio is how much taller than the median line a heading must be.
	HeadingSizeRatio float64
	// BoldnessRatio is the ink-density multiple over the page average that
	// marks a line as bold.
	BoldnessRatio float64
	// MinZoneArea is the area in pixels below which a zone merges into its
	// nearest neighbor instead of being kept as noise.
	MinZoneArea int
}

// DefaultConfig returns the calibrated layout heuristics.
func DefaultConfig() Config {
	return Config{
		HeaderBandRatio:  0.15,
		ColumnGapPx:      50,
		HeadingSizeRatio: 1.3,
		BoldnessRatio:    1.2,
		MinZoneArea:      64,
	}
}

// Analyzer segments a page image into ordered layout zones.
type Analyzer struct {
	cfg Config
}

// NewAnalyzer returns an analyzer with the given heuristics.
func NewAnalyzer(cfg Config) *Analyzer {
	return &Analyzer{cfg: cfg}
}

// textLine is one detected line of text within a column.
type textLine struct {
	bounds  image.Rectangle
	column  int
	density float64
	heading bool
}

// Analyze segments the page into zones with reading order. A page with no
// text-bearing region yields an empty zone list; the caller falls back to
// whole-page OCR.
func (a *Analyzer) Analyze(img image.Image) (*types.Layout, error) {
	if img == nil {
		return nil, fmt.Errorf("layout: nil page image")
	}
	bounds := img.Bounds()
	if bounds.Empty() {
		return nil, fmt.Errorf("layout: empty page image")
	}

	gray := imaging.ToGray(img)
	bin := imaging.Binarize(gray, imaging.OtsuThreshold(gray))

	width := bounds.Dx()
	height := bounds.Dy()
	result := &types.Layout{PageWidth: width, PageHeight: height, Columns: 1}

	if !hasInk(bin) {
		return result, nil
	}

	headerEnd := int(float64(height) * a.cfg.HeaderBandRatio)

	// Column detection runs below the header band: a full-width name line
	// must not hide a body gutter.
	divider, twoColumns := a.detectGutter(bin, headerEnd)
	columnRects := []image.Rectangle{image.Rect(0, headerEnd, width, height)}
	if twoColumns {
		result.Columns = 2
		result.Divider = divider
		columnRects = []image.Rectangle{
			image.Rect(0, headerEnd, divider, height),
			image.Rect(divider, headerEnd, width, height),
		}
	}

	var zones []types.Zone
	if headerZone, ok := a.detectHeaderZone(bin, headerEnd); ok {
		zones = append(zones, headerZone)
	}

	for col, colRect := range columnRects {
		lines := detectLines(bin, colRect, col)
		a.markHeadings(lines)
		zones = append(zones, a.groupZones(lines, col)...)
	}

	zones = a.mergeSmallZones(zones)
	assignReadingOrder(zones)
	result.Zones = zones
	return result, nil
}

// detectGutter finds the widest interior whitespace run below the header
// band. Falls back to single-column when no run clears ColumnGapPx.
func (a *Analyzer) detectGutter(bin *image.Gray, headerEnd int) (int, bool) {
	b := bin.Bounds()
	width := b.Dx()
	colInk := make([]int, width)
	for y := b.Min.Y + headerEnd; y < b.Max.Y; y++ {
		for x := 0; x < width; x++ {
			if bin.GrayAt(b.Min.X+x, y).Y == 0 {
				colInk[x]++
			}
		}
	}

	bestStart, bestWidth := 0, 0
	runStart := -1
	for x := 0; x <= width; x++ {
		blank := x < width && colInk[x] == 0
		if blank && runStart < 0 {
			runStart = x
		}
		if !blank && runStart >= 0 {
			runWidth := x - runStart
			// Ignore page margins: a gutter must have ink on both sides.
			interior := runStart > 0 && x < width
			if interior && runWidth > bestWidth {
				bestStart, bestWidth = runStart, runWidth
			}
			runStart = -1
		}
	}

	if bestWidth > a.cfg.ColumnGapPx {
		return bestStart + bestWidth/2, true
	}
	return 0, false
}

// detectHeaderZone returns a header zone covering the ink extent of the top
// band, when the band contains any text.
func (a *Analyzer) detectHeaderZone(bin *image.Gray, headerEnd int) (types.Zone, bool) {
	b := bin.Bounds()
	band := image.Rect(b.Min.X, b.Min.Y, b.Max.X, b.Min.Y+headerEnd)
	extent, ok := inkExtent(bin, band)
	if !ok {
		return types.Zone{}, false
	}
	return types.Zone{
		Bounds: rectFromImage(extent.Sub(b.Min)),
		Kind:   types.ZoneKindHeader,
	}, true
}

// detectLines splits a column into horizontal text lines: contiguous runs of
// ink-bearing rows, with runs separated by fewer than two blank rows joined.
func detectLines(bin *image.Gray, colRect image.Rectangle, column int) []*textLine {
	b := bin.Bounds()
	colRect = colRect.Add(b.Min).Intersect(b)

	rowInk := make([]int, colRect.Dy())
	for y := colRect.Min.Y; y < colRect.Max.Y; y++ {
		for x := colRect.Min.X; x < colRect.Max.X; x++ {
			if bin.GrayAt(x, y).Y == 0 {
				rowInk[y-colRect.Min.Y]++
			}
		}
	}

	var lines []*textLine
	runStart, blanks := -1, 0
	flush := func(end int) {
		if runStart < 0 {
			return
		}
		lineRect := image.Rect(colRect.Min.X, colRect.Min.Y+runStart, colRect.Max.X, colRect.Min.Y+end)
		if extent, ok := inkExtent(bin, lineRect); ok {
			lines = append(lines, &textLine{
				bounds:  extent.Sub(b.Min),
				column:  column,
				density: inkDensity(bin, extent),
			})
		}
		runStart = -1
	}
	for i := 0; i <= len(rowInk); i++ {
		inked := i < len(rowInk) && rowInk[i] > 0
		switch {
		case inked && runStart < 0:
			runStart = i
			blanks = 0
		case inked:
			blanks = 0
		case runStart >= 0:
			blanks++
			if blanks >= 2 || i == len(rowInk) {
				flush(i - blanks + 1)
			}
		}
	}
	flush(len(rowInk))
	return lines
}

// markHeadings flags lines that look like section headers: significantly
// taller than the column's median line, or bolder than typical text while
// sitting isolated between block gaps.
func (a *Analyzer) markHeadings(lines []*textLine) {
	if len(lines) < 2 {
		return
	}
	median := medianLineHeight(lines)
	if median == 0 {
		return
	}
	typical := medianLineDensity(lines)
	blockGap := blockGapFor(median)
	for i, line := range lines {
		height := line.bounds.Dy()
		if float64(height) > float64(median)*a.cfg.HeadingSizeRatio {
			line.heading = true
			continue
		}
		if typical > 0 && line.density/typical > a.cfg.BoldnessRatio &&
			isolated(lines, i, blockGap) {
			line.heading = true
		}
	}
}

// groupZones turns a column's lines into zones: heading lines stand alone,
// consecutive body lines within a block gap merge into section blocks.
func (a *Analyzer) groupZones(lines []*textLine, column int) []types.Zone {
	if len(lines) == 0 {
		return nil
	}
	blockGap := blockGapFor(medianLineHeight(lines))

	var zones []types.Zone
	var current image.Rectangle
	open := false
	flush := func() {
		if open {
			zones = append(zones, types.Zone{
				Bounds: rectFromImage(current),
				Kind:   types.ZoneKindSectionBlock,
				Column: column,
			})
			open = false
		}
	}

	for i, line := range lines {
		if line.heading {
			flush()
			zones = append(zones, types.Zone{
				Bounds: rectFromImage(line.bounds),
				Kind:   types.ZoneKindHeading,
				Column: column,
			})
			continue
		}
		if open && i > 0 && line.bounds.Min.Y-lines[i-1].bounds.Max.Y <= blockGap && !lines[i-1].heading {
			current = current.Union(line.bounds)
			continue
		}
		flush()
		current = line.bounds
		open = true
	}
	flush()
	return zones
}

// mergeSmallZones folds zones under MinZoneArea into their nearest vertical
// neighbor in the same column rather than keeping them as noise.
func (a *Analyzer) mergeSmallZones(zones []types.Zone) []types.Zone {
	var out []types.Zone
	for _, z := range zones {
		if z.Kind == types.ZoneKindSectionBlock && z.Bounds.Area() < a.cfg.MinZoneArea {
			if idx := nearestNeighbor(out, z); idx >= 0 {
				merged := unionRect(out[idx].Bounds, z.Bounds)
				out[idx].Bounds = merged
				continue
			}
		}
		out = append(out, z)
	}
	return out
}

// assignReadingOrder ranks zones: header first, then left column
// top-to-bottom, then right column. Zone IDs follow the rank.
func assignReadingOrder(zones []types.Zone) {
	order := make([]int, 0, len(zones))
	for i, z := range zones {
		if z.Kind == types.ZoneKindHeader {
			order = append(order, i)
		}
	}
	for col := 0; col <= maxColumn(zones); col++ {
		idxs := make([]int, 0)
		for i, z := range zones {
			if z.Kind != types.ZoneKindHeader && z.Column == col {
				idxs = append(idxs, i)
			}
		}
		// Insertion sort by top edge; zone counts are small.
		for i := 1; i < len(idxs); i++ {
			for j := i; j > 0 && zones[idxs[j]].Bounds.Y < zones[idxs[j-1]].Bounds.Y; j-- {
				idxs[j], idxs[j-1] = idxs[j-1], idxs[j]
			}
		}
		order = append(order, idxs...)
	}
	for rank, i := range order {
		zones[i].ReadingRank = rank
		zones[i].ID = fmt.Sprintf("z%d", rank+1)
	}
}

func blockGapFor(medianHeight int) int {
	gap := medianHeight * 3 / 2
	if gap < 8 {
		gap = 8
	}
	return gap
}

func isolated(lines []*textLine, i, blockGap int) bool {
	above := i == 0 || lines[i].bounds.Min.Y-lines[i-1].bounds.Max.Y > blockGap
	below := i == len(lines)-1 || lines[i+1].bounds.Min.Y-lines[i].bounds.Max.Y > blockGap
	return above && below
}

func medianLineDensity(lines []*textLine) float64 {
	densities := make([]float64, 0, len(lines))
	for _, l := range lines {
		densities = append(densities, l.density)
	}
	if len(densities) == 0 {
		return 0
	}
	for i := 1; i < len(densities); i++ {
		for j := i; j > 0 && densities[j] < densities[j-1]; j-- {
			densities[j], densities[j-1] = densities[j-1], densities[j]
		}
	}
	return densities[len(densities)/2]
}

func medianLineHeight(lines []*textLine) int {
	heights := make([]int, 0, len(lines))
	for _, l := range lines {
		if h := l.bounds.Dy(); h > 0 {
			heights = append(heights, h)
		}
	}
	if len(heights) == 0 {
		return 0
	}
	for i := 1; i < len(heights); i++ {
		for j := i; j > 0 && heights[j] < heights[j-1]; j-- {
			heights[j], heights[j-1] = heights[j-1], heights[j]
		}
	}
	return heights[len(heights)/2]
}

func nearestNeighbor(zones []types.Zone, z types.Zone) int {
	best, bestDist := -1, 0
	for i, cand := range zones {
		if cand.Kind != types.ZoneKindSectionBlock || cand.Column != z.Column {
			continue
		}
		dist := z.Bounds.Y - (cand.Bounds.Y + cand.Bounds.Height)
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func maxColumn(zones []types.Zone) int {
	max := 0
	for _, z := range zones {
		if z.Column > max {
			max = z.Column
		}
	}
	return max
}

func hasInk(bin *image.Gray) bool {
	b := bin.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if bin.GrayAt(x, y).Y == 0 {
				return true
			}
		}
	}
	return false
}

// inkExtent returns the bounding box of dark pixels within rect.
func inkExtent(bin *image.Gray, rect image.Rectangle) (image.Rectangle, bool) {
	rect = rect.Intersect(bin.Bounds())
	minX, minY := rect.Max.X, rect.Max.Y
	maxX, maxY := rect.Min.X-1, rect.Min.Y-1
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if bin.GrayAt(x, y).Y == 0 {
				if x < minX {
					minX = x
				}
				if x > maxX {
					maxX = x
				}
				if y < minY {
					minY = y
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}
	if maxX < minX {
		return image.Rectangle{}, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func inkDensity(bin *image.Gray, rect image.Rectangle) float64 {
	rect = rect.Intersect(bin.Bounds())
	if rect.Empty() {
		return 0
	}
	dark := 0
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		for x := rect.Min.X; x < rect.Max.X; x++ {
			if bin.GrayAt(x, y).Y == 0 {
				dark++
			}
		}
	}
	return float64(dark) / float64(rect.Dx()*rect.Dy())
}

func rectFromImage(r image.Rectangle) types.Rect {
	return types.Rect{X: r.Min.X, Y: r.Min.Y, Width: r.Dx(), Height: r.Dy()}
}

func unionRect(a, b types.Rect) types.Rect {
	ra := image.Rect(a.X, a.Y, a.X+a.Width, a.Y+a.Height)
	rb := image.Rect(b.X, b.Y, b.X+b.Width, b.Y+b.Height)
	return rectFromImage(ra.Union(rb))
}
