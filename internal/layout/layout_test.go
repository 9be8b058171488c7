package layout

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-formatter/internal/types"
)

// page builds a white page image of the given size.
func page(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetGray(x, y, color.Gray{Y: 255})
		}
	}
	return img
}

// ink paints a solid dark rectangle, simulating a run of text.
func ink(img *image.Gray, x0, y0, x1, y1 int) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetGray(x, y, color.Gray{Y: 0})
		}
	}
}

func zonesOfKind(l *types.Layout, kind types.ZoneKind) []types.Zone {
	return l.ZonesOfKind(kind)
}

func TestAnalyzeEmptyPage(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())

	layout, err := a.Analyze(page(800, 1000))
	require.NoError(t, err)

	assert.Empty(t, layout.Zones)
	assert.Equal(t, 1, layout.Columns)
	assert.Equal(t, 800, layout.PageWidth)
	assert.Equal(t, 1000, layout.PageHeight)
}

func TestAnalyzeNilImage(t *testing.T) {
	a := NewAnalyzer(DefaultConfig())
	_, err := a.Analyze(nil)
	assert.Error(t, err)
}

func TestAnalyzeDetectsHeaderBand(t *testing.T) {
	img := page(1000, 600)
	ink(img, 300, 20, 700, 60) // name line in the top 15% band

	a := NewAnalyzer(DefaultConfig())
	layout, err := a.Analyze(img)
	require.NoError(t, err)

	header, ok := layout.HeaderZone()
	require.True(t, ok)
	assert.Equal(t, 300, header.Bounds.X)
	assert.Equal(t, 20, header.Bounds.Y)
	assert.Equal(t, 400, header.Bounds.Width)
	assert.Equal(t, 40, header.Bounds.Height)
	assert.Equal(t, 0, header.ReadingRank)
	assert.Equal(t, "z1", header.ID)
}

func TestAnalyzeSplitsTwoColumns(t *testing.T) {
	img := page(1000, 600)
	ink(img, 300, 20, 700, 60) // header name, spans the gutter
	// Left column: two lines forming one block.
	ink(img, 60, 150, 440, 160)
	ink(img, 60, 164, 440, 174)
	// Right column: one line.
	ink(img, 560, 200, 940, 210)

	a := NewAnalyzer(DefaultConfig())
	layout, err := a.Analyze(img)
	require.NoError(t, err)

	assert.Equal(t, 2, layout.Columns)
	assert.InDelta(t, 500, layout.Divider, 20)

	blocks := zonesOfKind(layout, types.ZoneKindSectionBlock)
	require.Len(t, blocks, 2)
	// Left column reads before right.
	assert.Equal(t, 0, blocks[0].Column)
	assert.Equal(t, 1, blocks[1].Column)
	assert.Less(t, blocks[0].ReadingRank, blocks[1].ReadingRank)

	// Header outranks everything.
	header, ok := layout.HeaderZone()
	require.True(t, ok)
	assert.Equal(t, 0, header.ReadingRank)
}

func TestAnalyzeSingleColumnWhenGapNarrow(t *testing.T) {
	img := page(400, 600)
	// Two text runs separated by only 30px, below the 50px gutter minimum.
	ink(img, 20, 150, 180, 160)
	ink(img, 210, 150, 380, 160)

	a := NewAnalyzer(DefaultConfig())
	layout, err := a.Analyze(img)
	require.NoError(t, err)

	assert.Equal(t, 1, layout.Columns)
}

func TestAnalyzeMarksOversizedLineAsHeading(t *testing.T) {
	img := page(1000, 600)
	ink(img, 100, 200, 400, 220) // 20px tall, well over 1.3x the 10px median
	ink(img, 100, 240, 500, 250)
	ink(img, 100, 254, 500, 264)
	ink(img, 100, 268, 500, 278)

	a := NewAnalyzer(DefaultConfig())
	layout, err := a.Analyze(img)
	require.NoError(t, err)

	headings := zonesOfKind(layout, types.ZoneKindHeading)
	require.Len(t, headings, 1)
	assert.Equal(t, 200, headings[0].Bounds.Y)
	assert.Equal(t, 20, headings[0].Bounds.Height)

	blocks := zonesOfKind(layout, types.ZoneKindSectionBlock)
	require.Len(t, blocks, 1)
	assert.Equal(t, 240, blocks[0].Bounds.Y)
	assert.Equal(t, 38, blocks[0].Bounds.Height)

	// Heading reads before the block it introduces.
	assert.Less(t, headings[0].ReadingRank, blocks[0].ReadingRank)
}

func TestAnalyzeMergesNoiseZoneIntoNeighbor(t *testing.T) {
	img := page(1000, 600)
	ink(img, 100, 150, 400, 160)
	ink(img, 100, 164, 400, 174)
	ink(img, 100, 178, 400, 188)
	ink(img, 100, 300, 106, 306) // speck far below, area under MinZoneArea

	a := NewAnalyzer(DefaultConfig())
	layout, err := a.Analyze(img)
	require.NoError(t, err)

	blocks := zonesOfKind(layout, types.ZoneKindSectionBlock)
	require.Len(t, blocks, 1)
	assert.Equal(t, 150, blocks[0].Bounds.Y)
	assert.Equal(t, 156, blocks[0].Bounds.Height)
}

func TestAnalyzeReadingOrderTopToBottom(t *testing.T) {
	img := page(1000, 600)
	ink(img, 100, 400, 500, 410)
	ink(img, 100, 200, 500, 210)
	ink(img, 100, 300, 500, 310)

	a := NewAnalyzer(DefaultConfig())
	layout, err := a.Analyze(img)
	require.NoError(t, err)

	blocks := zonesOfKind(layout, types.ZoneKindSectionBlock)
	require.Len(t, blocks, 3)
	assert.True(t, blocks[0].Bounds.Y < blocks[1].Bounds.Y)
	assert.True(t, blocks[1].Bounds.Y < blocks[2].Bounds.Y)
	for i, z := range blocks {
		assert.Equal(t, i, z.ReadingRank)
	}
}
