// Package types provides type definitions for structured data used throughout the resume-formatter pipeline.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ZoneKind classifies a layout zone produced by the visual layout analyzer.
type ZoneKind string

const (
	// ZoneKindHeader marks the contact/name band at the top of the page.
	ZoneKindHeader ZoneKind = "header"
	// ZoneKindHeading marks a candidate section-header line (large/bold/isolated).
	ZoneKindHeading ZoneKind = "heading"
	// ZoneKindSectionBlock marks a body content block belonging to some section.
	ZoneKindSectionBlock ZoneKind = "section-block"
)

// Rect is a rectangular region in pixel coordinates, origin at the upper-left
// corner of the page image.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// IsEmpty reports whether the rectangle has non-positive dimensions.
func (r Rect) IsEmpty() bool { return r.Width <= 0 || r.Height <= 0 }

// Area returns the rectangle's area in pixels.
func (r Rect) Area() int {
	if r.IsEmpty() {
		return 0
	}
	return r.Width * r.Height
}

// CenterX returns the horizontal center of the rectangle.
func (r Rect) CenterX() int { return r.X + r.Width/2 }

// Zone is a rectangular region of the page with a kind, a column assignment
// and a rank in the reading-order sequence. Zones are produced once by the
// layout analyzer and are read-only afterwards.
type Zone struct {
	ID          string   `json:"id"`
	Bounds      Rect     `json:"bounds"`
	Kind        ZoneKind `json:"kind"`
	Column      int      `json:"column"`
	ReadingRank int      `json:"reading_rank"`
}

// Layout is the full result of visual layout analysis for one page.
type Layout struct {
	PageWidth  int    `json:"page_width"`
	PageHeight int    `json:"page_height"`
	Columns    int    `json:"columns"`
	Divider    int    `json:"divider,omitempty"` // x coordinate splitting a 2-column page
	Zones      []Zone `json:"zones"`
}

// HeaderZone returns the header zone if the analyzer found one.
func (l *Layout) HeaderZone() (Zone, bool) {
	for _, z := range l.Zones {
		if z.Kind == ZoneKindHeader {
			return z, true
		}
	}
	return Zone{}, false
}

// ZonesOfKind returns the zones of the given kind in reading order.
func (l *Layout) ZonesOfKind(kind ZoneKind) []Zone {
	var out []Zone
	for _, z := range l.Zones {
		if z.Kind == kind {
			out = append(out, z)
		}
	}
	return out
}
