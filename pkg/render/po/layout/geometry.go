package layout

import "math"

// Geometry describes a fixed page size. All values are in PDF points
// (1/72 inch) with the origin at the top-left corner and y growing
// downwards, matching the fpdf coordinate system.
type Geometry struct {
	Width    float64
	Height   float64
	Margin   float64
	Baseline float64 // vertical grid unit section boundaries snap to
}

// SectionGap is the vertical space left between stacked sections.
const SectionGap = 10

// A4 returns the portrait A4 page used for purchase orders.
func A4() Geometry {
	return Geometry{
		Width:    595.28,
		Height:   841.89,
		Margin:   40,
		Baseline: 2,
	}
}

// ContentWidth returns the printable width between the side margins.
func (g Geometry) ContentWidth() float64 { return g.Width - 2*g.Margin }

// ContentHeight returns the printable height between the top and bottom margins.
func (g Geometry) ContentHeight() float64 { return g.Height - 2*g.Margin }

// Left returns the x coordinate of the left margin.
func (g Geometry) Left() float64 { return g.Margin }

// Right returns the x coordinate of the right margin.
func (g Geometry) Right() float64 { return g.Width - g.Margin }

// SafeTop returns the first printable y coordinate.
func (g Geometry) SafeTop() float64 { return g.Margin }

// SafeBottom returns the last printable y coordinate.
func (g Geometry) SafeBottom() float64 { return g.Height - g.Margin }

// Snap rounds y to the nearest baseline multiple.
func (g Geometry) Snap(y float64) float64 {
	if g.Baseline <= 0 {
		return y
	}
	return math.Round(y/g.Baseline) * g.Baseline
}

// CeilGrid rounds y up to the next baseline multiple.
func (g Geometry) CeilGrid(y float64) float64 {
	if g.Baseline <= 0 {
		return y
	}
	return math.Ceil(y/g.Baseline-eps) * g.Baseline
}

// FloorGrid rounds y down to the previous baseline multiple.
func (g Geometry) FloorGrid(y float64) float64 {
	if g.Baseline <= 0 {
		return y
	}
	return math.Floor(y/g.Baseline+eps) * g.Baseline
}

const eps = 1e-9

// Box is an axis-aligned rectangle on the page, used to report where a
// section landed.
type Box struct {
	Left, Right float64
	Top, Bottom float64
}

// Width returns the horizontal span of the box.
func (b Box) Width() float64 { return b.Right - b.Left }

// Height returns the vertical span of the box.
func (b Box) Height() float64 { return b.Bottom - b.Top }

// Contains reports whether o lies entirely inside b.
func (b Box) Contains(o Box) bool {
	return o.Left >= b.Left-eps && o.Right <= b.Right+eps &&
		o.Top >= b.Top-eps && o.Bottom <= b.Bottom+eps
}

// Printable returns the box between the page margins.
func (g Geometry) Printable() Box {
	return Box{Left: g.Left(), Right: g.Right(), Top: g.SafeTop(), Bottom: g.SafeBottom()}
}
