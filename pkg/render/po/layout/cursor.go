package layout

// Cursor is the vertical write position of one render pass.
//
// The position only moves down and always stays on the baseline grid within
// [SafeTop, SafeBottom] of its geometry. Moves that would pass the bottom of
// the printable area are capped instead of failing; [Cursor.Clipped] reports
// whether that ever happened.
//
// A Cursor is not safe for concurrent use. Each render creates its own.
type Cursor struct {
	geo     Geometry
	pos     float64
	top     float64
	bottom  float64
	clipped bool
}

// NewCursor returns a cursor positioned at the top of g's printable area.
func NewCursor(g Geometry) *Cursor {
	c := &Cursor{
		geo:    g,
		top:    g.CeilGrid(g.SafeTop()),
		bottom: g.FloorGrid(g.SafeBottom()),
	}
	c.Reset()
	return c
}

// Reset moves the cursor back to the first grid line at or below SafeTop.
func (c *Cursor) Reset() {
	c.pos = c.top
	c.clipped = false
}

// Position returns the current y coordinate.
func (c *Cursor) Position() float64 { return c.pos }

// Remaining returns the space left between the cursor and SafeBottom.
func (c *Cursor) Remaining() float64 { return c.geo.SafeBottom() - c.pos }

// Clipped reports whether any advance was capped at the bottom bound.
func (c *Cursor) Clipped() bool { return c.clipped }

// Geometry returns the page geometry the cursor is bound to.
func (c *Cursor) Geometry() Geometry { return c.geo }

// Advance moves the cursor down by delta and returns the new position.
// Negative and NaN deltas count as zero.
func (c *Cursor) Advance(delta float64) float64 {
	if !(delta > 0) {
		return c.pos
	}
	return c.AdvanceTo(c.pos + delta)
}

// AdvanceTo moves the cursor to the absolute position y, snapped to the
// nearest grid line. Targets above the cursor leave it unchanged. Targets
// past SafeBottom are capped at the last grid line inside the page.
func (c *Cursor) AdvanceTo(y float64) float64 {
	if !(y > c.pos) {
		return c.pos
	}
	if y > c.geo.SafeBottom() {
		c.clipped = true
	}
	next := max(c.geo.Snap(y), c.pos)
	if next > c.bottom {
		next = c.bottom
	}
	c.pos = next
	return c.pos
}
