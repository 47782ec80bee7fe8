package layout

import (
	"math"
	"math/rand"
	"testing"
)

func onGrid(y, unit float64) bool {
	r := math.Mod(y, unit)
	return r < 1e-6 || unit-r < 1e-6
}

func TestCursorReset(t *testing.T) {
	g := A4()
	c := NewCursor(g)
	if got := c.Position(); got != 40 {
		t.Fatalf("Position() = %v, want 40", got)
	}

	c.Advance(100)
	c.AdvanceTo(10_000)
	c.Reset()
	if c.Position() != 40 || c.Clipped() {
		t.Errorf("after Reset: pos=%v clipped=%v", c.Position(), c.Clipped())
	}

	odd := Geometry{Width: 100, Height: 100, Margin: 5, Baseline: 4}
	if got := NewCursor(odd).Position(); got != 8 {
		t.Errorf("Reset on odd margin = %v, want 8", got)
	}
}

func TestCursorAdvance(t *testing.T) {
	tests := []struct {
		name        string
		deltas      []float64
		want        float64
		wantClipped bool
	}{
		{"zero", []float64{0}, 40, false},
		{"exact grid", []float64{10}, 50, false},
		{"rounds up", []float64{3.2}, 44, false},
		{"rounds down", []float64{2.9}, 42, false},
		{"negative ignored", []float64{10, -30}, 50, false},
		{"nan ignored", []float64{math.NaN()}, 40, false},
		{"clamps at bottom", []float64{900}, 800, true},
		{"lands just inside", []float64{760}, 800, false},
		{"inf", []float64{math.Inf(1)}, 800, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCursor(A4())
			for _, d := range tt.deltas {
				c.Advance(d)
			}
			if got := c.Position(); got != tt.want {
				t.Errorf("Position() = %v, want %v", got, tt.want)
			}
			if c.Clipped() != tt.wantClipped {
				t.Errorf("Clipped() = %v, want %v", c.Clipped(), tt.wantClipped)
			}
		})
	}
}

func TestCursorAdvanceTo(t *testing.T) {
	c := NewCursor(A4())
	c.AdvanceTo(301)
	if got := c.Position(); got != 302 {
		t.Errorf("AdvanceTo(301) = %v, want 302", got)
	}
	c.AdvanceTo(100)
	if got := c.Position(); got != 302 {
		t.Errorf("AdvanceTo above cursor moved it to %v", got)
	}
	if got := c.Remaining(); math.Abs(got-(801.89-302)) > 1e-9 {
		t.Errorf("Remaining() = %v", got)
	}
}

func TestCursorMonotonicAndSnapped(t *testing.T) {
	g := A4()
	rng := rand.New(rand.NewSource(7))

	for run := range 50 {
		c := NewCursor(g)
		prev := c.Position()
		for range 40 {
			c.Advance(rng.Float64()*80 - 20)
			pos := c.Position()
			if pos < prev {
				t.Fatalf("run %d: cursor moved up from %v to %v", run, prev, pos)
			}
			if pos < g.SafeTop() || pos > g.SafeBottom() {
				t.Fatalf("run %d: cursor %v outside [%v, %v]", run, pos, g.SafeTop(), g.SafeBottom())
			}
			if !onGrid(pos, g.Baseline) {
				t.Fatalf("run %d: cursor %v not on %v grid", run, pos, g.Baseline)
			}
			prev = pos
		}
	}
}
