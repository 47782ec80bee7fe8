package styles

import (
	"strings"
	"testing"

	"github.com/matzehuels/podoc/pkg/format"
	"github.com/matzehuels/podoc/pkg/render/po/layout"
)

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want Color
	}{
		{"#0066CC", Color{0, 102, 204}},
		{"E8E8E8", Color{232, 232, 232}},
		{"#999", Color{153, 153, 153}},
		{"#zzzzzz", Color{}},
		{"", Color{}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Hex(tt.in); got != tt.want {
				t.Errorf("Hex(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	id := For(format.Indonesian)
	en := For(format.English)

	if got := id.MoreItems(41); got != "... dan 41 item lainnya" {
		t.Errorf("id MoreItems = %q", got)
	}
	if got := en.MoreItems(3); got != "... and 3 more items" {
		t.Errorf("en MoreItems = %q", got)
	}
	if got := id.TaxLine("11"); got != "PPN (11%):" {
		t.Errorf("id TaxLine = %q", got)
	}
	if len(id.Terms) != 4 || len(en.Terms) != 4 {
		t.Errorf("terms: id=%d en=%d", len(id.Terms), len(en.Terms))
	}

	id.Terms[0] = "changed"
	if For(format.Indonesian).Terms[0] == "changed" {
		t.Error("For() must return an independent copy of the terms")
	}
}

func TestFitSize(t *testing.T) {
	m := layout.NewFPDFMeasurer()
	name := "Prof. Dr. Ir. Raden Mas Bambang Soedibyo Hadiwijoyo, M.Sc., Ph.D."

	f := FitSize(m, name, Bold(8.5), 188, 6.5)
	if f.Size > 8.5 || f.Size < 6.5 {
		t.Fatalf("size %v out of range", f.Size)
	}
	if f.Size > 6.5 && m.StringWidth(name, f) > 188 {
		t.Errorf("size %v still too wide", f.Size)
	}

	short := FitSize(m, "Budi", Bold(8.5), 188, 6.5)
	if short.Size != 8.5 {
		t.Errorf("short name shrunk to %v", short.Size)
	}
}

func TestTruncate(t *testing.T) {
	m := layout.NewFPDFMeasurer()
	font := Regular(7)

	if got := Truncate(m, "Semen", font, 100); got != "Semen" {
		t.Errorf("short text changed to %q", got)
	}

	long := strings.Repeat("Besi beton ulir ", 10)
	got := Truncate(m, long, font, 100)
	if !strings.HasSuffix(got, "..") {
		t.Errorf("Truncate() = %q, want ellipsis", got)
	}
	if w := m.StringWidth(got, font); w > 100 {
		t.Errorf("truncated width %v > 100", w)
	}

	if got := Truncate(m, "WWWW", font, 1); got != "W.." {
		t.Errorf("tiny width = %q, want one rune kept", got)
	}
}

func TestOr(t *testing.T) {
	if Or("  ", Dash) != Dash || Or(" PRJ-1 ", NotAvailable) != "PRJ-1" {
		t.Error("Or() mismatch")
	}
}
