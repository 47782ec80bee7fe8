package styles

import (
	"strconv"
	"strings"

	"github.com/matzehuels/podoc/pkg/render/po/layout"
)

// Color is an RGB color in the 0-255 range, as fpdf expects it.
type Color struct{ R, G, B int }

// Hex parses "#RRGGBB" or "#RGB". Malformed input yields black.
func Hex(s string) Color {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return Color{}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return Color{}
	}
	return Color{R: int(v >> 16 & 0xff), G: int(v >> 8 & 0xff), B: int(v & 0xff)}
}

// Palette used across the page.
var (
	Black      = Hex("#000000")
	Ink        = Hex("#333333") // secondary body text
	Muted      = Hex("#666666") // notices and footer
	Faint      = Hex("#999999") // placeholders and print stamp
	Rule       = Hex("#CCCCCC") // box outlines
	RowRule    = Hex("#CFCFCF")
	Frame      = Hex("#D0D0D0") // signer box
	HeaderFill = Hex("#E8E8E8")
	TotalFill  = Hex("#EDEDED")
	Accent     = Hex("#0066CC") // print date and digital signature caption
)

// Line widths.
const (
	SeparatorLW = 1.5
	BoxLW       = 1.0
	RowLW       = 0.4
	FrameLW     = 0.5
)

// Family is the core font every section is set in.
const Family = "Helvetica"

// Regular returns the body font at size.
func Regular(size float64) layout.Font { return layout.Font{Family: Family, Size: size} }

// Bold returns the bold font at size.
func Bold(size float64) layout.Font { return layout.Font{Family: Family, Style: "B", Size: size} }

// Italic returns the oblique font at size.
func Italic(size float64) layout.Font { return layout.Font{Family: Family, Style: "I", Size: size} }
