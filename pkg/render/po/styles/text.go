package styles

import (
	"strings"

	"github.com/matzehuels/podoc/pkg/render/po/layout"
)

const (
	shrinkStep = 0.25
	ellipsis   = ".."
)

// FitSize shrinks font in quarter-point steps until text fits maxWidth on a
// single line, stopping at minSize.
func FitSize(m layout.Measurer, text string, font layout.Font, maxWidth, minSize float64) layout.Font {
	for font.Size > minSize && m.StringWidth(text, font) > maxWidth {
		font.Size = max(minSize, font.Size-shrinkStep)
	}
	return font
}

// Truncate shortens text with a trailing ".." until it fits maxWidth.
// At least one rune is always kept.
func Truncate(m layout.Measurer, text string, font layout.Font, maxWidth float64) string {
	if m.StringWidth(text, font) <= maxWidth {
		return text
	}
	runes := []rune(text)
	lo, hi := 1, len(runes)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		cand := strings.TrimRight(string(runes[:mid]), " ") + ellipsis
		if m.StringWidth(cand, font) <= maxWidth {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return strings.TrimRight(string(runes[:lo]), " ") + ellipsis
}

// Or returns s trimmed, or fallback when s is blank.
func Or(s, fallback string) string {
	if s = strings.TrimSpace(s); s == "" {
		return fallback
	}
	return s
}

// Placeholders for missing optional text.
const (
	NotAvailable = "N/A"
	Dash         = "-"
)
