package layout

import (
	"fmt"
	"strings"
)

// Fixed heights of the trailing block templates.
const (
	TotalsHeight     = 46
	TaxLineHeight    = 18
	TermsTitleHeight = 12
	TermsPadding     = 8
	SignatureHeight  = 124
	FooterHeight     = 30
)

// TermsFont is the font the numbered terms are set in.
var TermsFont = Font{Family: "Helvetica", Size: 7.5}

// Budget is the height reserved for the trailing blocks below the items
// table. It is computed once per render and never revised.
type Budget struct {
	Totals    float64
	Terms     float64
	Signature float64
	Footer    float64
}

// Total returns the sum of all reserved heights.
func (b Budget) Total() float64 {
	return b.Totals + b.Terms + b.Signature + b.Footer
}

// TotalsBlockHeight returns the fixed height of the totals template.
func TotalsBlockHeight(v TotalsVariant) float64 {
	if v == TotalsWithTax {
		return TotalsHeight + TaxLineHeight
	}
	return TotalsHeight
}

// TermsText joins terms into the numbered block printed under the totals.
func TermsText(terms []string) string {
	var b strings.Builder
	for i, t := range terms {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%d. %s", i+1, t)
	}
	return b.String()
}

// TermsBlockHeight returns the grid-aligned height of the terms block:
// title, measured body and bottom padding.
func TermsBlockHeight(m Measurer, terms []string, g Geometry) float64 {
	body := m.MeasureHeight(TermsText(terms), g.ContentWidth(), TermsFont)
	return g.CeilGrid(TermsTitleHeight + body + TermsPadding)
}

// EstimateTrailing computes the trailing block budget without rendering.
func EstimateTrailing(v Variants, m Measurer, terms []string, g Geometry) Budget {
	return Budget{
		Totals:    TotalsBlockHeight(v.Totals),
		Terms:     TermsBlockHeight(m, terms, g),
		Signature: SignatureHeight,
		Footer:    FooterHeight,
	}
}
