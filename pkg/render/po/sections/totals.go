package sections

import (
	"context"

	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
)

const (
	totalsWidth  = 190
	totalsValueX = 60
	totalsTop    = 6
	totalsLine   = 18
)

// Totals draws the subtotal, the optional tax line and the highlighted grand
// total. It advances by exactly Budget.Totals.
func Totals(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	top := rc.Cursor.Position()
	order := rc.Doc.Order

	labelX := g.Right() - totalsWidth
	valueX := labelX + totalsValueX
	valueW := g.Right() - 4 - valueX
	label, value := styles.Regular(9), styles.Bold(9)

	y := top + totalsTop
	rc.text(labelX, y, totalsValueX, rc.Labels.Subtotal, label, styles.Black, "L")
	rc.fitted(valueX, y, valueW, rc.Format.Currency(order.Subtotal), value, styles.Black, "R")

	if rc.Variants.Totals == layout.TotalsWithTax {
		y += totalsLine
		rc.text(labelX, y, totalsValueX, rc.Labels.TaxLine(rc.Format.Percent(order.TaxRate)), label, styles.Black, "L")
		rc.fitted(valueX, y, valueW, rc.Format.Currency(order.Tax), value, styles.Black, "R")
	}

	y += totalsLine
	rc.filled(labelX-8, y-4, totalsWidth+8, 22, styles.FrameLW, styles.TotalFill, styles.Black)
	rc.text(labelX, y+1, totalsValueX, rc.Labels.GrandTotal, styles.Bold(11), styles.Black, "L")
	total := rc.Format.Currency(order.Total)
	font := styles.FitSize(rc.Measurer, total, styles.Bold(12), valueW, 8)
	rc.fitted(valueX, y+1, valueW, total, font, styles.Black, "R")

	rc.Cursor.AdvanceTo(top + rc.Budget.Totals)
	return nil
}
