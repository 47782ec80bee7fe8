package sections

import (
	"context"
	"strconv"
	"strings"

	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
)

type column struct {
	x, w  float64
	align string
}

// columns returns No, Item, Specification, Qty, Unit price and Total.
func columns(g layout.Geometry) [6]column {
	l, r := g.Left(), g.Right()
	return [6]column{
		{l + 3, 22, "L"},
		{l + 28, 148, "L"},
		{l + 180, (r - 210) - (l + 180) - 6, "L"},
		{r - 210, 60, "L"},
		{r - 145, 65, "R"},
		{r - 75, 71, "R"},
	}
}

// Table draws the header row, the first Plan.Displayed items and, when
// items were left out, the notice row. It advances by Plan.Height.
func Table(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	top := rc.Cursor.Position()
	m := layout.DefaultTableMetrics()
	plan := rc.Plan
	cols := columns(g)
	l := rc.Labels

	rc.filled(g.Left(), top, g.ContentWidth(), m.Header, styles.FrameLW, styles.HeaderFill, styles.Black)
	head := styles.Bold(8.5)
	hy := top + (m.Header-head.LineHeight())/2
	for i, title := range []string{l.ColNo, l.ColItem, l.ColSpec, l.ColQty, l.ColUnitPrice, l.ColTotal} {
		c := cols[i]
		rc.fitted(c.x, hy, c.w, title, head, styles.Black, c.align)
	}

	body := styles.Regular(7)
	for i, item := range rc.Doc.Order.Items[:plan.Displayed] {
		y := top + m.Header + float64(i)*m.Row
		rc.rect(g.Left(), y, g.ContentWidth(), m.Row, styles.RowLW, styles.RowRule)

		qty := rc.Format.Quantity(item.Quantity)
		if unit := strings.TrimSpace(item.Unit); unit != "" {
			qty += " " + unit
		}
		cells := [6]string{
			strconv.Itoa(i + 1),
			styles.Or(item.Name, styles.Dash),
			styles.Or(item.Specification, styles.Dash),
			qty,
			rc.Format.Currency(item.UnitPrice),
			rc.Format.Currency(item.Total),
		}
		ty := y + (m.Row-body.LineHeight())/2
		for j, s := range cells {
			c := cols[j]
			rc.fitted(c.x, ty, c.w, s, body, styles.Black, c.align)
		}
	}

	if plan.Truncated() {
		y := top + m.Header + float64(plan.Displayed)*m.Row
		notice := styles.Italic(7)
		rc.text(g.Left()+10, y+(m.Notice-notice.LineHeight())/2, g.ContentWidth()/2, l.MoreItems(plan.Omitted()), notice, styles.Muted, "L")
	}

	rc.Cursor.Advance(plan.Height)
	return nil
}
