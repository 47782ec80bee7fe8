package sections

import (
	"context"

	"github.com/matzehuels/podoc/pkg/render/po/styles"
)

const (
	headerHeight   = 84
	infoPanelWidth = 200
	infoValueX     = 65
	infoRowTop     = 24
	infoRow        = 11
)

// Header draws the centred title and the reference panel: order number,
// creation date, print date and project.
func Header(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	top := rc.Cursor.Position()
	order := rc.Doc.Order

	rc.text(g.Left(), top, g.ContentWidth(), rc.Labels.Title, styles.Bold(15), styles.Black, "C")

	rows := []struct {
		label, value string
		color        styles.Color
	}{
		{rc.Labels.OrderNo, styles.Or(order.Number, styles.NotAvailable), styles.Black},
		{rc.Labels.CreatedDate, rc.Format.Date(order.IssuedAt()), styles.Black},
		{rc.Labels.PrintDate, rc.Format.DateTime(rc.Doc.PrintedAt), styles.Accent},
		{rc.Labels.Project, styles.Or(order.ProjectID, styles.NotAvailable), styles.Black},
	}

	x := g.Right() - infoPanelWidth
	for i, r := range rows {
		y := top + infoRowTop + float64(i)*infoRow
		rc.text(x, y, infoValueX, r.label, styles.Regular(7.5), styles.Black, "L")
		rc.fitted(x+infoValueX, y, infoPanelWidth-infoValueX, r.value, styles.Bold(8.5), r.color, "L")
	}

	rc.Cursor.AdvanceTo(top + headerHeight)
	return nil
}
