package sections

import (
	"context"

	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
)

const (
	recipientBoxWidth  = 240
	recipientBoxHeight = 68
	recipientPad       = 8
	deliveryBoxWidth   = 210
	deliveryBoxHeight  = 32
	counterpartyGap    = 16
	maxRecipientLines  = 4
)

// Counterparty draws the supplier address box and, for the delivery
// variant, the requested delivery date box beside it. The address box grows
// with long addresses.
func Counterparty(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	top := rc.Cursor.Position()
	left := g.Left()
	cp := rc.Doc.Counterparty

	rc.text(left, top, recipientBoxWidth, rc.Labels.Recipient, styles.Bold(10), styles.Black, "L")

	boxTop := top + 16
	inner := float64(recipientBoxWidth - 2*recipientPad)
	x := left + recipientPad
	rc.fitted(x, boxTop+8, inner, styles.Or(cp.Name, rc.Labels.SupplierPlaceholder), styles.Bold(10.5), styles.Black, "L")

	addr := styles.Regular(8.5)
	addr.LineGap = 1
	addrTop := boxTop + 24
	bottom := addrTop + rc.wrap(x, addrTop, inner-4, styles.Or(cp.Address, styles.Dash), addr, styles.Black, maxRecipientLines)

	if cp.Contact != "" {
		y := max(boxTop+49, bottom+2)
		rc.fitted(x, y, inner, rc.Labels.Contact+": "+cp.Contact, styles.Regular(8.5), styles.Black, "L")
		bottom = y + addr.LineHeight()
	}

	boxBottom := max(boxTop+recipientBoxHeight, bottom+5)
	rc.rect(left, boxTop, recipientBoxWidth, boxBottom-boxTop, styles.BoxLW, styles.Rule)

	if rc.Variants.Counterparty == layout.CounterpartyWithDelivery {
		dx := g.Right() - deliveryBoxWidth
		rc.rect(dx, boxTop, deliveryBoxWidth, deliveryBoxHeight, styles.BoxLW, styles.Rule)
		rc.text(dx+recipientPad, boxTop+5, deliveryBoxWidth-2*recipientPad, rc.Labels.DeliveryTarget, styles.Regular(8), styles.Black, "L")
		rc.text(dx+recipientPad, boxTop+17, deliveryBoxWidth-2*recipientPad, rc.Format.LongDate(cp.DeliveryDate), styles.Bold(10), styles.Black, "L")
	}

	rc.Cursor.AdvanceTo(boxBottom + counterpartyGap)
	return nil
}
