package sections

import (
	"context"
	"strings"

	"github.com/matzehuels/podoc/pkg/render/po/styles"
)

// Footer draws three centred lines anchored at SafeBottom - Footer: issuer
// contact, disclaimer and the print timestamp.
func Footer(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	top := g.SafeBottom() - rc.Budget.Footer
	rc.Cursor.AdvanceTo(top)
	issuer := rc.Doc.Issuer

	contact := strings.Join([]string{
		styles.Or(issuer.Name, styles.Dash),
		styles.Or(issuer.Email, styles.Dash),
		styles.Or(issuer.Phone, styles.Dash),
	}, " | ")
	x, w := g.Left(), g.ContentWidth()
	rc.fitted(x, top, w, contact, styles.Regular(7), styles.Muted, "C")
	rc.fitted(x, top+10, w, rc.Labels.Disclaimer, styles.Regular(7), styles.Muted, "C")
	rc.text(x, top+20, w, rc.Labels.PrintedOn+" "+rc.Format.Timestamp(rc.Doc.PrintedAt), styles.Regular(6), styles.Faint, "C")

	rc.Cursor.AdvanceTo(top + rc.Budget.Footer)
	return nil
}
