package sections

import (
	"context"

	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
)

// Terms draws the numbered terms and conditions. The body is wrapped by the
// same measurer that sized Budget.Terms, and the section advances by exactly
// that height.
func Terms(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	top := rc.Cursor.Position()

	rc.text(g.Left(), top, g.ContentWidth(), rc.Labels.TermsTitle, styles.Bold(8.5), styles.Black, "L")

	body := rc.Measurer.Lines(layout.TermsText(rc.Labels.Terms), g.ContentWidth(), layout.TermsFont)
	rc.lines(g.Left(), top+layout.TermsTitleHeight, g.ContentWidth(), body, layout.TermsFont, styles.Ink)

	rc.Cursor.AdvanceTo(top + rc.Budget.Terms)
	return nil
}
