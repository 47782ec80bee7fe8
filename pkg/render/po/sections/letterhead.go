package sections

import (
	"bytes"
	"context"
	"fmt"

	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/podoc/pkg/asset"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
)

const (
	logoSize        = 45
	logoGap         = 10
	letterheadRow   = 11
	maxAddressLines = 3
	separatorMin    = 52
)

var pngOptions = fpdf.ImageOptions{ImageType: "PNG"}

// Letterhead draws the issuer logo, name, address, contact line and tax ID,
// closed by a full-width rule.
func Letterhead(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	top := rc.Cursor.Position()
	left := g.Left()
	issuer := rc.Doc.Issuer

	ok, err := rc.drawLogo(ctx, left, top)
	if err != nil {
		return err
	}
	if !ok {
		rc.rect(left, top, logoSize, logoSize, styles.BoxLW, styles.Rule)
		small := styles.Regular(6)
		rc.text(left, top+(logoSize-small.LineHeight())/2, logoSize, rc.Labels.Logo, small, styles.Faint, "C")
	}

	x := left + logoSize + logoGap
	w := g.Right() - x
	rc.fitted(x, top, w, styles.Or(issuer.Name, styles.NotAvailable), styles.Bold(13), styles.Black, "L")

	body := styles.Regular(7.5)
	addrH := rc.wrap(x, top+16, min(450, w), styles.Or(issuer.Address, styles.Dash), body, styles.Ink, maxAddressLines)

	y := top + 16 + max(addrH, letterheadRow)
	contact := fmt.Sprintf("%s: %s | %s: %s",
		rc.Labels.Phone, styles.Or(issuer.Phone, styles.Dash),
		rc.Labels.Email, styles.Or(issuer.Email, styles.Dash))
	rc.fitted(x, y, w, contact, body, styles.Ink, "L")

	y += letterheadRow
	rc.fitted(x, y, w, fmt.Sprintf("%s: %s", rc.Labels.TaxID, styles.Or(issuer.TaxID, styles.NotAvailable)), body, styles.Ink, "L")

	sep := max(top+separatorMin, y+body.LineHeight()+4)
	rc.rule(left, sep, g.Right(), styles.SeparatorLW, styles.Black)
	rc.Cursor.AdvanceTo(sep + layout.SectionGap)
	return nil
}

// drawLogo embeds the issuer logo fitted into the logo box. It reports false
// when the placeholder must be drawn instead.
func (rc *Context) drawLogo(ctx context.Context, x, y float64) (bool, error) {
	ref := rc.Doc.Issuer.Logo
	if ref == "" {
		return false, nil
	}
	if rc.Resolver == nil {
		rc.Warn(ctx, NameLetterhead, perrors.ErrCodeAssetMissing, "logo %q: no asset resolver configured", ref)
		return false, nil
	}

	data, err := rc.Resolver.Resolve(ctx, ref)
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		rc.Warn(ctx, NameLetterhead, perrors.ErrCodeAssetMissing, "logo %q: %v", ref, err)
		return false, nil
	}
	im, err := asset.Normalize(data, 0)
	if err != nil {
		rc.Warn(ctx, NameLetterhead, perrors.ErrCodeAssetMissing, "logo %q: %v", ref, err)
		return false, nil
	}
	if !rc.embed("logo", im.PNG) {
		rc.Warn(ctx, NameLetterhead, perrors.ErrCodeAssetMissing, "logo %q: unreadable image", ref)
		return false, nil
	}

	w, h := im.Fit(logoSize, logoSize)
	rc.PDF.ImageOptions("logo", x+(logoSize-w)/2, y+(logoSize-h)/2, w, h, false, pngOptions, 0, "")
	return true, nil
}

// embed registers a PNG under name. A rejected image leaves the document
// usable: the error it set is cleared and false is returned.
func (rc *Context) embed(name string, png []byte) bool {
	if rc.PDF.Err() {
		return false
	}
	rc.PDF.RegisterImageOptionsReader(name, pngOptions, bytes.NewReader(png))
	if rc.PDF.Err() {
		rc.Logger.Debug("image rejected", "name", name, "err", rc.PDF.Error())
		rc.PDF.ClearError()
		return false
	}
	return true
}
