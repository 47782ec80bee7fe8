package sections

import (
	"context"
	"fmt"

	"github.com/matzehuels/podoc/pkg/asset"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
	"github.com/matzehuels/podoc/pkg/scancode"
)

const (
	signerBoxWidth = 200
	signerTextMax  = 188
	receiverIndent = 30
	scanCodeSize   = 60
	scanCodeTop    = 24
	blankLineTop   = 50
	blankTitleTop  = 62
)

// Signature draws the receiving party column and the issuer signer box. It
// starts no higher than SafeBottom - Footer - Signature so it sits directly
// above the footer.
//
// With a signer, the signing payload is encoded into a scan code drawn in
// the box with the signer name and title below it. A failed encode is
// recorded as a warning and the name is printed at the blank-line position.
// Without a signer nothing is encoded and a blank line with the default
// title is printed.
func Signature(ctx context.Context, rc *Context) error {
	g := rc.Geometry()
	anchor := g.SafeBottom() - rc.Budget.Footer - rc.Budget.Signature
	top := g.CeilGrid(max(rc.Cursor.Position(), anchor))
	l := rc.Labels

	rx := g.Left() + receiverIndent
	rc.text(rx, top, 150, l.Received, styles.Regular(8), styles.Black, "L")
	rc.text(rx, top+12, 150, l.ReceivedRole, styles.Regular(7), styles.Black, "L")
	rc.text(rx-5, top+blankLineTop, 160, l.BlankSignature, styles.Regular(8), styles.Black, "L")

	bx := g.Right() - signerBoxWidth
	rc.rect(bx, top-4, signerBoxWidth, rc.Budget.Signature-4, styles.FrameLW, styles.Frame)
	rc.text(bx+14, top, signerTextMax, l.Ordered, styles.Regular(8), styles.Black, "L")
	city := styles.Or(rc.Doc.Issuer.City, l.DefaultCity)
	rc.fitted(bx+14, top+12, signerTextMax-14, city+", "+rc.Format.LongDate(rc.Doc.PrintedAt), styles.Regular(7), styles.Black, "L")

	cx := bx + (signerBoxWidth-signerTextMax)/2
	name, title, signed := rc.Doc.Issuer.SignerIdentity()
	if title == "" {
		title = l.DefaultSignerTitle
	}

	switch {
	case !signed || rc.Variants.Signature != layout.SignatureSigned:
		rc.text(cx, top+blankLineTop, signerTextMax, l.BlankSignature, styles.Regular(8), styles.Black, "C")
		rc.text(cx, top+blankTitleTop, signerTextMax, "("+title+")", styles.Regular(7), styles.Black, "C")

	default:
		ok, err := rc.drawScanCode(ctx, bx, top, name, title)
		if err != nil {
			return err
		}
		nameY, titleY := top+blankLineTop, top+blankTitleTop
		if ok {
			nameY = top + scanCodeTop + scanCodeSize + 15
			titleY = nameY + 12
		}
		rc.signerLine(cx, nameY, name, styles.Bold(8.5), 6.5)
		rc.signerLine(cx, titleY, "("+title+")", styles.Regular(7.5), 6)
	}

	rc.Cursor.AdvanceTo(top + rc.Budget.Signature)
	return nil
}

// signerLine shrinks text to fit the signer box, then truncates it if even
// the minimum size is too wide.
func (rc *Context) signerLine(x, y float64, text string, f layout.Font, minSize float64) {
	f = styles.FitSize(rc.Measurer, text, f, signerTextMax, minSize)
	rc.fitted(x, y, signerTextMax, text, f, styles.Black, "C")
}

// drawScanCode encodes the signing payload and draws it centred in the
// signer box. Failures other than cancellation are warnings.
func (rc *Context) drawScanCode(ctx context.Context, bx, top float64, name, title string) (bool, error) {
	fail := func(err error) (bool, error) {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		rc.Warn(ctx, NameSignature, perrors.ErrCodeEnrichmentFailed, "scan code: %v", err)
		return false, nil
	}

	if rc.Encoder == nil {
		return fail(fmt.Errorf("no encoder configured"))
	}
	order := rc.Doc.Order
	payload, err := scancode.Payload{
		OrderNumber:  order.Number,
		Issuer:       rc.Doc.Issuer.Name,
		Signer:       name,
		Position:     title,
		ApprovedDate: rc.Format.ISODate(order.IssuedAt()),
		PrintDate:    rc.Format.ISODateTime(rc.Doc.PrintedAt),
	}.Marshal()
	if err != nil {
		return fail(err)
	}

	png, err := rc.Encoder.Encode(ctx, payload)
	if err != nil {
		return fail(err)
	}
	im, err := asset.Normalize(png, 0)
	if err != nil {
		return fail(err)
	}
	if !rc.embed("scancode", im.PNG) {
		return fail(fmt.Errorf("image rejected by the PDF writer"))
	}

	x := bx + (signerBoxWidth-scanCodeSize)/2
	y := top + scanCodeTop
	rc.PDF.ImageOptions("scancode", x, y, scanCodeSize, scanCodeSize, false, pngOptions, 0, "")
	rc.text(bx, y+scanCodeSize+1, signerBoxWidth, rc.Labels.DigitalSignature, styles.Regular(5.5), styles.Accent, "C")
	rc.ScanCodeEmbedded = true
	return true, nil
}
