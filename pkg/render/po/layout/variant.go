package layout

import "github.com/matzehuels/podoc/pkg/document"

// TotalsVariant selects the totals block template.
type TotalsVariant int

const (
	TotalsPlain   TotalsVariant = iota // subtotal and total
	TotalsWithTax                      // subtotal, tax line and total
)

func (v TotalsVariant) String() string {
	if v == TotalsWithTax {
		return "with-tax"
	}
	return "plain"
}

// SignatureVariant selects the issuer signature column template.
type SignatureVariant int

const (
	SignatureBlank  SignatureVariant = iota // blank line, default title, no scan code
	SignatureSigned                         // signer identity with a scan code attempt
)

func (v SignatureVariant) String() string {
	if v == SignatureSigned {
		return "signed"
	}
	return "blank"
}

// CounterpartyVariant selects the counterparty block template.
type CounterpartyVariant int

const (
	CounterpartyOnly         CounterpartyVariant = iota // address box only
	CounterpartyWithDelivery                            // address box and delivery date box
)

func (v CounterpartyVariant) String() string {
	if v == CounterpartyWithDelivery {
		return "with-delivery"
	}
	return "only"
}

// Variants records which optional blocks a document prints. They are
// resolved once before layout starts and never change during a render.
type Variants struct {
	Totals       TotalsVariant
	Signature    SignatureVariant
	Counterparty CounterpartyVariant
}

// ResolveVariants derives the layout variants from the document inputs.
func ResolveVariants(order document.Order, issuer document.Issuer, cp document.Counterparty) Variants {
	var v Variants
	if order.HasTax() {
		v.Totals = TotalsWithTax
	}
	if _, _, ok := issuer.SignerIdentity(); ok {
		v.Signature = SignatureSigned
	}
	if cp.HasDelivery() {
		v.Counterparty = CounterpartyWithDelivery
	}
	return v
}
