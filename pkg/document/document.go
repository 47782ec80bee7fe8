// Package document defines the purchase order inputs consumed by the
// layout engine.
//
// All types are plain records: the engine reads them and never mutates
// them. They carry json, yaml and toml tags so the same document can be
// loaded from any of the formats accepted by [github.com/matzehuels/podoc/pkg/io].
//
// No schema validation happens here. Missing optional text degrades to a
// placeholder at render time and missing numbers are zero; [Order.Normalized]
// fills the derived amounts the way the printed document expects them.
package document

import (
	"strings"
	"time"
)

// DefaultTaxRate is the VAT (PPN) percentage printed when an order carries
// a tax amount but no explicit rate.
const DefaultTaxRate = 11.0

// Document bundles everything needed to print one purchase order.
type Document struct {
	Order        Order        `json:"order" yaml:"order" toml:"order"`
	Issuer       Issuer       `json:"issuer" yaml:"issuer" toml:"issuer"`
	Counterparty Counterparty `json:"counterparty" yaml:"counterparty" toml:"counterparty"`
	PrintedAt    time.Time    `json:"printed_at,omitempty" yaml:"printed_at,omitempty" toml:"printed_at,omitempty"`
}

// Order is the purchase order itself.
type Order struct {
	Number     string     `json:"number" yaml:"number" toml:"number" bson:"po_number"`
	CreatedAt  time.Time  `json:"created_at,omitempty" yaml:"created_at,omitempty" toml:"created_at,omitempty" bson:"created_at"`
	ApprovedAt time.Time  `json:"approved_at,omitempty" yaml:"approved_at,omitempty" toml:"approved_at,omitempty" bson:"approved_date"`
	ProjectID  string     `json:"project_id,omitempty" yaml:"project_id,omitempty" toml:"project_id,omitempty" bson:"project_id"`
	Items      []LineItem `json:"items" yaml:"items" toml:"items" bson:"items"`
	Subtotal   float64    `json:"subtotal,omitempty" yaml:"subtotal,omitempty" toml:"subtotal,omitempty" bson:"total_amount"`
	Tax        float64    `json:"tax,omitempty" yaml:"tax,omitempty" toml:"tax,omitempty" bson:"tax"`
	TaxRate    float64    `json:"tax_rate,omitempty" yaml:"tax_rate,omitempty" toml:"tax_rate,omitempty" bson:"tax_rate"`
	Total      float64    `json:"total,omitempty" yaml:"total,omitempty" toml:"total,omitempty" bson:"grand_total"`
}

// LineItem is one row of the items table. The engine trusts
// Total = Quantity * UnitPrice and never recomputes it.
type LineItem struct {
	Name          string  `json:"name" yaml:"name" toml:"name" bson:"item_name"`
	Specification string  `json:"specification,omitempty" yaml:"specification,omitempty" toml:"specification,omitempty" bson:"specification"`
	Quantity      float64 `json:"quantity" yaml:"quantity" toml:"quantity" bson:"quantity"`
	Unit          string  `json:"unit,omitempty" yaml:"unit,omitempty" toml:"unit,omitempty" bson:"unit"`
	UnitPrice     float64 `json:"unit_price" yaml:"unit_price" toml:"unit_price" bson:"unit_price"`
	Total         float64 `json:"total" yaml:"total" toml:"total" bson:"total_price"`
}

// Issuer is the company placing the order.
type Issuer struct {
	Name    string  `json:"name" yaml:"name" toml:"name" bson:"name"`
	Address string  `json:"address,omitempty" yaml:"address,omitempty" toml:"address,omitempty" bson:"address"`
	City    string  `json:"city,omitempty" yaml:"city,omitempty" toml:"city,omitempty" bson:"city"`
	Phone   string  `json:"phone,omitempty" yaml:"phone,omitempty" toml:"phone,omitempty" bson:"phone"`
	Email   string  `json:"email,omitempty" yaml:"email,omitempty" toml:"email,omitempty" bson:"email"`
	TaxID   string  `json:"tax_id,omitempty" yaml:"tax_id,omitempty" toml:"tax_id,omitempty" bson:"npwp"`
	Logo    string  `json:"logo,omitempty" yaml:"logo,omitempty" toml:"logo,omitempty" bson:"logo"`
	Signer  *Signer `json:"signer,omitempty" yaml:"signer,omitempty" toml:"signer,omitempty" bson:"director,omitempty"`
}

// Signer is the signing authority printed under the digital signature.
type Signer struct {
	Name  string `json:"name" yaml:"name" toml:"name" bson:"name"`
	Title string `json:"title,omitempty" yaml:"title,omitempty" toml:"title,omitempty" bson:"position"`
}

// Counterparty is the supplier receiving the order.
type Counterparty struct {
	Name         string    `json:"name" yaml:"name" toml:"name" bson:"name"`
	Address      string    `json:"address,omitempty" yaml:"address,omitempty" toml:"address,omitempty" bson:"address"`
	Contact      string    `json:"contact,omitempty" yaml:"contact,omitempty" toml:"contact,omitempty" bson:"contact"`
	DeliveryDate time.Time `json:"delivery_date,omitempty" yaml:"delivery_date,omitempty" toml:"delivery_date,omitempty" bson:"delivery_date"`
}

// HasTax reports whether the order prints a tax line.
func (o Order) HasTax() bool { return o.Tax > 0 }

// IssuedAt returns the date printed as the order creation date: the
// approval date when present, otherwise the creation timestamp.
func (o Order) IssuedAt() time.Time {
	if !o.ApprovedAt.IsZero() {
		return o.ApprovedAt
	}
	return o.CreatedAt
}

// Normalized returns a copy of o with derived amounts filled in:
// the tax rate defaults to [DefaultTaxRate] when a tax amount is present,
// and the total defaults to subtotal plus tax.
func (o Order) Normalized() Order {
	if o.HasTax() && o.TaxRate <= 0 {
		o.TaxRate = DefaultTaxRate
	}
	if o.Total == 0 {
		o.Total = o.Subtotal + o.Tax
	}
	return o
}

// SignerIdentity returns the trimmed signer name and title, and whether a
// signer is present at all. A signer with a blank name counts as absent.
func (i Issuer) SignerIdentity() (name, title string, ok bool) {
	if i.Signer == nil {
		return "", "", false
	}
	name = strings.TrimSpace(i.Signer.Name)
	if name == "" {
		return "", "", false
	}
	return name, strings.TrimSpace(i.Signer.Title), true
}

// HasDelivery reports whether a requested delivery date is set.
func (c Counterparty) HasDelivery() bool { return !c.DeliveryDate.IsZero() }
