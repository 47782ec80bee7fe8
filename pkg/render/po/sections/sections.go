package sections

import "context"

// Section draws one block of the page.
type Section struct {
	Name   string
	Render func(ctx context.Context, rc *Context) error
}

// Section names, as they appear in placements and warnings.
const (
	NameLetterhead   = "letterhead"
	NameHeader       = "header"
	NameCounterparty = "counterparty"
	NameTable        = "table"
	NameTotals       = "totals"
	NameTerms        = "terms"
	NameSignature    = "signature"
	NameFooter       = "footer"
)

// Leading are the sections above the items table.
func Leading() []Section {
	return []Section{
		{NameLetterhead, Letterhead},
		{NameHeader, Header},
		{NameCounterparty, Counterparty},
	}
}

// Trailing are the sections below the items table, all covered by the
// trailing budget.
func Trailing() []Section {
	return []Section{
		{NameTotals, Totals},
		{NameTerms, Terms},
		{NameSignature, Signature},
		{NameFooter, Footer},
	}
}
