package styles

import (
	"fmt"
	"slices"

	"github.com/matzehuels/podoc/pkg/format"
)

// Labels holds every fixed string printed on a purchase order.
type Labels struct {
	Title       string
	OrderNo     string
	CreatedDate string
	PrintDate   string
	Project     string
	Phone       string
	Email       string
	TaxID       string
	Logo        string

	Recipient           string
	SupplierPlaceholder string
	Contact             string
	DeliveryTarget      string

	ColNo        string
	ColItem      string
	ColSpec      string
	ColQty       string
	ColUnitPrice string
	ColTotal     string
	moreItems    string

	Subtotal   string
	taxLine    string
	GrandTotal string

	TermsTitle string
	Terms      []string

	Received           string
	ReceivedRole       string
	Ordered            string
	DefaultCity        string
	DefaultSignerTitle string
	DigitalSignature   string
	BlankSignature     string

	Disclaimer string
	PrintedOn  string

	Subject  string
	Keywords string
}

// MoreItems returns the truncation notice for n omitted items.
func (l Labels) MoreItems(n int) string { return fmt.Sprintf(l.moreItems, n) }

// TaxLine returns the tax label for a formatted rate, e.g. "PPN (11%):".
func (l Labels) TaxLine(rate string) string { return fmt.Sprintf(l.taxLine, rate) }

// For returns the label set of a locale. Unknown locales get Indonesian.
func For(loc format.Locale) Labels {
	l := indonesian
	if loc == format.English {
		l = english
	}
	l.Terms = slices.Clone(l.Terms)
	return l
}

var indonesian = Labels{
	Title:       "PURCHASE ORDER",
	OrderNo:     "No. PO:",
	CreatedDate: "Tgl. Dibuat:",
	PrintDate:   "Tgl. Cetak:",
	Project:     "Proyek:",
	Phone:       "Telp",
	Email:       "Email",
	TaxID:       "NPWP",
	Logo:        "LOGO",

	Recipient:           "Kepada Yth,",
	SupplierPlaceholder: "Nama Supplier",
	Contact:             "Kontak",
	DeliveryTarget:      "Target Pengiriman:",

	ColNo:        "No",
	ColItem:      "Nama Item",
	ColSpec:      "Spesifikasi",
	ColQty:       "Qty",
	ColUnitPrice: "Harga Satuan",
	ColTotal:     "Total",
	moreItems:    "... dan %d item lainnya",

	Subtotal:   "Subtotal:",
	taxLine:    "PPN (%s%%):",
	GrandTotal: "TOTAL:",

	TermsTitle: "Syarat dan Ketentuan:",
	Terms: []string{
		"Pembayaran dilakukan setelah barang/jasa diterima dan sesuai spesifikasi",
		"Supplier wajib menyertakan surat jalan dan faktur asli",
		"Barang tidak sesuai spesifikasi akan dikembalikan",
		"PO ini berlaku sebagai kontrak pemesanan yang mengikat",
	},

	Received:           "Yang Menerima,",
	ReceivedRole:       "(Supplier/Kontraktor)",
	Ordered:            "Yang Memesan,",
	DefaultCity:        "Jakarta",
	DefaultSignerTitle: "Direktur",
	DigitalSignature:   "Tanda Tangan Digital",
	BlankSignature:     "( _____________________ )",

	Disclaimer: "Dokumen ini sah dan resmi tanpa memerlukan tanda tangan basah",
	PrintedOn:  "Dicetak pada:",

	Subject:  "Purchase Order - Pemesanan Material/Jasa Konstruksi",
	Keywords: "purchase order, konstruksi, pemesanan",
}

var english = Labels{
	Title:       "PURCHASE ORDER",
	OrderNo:     "PO No.:",
	CreatedDate: "Created:",
	PrintDate:   "Printed:",
	Project:     "Project:",
	Phone:       "Phone",
	Email:       "Email",
	TaxID:       "Tax ID",
	Logo:        "LOGO",

	Recipient:           "To,",
	SupplierPlaceholder: "Supplier Name",
	Contact:             "Contact",
	DeliveryTarget:      "Delivery Target:",

	ColNo:        "No",
	ColItem:      "Item Name",
	ColSpec:      "Specification",
	ColQty:       "Qty",
	ColUnitPrice: "Unit Price",
	ColTotal:     "Total",
	moreItems:    "... and %d more items",

	Subtotal:   "Subtotal:",
	taxLine:    "VAT (%s%%):",
	GrandTotal: "TOTAL:",

	TermsTitle: "Terms and Conditions:",
	Terms: []string{
		"Payment is made after the goods/services are received and match the specification",
		"The supplier must include the delivery note and the original invoice",
		"Goods not matching the specification will be returned",
		"This PO is a binding purchase contract",
	},

	Received:           "Received by,",
	ReceivedRole:       "(Supplier/Contractor)",
	Ordered:            "Ordered by,",
	DefaultCity:        "Jakarta",
	DefaultSignerTitle: "Director",
	DigitalSignature:   "Digital Signature",
	BlankSignature:     "( _____________________ )",

	Disclaimer: "This document is valid and official without a wet signature",
	PrintedOn:  "Printed on:",

	Subject:  "Purchase Order - Construction Materials/Services",
	Keywords: "purchase order, construction, procurement",
}
