// Package format provides the locale-aware currency and date formatting used
// on printed purchase orders.
//
// Numbers go through a [golang.org/x/text/message.Printer] so grouping and
// decimal separators follow the locale ("Rp 1.500.000" in Indonesian,
// "Rp 1,500,000" in English). Dates use locale month names and are always
// shown in the configured time zone.
//
// A [Formatter] is immutable after construction and safe for concurrent use.
package format

import (
	"fmt"
	"math"
	"strings"
	"time"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/matzehuels/podoc/pkg/errors"
)

// Locale selects the language of printed labels, month names and number
// separators.
type Locale string

const (
	Indonesian Locale = "id"
	English    Locale = "en"
)

// Defaults used when [Options] leaves a field empty.
const (
	DefaultLocale   = Indonesian
	DefaultCurrency = "IDR"
	DefaultTimeZone = "Asia/Jakarta"
)

// ParseLocale parses a BCP 47 tag ("id", "id-ID", "en-US") into a supported
// [Locale]. Unsupported languages return an INVALID_LOCALE error.
func ParseLocale(s string) (Locale, error) {
	if strings.TrimSpace(s) == "" {
		return DefaultLocale, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidLocale, err, "parse locale %q", s)
	}
	base, _ := tag.Base()
	switch base.String() {
	case "id", "in":
		return Indonesian, nil
	case "en":
		return English, nil
	}
	return "", errors.New(errors.ErrCodeInvalidLocale, "unsupported locale %q (use id or en)", s)
}

func (l Locale) tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Indonesian
}

// Options configures a [Formatter].
type Options struct {
	Locale   Locale
	Currency string // ISO 4217 code, e.g. "IDR"
	TimeZone string // IANA name, e.g. "Asia/Jakarta"
}

// Formatter formats amounts and timestamps for one locale, currency and
// time zone.
type Formatter struct {
	locale  Locale
	printer *message.Printer
	code    string
	symbol  string
	loc     *time.Location
	zone    string
}

var symbols = map[string]string{
	"IDR": "Rp",
	"USD": "$",
	"EUR": "€",
	"SGD": "S$",
	"MYR": "RM",
}

// zoneLabels are the abbreviations printed after timestamps for zones whose
// tz database abbreviation is a bare offset.
var zoneLabels = map[string]string{
	"Asia/Jakarta":   "WIB",
	"Asia/Pontianak": "WIB",
	"Asia/Makassar":  "WITA",
	"Asia/Jayapura":  "WIT",
}

// New creates a Formatter. Empty options fall back to Indonesian, IDR and
// Asia/Jakarta. When the system has no tz database, Asia/Jakarta is served
// by a fixed UTC+7 zone; other unknown zones are an error.
func New(opts Options) (*Formatter, error) {
	if opts.Locale == "" {
		opts.Locale = DefaultLocale
	}
	if opts.Locale != Indonesian && opts.Locale != English {
		return nil, errors.New(errors.ErrCodeInvalidLocale, "unsupported locale %q", opts.Locale)
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.TimeZone == "" {
		opts.TimeZone = DefaultTimeZone
	}

	unit, err := currency.ParseISO(opts.Currency)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "currency %q", opts.Currency)
	}
	code := unit.String()
	symbol, ok := symbols[code]
	if !ok {
		symbol = code
	}

	loc, err := loadLocation(opts.TimeZone)
	if err != nil {
		return nil, err
	}
	zone, ok := zoneLabels[opts.TimeZone]
	if !ok {
		zone = time.Now().In(loc).Format("MST")
	}

	return &Formatter{
		locale:  opts.Locale,
		printer: message.NewPrinter(opts.Locale.tag()),
		code:    code,
		symbol:  symbol,
		loc:     loc,
		zone:    zone,
	}, nil
}

// Default returns the Indonesian/IDR/WIB formatter. It never fails.
func Default() *Formatter {
	f, err := New(Options{})
	if err != nil {
		panic(err)
	}
	return f
}

func loadLocation(name string) (*time.Location, error) {
	loc, err := time.LoadLocation(name)
	if err == nil {
		return loc, nil
	}
	if name == DefaultTimeZone {
		return time.FixedZone("WIB", 7*60*60), nil
	}
	return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "time zone %q", name)
}

// Locale returns the formatter locale.
func (f *Formatter) Locale() Locale { return f.locale }

// CurrencyCode returns the ISO 4217 currency code.
func (f *Formatter) CurrencyCode() string { return f.code }

// Location returns the time zone timestamps are printed in.
func (f *Formatter) Location() *time.Location { return f.loc }

// Zone returns the zone abbreviation printed after timestamps.
func (f *Formatter) Zone() string { return f.zone }

// Currency formats a whole-unit amount with the currency symbol, e.g.
// "Rp 1.500.000". Fractions are rounded half away from zero.
func (f *Formatter) Currency(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		amount = 0
	}
	n := int64(math.Round(amount))
	if n < 0 {
		return "-" + f.symbol + " " + f.printer.Sprintf("%d", -n)
	}
	return f.symbol + " " + f.printer.Sprintf("%d", n)
}

// Quantity formats an item quantity with up to two fraction digits.
func (f *Formatter) Quantity(q float64) string {
	if math.IsNaN(q) || math.IsInf(q, 0) {
		q = 0
	}
	return f.printer.Sprint(number.Decimal(q, number.MaxFractionDigits(2)))
}

// Percent formats a tax rate without trailing zeros ("11", "7,5").
func (f *Formatter) Percent(rate float64) string {
	return f.Quantity(rate)
}

// Date formats t as "02 Jan 2006" with locale month abbreviations.
func (f *Formatter) Date(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	t = t.In(f.loc)
	return fmt.Sprintf("%02d %s %d", t.Day(), f.month(t.Month(), true), t.Year())
}

// LongDate formats t as "02 January 2006" with full locale month names.
func (f *Formatter) LongDate(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	t = t.In(f.loc)
	return fmt.Sprintf("%02d %s %d", t.Day(), f.month(t.Month(), false), t.Year())
}

// DateTime formats t as "02 Jan 2006 15:04".
func (f *Formatter) DateTime(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return f.Date(t) + " " + t.In(f.loc).Format("15:04")
}

// Timestamp formats t as "02 January 2006 15:04 WIB".
func (f *Formatter) Timestamp(t time.Time) string {
	if t.IsZero() {
		return placeholder
	}
	return f.LongDate(t) + " " + t.In(f.loc).Format("15:04") + " " + f.zone
}

// ISODate formats t as "2006-01-02" in the formatter zone.
func (f *Formatter) ISODate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(time.DateOnly)
}

// ISODateTime formats t as "2006-01-02 15:04:05" in the formatter zone.
func (f *Formatter) ISODateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(f.loc).Format(time.DateTime)
}

const placeholder = "-"

var (
	monthsID      = [12]string{"Januari", "Februari", "Maret", "April", "Mei", "Juni", "Juli", "Agustus", "September", "Oktober", "November", "Desember"}
	monthsIDShort = [12]string{"Jan", "Feb", "Mar", "Apr", "Mei", "Jun", "Jul", "Agu", "Sep", "Okt", "Nov", "Des"}
)

func (f *Formatter) month(m time.Month, short bool) string {
	if f.locale == English {
		if short {
			return m.String()[:3]
		}
		return m.String()
	}
	if short {
		return monthsIDShort[m-1]
	}
	return monthsID[m-1]
}
