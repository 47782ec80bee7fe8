package format

import (
	"testing"
	"time"

	"github.com/matzehuels/podoc/pkg/errors"
)

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in      string
		want    Locale
		wantErr bool
	}{
		{"", Indonesian, false},
		{"id", Indonesian, false},
		{"id-ID", Indonesian, false},
		{"en", English, false},
		{"en-US", English, false},
		{"fr", "", true},
		{"???", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLocale(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLocale(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidLocale) {
				t.Errorf("ParseLocale(%q) code = %s", tt.in, errors.GetCode(err))
			}
			if got != tt.want {
				t.Errorf("ParseLocale(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"locale", Options{Locale: "fr"}},
		{"currency", Options{Currency: "XXXX"}},
		{"time zone", Options{TimeZone: "Mars/Olympus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCurrency(t *testing.T) {
	id := Default()
	en, err := New(Options{Locale: English})
	if err != nil {
		t.Fatal(err)
	}
	usd, err := New(Options{Locale: English, Currency: "USD"})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		f    *Formatter
		in   float64
		want string
	}{
		{"id zero", id, 0, "Rp 0"},
		{"id grouped", id, 1500000, "Rp 1.500.000"},
		{"id rounds", id, 999.5, "Rp 1.000"},
		{"id negative", id, -2500, "-Rp 2.500"},
		{"en grouped", en, 1500000, "Rp 1,500,000"},
		{"usd symbol", usd, 42, "$ 42"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.f.Currency(tt.in); got != tt.want {
				t.Errorf("Currency(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDates(t *testing.T) {
	f, err := New(Options{TimeZone: "UTC"})
	if err != nil {
		t.Fatal(err)
	}
	en, err := New(Options{Locale: English, TimeZone: "UTC"})
	if err != nil {
		t.Fatal(err)
	}
	ts := time.Date(2025, time.August, 5, 14, 30, 9, 0, time.UTC)

	if got, want := f.Date(ts), "05 Agu 2025"; got != want {
		t.Errorf("Date() = %q, want %q", got, want)
	}
	if got, want := f.LongDate(ts), "05 Agustus 2025"; got != want {
		t.Errorf("LongDate() = %q, want %q", got, want)
	}
	if got, want := f.DateTime(ts), "05 Agu 2025 14:30"; got != want {
		t.Errorf("DateTime() = %q, want %q", got, want)
	}
	if got, want := en.LongDate(ts), "05 August 2025"; got != want {
		t.Errorf("en LongDate() = %q, want %q", got, want)
	}
	if got, want := f.ISODate(ts), "2025-08-05"; got != want {
		t.Errorf("ISODate() = %q, want %q", got, want)
	}
	if got, want := f.ISODateTime(ts), "2025-08-05 14:30:09"; got != want {
		t.Errorf("ISODateTime() = %q, want %q", got, want)
	}
	if got := f.Date(time.Time{}); got != "-" {
		t.Errorf("Date(zero) = %q, want placeholder", got)
	}
	if got := f.ISODate(time.Time{}); got != "" {
		t.Errorf("ISODate(zero) = %q, want empty", got)
	}
}

func TestTimestampUsesZone(t *testing.T) {
	f := Default()
	ts := time.Date(2025, time.January, 12, 3, 30, 0, 0, time.UTC)

	if got, want := f.Timestamp(ts), "12 Januari 2025 10:30 WIB"; got != want {
		t.Errorf("Timestamp() = %q, want %q", got, want)
	}
	if f.Zone() != "WIB" {
		t.Errorf("Zone() = %q, want WIB", f.Zone())
	}
}

func TestQuantity(t *testing.T) {
	f := Default()
	if got := f.Quantity(12); got != "12" {
		t.Errorf("Quantity(12) = %q", got)
	}
	if got := f.Percent(11); got != "11" {
		t.Errorf("Percent(11) = %q", got)
	}
}
