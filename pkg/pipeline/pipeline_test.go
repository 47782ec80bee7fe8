package pipeline

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podoc/pkg/cache"
	"github.com/matzehuels/podoc/pkg/document"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/scancode"
)

func testDocument() document.Document {
	items := make([]document.LineItem, 5)
	for i := range items {
		items[i] = document.LineItem{Name: "Besi beton 10mm", Quantity: 20, Unit: "batang", UnitPrice: 85000, Total: 1700000}
	}
	return document.Document{
		Order: document.Order{
			Number:    "PO-2025-0042",
			CreatedAt: time.Date(2025, 7, 30, 9, 0, 0, 0, time.UTC),
			Items:     items,
			Subtotal:  8500000,
		},
		Issuer:       document.Issuer{Name: "PT Bangun Jaya", Signer: &document.Signer{Name: "Rina", Title: "Direktur"}},
		Counterparty: document.Counterparty{Name: "UD Sumber Baja"},
		PrintedAt:    time.Date(2025, 8, 1, 8, 30, 0, 0, time.UTC),
	}
}

var stubEncoder = scancode.EncoderFunc(func(context.Context, []byte) ([]byte, error) {
	return nil, errors.New("no scan codes in tests")
})

func newTestRunner(t *testing.T, c cache.Cache) *Runner {
	t.Helper()
	r := NewRunner(c, nil, log.New(io.Discard))
	r.Encoder = stubEncoder
	return r
}

func newFileCache(t *testing.T) cache.Cache {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	return c
}

func TestValidateAndSetDefaults(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantLocale string
		wantCode   perrors.Code
	}{
		{name: "defaults", wantLocale: "id"},
		{name: "region tag", opts: Options{Locale: "en-US"}, wantLocale: "en"},
		{name: "unsupported locale", opts: Options{Locale: "fr"}, wantCode: perrors.ErrCodeInvalidLocale},
		{
			name:     "bad order number",
			opts:     Options{Document: document.Document{Order: document.Order{Number: "PO 1"}}},
			wantCode: perrors.ErrCodeInvalidDocument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if tt.wantCode != "" {
				if !perrors.Is(err, tt.wantCode) {
					t.Fatalf("error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateAndSetDefaults: %v", err)
			}
			if tt.opts.Locale != tt.wantLocale {
				t.Errorf("Locale = %q, want %q", tt.opts.Locale, tt.wantLocale)
			}
			if tt.opts.Currency != DefaultCurrency || tt.opts.TimeZone != DefaultTimeZone {
				t.Errorf("Currency/TimeZone = %q/%q", tt.opts.Currency, tt.opts.TimeZone)
			}
		})
	}
}

func TestExecuteCaches(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	ctx := context.Background()

	first, err := r.Execute(ctx, Options{Document: testDocument()})
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheHit {
		t.Error("first run reported a cache hit")
	}
	if !bytes.HasPrefix(first.PDF, []byte("%PDF-")) {
		t.Fatal("output is not a PDF")
	}

	second, err := r.Execute(ctx, Options{Document: testDocument()})
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("second run missed the cache")
	}
	if !bytes.Equal(first.PDF, second.PDF) {
		t.Error("cached PDF differs from the rendered one")
	}
	if second.DocumentHash != first.DocumentHash {
		t.Error("document hash changed between runs")
	}
	if second.Report.ID != first.Report.ID || second.Report.Displayed != 5 {
		t.Errorf("cached report = %+v", second.Report)
	}
	if second.Stats.RenderTime != 0 {
		t.Error("cache hit reported render time")
	}
}

func TestExecuteCacheKey(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	ctx := context.Background()
	if _, err := r.Execute(ctx, Options{Document: testDocument()}); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	changed := testDocument()
	changed.Order.Items[0].Quantity = 21

	tests := []struct {
		name string
		opts Options
		hit  bool
	}{
		{"same document", Options{Document: testDocument()}, true},
		{"explicit defaults", Options{Document: testDocument(), Locale: "id", Currency: "IDR"}, true},
		{"refresh", Options{Document: testDocument(), Refresh: true}, false},
		{"other locale", Options{Document: testDocument(), Locale: "en"}, false},
		{"other currency", Options{Document: testDocument(), Currency: "USD"}, false},
		{"changed document", Options{Document: changed}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := r.Execute(ctx, tt.opts)
			if err != nil {
				t.Fatalf("Execute: %v", err)
			}
			if res.CacheHit != tt.hit {
				t.Errorf("CacheHit = %v, want %v", res.CacheHit, tt.hit)
			}
		})
	}
}

func TestExecuteStampsPrintTime(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	r.Now = func() time.Time { return time.Date(2025, 8, 1, 10, 15, 42, 0, time.UTC) }

	doc := testDocument()
	doc.PrintedAt = time.Time{}

	first, err := r.Execute(context.Background(), Options{Document: doc})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := time.Date(2025, 8, 1, 10, 15, 0, 0, time.UTC)
	if !first.Report.PrintedAt.Equal(want) {
		t.Errorf("PrintedAt = %v, want %v", first.Report.PrintedAt, want)
	}

	r.Now = func() time.Time { return time.Date(2025, 8, 1, 10, 15, 59, 0, time.UTC) }
	second, err := r.Execute(context.Background(), Options{Document: doc})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if !second.CacheHit {
		t.Error("render within the same minute missed the cache")
	}
}

type brokenCache struct{ cache.NullCache }

func (brokenCache) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, cache.ErrUnavailable
}

func (brokenCache) Set(context.Context, string, []byte, time.Duration) error {
	return cache.ErrUnavailable
}

func TestExecuteBrokenCache(t *testing.T) {
	r := newTestRunner(t, brokenCache{})
	res, err := r.Execute(context.Background(), Options{Document: testDocument()})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheHit || len(res.PDF) == 0 {
		t.Errorf("result = hit %v, %d bytes", res.CacheHit, len(res.PDF))
	}
}

func TestExecuteInvalid(t *testing.T) {
	r := newTestRunner(t, nil)
	_, err := r.Execute(context.Background(), Options{Document: testDocument(), TimeZone: "Mars/Olympus"})
	if !perrors.Is(err, perrors.ErrCodeInvalidConfig) {
		t.Errorf("error = %v, want INVALID_CONFIG", err)
	}
}

func TestInvalidate(t *testing.T) {
	r := newTestRunner(t, newFileCache(t))
	ctx := context.Background()
	opts := Options{Document: testDocument()}

	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if err := r.Invalidate(ctx, opts); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if res.CacheHit {
		t.Error("invalidated entry was served")
	}
}

func TestEngineReuse(t *testing.T) {
	r := newTestRunner(t, nil)
	opts := Options{}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}

	a, err := r.Engine(opts.FormatOptions())
	if err != nil {
		t.Fatalf("Engine: %v", err)
	}
	b, _ := r.Engine(opts.FormatOptions())
	if a != b {
		t.Error("same options built a second engine")
	}

	opts.Locale = "en"
	c, _ := r.Engine(opts.FormatOptions())
	if c == a {
		t.Error("different locale reused the engine")
	}
}
