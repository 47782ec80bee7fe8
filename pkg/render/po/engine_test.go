package po

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/matzehuels/podoc/pkg/asset"
	"github.com/matzehuels/podoc/pkg/document"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/sections"
	"github.com/matzehuels/podoc/pkg/scancode"
)

var printedAt = time.Date(2025, 8, 2, 9, 30, 0, 0, time.UTC)

func sampleDocument(items int, tax, signer bool) document.Document {
	order := document.Order{
		Number:    "PO-2025-0042",
		CreatedAt: time.Date(2025, 7, 28, 0, 0, 0, 0, time.UTC),
		ProjectID: "PRJ-7",
	}
	for i := range items {
		order.Items = append(order.Items, document.LineItem{
			Name:          fmt.Sprintf("Besi beton %d", i+1),
			Specification: "SNI 2052:2017",
			Quantity:      float64(i + 1),
			Unit:          "btg",
			UnitPrice:     85000,
			Total:         float64(i+1) * 85000,
		})
		order.Subtotal += float64(i+1) * 85000
	}
	if tax {
		order.Tax = order.Subtotal * 0.11
	}

	issuer := document.Issuer{
		Name:    "PT Karya Bangun Nusantara",
		Address: "Jl. Sudirman No. 1, Jakarta Pusat",
		City:    "Jakarta",
		Phone:   "021-555-0100",
		Email:   "procurement@kbn.co.id",
		TaxID:   "01.234.567.8-901.000",
	}
	if signer {
		issuer.Signer = &document.Signer{Name: "Budi Santoso", Title: "Direktur Utama"}
	}

	return document.Document{
		Order:  order,
		Issuer: issuer,
		Counterparty: document.Counterparty{
			Name:    "CV Sumber Baja",
			Address: "Jl. Industri Raya 12, Bekasi",
			Contact: "0812-0000-1111",
		},
		PrintedAt: printedAt,
	}
}

func tinyPNG() []byte {
	var buf bytes.Buffer
	_ = png.Encode(&buf, image.NewGray(image.Rect(0, 0, 21, 21)))
	return buf.Bytes()
}

// countingEncoder returns a valid PNG and counts calls.
type countingEncoder struct{ calls atomic.Int32 }

func (e *countingEncoder) Encode(ctx context.Context, payload []byte) ([]byte, error) {
	e.calls.Add(1)
	return tinyPNG(), nil
}

func assertPDF(t *testing.T, out *Rendered) {
	t.Helper()
	if out == nil {
		t.Fatal("nil result")
	}
	if !bytes.HasPrefix(out.PDF, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", out.PDF[:min(16, len(out.PDF))])
	}
	if out.Report.ID == "" {
		t.Error("report has no render ID")
	}
}

func hasWarning(r Report, code perrors.Code) bool {
	for _, w := range r.Warnings {
		if w.Code == code {
			return true
		}
	}
	return false
}

func TestRenderFiftyItemsWithSigner(t *testing.T) {
	enc := &countingEncoder{}
	e := New(Options{Encoder: enc})

	out, err := e.Render(context.Background(), sampleDocument(50, false, true))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertPDF(t, out)
	r := out.Report

	if r.Displayed <= 0 || r.Displayed >= 50 {
		t.Errorf("Displayed = %d, want between 1 and 49", r.Displayed)
	}
	if r.Displayed+r.Omitted != 50 {
		t.Errorf("Displayed %d + Omitted %d != 50", r.Displayed, r.Omitted)
	}
	if r.OverflowRisk || r.Clipped {
		t.Errorf("OverflowRisk = %v, Clipped = %v", r.OverflowRisk, r.Clipped)
	}
	if r.TableHeight > r.Available {
		t.Errorf("table height %.1f exceeds available %.1f", r.TableHeight, r.Available)
	}
	if !r.ScanCodeEmbedded || enc.calls.Load() != 1 {
		t.Errorf("ScanCodeEmbedded = %v, encoder calls = %d", r.ScanCodeEmbedded, enc.calls.Load())
	}
	if r.Variants.Totals != layout.TotalsPlain || r.Variants.Signature != layout.SignatureSigned {
		t.Errorf("Variants = %+v", r.Variants)
	}
	if r.HasWarnings() {
		t.Errorf("unexpected warnings: %v", r.Warnings)
	}
}

func TestRenderThreeItemsWithTaxNoSigner(t *testing.T) {
	enc := &countingEncoder{}
	e := New(Options{Encoder: enc})

	out, err := e.Render(context.Background(), sampleDocument(3, true, false))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertPDF(t, out)
	r := out.Report

	if r.Displayed != 3 || r.Omitted != 0 {
		t.Errorf("Displayed = %d, Omitted = %d", r.Displayed, r.Omitted)
	}
	if enc.calls.Load() != 0 || r.ScanCodeEmbedded {
		t.Errorf("encoder called %d times without a signer", enc.calls.Load())
	}
	if r.Variants.Totals != layout.TotalsWithTax || r.Variants.Signature != layout.SignatureBlank {
		t.Errorf("Variants = %+v", r.Variants)
	}
	if r.Budget.Totals != layout.TotalsHeight+layout.TaxLineHeight {
		t.Errorf("Budget.Totals = %v", r.Budget.Totals)
	}
}

func TestRenderZeroItems(t *testing.T) {
	out, err := New(Options{Encoder: &countingEncoder{}}).Render(context.Background(), sampleDocument(0, false, true))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertPDF(t, out)
	m := layout.DefaultTableMetrics()
	if out.Report.Displayed != 0 || out.Report.TableHeight != m.Header {
		t.Errorf("Displayed = %d, TableHeight = %v", out.Report.Displayed, out.Report.TableHeight)
	}
}

func TestRenderEnrichmentFailures(t *testing.T) {
	tests := []struct {
		name string
		enc  scancode.Encoder
	}{
		{"encoder error", scancode.EncoderFunc(func(context.Context, []byte) ([]byte, error) {
			return nil, errors.New("qr backend down")
		})},
		{"not an image", scancode.EncoderFunc(func(context.Context, []byte) ([]byte, error) {
			return []byte("garbage"), nil
		})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := New(Options{Encoder: tt.enc}).Render(context.Background(), sampleDocument(5, false, true))
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			assertPDF(t, out)
			if out.Report.ScanCodeEmbedded {
				t.Error("ScanCodeEmbedded should be false")
			}
			if !hasWarning(out.Report, perrors.ErrCodeEnrichmentFailed) {
				t.Errorf("warnings = %v, want ENRICHMENT_FAILED", out.Report.Warnings)
			}
		})
	}
}

func TestRenderLogo(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "logo.png"), tinyPNG(), 0o644); err != nil {
		t.Fatal(err)
	}
	e := New(Options{Encoder: &countingEncoder{}, Resolver: asset.NewFileResolver(root)})

	tests := []struct {
		ref         string
		wantWarning bool
	}{
		{"logo.png", false},
		{"missing.png", true},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			doc := sampleDocument(2, false, false)
			doc.Issuer.Logo = tt.ref
			out, err := e.Render(context.Background(), doc)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			if got := hasWarning(out.Report, perrors.ErrCodeAssetMissing); got != tt.wantWarning {
				t.Errorf("ASSET_NOT_FOUND warning = %v, want %v", got, tt.wantWarning)
			}
		})
	}
}

func TestRenderOverflowRiskDoesNotAbort(t *testing.T) {
	g := layout.Geometry{Width: 595.28, Height: 520, Margin: 40, Baseline: 2}
	out, err := New(Options{Encoder: &countingEncoder{}, Geometry: g}).Render(context.Background(), sampleDocument(20, true, true))
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	assertPDF(t, out)
	r := out.Report
	if !r.OverflowRisk || r.Displayed != 1 {
		t.Errorf("OverflowRisk = %v, Displayed = %d", r.OverflowRisk, r.Displayed)
	}
	if !hasWarning(r, perrors.ErrCodeOverflowRisk) {
		t.Errorf("warnings = %v, want OVERFLOW_RISK", r.Warnings)
	}
}

// panicMeasurer fails as soon as a section measures text.
type panicMeasurer struct{}

func (panicMeasurer) MeasureHeight(string, float64, layout.Font) float64 { panic("no metrics") }
func (panicMeasurer) StringWidth(string, layout.Font) float64           { panic("no metrics") }
func (panicMeasurer) Lines(string, float64, layout.Font) []string       { panic("no metrics") }

func TestRenderFault(t *testing.T) {
	e := New(Options{Encoder: &countingEncoder{}, Measurer: panicMeasurer{}})
	out, err := e.Render(context.Background(), sampleDocument(3, false, false))
	if out != nil {
		t.Error("a failed render must not return output")
	}
	if !perrors.Is(err, perrors.ErrCodeRenderFault) {
		t.Fatalf("err = %v, want RENDER_FAULT", err)
	}
	if !strings.Contains(err.Error(), sections.NameLetterhead) {
		t.Errorf("fault should name the section: %v", err)
	}
}

func TestRenderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{Encoder: &countingEncoder{}}).Render(ctx, sampleDocument(3, false, true))
	if !perrors.Is(err, perrors.ErrCodeRenderFault) || !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want RENDER_FAULT wrapping context.Canceled", err)
	}
}

func TestRenderStateHistory(t *testing.T) {
	e := New(Options{Encoder: &countingEncoder{}})
	r := e.newRun(sampleDocument(4, false, true))
	if _, err := r.execute(context.Background()); err != nil {
		t.Fatalf("execute: %v", err)
	}
	want := []State{StateReset, StateLeadingRendered, StateBudgetEstimated, StateTableRendered, StateTrailingRendered, StateFinalized}
	if len(r.history) != len(want) {
		t.Fatalf("history = %v, want %v", r.history, want)
	}
	for i := range want {
		if r.history[i] != want[i] {
			t.Errorf("history[%d] = %s, want %s", i, r.history[i], want[i])
		}
	}

	failed := e.newRun(sampleDocument(1, false, false))
	func() {
		defer func() {
			if recover() == nil {
				t.Error("skipping a state should panic")
			}
		}()
		failed.transition(StateTableRendered)
	}()
}

func TestRenderReservesTrailingBudget(t *testing.T) {
	e := New(Options{Encoder: &countingEncoder{}})
	g := e.Geometry()

	for _, items := range []int{0, 3, 12, 80} {
		t.Run(fmt.Sprint(items), func(t *testing.T) {
			out, err := e.Render(context.Background(), sampleDocument(items, items%2 == 0, true))
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			r := out.Report
			boxes := map[string]layout.Box{}
			prevTop := 0.0
			for _, p := range r.Sections {
				if p.Box.Top < prevTop {
					t.Errorf("%s starts above the previous section", p.Section)
				}
				if !g.Printable().Contains(p.Box) {
					t.Errorf("%s box %+v leaves the printable area", p.Section, p.Box)
				}
				prevTop = p.Box.Top
				boxes[p.Section] = p.Box
			}
			if len(boxes) != 8 {
				t.Fatalf("placements = %v", r.Sections)
			}
			if h := boxes[sections.NameTotals].Height(); h != r.Budget.Totals {
				t.Errorf("totals advanced %v, budget %v", h, r.Budget.Totals)
			}
			if h := boxes[sections.NameTerms].Height(); h != r.Budget.Terms {
				t.Errorf("terms advanced %v, budget %v", h, r.Budget.Terms)
			}
			footer := boxes[sections.NameFooter]
			if footer.Top != boxes[sections.NameSignature].Bottom || footer.Bottom != g.FloorGrid(g.SafeBottom()) {
				t.Errorf("footer box = %+v", footer)
			}
			if r.Clipped {
				t.Error("cursor clipped")
			}
		})
	}
}

func TestRenderConcurrent(t *testing.T) {
	e := New(Options{})
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			doc := sampleDocument(i*7, i%2 == 0, i%3 != 0)
			doc.Order.Number = fmt.Sprintf("PO-%d", i)
			out, err := e.Render(context.Background(), doc)
			if err == nil && out.Report.Items != i*7 {
				err = fmt.Errorf("report for %s has %d items", doc.Order.Number, out.Report.Items)
			}
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Error(err)
		}
	}
}

func TestRenderPurchaseOrder(t *testing.T) {
	doc := sampleDocument(2, false, false)
	data, err := New(Options{}).RenderPurchaseOrder(context.Background(), doc.Order, doc.Issuer, doc.Counterparty, printedAt)
	if err != nil {
		t.Fatalf("RenderPurchaseOrder: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Error("not a PDF")
	}
}

func TestRenderDefaultsPrintTime(t *testing.T) {
	fixed := time.Date(2025, 1, 12, 3, 30, 0, 0, time.UTC)
	e := New(Options{Encoder: &countingEncoder{}, Now: func() time.Time { return fixed }})
	doc := sampleDocument(1, false, false)
	doc.PrintedAt = time.Time{}
	out, err := e.Render(context.Background(), doc)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Report.PrintedAt.Equal(fixed) {
		t.Errorf("PrintedAt = %v, want %v", out.Report.PrintedAt, fixed)
	}
}

func TestStateString(t *testing.T) {
	if StateBudgetEstimated.String() != "budget-estimated" || State(42).String() != "state(42)" {
		t.Error("unexpected State names")
	}
	if !StateFailed.Terminal() || StateTableRendered.Terminal() {
		t.Error("Terminal() wrong")
	}
}
