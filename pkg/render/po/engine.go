package po

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"

	"github.com/matzehuels/podoc/pkg/asset"
	"github.com/matzehuels/podoc/pkg/buildinfo"
	"github.com/matzehuels/podoc/pkg/document"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/format"
	"github.com/matzehuels/podoc/pkg/observability"
	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/sections"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
	"github.com/matzehuels/podoc/pkg/scancode"
)

// Options configures an [Engine]. Zero values select the defaults noted on
// each field.
type Options struct {
	Formatter *format.Formatter // format.Default()
	Encoder   scancode.Encoder  // scancode.NewQREncoder()
	Resolver  asset.Resolver    // nil: logos always print the placeholder
	Measurer  layout.Measurer   // layout.NewFPDFMeasurer()
	Logger    *log.Logger       // discards output
	Geometry  layout.Geometry   // layout.A4()

	// Terms replaces the locale's default terms and conditions.
	Terms []string

	// Now supplies the print time for documents without one. Defaults to
	// time.Now.
	Now func() time.Time
}

// Engine renders purchase orders. It is immutable after [New].
type Engine struct {
	deps sections.Deps
	geo  layout.Geometry
	now  func() time.Time
}

// New returns an engine with opts applied over the defaults.
func New(opts Options) *Engine {
	if opts.Formatter == nil {
		opts.Formatter = format.Default()
	}
	if opts.Encoder == nil {
		opts.Encoder = scancode.NewQREncoder()
	}
	if opts.Measurer == nil {
		opts.Measurer = layout.NewFPDFMeasurer()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Geometry == (layout.Geometry{}) {
		opts.Geometry = layout.A4()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	labels := styles.For(opts.Formatter.Locale())
	if len(opts.Terms) > 0 {
		labels.Terms = append([]string(nil), opts.Terms...)
	}

	return &Engine{
		deps: sections.Deps{
			Measurer: opts.Measurer,
			Format:   opts.Formatter,
			Labels:   labels,
			Logger:   opts.Logger,
			Resolver: opts.Resolver,
			Encoder:  opts.Encoder,
		},
		geo: opts.Geometry,
		now: opts.Now,
	}
}

// Geometry returns the page geometry.
func (e *Engine) Geometry() layout.Geometry { return e.geo }

// Formatter returns the formatter used for amounts and dates.
func (e *Engine) Formatter() *format.Formatter { return e.deps.Format }

// RenderPurchaseOrder renders one order and returns the PDF bytes.
func (e *Engine) RenderPurchaseOrder(ctx context.Context, order document.Order, issuer document.Issuer, cp document.Counterparty, printedAt time.Time) ([]byte, error) {
	out, err := e.Render(ctx, document.Document{
		Order:        order,
		Issuer:       issuer,
		Counterparty: cp,
		PrintedAt:    printedAt,
	})
	if err != nil {
		return nil, err
	}
	return out.PDF, nil
}

// Render lays out doc on a single page. A zero PrintedAt is replaced by the
// current time. Errors always carry errors.ErrCodeRenderFault.
func (e *Engine) Render(ctx context.Context, doc document.Document) (*Rendered, error) {
	if doc.PrintedAt.IsZero() {
		doc.PrintedAt = e.now()
	}
	r := e.newRun(doc)

	start := time.Now()
	hooks := observability.Render()
	hooks.OnRenderStart(ctx, doc.Order.Number, len(doc.Order.Items))

	out, err := r.execute(ctx)

	var summary observability.RenderSummary
	if out != nil {
		out.Report.Duration = time.Since(start)
		summary = observability.RenderSummary{
			Displayed:        out.Report.Displayed,
			Omitted:          out.Report.Omitted,
			Bytes:            len(out.PDF),
			ScanCodeEmbedded: out.Report.ScanCodeEmbedded,
		}
	}
	hooks.OnRenderComplete(ctx, doc.Order.Number, summary, time.Since(start), err)
	return out, err
}

// run is the state of a single render.
type run struct {
	id      string
	state   State
	history []State
	section string // section being drawn, for fault messages

	pdf *fpdf.Fpdf
	rc  *sections.Context
	log *log.Logger
}

func (e *Engine) newRun(doc document.Document) *run {
	g := e.geo
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: g.Width, Ht: g.Height},
	})
	pdf.SetMargins(g.Margin, g.Margin, g.Margin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(0)

	id := uuid.NewString()
	labels := e.deps.Labels
	pdf.SetTitle(labels.Title+" "+doc.Order.Number, true)
	pdf.SetAuthor(doc.Issuer.Name, true)
	pdf.SetSubject(labels.Subject, true)
	pdf.SetKeywords(labels.Keywords+", render:"+id, true)
	pdf.SetCreator(buildinfo.Creator(), true)
	pdf.SetCreationDate(doc.PrintedAt)
	pdf.SetModificationDate(doc.PrintedAt)

	rc := sections.NewContext(pdf, layout.NewCursor(g), e.deps, doc)
	return &run{
		id:      id,
		state:   StateReset,
		history: []State{StateReset},
		pdf:     pdf,
		rc:      rc,
		log:     e.deps.Logger.With("order", doc.Order.Number),
	}
}

// transition moves to the next state. Skipping or repeating a state is a
// programming error and panics; execute turns the panic into a fault.
func (r *run) transition(to State) {
	if r.state.Terminal() || to != r.state+1 {
		panic(fmt.Sprintf("invalid transition %s -> %s", r.state, to))
	}
	r.state = to
	r.history = append(r.history, to)
	r.log.Debug("render state", "state", to, "y", r.rc.Cursor.Position())
}

func (r *run) fail(cause error, msg string, args ...any) error {
	r.state = StateFailed
	r.history = append(r.history, StateFailed)
	return perrors.Wrap(perrors.ErrCodeRenderFault, cause, msg, args...)
}

func (r *run) execute(ctx context.Context) (out *Rendered, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, r.fail(nil, "panic in %s: %v", r.sectionOr("engine"), p)
		}
	}()

	rc := r.rc
	rc.Cursor.Reset()
	rc.Variants = layout.ResolveVariants(rc.Doc.Order, rc.Doc.Issuer, rc.Doc.Counterparty)
	r.pdf.AddPage()

	if err := r.draw(ctx, sections.Leading()...); err != nil {
		return nil, err
	}
	r.transition(StateLeadingRendered)

	g := rc.Geometry()
	rc.Budget = layout.EstimateTrailing(rc.Variants, rc.Measurer, rc.Labels.Terms, g)
	r.transition(StateBudgetEstimated)

	rc.Plan = layout.PlanTable(len(rc.Doc.Order.Items), rc.Cursor.Position(), g.SafeBottom(), rc.Budget, layout.DefaultTableMetrics())
	if rc.Plan.OverflowRisk {
		rc.Warn(ctx, sections.NameTable, perrors.ErrCodeOverflowRisk,
			"table needs %.0fpt but only %.0fpt are available", rc.Plan.Height, rc.Plan.Available)
	}
	if rc.Plan.Truncated() {
		r.log.Info("items truncated", "displayed", rc.Plan.Displayed, "omitted", rc.Plan.Omitted())
	}
	if err := r.draw(ctx, sections.Section{Name: sections.NameTable, Render: sections.Table}); err != nil {
		return nil, err
	}
	r.transition(StateTableRendered)

	if err := r.draw(ctx, sections.Trailing()...); err != nil {
		return nil, err
	}
	r.transition(StateTrailingRendered)

	r.section = "finalize"
	if n := r.pdf.PageCount(); n != 1 {
		return nil, r.fail(nil, "document has %d pages", n)
	}
	var buf bytes.Buffer
	if err := r.pdf.Output(&buf); err != nil {
		return nil, r.fail(err, "write pdf")
	}
	r.transition(StateFinalized)

	return &Rendered{PDF: buf.Bytes(), Report: r.report()}, nil
}

// draw runs sections in order, failing on cancellation or a writer error.
func (r *run) draw(ctx context.Context, secs ...sections.Section) error {
	for _, s := range secs {
		r.section = s.Name
		top := r.rc.Cursor.Position()
		if err := s.Render(ctx, r.rc); err != nil {
			return r.fail(err, "section %s", s.Name)
		}
		if r.pdf.Err() {
			return r.fail(r.pdf.Error(), "section %s", s.Name)
		}
		if err := ctx.Err(); err != nil {
			return r.fail(err, "section %s", s.Name)
		}
		r.rc.Place(s.Name, top)
	}
	return nil
}

func (r *run) sectionOr(fallback string) string {
	if r.section == "" {
		return fallback
	}
	return r.section
}

func (r *run) report() Report {
	rc := r.rc
	return Report{
		ID:               r.id,
		Order:            rc.Doc.Order.Number,
		Items:            rc.Plan.ItemCount,
		Displayed:        rc.Plan.Displayed,
		Omitted:          rc.Plan.Omitted(),
		MaxRows:          rc.Plan.MaxRows,
		Available:        rc.Plan.Available,
		TableHeight:      rc.Plan.Height,
		OverflowRisk:     rc.Plan.OverflowRisk,
		Clipped:          rc.Cursor.Clipped(),
		Budget:           rc.Budget,
		Variants:         rc.Variants,
		ScanCodeEmbedded: rc.ScanCodeEmbedded,
		Warnings:         rc.Warnings(),
		Sections:         rc.Placements(),
		PrintedAt:        rc.Doc.PrintedAt,
	}
}
