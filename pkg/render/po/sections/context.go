package sections

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/go-pdf/fpdf"

	"github.com/matzehuels/podoc/pkg/asset"
	"github.com/matzehuels/podoc/pkg/document"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/format"
	"github.com/matzehuels/podoc/pkg/observability"
	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/styles"
	"github.com/matzehuels/podoc/pkg/scancode"
)

// Warning is a recovered problem reported with a rendered page.
type Warning struct {
	Code    perrors.Code `json:"code"`
	Section string       `json:"section"`
	Message string       `json:"message"`
}

func (w Warning) String() string { return fmt.Sprintf("%s [%s] %s", w.Section, w.Code, w.Message) }

// Placement is the vertical band a section occupied.
type Placement struct {
	Section string     `json:"section"`
	Box     layout.Box `json:"box"`
}

// Deps are the collaborators shared by every render of an engine.
// Resolver and Encoder may be nil: the logo placeholder and the blank
// signature are drawn instead.
type Deps struct {
	Measurer layout.Measurer
	Format   *format.Formatter
	Labels   styles.Labels
	Logger   *log.Logger
	Resolver asset.Resolver
	Encoder  scancode.Encoder
}

// Context is the state of one render. It is created per render and never
// shared between goroutines.
type Context struct {
	Deps

	PDF    *fpdf.Fpdf
	Cursor *layout.Cursor
	Doc    document.Document

	// Set by the engine between states.
	Variants layout.Variants
	Budget   layout.Budget
	Plan     layout.TablePlan

	// Set by the signature section.
	ScanCodeEmbedded bool

	tr         func(string) string
	warnings   []Warning
	placements []Placement
}

// NewContext prepares a render of doc onto pdf. The order amounts are
// normalized here so every section prints the same figures.
func NewContext(pdf *fpdf.Fpdf, cur *layout.Cursor, deps Deps, doc document.Document) *Context {
	if deps.Logger == nil {
		deps.Logger = log.New(io.Discard)
	}
	doc.Order = doc.Order.Normalized()
	return &Context{
		Deps:   deps,
		PDF:    pdf,
		Cursor: cur,
		Doc:    doc,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Geometry returns the page geometry.
func (rc *Context) Geometry() layout.Geometry { return rc.Cursor.Geometry() }

// Warnings returns the warnings recorded so far.
func (rc *Context) Warnings() []Warning { return rc.warnings }

// Placements returns the bands of the sections rendered so far.
func (rc *Context) Placements() []Placement { return rc.placements }

// Warn records a recovered problem, logs it and forwards it to the render
// hooks.
func (rc *Context) Warn(ctx context.Context, section string, code perrors.Code, msg string, args ...any) {
	w := Warning{Code: code, Section: section, Message: fmt.Sprintf(msg, args...)}
	rc.warnings = append(rc.warnings, w)
	rc.Logger.Warn(w.Message, "order", rc.Doc.Order.Number, "section", section, "code", code)
	observability.Render().OnWarning(ctx, rc.Doc.Order.Number, string(code), w.Message)
}

// Place records that section occupied the band from top to the cursor.
func (rc *Context) Place(section string, top float64) {
	g := rc.Geometry()
	rc.placements = append(rc.placements, Placement{
		Section: section,
		Box:     layout.Box{Left: g.Left(), Right: g.Right(), Top: top, Bottom: rc.Cursor.Position()},
	})
}

func (rc *Context) font(f layout.Font) { rc.PDF.SetFont(f.Family, f.Style, f.Size) }

// text draws one line of UTF-8 text with its line box starting at y.
func (rc *Context) text(x, y, w float64, s string, f layout.Font, c styles.Color, align string) {
	rc.raw(x, y, w, rc.tr(s), f, c, align)
}

// raw draws one line already in the core font code page.
func (rc *Context) raw(x, y, w float64, s string, f layout.Font, c styles.Color, align string) {
	rc.font(f)
	rc.PDF.SetTextColor(c.R, c.G, c.B)
	rc.PDF.SetXY(x, y)
	rc.PDF.CellFormat(w, f.LineHeight(), s, "", 0, align, false, 0, "")
}

// fitted draws s on one line, shortened with ".." to fit w.
func (rc *Context) fitted(x, y, w float64, s string, f layout.Font, c styles.Color, align string) {
	rc.text(x, y, w, styles.Truncate(rc.Measurer, s, f, w), f, c, align)
}

// lines draws wrapped lines from [layout.Measurer.Lines] and returns the
// height they occupy, which equals the measured height.
func (rc *Context) lines(x, y, w float64, lines []string, f layout.Font, c styles.Color) float64 {
	step := f.LineHeight() + f.LineGap
	for i, l := range lines {
		rc.raw(x, y+float64(i)*step, w, l, f, c, "L")
	}
	if len(lines) == 0 {
		return 0
	}
	return float64(len(lines))*f.LineHeight() + float64(len(lines)-1)*f.LineGap
}

// wrap measures and draws text wrapped at w, keeping at most maxLines.
func (rc *Context) wrap(x, y, w float64, s string, f layout.Font, c styles.Color, maxLines int) float64 {
	ls := rc.Measurer.Lines(s, w, f)
	if maxLines > 0 && len(ls) > maxLines {
		ls = ls[:maxLines]
	}
	return rc.lines(x, y, w, ls, f, c)
}

func (rc *Context) rect(x, y, w, h, lw float64, stroke styles.Color) {
	rc.PDF.SetLineWidth(lw)
	rc.PDF.SetDrawColor(stroke.R, stroke.G, stroke.B)
	rc.PDF.Rect(x, y, w, h, "D")
}

func (rc *Context) filled(x, y, w, h, lw float64, fill, stroke styles.Color) {
	rc.PDF.SetLineWidth(lw)
	rc.PDF.SetFillColor(fill.R, fill.G, fill.B)
	rc.PDF.SetDrawColor(stroke.R, stroke.G, stroke.B)
	rc.PDF.Rect(x, y, w, h, "FD")
}

func (rc *Context) rule(x1, y, x2, lw float64, c styles.Color) {
	rc.PDF.SetLineWidth(lw)
	rc.PDF.SetDrawColor(c.R, c.G, c.B)
	rc.PDF.Line(x1, y, x2, y)
}
