package layout

import (
	"strings"
	"sync"

	"github.com/go-pdf/fpdf"
)

// LineHeightFactor converts a font size to the height of one text line.
const LineHeightFactor = 1.15

// Font selects a core PDF font and its line spacing.
type Font struct {
	Family  string  // core font family, e.g. "Helvetica"
	Style   string  // "", "B", "I" or "BI"
	Size    float64 // points
	LineGap float64 // extra space between wrapped lines
}

// LineHeight returns the height of a single line of text in f.
func (f Font) LineHeight() float64 { return f.Size * LineHeightFactor }

// WithSize returns a copy of f at a different size.
func (f Font) WithSize(size float64) Font {
	f.Size = size
	return f
}

// Measurer computes the space text occupies without drawing it.
//
// Implementations must be pure: identical arguments always yield identical
// results, and measuring never affects a document being rendered.
type Measurer interface {
	// MeasureHeight returns the height of text wrapped at maxWidth.
	// Empty text measures zero.
	MeasureHeight(text string, maxWidth float64, font Font) float64

	// StringWidth returns the width of text set on a single line.
	StringWidth(text string, font Font) float64

	// Lines returns text wrapped at maxWidth, one entry per printed line.
	Lines(text string, maxWidth float64, font Font) []string
}

// FPDFMeasurer measures text with the glyph metrics of the fpdf core fonts,
// so measurements match what [fpdf.Fpdf.MultiCell] prints at the same width.
//
// It owns a private scratch document and is safe for concurrent use.
type FPDFMeasurer struct {
	mu  sync.Mutex
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// NewFPDFMeasurer creates a measurer backed by a scratch fpdf document.
// The scratch document has no cell margin; pages measured with it must be
// drawn with [fpdf.Fpdf.SetCellMargin](0) as well.
func NewFPDFMeasurer() *FPDFMeasurer {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetCellMargin(0)
	return &FPDFMeasurer{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// Translate converts UTF-8 text to the code page of the core fonts.
func (m *FPDFMeasurer) Translate(s string) string { return m.tr(s) }

// MeasureHeight implements [Measurer].
func (m *FPDFMeasurer) MeasureHeight(text string, maxWidth float64, font Font) float64 {
	n := len(m.Lines(text, maxWidth, font))
	if n == 0 {
		return 0
	}
	return float64(n)*font.LineHeight() + float64(n-1)*font.LineGap
}

// StringWidth implements [Measurer].
func (m *FPDFMeasurer) StringWidth(text string, font Font) float64 {
	if text == "" {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(font.Family, font.Style, font.Size)
	return m.pdf.GetStringWidth(m.tr(text))
}

// Lines implements [Measurer]. Explicit newlines always break; a blank
// paragraph still occupies one line. The returned lines are already in the
// core font code page and can be drawn without translating them again.
func (m *FPDFMeasurer) Lines(text string, maxWidth float64, font Font) []string {
	text = strings.TrimRight(strings.ReplaceAll(text, "\r", ""), "\n")
	if text == "" {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.pdf.SetFont(font.Family, font.Style, font.Size)

	var out []string
	for _, para := range strings.Split(text, "\n") {
		if strings.TrimSpace(para) == "" {
			out = append(out, "")
			continue
		}
		lines := m.pdf.SplitLines([]byte(m.tr(para)), maxWidth)
		if len(lines) == 0 {
			out = append(out, "")
		}
		for _, line := range lines {
			out = append(out, string(line))
		}
	}
	return out
}
