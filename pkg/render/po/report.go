package po

import (
	"time"

	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/render/po/sections"
)

// Rendered is a successful render.
type Rendered struct {
	PDF    []byte
	Report Report
}

// Report describes how the page was laid out.
type Report struct {
	ID    string `json:"id"` // unique per render, also stored in the PDF keywords
	Order string `json:"order"`

	Items        int     `json:"items"`
	Displayed    int     `json:"displayed"`
	Omitted      int     `json:"omitted"`
	MaxRows      int     `json:"max_rows"`
	Available    float64 `json:"available"` // table space above the budget
	TableHeight  float64 `json:"table_height"`
	OverflowRisk bool    `json:"overflow_risk"`
	Clipped      bool    `json:"clipped"` // the cursor hit the bottom of the printable area

	Budget           layout.Budget        `json:"budget"`
	Variants         layout.Variants      `json:"variants"`
	ScanCodeEmbedded bool                 `json:"scan_code_embedded"`
	Warnings         []sections.Warning   `json:"warnings,omitempty"`
	Sections         []sections.Placement `json:"sections"`

	PrintedAt time.Time     `json:"printed_at"`
	Duration  time.Duration `json:"duration"`
}

// HasWarnings reports whether anything was recovered during the render.
func (r Report) HasWarnings() bool { return len(r.Warnings) > 0 }
