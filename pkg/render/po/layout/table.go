package layout

import "math"

// TableMetrics are the fixed row heights of the items table.
type TableMetrics struct {
	Header       float64
	Row          float64
	Notice       float64 // "... and N more items" row
	SafetyBuffer float64 // slack kept between the table and the trailing blocks
}

// DefaultTableMetrics returns the metrics used on printed purchase orders.
func DefaultTableMetrics() TableMetrics {
	return TableMetrics{Header: 22, Row: 20, Notice: 14, SafetyBuffer: 10}
}

// TablePlan is the outcome of sizing the items table against the space left
// above the trailing budget.
type TablePlan struct {
	ItemCount    int
	Displayed    int     // first Displayed items are printed, in input order
	MaxRows      int     // rows that fit, at least one
	Available    float64 // space between the table top and the reserved blocks
	Height       float64 // header, rows and notice
	OverflowRisk bool    // Height exceeds Available
}

// Omitted returns the number of items left out of the table.
func (p TablePlan) Omitted() int { return p.ItemCount - p.Displayed }

// Truncated reports whether a notice row is printed.
func (p TablePlan) Truncated() bool { return p.Omitted() > 0 }

// PlanTable decides how many rows of itemCount fit between cursorY and the
// trailing budget. When not every item fits, the notice row is reserved as
// well so the truncated table still fits. At least one row is always
// planned; when even that does not fit, OverflowRisk is set.
func PlanTable(itemCount int, cursorY, safeBottom float64, budget Budget, m TableMetrics) TablePlan {
	itemCount = max(itemCount, 0)
	avail := safeBottom - cursorY - budget.Total() - m.SafetyBuffer

	fit := rowsFitting(avail-m.Header, m.Row)
	if itemCount > fit {
		fit = rowsFitting(avail-m.Header-m.Notice, m.Row)
	}
	maxRows := max(1, fit)

	p := TablePlan{
		ItemCount: itemCount,
		Displayed: min(maxRows, itemCount),
		MaxRows:   maxRows,
		Available: avail,
	}
	p.Height = m.Header + float64(p.Displayed)*m.Row
	if p.Truncated() {
		p.Height += m.Notice
	}
	p.OverflowRisk = p.Height > avail+eps
	return p
}

func rowsFitting(space, row float64) int {
	if row <= 0 || !(space > 0) {
		return 0
	}
	return int(math.Floor(space/row + eps))
}
