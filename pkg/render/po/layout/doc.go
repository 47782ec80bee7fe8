// Package layout holds the page arithmetic of the purchase order engine.
//
// Nothing here draws. The package answers "where" and "how much" questions
// so the section renderers can stay dumb:
//
//   - [Geometry]: fixed page size, margins and baseline grid
//   - [Cursor]: the monotonic, grid-snapped vertical write position
//   - [Measurer]: text height and width from core-font glyph metrics
//   - [EstimateTrailing]: the [Budget] reserved for totals, terms,
//     signature and footer before the items table is sized
//   - [PlanTable]: how many item rows fit above that budget
//   - [Variants]: which optional blocks a document prints
//
// # Single pass
//
// The trailing budget is estimated once, before the items table, and is
// never revised. Totals, signature and footer have fixed templates; only the
// terms block is measured, and the terms renderer advances by exactly the
// estimated height. The table therefore cannot push the trailing blocks off
// the page unless the leading sections alone leave less than one row, which
// [TablePlan.OverflowRisk] reports.
//
// # Coordinates
//
// All values are PDF points with y growing down the page. Section
// boundaries land on multiples of [Geometry.Baseline].
package layout
