// Package render groups the document renderers.
//
// # Purchase Orders
//
// The [po] subpackage prints a purchase order on a single A4 page with
// go-pdf/fpdf. Rendering happens in one pass:
//
//	engine := po.New(po.Options{Formatter: f})
//	out, err := engine.Render(ctx, doc)
//	os.WriteFile("po.pdf", out.PDF, 0o644)
//
// Key po subpackages:
//   - [po/layout]: Page geometry, baseline grid, vertical cursor, reserved
//     budget and the table fit calculation
//   - [po/sections]: One drawer per page block, from letterhead to footer
//   - [po/styles]: Fonts, colors, line weights and localized labels
//
// [po]: github.com/matzehuels/podoc/pkg/render/po
// [po/layout]: github.com/matzehuels/podoc/pkg/render/po/layout
// [po/sections]: github.com/matzehuels/podoc/pkg/render/po/sections
// [po/styles]: github.com/matzehuels/podoc/pkg/render/po/styles
package render
