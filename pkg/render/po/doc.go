// Package po renders a purchase order onto exactly one A4 page.
//
// The page is laid out top to bottom in one pass. The leading sections
// (letterhead, header, counterparty) take whatever height their content
// needs. The trailing sections (totals, terms, signature, footer) have fixed
// or pre-measured heights that are reserved as a [layout.Budget] before the
// items table is drawn. The table then gets the space in between and shows
// as many items as fit, followed by a "... and N more items" row when some
// are left out.
//
// A render moves through the states [StateReset], [StateLeadingRendered],
// [StateBudgetEstimated], [StateTableRendered], [StateTrailingRendered] and
// [StateFinalized]. Any fault (a writer error, a panic, a second page) ends
// it in [StateFailed] with an errors.ErrCodeRenderFault error and no bytes.
// Missing logos, failed scan codes and an overflowing table are not faults;
// they are reported in [Report.Warnings].
//
//	engine := po.New(po.Options{Resolver: asset.NewFileResolver("assets")})
//	out, err := engine.Render(ctx, doc)
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("po.pdf", out.PDF, 0o644)
//
// An [Engine] holds no per-render state and is safe for concurrent use.
package po
