// Package sections draws the blocks of a purchase order page.
//
// Each section is a [Section]: it reads the per-render [Context], draws at
// the cursor position and advances the cursor past what it drew. The
// engine runs them strictly in page order:
//
//	letterhead, header, counterparty   (Leading)
//	items table                        (Table, sized by layout.PlanTable)
//	totals, terms, signature, footer   (Trailing)
//
// Trailing sections never measure themselves. They advance by exactly the
// heights reserved in [Context.Budget], so the table sizing done before
// them stays valid. The signature and footer are anchored to the bottom of
// the printable area instead of following the terms directly.
//
// Recoverable problems (missing logo, failed scan code) are recorded with
// [Context.Warn] and never returned as errors. Sections only return errors
// for cancellation.
package sections
