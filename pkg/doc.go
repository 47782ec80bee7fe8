// Package pkg provides the libraries behind podoc, a purchase order PDF
// generator.
//
// # Overview
//
// podoc prints one purchase order on one A4 page. Long item tables never
// spill onto a second page: the engine reserves space for the totals, terms,
// signature and footer before it lays out the table, and truncates the table
// with a notice row when the items do not fit.
//
// # Architecture
//
// The data flow through podoc:
//
//	JSON / YAML / TOML file, HTTP request, or MongoDB record
//	         ↓
//	    [io], [store] (load a [document.Document])
//	         ↓
//	    [pipeline] (validate options, hash, look up the cache)
//	         ↓
//	    [render/po] (resolve variants, plan the table, draw sections)
//	         ↓
//	    PDF bytes + layout report
//
// # Quick Start
//
//	doc, err := io.ImportFile("po-2025-001.yaml")
//	if err != nil {
//	    return err
//	}
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, logger)
//	res, err := runner.Execute(ctx, pipeline.Options{Document: doc, Locale: "en"})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("po.pdf", res.PDF, 0o644)
//
// # Main Packages
//
// ## Domain
//
// [document] - The purchase order records: order, issuer, counterparty.
//
// [render/po] - The single-page layout engine and its render state machine.
// [render/po/layout] holds the geometry, vertical cursor, reserved budget and
// table fit calculation; [render/po/sections] draws each block;
// [render/po/styles] holds fonts, colors and localized labels.
//
// [format] - Locale-aware currency, number and date formatting.
//
// [scancode] - QR codes embedded next to the issuer signature.
//
// ## Inputs
//
// [io] - Document import and export in JSON, YAML and TOML.
//
// [store] - Order lookup by number, in memory or MongoDB, with a caching
// wrapper.
//
// [asset] - Logo resolution from disk or HTTP and PNG normalization.
//
// ## Infrastructure
//
// [pipeline] - The render entry point shared by the CLI and the HTTP API.
//
// [cache] - Byte caches for PDFs, logos and orders: file, Redis, null.
//
// [server] - The HTTP API.
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Hooks for render, cache and HTTP events.
//
// [httputil] - A small HTTP client with retries.
//
// [buildinfo] - Version information injected at build time.
//
// # Testing
//
//	go test ./...                          # All tests
//	go test -tags integration ./pkg/...    # Include Redis and MongoDB tests
//
// [document]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/document
// [document.Document]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/document#Document
// [render/po]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/render/po
// [render/po/layout]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/render/po/layout
// [render/po/sections]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/render/po/sections
// [render/po/styles]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/render/po/styles
// [format]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/format
// [scancode]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/scancode
// [io]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/io
// [store]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/store
// [asset]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/asset
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/cache
// [server]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/server
// [config]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/podoc/pkg/buildinfo
package pkg
