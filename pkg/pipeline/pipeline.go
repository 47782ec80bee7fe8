// Package pipeline turns a purchase order document into a PDF, reusing
// previously rendered output from a cache.
//
// The CLI, the batch command and the HTTP server all render through a
// [Runner], so cache keys, defaults and logging are the same everywhere.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Document: doc,
//	    Locale:   "en",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("po.pdf", result.PDF, 0o644)
//
// # Cache keys
//
// Rendered PDFs are keyed by the SHA-256 of the document's JSON encoding
// together with the locale, currency, time zone and engine version. A
// document without a print time is stamped with the current time truncated
// to the minute before hashing: the printed timestamp has minute precision,
// so repeated renders within the same minute share one entry.
package pipeline

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podoc/pkg/buildinfo"
	"github.com/matzehuels/podoc/pkg/cache"
	"github.com/matzehuels/podoc/pkg/document"
	perrors "github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/format"
	"github.com/matzehuels/podoc/pkg/render/po"
)

// Defaults shared by the CLI, the batch command and the server.
const (
	DefaultLocale   = string(format.DefaultLocale)
	DefaultCurrency = format.DefaultCurrency
	DefaultTimeZone = format.DefaultTimeZone
)

// Options configures one pipeline run.
type Options struct {
	Document document.Document `json:"document"`

	Locale   string `json:"locale,omitempty"`
	Currency string `json:"currency,omitempty"`
	TimeZone string `json:"time_zone,omitempty"`

	// Refresh skips the cache lookup. The fresh PDF is still stored.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger `json:"-"`

	validated bool
}

// Result is the output of a pipeline run.
type Result struct {
	PDF    []byte
	Report po.Report

	// DocumentHash is the content hash the cache key was derived from.
	DocumentHash string

	// CacheHit reports whether PDF came from the cache. Report then
	// describes the original render.
	CacheHit bool

	Stats Stats
}

// Stats contains timing information for one run.
type Stats struct {
	RenderTime time.Duration // zero on a cache hit
	TotalTime  time.Duration
}

// ValidateAndSetDefaults checks the options and fills empty render options.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Locale == "" {
		o.Locale = DefaultLocale
	}
	if o.Currency == "" {
		o.Currency = DefaultCurrency
	}
	if o.TimeZone == "" {
		o.TimeZone = DefaultTimeZone
	}
	loc, err := format.ParseLocale(o.Locale)
	if err != nil {
		return err
	}
	o.Locale = string(loc)
	if n := o.Document.Order.Number; n != "" {
		if err := perrors.ValidateOrderNumber(n); err != nil {
			return err
		}
	}
	o.validated = true
	return nil
}

// FormatOptions returns the formatter options selected by o.
func (o *Options) FormatOptions() format.Options {
	return format.Options{
		Locale:   format.Locale(o.Locale),
		Currency: o.Currency,
		TimeZone: o.TimeZone,
	}
}

// ArtifactKeyOpts returns the cache key options for the rendered PDF.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Locale:   o.Locale,
		Currency: o.Currency,
		TimeZone: o.TimeZone,
		Version:  buildinfo.CacheVersion(),
	}
}
