package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/podoc/pkg/asset"
	"github.com/matzehuels/podoc/pkg/cache"
	"github.com/matzehuels/podoc/pkg/format"
	"github.com/matzehuels/podoc/pkg/observability"
	"github.com/matzehuels/podoc/pkg/render/po"
	"github.com/matzehuels/podoc/pkg/render/po/layout"
	"github.com/matzehuels/podoc/pkg/scancode"
)

// Runner renders documents through a cache.
//
// A Runner keeps one engine per formatter configuration and nothing else
// between runs; it is safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// Engine collaborators. Nil fields select the engine defaults.
	Resolver asset.Resolver
	Encoder  scancode.Encoder
	Measurer layout.Measurer
	Terms    []string
	Now      func() time.Time

	// TTL bounds how long rendered PDFs stay cached. Zero means
	// [cache.TTLArtifact].
	TTL time.Duration

	mu      sync.Mutex
	engines map[format.Options]*po.Engine
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		Measurer: layout.NewFPDFMeasurer(),
	}
}

// artifact is the cached form of a render.
type artifact struct {
	PDF    []byte    `json:"pdf"`
	Report po.Report `json:"report"`
}

// Execute renders opts.Document, serving the PDF from the cache when an
// entry for the same document and render options exists.
//
// Cache failures never fail a run: a broken backend is logged and the
// document is rendered as if the entry were missing.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	start := time.Now()
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	engine, err := r.Engine(opts.FormatOptions())
	if err != nil {
		return nil, err
	}

	doc := opts.Document
	if doc.PrintedAt.IsZero() {
		doc.PrintedAt = r.now().Truncate(time.Minute)
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("hash document: %w", err)
	}
	result := &Result{DocumentHash: cache.Hash(data)}
	key := r.Keyer.ArtifactKey(result.DocumentHash, opts.ArtifactKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		var cached artifact
		switch err := cache.GetJSON(ctx, r.Cache, key, &cached); {
		case err == nil && len(cached.PDF) > 0:
			hooks.OnCacheHit(ctx, "pdf")
			logger.Debug("pdf cache hit", "order", doc.Order.Number, "hash", result.DocumentHash[:12])
			result.PDF = cached.PDF
			result.Report = cached.Report
			result.CacheHit = true
			result.Stats.TotalTime = time.Since(start)
			return result, nil
		case err == nil, errors.Is(err, cache.ErrCacheMiss):
			hooks.OnCacheMiss(ctx, "pdf")
		default:
			hooks.OnCacheMiss(ctx, "pdf")
			logger.Warn("pdf cache read failed", "order", doc.Order.Number, "err", err)
		}
	}

	renderStart := time.Now()
	out, err := engine.Render(ctx, doc)
	if err != nil {
		return nil, err
	}
	result.PDF = out.PDF
	result.Report = out.Report
	result.Stats.RenderTime = time.Since(renderStart)

	logger.Info("rendered purchase order",
		"order", doc.Order.Number,
		"displayed", out.Report.Displayed,
		"omitted", out.Report.Omitted,
		"warnings", len(out.Report.Warnings),
		"duration", result.Stats.RenderTime)

	if err := cache.SetJSON(ctx, r.Cache, key, artifact{PDF: out.PDF, Report: out.Report}, r.ttl()); err != nil {
		logger.Warn("pdf cache write failed", "order", doc.Order.Number, "err", err)
	} else {
		hooks.OnCacheSet(ctx, "pdf", len(out.PDF))
	}

	result.Stats.TotalTime = time.Since(start)
	return result, nil
}

// Engine returns the engine for one formatter configuration, creating it on
// first use.
func (r *Runner) Engine(fo format.Options) (*po.Engine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.engines[fo]; ok {
		return e, nil
	}
	f, err := format.New(fo)
	if err != nil {
		return nil, err
	}
	e := po.New(po.Options{
		Formatter: f,
		Encoder:   r.Encoder,
		Resolver:  r.Resolver,
		Measurer:  r.Measurer,
		Logger:    r.Logger,
		Terms:     r.Terms,
		Now:       r.Now,
	})
	if r.engines == nil {
		r.engines = make(map[format.Options]*po.Engine)
	}
	r.engines[fo] = e
	return e, nil
}

// Invalidate removes the cached PDF for doc rendered with opts.
func (r *Runner) Invalidate(ctx context.Context, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if opts.Document.PrintedAt.IsZero() {
		opts.Document.PrintedAt = r.now().Truncate(time.Minute)
	}
	data, err := json.Marshal(opts.Document)
	if err != nil {
		return err
	}
	return r.Cache.Delete(ctx, r.Keyer.ArtifactKey(cache.Hash(data), opts.ArtifactKeyOpts()))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now()
}

func (r *Runner) ttl() time.Duration {
	if r.TTL > 0 {
		return r.TTL
	}
	return cache.TTLArtifact
}
