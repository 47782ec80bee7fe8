// Package server exposes purchase order rendering over HTTP.
//
// # Routes
//
//	GET  /healthz                          liveness and version
//	POST /v1/purchase-orders/render        render the posted document, returns the PDF
//	POST /v1/purchase-orders/plan          render the posted document, returns the layout report
//	GET  /v1/purchase-orders/{number}/pdf  render a stored order, returns the PDF
//
// Order numbers containing "/" must be escaped as %2F in the path.
//
// PDF responses are never cacheable by clients: every response is a fresh
// print with its own timestamp, named PO-<number>-<unix millis>.pdf, and
// carries the print time in X-PDF-Generated-At. Server-side reuse happens in
// the [pipeline.Runner] cache instead.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/podoc/pkg/pipeline"
	"github.com/matzehuels/podoc/pkg/store"
)

// MaxBodyBytes limits the size of posted documents.
const MaxBodyBytes = 4 << 20

// Options configures a [Server].
type Options struct {
	Runner *pipeline.Runner
	Store  store.OrderStore // nil disables GET by number
	Logger *log.Logger

	// Defaults fill the render options of requests that leave them empty.
	Locale   string
	Currency string
	TimeZone string

	Now func() time.Time
}

// Server handles the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	store    store.OrderStore
	logger   *log.Logger
	defaults pipeline.Options
	now      func() time.Time
}

// New returns a server. Runner is required.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Server{
		runner: opts.Runner,
		store:  opts.Store,
		logger: opts.Logger,
		defaults: pipeline.Options{
			Locale:   opts.Locale,
			Currency: opts.Currency,
			TimeZone: opts.TimeZone,
		},
		now: opts.Now,
	}
}

// Handler returns the routed handler with middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1/purchase-orders", func(r chi.Router) {
		r.Post("/render", s.handleRender)
		r.Post("/plan", s.handlePlan)
		r.Get("/{number}/pdf", s.handleStoredPDF)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully, waiting up to ten seconds for in-flight renders.
func (s *Server) ListenAndServe(ctx context.Context, addr string, readTimeout, writeTimeout time.Duration) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.Handler(),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
