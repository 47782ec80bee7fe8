package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/podoc/pkg/buildinfo"
	"github.com/matzehuels/podoc/pkg/document"
	"github.com/matzehuels/podoc/pkg/errors"
	"github.com/matzehuels/podoc/pkg/pipeline"
	"github.com/matzehuels/podoc/pkg/render/po"
)

// RenderRequest is the body of the render and plan endpoints.
type RenderRequest struct {
	Document document.Document `json:"document"`
	Locale   string            `json:"locale,omitempty"`
	Currency string            `json:"currency,omitempty"`
	TimeZone string            `json:"time_zone,omitempty"`
	Refresh  bool              `json:"refresh,omitempty"`
}

// PlanResponse is returned by the plan endpoint.
type PlanResponse struct {
	Report       po.Report `json:"report"`
	DocumentHash string    `json:"document_hash"`
	CacheHit     bool      `json:"cache_hit"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	res, err := s.renderPosted(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePDF(w, res)
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	res, err := s.renderPosted(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, PlanResponse{
		Report:       res.Report,
		DocumentHash: res.DocumentHash,
		CacheHit:     res.CacheHit,
	})
}

func (s *Server) handleStoredPDF(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeUnsupported, "order lookup is not configured"))
		return
	}
	number, err := url.PathUnescape(chi.URLParam(r, "number"))
	if err != nil {
		s.writeError(w, r, errors.Wrap(errors.ErrCodeInvalidInput, err, "order number"))
		return
	}

	doc, err := s.store.FindDocument(r.Context(), number)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	doc.PrintedAt = s.printTime()

	opts := s.defaults
	opts.Document = doc
	if q := r.URL.Query().Get("locale"); q != "" {
		opts.Locale = q
	}
	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writePDF(w, res)
}

func (s *Server) renderPosted(w http.ResponseWriter, r *http.Request) (*pipeline.Result, error) {
	var req RenderRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode request body")
	}

	opts := s.defaults
	opts.Document = req.Document
	opts.Refresh = req.Refresh
	if req.Locale != "" {
		opts.Locale = req.Locale
	}
	if req.Currency != "" {
		opts.Currency = req.Currency
	}
	if req.TimeZone != "" {
		opts.TimeZone = req.TimeZone
	}
	if opts.Document.PrintedAt.IsZero() {
		opts.Document.PrintedAt = s.printTime()
	}
	return s.runner.Execute(r.Context(), opts)
}

// writePDF sends an inline PDF that clients must not cache.
func (s *Server) writePDF(w http.ResponseWriter, res *pipeline.Result) {
	number := res.Report.Order
	if number == "" {
		number = "draft"
	}
	filename := fmt.Sprintf("PO-%s-%d.pdf", sanitizeFilename(number), s.now().UnixMilli())

	h := w.Header()
	h.Set("Content-Type", "application/pdf")
	h.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", filename))
	h.Set("Content-Length", strconv.Itoa(len(res.PDF)))
	h.Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
	h.Set("Pragma", "no-cache")
	h.Set("Expires", "0")
	h.Set("X-PDF-Generated-At", res.Report.PrintedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"))
	h.Set("X-Document-Hash", res.DocumentHash)
	if res.Report.HasWarnings() {
		h.Set("X-Render-Warnings", strconv.Itoa(len(res.Report.Warnings)))
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

// printTime is the print timestamp of documents rendered now. It has
// minute precision like the printed footer, so repeated requests within a
// minute reuse the cached PDF.
func (s *Server) printTime() time.Time { return s.now().Truncate(time.Minute) }

// sanitizeFilename replaces the path separators order numbers may contain.
func sanitizeFilename(s string) string {
	out := []byte(s)
	for i, c := range out {
		if c == '/' || c == '\\' {
			out[i] = '-'
		}
	}
	return string(out)
}
