package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, warnings at warn
// level. It implements all three hook interfaces; the CLI registers it when
// --verbose is set.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) OnRenderStart(_ context.Context, order string, items int) {
	h.logger.Debug("render start", "order", order, "items", items)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, order string, s RenderSummary, d time.Duration, err error) {
	if err != nil {
		h.logger.Error("render failed", "order", order, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete",
		"order", order,
		"displayed", s.Displayed,
		"omitted", s.Omitted,
		"bytes", s.Bytes,
		"qr", s.ScanCodeEmbedded,
		"duration", d)
}

func (h *LogHooks) OnWarning(_ context.Context, order, code, message string) {
	h.logger.Warn(message, "order", order, "code", code)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "size", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}

var (
	_ RenderHooks = (*LogHooks)(nil)
	_ CacheHooks  = (*LogHooks)(nil)
	_ HTTPHooks   = (*LogHooks)(nil)
)
