package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a logger at debug level, and failed
// parses and renders at warn level.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to l.
func NewLogHooks(l *log.Logger) *LogHooks { return &LogHooks{Logger: l} }

func (h *LogHooks) OnParseStart(_ context.Context, format string) {
	h.Logger.Debug("parse start", "format", format)
}

func (h *LogHooks) OnParseComplete(_ context.Context, format string, nodes, diags int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("parse failed", "format", format, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("parse done", "format", format, "nodes", nodes, "skipped", diags, "elapsed", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, output string, nodes int) {
	h.Logger.Debug("render start", "output", output, "nodes", nodes)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, output string, d time.Duration, err error) {
	if err != nil {
		h.Logger.Warn("render failed", "output", output, "elapsed", d, "err", err)
		return
	}
	h.Logger.Debug("render done", "output", output, "elapsed", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "kind", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "kind", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "kind", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Info("response", "method", method, "route", route, "status", status, "elapsed", d)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)
