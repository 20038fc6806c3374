// Package observability lets the pipeline, cache and API server report
// events without depending on a metrics or tracing backend.
//
// Library code calls the registered hooks:
//
//	observability.Pipeline().OnParseStart(ctx, "legacy")
//
// and a binary installs whatever it wants to receive them, once, before
// doing any work:
//
//	observability.SetPipelineHooks(observability.NewLogHooks(logger))
//
// Nothing is registered by default; every accessor then returns a no-op.
package observability

import (
	"context"
	"sync/atomic"
	"time"
)

// PipelineHooks receives parse and render events.
type PipelineHooks interface {
	OnParseStart(ctx context.Context, format string)
	OnParseComplete(ctx context.Context, format string, nodeCount, diagnostics int, duration time.Duration, err error)

	OnRenderStart(ctx context.Context, output string, nodeCount int)
	OnRenderComplete(ctx context.Context, output string, duration time.Duration, err error)
}

// CacheHooks receives cache lookups and writes. keyType is "parse" or
// "render".
type CacheHooks interface {
	OnCacheHit(ctx context.Context, keyType string)
	OnCacheMiss(ctx context.Context, keyType string)
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// HTTPHooks receives API server traffic. OnResponse gets the matched route
// pattern, not the raw path.
type HTTPHooks interface {
	OnRequest(ctx context.Context, method, path string)
	OnResponse(ctx context.Context, method, route string, statusCode int, duration time.Duration)
}

// Noop implements every hook interface and does nothing.
type Noop struct{}

func (Noop) OnParseStart(context.Context, string)                                   {}
func (Noop) OnParseComplete(context.Context, string, int, int, time.Duration, error) {}
func (Noop) OnRenderStart(context.Context, string, int)                             {}
func (Noop) OnRenderComplete(context.Context, string, time.Duration, error)         {}
func (Noop) OnCacheHit(context.Context, string)                                     {}
func (Noop) OnCacheMiss(context.Context, string)                                    {}
func (Noop) OnCacheSet(context.Context, string, int)                                {}
func (Noop) OnRequest(context.Context, string, string)                              {}
func (Noop) OnResponse(context.Context, string, string, int, time.Duration)         {}

// slot holds one registered hook set. The zero slot yields fallback.
type slot[T any] struct {
	p atomic.Pointer[T]
}

func (s *slot[T]) get(fallback T) T {
	if h := s.p.Load(); h != nil {
		return *h
	}
	return fallback
}

func (s *slot[T]) set(h T) { s.p.Store(&h) }

func (s *slot[T]) reset() { s.p.Store(nil) }

var (
	pipelineSlot slot[PipelineHooks]
	cacheSlot    slot[CacheHooks]
	httpSlot     slot[HTTPHooks]
)

// SetPipelineHooks registers h. A nil h is ignored.
func SetPipelineHooks(h PipelineHooks) {
	if h != nil {
		pipelineSlot.set(h)
	}
}

// SetCacheHooks registers h. A nil h is ignored.
func SetCacheHooks(h CacheHooks) {
	if h != nil {
		cacheSlot.set(h)
	}
}

// SetHTTPHooks registers h. A nil h is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h != nil {
		httpSlot.set(h)
	}
}

func Pipeline() PipelineHooks { return pipelineSlot.get(Noop{}) }

func Cache() CacheHooks { return cacheSlot.get(Noop{}) }

func HTTP() HTTPHooks { return httpSlot.get(Noop{}) }

// Reset drops every registered hook. Tests use it to undo Set calls.
func Reset() {
	pipelineSlot.reset()
	cacheSlot.reset()
	httpSlot.reset()
}
