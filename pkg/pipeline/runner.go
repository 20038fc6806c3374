package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/charmbracelet/log"

	"github.com/USQVE/bleprint/pkg/cache"
	"github.com/USQVE/bleprint/pkg/graph"
	bpio "github.com/USQVE/bleprint/pkg/io"
	"github.com/USQVE/bleprint/pkg/observability"
	"github.com/USQVE/bleprint/pkg/parse"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner holds no per-request state, so multiple goroutines can share
// one Runner.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
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
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedParse is the cache representation of a parse result.
type cachedParse struct {
	Format      parse.Format       `json:"format"`
	Document    bpio.Document      `json:"document"`
	Diagnostics []parse.Diagnostic `json:"diagnostics,omitempty"`
}

// Parse reads text into a graph, serving repeated input from the cache.
// Strict parses that fail are never cached.
func (r *Runner) Parse(ctx context.Context, text string, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	key := r.Keyer.ParseKey(cache.Hash([]byte(text)), opts.ParseKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if res, ok := r.cachedParse(ctx, key, opts); ok {
			hooks.OnCacheHit(ctx, "parse")
			return res, nil
		}
		hooks.OnCacheMiss(ctx, "parse")
	}

	res, err := Parse(ctx, text, opts)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(cachedParse{
		Format:      res.Format,
		Document:    bpio.FromGraph(res.Graph),
		Diagnostics: res.Diagnostics,
	})
	if err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.ParseTTL); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "parse", len(data))
		}
	}

	r.Logger.Debug("parsed",
		"format", res.Format,
		"nodes", res.Stats.NodeCount,
		"connections", res.Stats.ConnectionCount,
		"skipped", len(res.Diagnostics),
		"duration", res.Stats.ParseTime)
	return res, nil
}

func (r *Runner) cachedParse(ctx context.Context, key string, opts Options) (*Result, bool) {
	start := time.Now()
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}

	var cp cachedParse
	if err := json.Unmarshal(data, &cp); err != nil {
		return nil, false
	}
	g, err := bpio.ToGraph(cp.Document)
	if err != nil {
		return nil, false
	}
	pr := &parse.Result{Graph: g, Format: cp.Format, Diagnostics: cp.Diagnostics}
	if opts.Strict {
		if err := pr.Strict(); err != nil {
			return nil, false
		}
	}

	res := newResult(pr, time.Since(start))
	res.CacheHit = true
	return res, true
}

// Render writes g in one output format. SVG, PNG and PDF outputs are
// cached by graph content.
func (r *Runner) Render(ctx context.Context, g *graph.Graph, output string) ([]byte, error) {
	if !expensive(output) {
		return Render(ctx, g, output)
	}

	var buf bytes.Buffer
	if err := bpio.WriteJSON(g, &buf); err != nil {
		return nil, err
	}
	key := r.Keyer.RenderKey(cache.Hash(buf.Bytes()), output)
	hooks := observability.Cache()

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		hooks.OnCacheHit(ctx, "render")
		return data, nil
	}
	hooks.OnCacheMiss(ctx, "render")

	data, err := Render(ctx, g, output)
	if err != nil {
		return nil, err
	}
	if err := r.Cache.Set(ctx, key, data, cache.RenderTTL); err == nil {
		hooks.OnCacheSet(ctx, "render", len(data))
	}
	return data, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
