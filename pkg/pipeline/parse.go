package pipeline

import (
	"context"
	"time"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/observability"
	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/parse/universal"
)

// Parse reads text into a graph without caching.
func Parse(ctx context.Context, text string, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := errors.ValidateText(text); err != nil {
		return nil, err
	}

	d := universal.Dispatcher{Legacy: opts.LegacyParser()}
	format := parse.Format(opts.Format)
	if format == "" {
		format = universal.Detect(text)
	}

	hooks := observability.Pipeline()
	hooks.OnParseStart(ctx, string(format))
	start := time.Now()

	res := d.Codec(format).Analyze(text)
	err := ctx.Err()
	if err == nil && opts.Strict {
		err = res.Strict()
	}

	elapsed := time.Since(start)
	hooks.OnParseComplete(ctx, string(format), res.Graph.NodeCount(), len(res.Diagnostics), elapsed, err)
	if err != nil {
		return nil, err
	}

	for _, d := range res.Diagnostics {
		opts.Logger.Debug("skipped line", "line", d.Line, "reason", d.Reason)
	}
	return newResult(res, elapsed), nil
}

func newResult(res *parse.Result, elapsed time.Duration) *Result {
	stats := res.Graph.Statistics()
	return &Result{
		Graph:       res.Graph,
		Format:      res.Format,
		Diagnostics: res.Diagnostics,
		Stats: Stats{
			NodeCount:       stats.NodeCount,
			ConnectionCount: stats.ConnectionCount,
			ParseTime:       elapsed,
		},
	}
}
