package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/graph"
	bpio "github.com/USQVE/bleprint/pkg/io"
	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/pipeline"
)

// stdin is swapped out by tests.
var stdin io.Reader = os.Stdin

// parseOpts holds the flags shared by every command that reads a graph.
// Empty values fall back to the config file.
type parseOpts struct {
	format   string
	identity string
	window   int
	pinReuse string
	strict   bool
	refresh  bool
	noCache  bool
}

func (o *parseOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "", "input notation: arrow, tree, legacy, clipboard (default: detect)")
	cmd.Flags().StringVar(&o.identity, "identity", "", "legacy node identity: literal, windowed")
	cmd.Flags().IntVar(&o.window, "window", 0, "windowed identity look-back in lines")
	cmd.Flags().StringVar(&o.pinReuse, "pin-reuse", "", "legacy pin reuse: type, name")
	cmd.Flags().BoolVar(&o.strict, "strict", false, "fail when any input line is skipped")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "bypass cached parse results")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable caching")
	registerParseCompletions(cmd)
}

// options merges the flags over the configured parse defaults.
func (o *parseOpts) options(defaults pipeline.Options) pipeline.Options {
	opts := defaults
	if o.format != "" {
		opts.Format = o.format
	}
	if o.identity != "" {
		opts.Identity = o.identity
		if o.window == 0 {
			opts.Window = 0
		}
	}
	if o.window != 0 {
		opts.Window = o.window
	}
	if o.pinReuse != "" {
		opts.PinReuse = o.pinReuse
	}
	opts.Strict = opts.Strict || o.strict
	opts.Refresh = o.refresh
	return opts
}

// loaded is a graph read from a notation file or a JSON document.
type loaded struct {
	Graph       *graph.Graph
	Source      string // notation name, or "json"
	Diagnostics []parse.Diagnostic
	CacheHit    bool
}

// loadGraph reads path ("" or "-" for stdin). Files ending in .json are
// decoded as graph documents; everything else goes through the parser.
func (c *CLI) loadGraph(ctx context.Context, runner *pipeline.Runner, path string, o *parseOpts) (*loaded, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") && o.format == "" {
		g, err := bpio.ImportJSON(path)
		if err != nil {
			return nil, err
		}
		return &loaded{Graph: g, Source: pipeline.OutputJSON}, nil
	}

	text, err := readInput(path)
	if err != nil {
		return nil, err
	}

	opts := o.options(c.Config.Parse)
	opts.Logger = c.Logger
	res, err := runner.Parse(ctx, text, opts)
	if err != nil {
		return nil, err
	}
	for _, d := range res.Diagnostics {
		c.Logger.Debug("skipped", "line", d.Line, "reason", d.Reason)
	}
	return &loaded{
		Graph:       res.Graph,
		Source:      string(res.Format),
		Diagnostics: res.Diagnostics,
		CacheHit:    res.CacheHit,
	}, nil
}

// readInput returns the contents of path, or of stdin for "" and "-".
func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "" || path == "-" {
		data, err = io.ReadAll(io.LimitReader(stdin, errors.MaxTextSize+1))
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrap(errors.ErrCodeNotFound, err, "read %s", path)
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return string(data), nil
}

// writeOutput writes data to path, or to w when path is empty.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// inputArg returns the optional positional input argument.
func inputArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
