// Package pipeline provides the parse and render pipeline shared by the CLI
// and the API server.
//
// Centralizing the steps keeps policy defaults, caching and instrumentation
// identical across entry points.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	res, err := runner.Parse(ctx, text, pipeline.Options{Identity: "windowed"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg, err := runner.Render(ctx, res.Graph, pipeline.OutputSVG)
//
// The package-level [Parse] and [Render] run the same steps without a cache.
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/USQVE/bleprint/pkg/cache"
	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/graph"
	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/parse/legacy"
)

// Node identity policies for legacy input.
const (
	IdentityLiteral  = "literal"
	IdentityWindowed = "windowed"
)

// Pin reuse policies for legacy input.
const (
	PinReuseType = "type"
	PinReuseName = "name"
)

// Default policies. The literal identity and type-keyed pin reuse match
// what the notation itself implies.
const (
	DefaultIdentity = IdentityLiteral
	DefaultPinReuse = PinReuseType
)

// Output names accepted by Render.
const (
	OutputJSON   = "json"
	OutputArrow  = "arrow"
	OutputTree   = "tree"
	OutputLegacy = "legacy"
	OutputExec   = "exec"
	OutputDOT    = "dot"
	OutputSVG    = "svg"
	OutputPNG    = "png"
	OutputPDF    = "pdf"
)

// Outputs lists every output in help-text order.
var Outputs = []string{
	OutputJSON, OutputArrow, OutputTree, OutputLegacy, OutputExec,
	OutputDOT, OutputSVG, OutputPNG, OutputPDF,
}

// Options configures a parse. Empty fields take the defaults above.
type Options struct {
	// Format forces a notation. Empty means detect.
	Format   string `json:"format,omitempty" toml:"format"`
	Identity string `json:"identity,omitempty" toml:"identity"`
	Window   int    `json:"window,omitempty" toml:"window"`
	PinReuse string `json:"pin_reuse,omitempty" toml:"pin_reuse"`
	// Strict fails the parse when any line was skipped.
	Strict bool `json:"strict,omitempty" toml:"strict"`
	// Refresh bypasses cached parse results.
	Refresh bool `json:"refresh,omitempty" toml:"-"`

	Logger *log.Logger `json:"-" toml:"-"`
}

// Result is a parsed graph with its provenance.
type Result struct {
	Graph       *graph.Graph
	Format      parse.Format
	Diagnostics []parse.Diagnostic
	CacheHit    bool
	Stats       Stats
}

// Stats summarizes a parse.
type Stats struct {
	NodeCount       int
	ConnectionCount int
	ParseTime       time.Duration
}

// ValidateOutput checks that an output name is known.
func ValidateOutput(output string) error {
	if !slices.Contains(Outputs, output) {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid output: %q (must be one of: %s)", output, strings.Join(Outputs, ", "))
	}
	return nil
}

// ValidateIdentity checks a node identity policy name.
func ValidateIdentity(identity string) error {
	switch identity {
	case IdentityLiteral, IdentityWindowed:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"invalid identity policy: %q (must be one of: literal, windowed)", identity)
}

// ValidatePinReuse checks a pin reuse policy name.
func ValidatePinReuse(reuse string) error {
	switch reuse {
	case PinReuseType, PinReuseName:
		return nil
	}
	return errors.New(errors.ErrCodeInvalidInput,
		"invalid pin reuse policy: %q (must be one of: type, name)", reuse)
}

// ValidateAndSetDefaults fills empty fields and rejects unknown values.
// Calling it twice has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.Format != "" {
		f, err := parse.ParseFormat(o.Format)
		if err != nil {
			return err
		}
		o.Format = string(f)
	}
	if o.Identity == "" {
		o.Identity = DefaultIdentity
	}
	if err := ValidateIdentity(o.Identity); err != nil {
		return err
	}
	if o.PinReuse == "" {
		o.PinReuse = DefaultPinReuse
	}
	if err := ValidatePinReuse(o.PinReuse); err != nil {
		return err
	}
	if o.Window < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "window must not be negative")
	}
	if o.Identity == IdentityWindowed && o.Window == 0 {
		o.Window = legacy.DefaultWindow
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// LegacyParser returns the legacy parser configured by the options.
func (o *Options) LegacyParser() legacy.Parser {
	var p legacy.Parser
	if o.Identity == IdentityWindowed {
		p.Identity = legacy.WindowedIdentity{Window: o.Window}
	} else {
		p.Identity = legacy.LiteralIdentity{}
	}
	if o.PinReuse == PinReuseName {
		p.Pins = legacy.ReuseByName{}
	} else {
		p.Pins = legacy.ReuseByType{}
	}
	return p
}

// ParseKeyOpts returns the cache key options for a parse.
func (o *Options) ParseKeyOpts() cache.ParseKeyOpts {
	return cache.ParseKeyOpts{
		Format:   o.Format,
		Identity: o.Identity,
		Window:   o.Window,
		PinReuse: o.PinReuse,
	}
}
