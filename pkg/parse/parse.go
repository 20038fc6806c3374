// Package parse defines the shared contract of the text notations that
// build a [graph.Graph].
//
// Parsers are lenient: a line they cannot use is skipped and recorded as a
// [Diagnostic] rather than failing the whole document. Callers that want
// all-or-nothing behavior check [Result.Strict].
//
// The notations live in subpackages:
//
//   - arrow: `A -> B` chains with optional `Name[in:T|out:T]` pin specs
//   - legacy: `[Node] (Pin - Color) → [Node] (Pin - Color)` lines
//   - asciitree: box-drawing trees (├──, └──, │)
//   - clipboard: editor `Begin Object` dumps (import only)
//   - universal: format sniffing across all of the above
package parse

import (
	"fmt"
	"strings"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/graph"
)

// Format names a text notation.
type Format string

const (
	FormatArrow     Format = "arrow"
	FormatTree      Format = "tree"
	FormatLegacy    Format = "legacy"
	FormatClipboard Format = "clipboard"
)

// Formats lists the notations in detection priority order.
var Formats = []Format{FormatClipboard, FormatTree, FormatLegacy, FormatArrow}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == strings.ToLower(s) {
			return f, nil
		}
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q", s)
}

// Diagnostic records one input line a parser skipped or only partly used.
type Diagnostic struct {
	Line   int    `json:"line"` // 1-based
	Text   string `json:"text"`
	Reason string `json:"reason"`
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("line %d: %s: %q", d.Line, d.Reason, d.Text)
}

// Result is a best-effort graph plus the diagnostics gathered building it.
type Result struct {
	Graph       *graph.Graph
	Format      Format
	Diagnostics []Diagnostic
}

// NewResult returns an empty result for the given format.
func NewResult(f Format) *Result {
	return &Result{Graph: graph.New(), Format: f}
}

// Skip records a diagnostic.
func (r *Result) Skip(line int, text, reason string) {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Line: line, Text: text, Reason: reason})
}

// Skipped returns the number of diagnostics.
func (r *Result) Skipped() int { return len(r.Diagnostics) }

// Strict returns an INVALID_INPUT error listing every diagnostic, or nil if
// the input was used in full.
func (r *Result) Strict() error {
	if len(r.Diagnostics) == 0 {
		return nil
	}
	lines := make([]string, len(r.Diagnostics))
	for i, d := range r.Diagnostics {
		lines[i] = d.String()
	}
	return errors.New(errors.ErrCodeInvalidInput, "%d line(s) skipped:\n%s",
		len(r.Diagnostics), strings.Join(lines, "\n"))
}

// Codec parses and generates one notation.
type Codec interface {
	Format() Format
	Analyze(text string) *Result
	Generate(g *graph.Graph) string
}

// Lines splits text into lines, accepting both \n and \r\n endings.
func Lines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}
