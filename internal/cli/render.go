package cli

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/USQVE/bleprint/pkg/pipeline"
	"github.com/USQVE/bleprint/pkg/render"
)

// pictureOutputs are the outputs the render command produces.
var pictureOutputs = []string{
	pipeline.OutputDOT, pipeline.OutputSVG, pipeline.OutputPNG, pipeline.OutputPDF,
}

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	parse   parseOpts
	output  string   // output file, or base path for several formats
	formats []string // dot, svg, png, pdf
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts       renderOpts
		formatsStr string
	)

	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a graph as a node-link diagram",
		Long: `Render a graph as a node-link diagram.

SVG is rendered with Graphviz. PNG and PDF are converted from the SVG with
rsvg-convert, which must be on PATH.

Examples:
  bleprint render flow.txt                       # flow.svg
  bleprint render -f svg,png -o out/flow flow.txt # out/flow.svg, out/flow.png
  bleprint render -f dot flow.json -o -           # DOT on stdout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := validateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd, inputArg(args), &opts)
		},
	}

	opts.parse.register(cmd)
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file (single format), base path (several), or "-" for stdout`)
	cmd.Flags().StringVarP(&formatsStr, "to", "t", "", "output format(s): svg (default), dot, png, pdf (comma-separated)")

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, input string, opts *renderOpts) error {
	ctx := cmd.Context()

	if needsConverter(opts.formats) && !render.Available() {
		return fmt.Errorf("png and pdf output need %s on PATH", render.ConverterBinary)
	}
	if opts.output == "-" && len(opts.formats) > 1 {
		return fmt.Errorf("stdout output takes a single format")
	}

	runner := c.newRunner(ctx, opts.parse.noCache)
	defer runner.Close()

	in, err := c.loadGraph(ctx, runner, input, &opts.parse)
	if err != nil {
		return err
	}

	var written []string
	for _, format := range opts.formats {
		sp := startSpinner(ctx, fmt.Sprintf("Rendering %s...", format))
		data, err := runner.Render(ctx, in.Graph, format)
		if err != nil {
			sp.fail("Rendering %s failed", format)
			return err
		}
		sp.stop()

		if opts.output == "-" {
			_, err := cmd.OutOrStdout().Write(data)
			return err
		}
		path := outputPath(opts.output, input, format, len(opts.formats) > 1)
		if err := writeOutput(nil, path, data); err != nil {
			return err
		}
		written = append(written, path)
	}

	printSuccess("Rendered %d node(s)", in.Graph.NodeCount())
	for _, p := range written {
		printFile(p)
	}
	return nil
}

// outputPath picks the file for one format. A single format written to an
// explicit path uses it as is; otherwise the extension is appended to the
// base (the output flag, or the input name without its extension).
func outputPath(output, input, format string, multi bool) string {
	if output != "" && !multi {
		return output
	}
	base := output
	if base == "" {
		base = strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
		if input == "" || input == "-" {
			base = "graph"
		}
	}
	return base + "." + format
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.OutputSVG}
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func validateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(pictureOutputs, f) {
			return fmt.Errorf("invalid format %q (must be one of: %s)", f, strings.Join(pictureOutputs, ", "))
		}
	}
	return nil
}

func needsConverter(formats []string) bool {
	return slices.Contains(formats, pipeline.OutputPNG) || slices.Contains(formats, pipeline.OutputPDF)
}
