package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/USQVE/bleprint/pkg/pipeline"
)

// textOutputs are the outputs convert accepts; pictures go through render.
var textOutputs = []string{
	pipeline.OutputJSON, pipeline.OutputArrow, pipeline.OutputTree,
	pipeline.OutputLegacy, pipeline.OutputExec, pipeline.OutputDOT,
}

// parseCommand creates the parse command.
func (c *CLI) parseCommand() *cobra.Command {
	var (
		opts   parseOpts
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Parse blueprint text into a JSON graph document",
		Long: `Parse blueprint text into a JSON graph document.

The notation is detected from the text unless --format is given. Reads
stdin when no file (or "-") is given.

Examples:
  bleprint parse flow.txt
  pbpaste | bleprint parse --strict -o flow.json
  bleprint parse --format legacy --identity windowed --window 5 chain.txt`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, inputArg(args), &opts, pipeline.OutputJSON, output)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// convertCommand creates the convert command.
func (c *CLI) convertCommand() *cobra.Command {
	var (
		opts   parseOpts
		to     string
		output string
	)

	cmd := &cobra.Command{
		Use:   "convert [file]",
		Short: "Convert blueprint text between notations",
		Long: `Convert blueprint text between notations.

The input may be any notation or a .json graph document.

Examples:
  bleprint convert --to arrow chain.txt
  bleprint convert --to tree flow.json -o flow.tree`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(textOutputs, to) {
				return fmt.Errorf("invalid --to %q (must be one of: %s)", to, strings.Join(textOutputs, ", "))
			}
			return c.runConvert(cmd, inputArg(args), &opts, to, output)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVarP(&to, "to", "t", pipeline.OutputArrow, "target: "+strings.Join(textOutputs, ", "))
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")

	return cmd
}

// execCommand creates the exec command.
func (c *CLI) execCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "exec [file]",
		Short: "Print the execution tree of a graph",
		Long: `Print the execution tree of a graph.

Every node without an incoming Exec connection starts a tree; children
follow the Exec connections leaving it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runConvert(cmd, inputArg(args), &opts, pipeline.OutputExec, "")
		},
	}

	opts.register(cmd)

	return cmd
}

func (c *CLI) runConvert(cmd *cobra.Command, input string, opts *parseOpts, to, output string) error {
	ctx := cmd.Context()
	prog := newProgress(c.Logger)

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	in, err := c.loadGraph(ctx, runner, input, opts)
	if err != nil {
		return err
	}

	data, err := runner.Render(ctx, in.Graph, to)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
		return err
	}

	c.Logger.Debugf("converted %s to %s", in.Source, to)
	if output != "" {
		prog.done("converted", "output", to, "file", output)
		printSuccess("Converted %s to %s", in.Source, to)
		printFile(output)
		stats := in.Graph.Statistics()
		printGraphSummary(stats.NodeCount, stats.ConnectionCount, in.CacheHit)
		printDiagnostics(in.Diagnostics, 5)
		if to == pipeline.OutputJSON {
			printNextStep("Render it", appName+" render "+output)
		}
	}
	return nil
}
