package cli

import (
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/USQVE/bleprint/pkg/graph"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Summarize a graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, opts.noCache)
			defer runner.Close()

			in, err := c.loadGraph(ctx, runner, inputArg(args), &opts)
			if err != nil {
				return err
			}
			writeStats(cmd.OutOrStdout(), in)
			return nil
		},
	}

	opts.register(cmd)

	return cmd
}

// writeStats prints the summary block followed by a per-category table.
func writeStats(w io.Writer, in *loaded) {
	stats := in.Graph.Statistics()
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	line := func(k, v string) {
		fmt.Fprintln(w, keyStyle.Render(k)+" "+StyleValue.Render(v))
	}

	line("Source", in.Source)
	line("Nodes", strconv.Itoa(stats.NodeCount))
	line("Connections", strconv.Itoa(stats.ConnectionCount))
	line("Skipped", strconv.Itoa(len(in.Diagnostics)))

	rows := categoryRows(in.Graph)
	if len(rows) == 0 {
		return
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Category", "Nodes", "Inputs", "Outputs").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return lipgloss.NewStyle().Foreground(colorGray).Bold(true)
			}
			if col == 0 {
				return lipgloss.NewStyle().Foreground(colorCyan)
			}
			return lipgloss.NewStyle()
		})
	fmt.Fprintln(w)
	fmt.Fprintln(w, t.Render())
}

// categoryRows counts nodes and pins per category, sorted by category.
func categoryRows(g *graph.Graph) [][]string {
	type counts struct{ nodes, in, out int }
	byCat := map[string]*counts{}
	for _, n := range g.Nodes() {
		cat := n.Category
		if cat == "" {
			cat = "-"
		}
		ct, ok := byCat[cat]
		if !ok {
			ct = &counts{}
			byCat[cat] = ct
		}
		ct.nodes++
		ct.in += len(n.Inputs)
		ct.out += len(n.Outputs)
	}

	cats := make([]string, 0, len(byCat))
	for cat := range byCat {
		cats = append(cats, cat)
	}
	sort.Strings(cats)

	rows := make([][]string, len(cats))
	for i, cat := range cats {
		ct := byCat[cat]
		rows[i] = []string{cat, strconv.Itoa(ct.nodes), strconv.Itoa(ct.in), strconv.Itoa(ct.out)}
	}
	return rows
}
