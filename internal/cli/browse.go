package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

// browseCommand creates the interactive node browser.
func (c *CLI) browseCommand() *cobra.Command {
	var opts parseOpts

	cmd := &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse the nodes of a graph interactively",
		Long: `Browse the nodes of a graph interactively.

The file may be any notation or a .json graph document. Stdin is reserved
for the keyboard, so a file is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := c.newRunner(ctx, opts.noCache)
			defer runner.Close()

			in, err := c.loadGraph(ctx, runner, args[0], &opts)
			if err != nil {
				return err
			}
			if in.Graph.NodeCount() == 0 {
				printWarning("No nodes in %s", args[0])
				return nil
			}

			p := tea.NewProgram(NewNodeListModel(in.Graph), tea.WithContext(ctx), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	opts.register(cmd)

	return cmd
}
