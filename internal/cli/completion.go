package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/USQVE/bleprint/pkg/parse"
	"github.com/USQVE/bleprint/pkg/pipeline"
)

var completionShells = map[string]func(root *cobra.Command, w io.Writer) error{
	"bash": func(root *cobra.Command, w io.Writer) error { return root.GenBashCompletionV2(w, true) },
	"zsh":  func(root *cobra.Command, w io.Writer) error { return root.GenZshCompletion(w) },
	"fish": func(root *cobra.Command, w io.Writer) error { return root.GenFishCompletion(w, true) },
	"powershell": func(root *cobra.Command, w io.Writer) error {
		return root.GenPowerShellCompletionWithDesc(w)
	},
}

func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion bash|zsh|fish|powershell",
		Short: "Print a shell completion script",
		Long: `Print a completion script for the given shell.

  source <(bleprint completion bash)
  bleprint completion zsh > "${fpath[1]}/_bleprint"
  bleprint completion fish > ~/.config/fish/completions/bleprint.fish`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			return completionShells[args[0]](cmd.Root(), cmd.OutOrStdout())
		},
	}
}

// completeFixed offers a fixed value list for a flag.
func completeFixed(values ...string) cobra.CompletionFunc {
	return func(*cobra.Command, []string, string) ([]cobra.Completion, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}

// registerParseCompletions wires value completion for the shared parse flags.
func registerParseCompletions(cmd *cobra.Command) {
	_ = cmd.RegisterFlagCompletionFunc("format", completeFixed(
		string(parse.FormatArrow), string(parse.FormatLegacy), string(parse.FormatTree), string(parse.FormatClipboard)))
	_ = cmd.RegisterFlagCompletionFunc("identity", completeFixed(pipeline.IdentityLiteral, pipeline.IdentityWindowed))
	_ = cmd.RegisterFlagCompletionFunc("pin-reuse", completeFixed(pipeline.PinReuseType, pipeline.PinReuseName))
}
