package cli

import (
	"github.com/spf13/cobra"

	"github.com/USQVE/bleprint/internal/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		Long: `Serve the HTTP API.

The cache and graph store backends come from the config file. Stops
gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := c.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			st, err := c.newStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			runner := c.newRunner(ctx, noCache)
			defer runner.Close()

			srv := server.New(runner, st, c.Logger, cfg)
			srv.Defaults = c.Config.Parse

			printInfo("Listening on %s", StyleHighlight.Render(cfg.Addr))
			printDetail("cache: %s  store: %s", c.Config.Cache.Backend, c.Config.Store.Backend)
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
