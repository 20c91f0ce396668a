package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/galaxy/internal/server"
)

// serveCommand creates the serve command for the HTTP service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the generation API over HTTP",
		Long: `Serve the generation API over HTTP.

Routes:
  GET  /healthz
  POST /v1/galaxies
  GET  /v1/galaxies/{id}
  GET  /v1/galaxies/{id}/points.{json,ply,csv}
  GET  /v1/stream   (WebSocket)

Cache and run store backends come from the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			st, err := c.newStore(ctx)
			if err != nil {
				return fmt.Errorf("open run store: %w", err)
			}
			defer st.Close()

			c.Logger.Info("starting server",
				"addr", addr,
				"cache", c.cfg.Cache.Backend,
				"store", c.cfg.Store.Backend)
			return server.New(runner, st, c.Logger).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.cfg.Server.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
