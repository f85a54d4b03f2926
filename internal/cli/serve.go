package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/procview/internal/server"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr string
		cf   catalogFlags
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}
			svc, closeStore, err := c.newService(ctx, &cf)
			if err != nil {
				return err
			}
			defer closeStore()

			c.Logger.Info("starting server", "addr", addr, "store", cfg.Store.Backend)
			srv := server.New(server.Config{
				Addr:            addr,
				Service:         svc,
				Logger:          c.Logger,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			})
			return srv.Serve(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cf.register(cmd)
	return cmd
}
