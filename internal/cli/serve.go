package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/internal/server"
	"github.com/matzehuels/squiggle/pkg/observability"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve squiggles over HTTP",
		Long: `Run the HTTP API.

Routes:
  GET /healthz
  GET /seeds/{seed}/{svg|metadata|png|json|params}
  GET /tokens/{id}
  GET /tokens/{id}/{format}
  PUT /tokens/{id}   body: {"seed": "0x..."}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			observability.UseLogger(c.Logger)
			runner, err := c.newRunner(ctx, noCache, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			printInfo("Listening on %s", StyleLink.Render("http://"+displayAddr(addr)))
			return server.New(runner, c.Logger).ListenAndServe(ctx, server.Options{
				Addr:            addr,
				ReadTimeout:     cfg.Server.ReadTimeout.Duration,
				WriteTimeout:    cfg.Server.WriteTimeout.Duration,
				ShutdownTimeout: cfg.Server.ShutdownTimeout.Duration,
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
