package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/internal/worker"
	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/observability"
)

// workerCommand creates the worker command answering NATS requests.
func (c *CLI) workerCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "worker",
		Short: "Answer squiggle requests over NATS",
		Long: `Run a NATS responder.

The worker joins the configured queue group on <subject>.svg,
<subject>.metadata and <subject>.token. Start several workers to share load.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.config()
			if err != nil {
				return err
			}

			observability.UseLogger(c.Logger)
			runner, err := c.newRunner(ctx, noCache, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			c.Logger.Info("connecting to NATS", "url", cfg.NATS.URL)
			nc, err := worker.Connect(cfg.NATS.URL)
			if err != nil {
				return err
			}
			defer nc.Close()

			w := worker.New(nc, runner, c.Logger, worker.Options{
				Subject: cfg.NATS.Subject,
				Queue:   cfg.NATS.Queue,
			})
			return w.Run(ctx)
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// requestCommand creates the request command, a NATS client for the worker.
func (c *CLI) requestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request <kind> <seed|token>",
		Short: "Send a request to a running worker",
		Long: fmt.Sprintf(`Send a request to a squiggle worker over NATS and print the reply.

Kinds: %s`, strings.Join(worker.Kinds, ", ")),
		Example: `  squiggle request metadata 0x1234592349abcdef1234567890abcdef0001567890abcdef1234567890abcdef
  squiggle request token 42`,
		Args:      cobra.ExactArgs(2),
		ValidArgs: worker.Kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			if !slices.Contains(worker.Kinds, args[0]) {
				return errors.New(errors.ErrCodeInvalidInput, "unknown request kind %q (want one of %s)", args[0], strings.Join(worker.Kinds, ", "))
			}

			nc, err := worker.Connect(cfg.NATS.URL)
			if err != nil {
				return err
			}
			defer nc.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.NATS.Timeout.Duration)
			defer cancel()

			reply, err := worker.NewClient(nc, cfg.NATS.Subject).Request(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(reply); err != nil {
				return err
			}
			if args[0] != worker.KindSVG {
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	return cmd
}
