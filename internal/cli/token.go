package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// tokenCommand creates the token command group.
func (c *CLI) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Register and resolve token seeds",
		Long: `Manage the token seed store.

Each token id maps to exactly one seed. Re-registering the same seed is a
no-op; registering a different seed for an existing token fails.`,
	}

	cmd.AddCommand(c.tokenPutCommand())
	cmd.AddCommand(c.tokenGetCommand())
	cmd.AddCommand(c.tokenURICommand())
	cmd.AddCommand(c.tokenCountCommand())

	return cmd
}

// tokenPutCommand creates the "token put" subcommand.
func (c *CLI) tokenPutCommand() *cobra.Command {
	var random bool

	cmd := &cobra.Command{
		Use:   "put <id> [seed]",
		Short: "Register the seed for a token",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := c.seedArg(args[1:], random)
			if err != nil {
				return err
			}

			runner, err := c.newRunner(cmd.Context(), true, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			id, err := runner.RegisterToken(cmd.Context(), args[0], seed)
			if err != nil {
				return err
			}

			printSuccess("Registered token %s", StyleHighlight.Render(id))
			printDetail("Seed: %s", seedLine(seed))
			printNextStep("Token URI", fmt.Sprintf("%s token uri %s", appName, id))
			return nil
		},
	}

	cmd.Flags().BoolVar(&random, "random", false, "register a random seed")
	return cmd
}

// tokenGetCommand creates the "token get" subcommand.
func (c *CLI) tokenGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Print the seed registered for a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			seed, err := runner.TokenSeed(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), seedLine(seed))
			return nil
		},
	}
}

// tokenURICommand creates the "token uri" subcommand.
func (c *CLI) tokenURICommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "uri <id>",
		Short: "Print the metadata data URI for a token",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), noCache, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			uri, err := runner.TokenURI(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), uri)
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the artifact cache")
	return cmd
}

// tokenCountCommand creates the "token count" subcommand.
func (c *CLI) tokenCountCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Print the number of registered tokens",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), true, true)
			if err != nil {
				return err
			}
			defer runner.Close()

			n, err := runner.Store.Count(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n)
			return nil
		},
	}
}

// seedLine formats a seed for display.
func seedLine(seed squiggle.Seed) string {
	return "0x" + seed.String()
}
