// Command squiggle renders deterministic squiggle art from 32-byte seeds.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/internal/cli"
	squiggleerrors "github.com/matzehuels/squiggle/pkg/errors"
)

// Exit codes.
const (
	exitError       = 1
	exitUsage       = 2   // bad seed, token id, format or config
	exitInterrupted = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		os.Exit(report(err))
	}
}

func run(ctx context.Context) error {
	var verbose bool

	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	next := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if next != nil {
			return next(cmd, args)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}

// report prints err and returns the process exit code for it.
func report(err error) int {
	if errors.Is(err, context.Canceled) {
		return exitInterrupted
	}

	fmt.Fprintln(os.Stderr, "Error:", err)

	switch squiggleerrors.GetCode(err) {
	case squiggleerrors.ErrCodeInvalidInput,
		squiggleerrors.ErrCodeInvalidSeed,
		squiggleerrors.ErrCodeInvalidToken,
		squiggleerrors.ErrCodeInvalidFormat,
		squiggleerrors.ErrCodeInvalidConfig:
		return exitUsage
	}
	return exitError
}
