package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/pipeline"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// generateOpts holds the flags shared by the single-artifact commands.
type generateOpts struct {
	output  string
	noCache bool
	refresh bool
	random  bool
	scale   float64
}

// artifactCommand creates a command rendering one artifact format for a seed.
func (c *CLI) artifactCommand(format, short string) *cobra.Command {
	return c.generateCommand(format, format, short)
}

// paramsCommand creates the "params" command (the json format).
func (c *CLI) paramsCommand() *cobra.Command {
	return c.generateCommand("params", pipeline.FormatJSON, "Print the parameters and path derived from a seed")
}

func (c *CLI) generateCommand(name, format, short string) *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   name + " [seed]",
		Short: short,
		Long: short + `.

The seed is 64 hex characters with an optional 0x prefix. Use --random to
draw a fresh seed instead; the chosen seed is logged so it can be replayed.`,
		Example: fmt.Sprintf(`  %[1]s %[2]s 0x1234592349abcdef1234567890abcdef0001567890abcdef1234567890abcdef
  %[1]s %[2]s --random -o squiggle.out`, appName, name),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, err := c.seedArg(args, opts.random)
			if err != nil {
				return err
			}
			return c.runGenerate(cmd, seed, format, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even if cached")
	cmd.Flags().BoolVar(&opts.random, "random", false, "use a random seed")
	if format == pipeline.FormatPNG {
		cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, fmt.Sprintf("PNG scale factor (%g to %g)", pipeline.MinScale, pipeline.MaxScale))
	}

	return cmd
}

// seedArg returns the seed named on the command line or a random one.
func (c *CLI) seedArg(args []string, random bool) (squiggle.Seed, error) {
	switch {
	case random && len(args) > 0:
		return squiggle.Seed{}, errors.New(errors.ErrCodeInvalidInput, "--random cannot be combined with a seed argument")
	case random:
		seed, err := squiggle.RandomSeed()
		if err != nil {
			return squiggle.Seed{}, err
		}
		c.Logger.Info("random seed", "seed", seed)
		return seed, nil
	case len(args) == 0:
		return squiggle.Seed{}, errors.New(errors.ErrCodeInvalidInput, "a seed argument or --random is required")
	}
	return errors.ParseSeed(args[0])
}

func (c *CLI) runGenerate(cmd *cobra.Command, seed squiggle.Seed, format string, opts generateOpts) error {
	ctx := cmd.Context()

	runner, err := c.newRunner(ctx, opts.noCache, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	result, err := runner.Execute(ctx, seed, pipeline.Options{
		Formats: []string{format},
		Scale:   opts.scale,
		Refresh: opts.refresh,
	})
	if err != nil {
		return err
	}
	data := result.Artifacts[format]

	c.Logger.Debug("rendered",
		"seed", seed,
		"format", format,
		"bytes", len(data),
		"cached", result.CacheInfo.AllHit,
		"took", result.Stats.RenderTime)

	if opts.output == "" {
		if format == pipeline.FormatPNG && stdoutIsTerminal() {
			return errors.New(errors.ErrCodeInvalidInput, "refusing to write PNG to a terminal, use -o")
		}
		out := cmd.OutOrStdout()
		if _, err := out.Write(data); err != nil {
			return err
		}
		if format == pipeline.FormatMetadata {
			fmt.Fprintln(out)
		}
		return nil
	}

	if err := os.WriteFile(opts.output, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "write %s", opts.output)
	}
	printSuccess("Rendered %s", format)
	printFile(opts.output)
	printArtifactStats(len(data), result.Stats.RenderTime, result.CacheInfo.AllHit)
	return nil
}

// decodeCommand creates the "decode" command inspecting a metadata data URI.
func (c *CLI) decodeCommand() *cobra.Command {
	var svgOut string

	cmd := &cobra.Command{
		Use:   "decode <uri|file>",
		Short: "Decode a metadata data URI",
		Long: `Decode a data:application/json;base64 metadata URI and print its fields.

The argument is either the URI itself or a file containing it. With --svg the
embedded image is written to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := args[0]
			if data, err := os.ReadFile(uri); err == nil {
				uri = string(data)
			}

			md, svg, err := squiggle.DecodeMetadata(strings.TrimSpace(uri))
			if err != nil {
				return err
			}

			printKeyValue("Name", md.Name)
			printKeyValue("Description", md.Description)
			printKeyValue("Image", fmt.Sprintf("%d bytes SVG", len(svg)))

			if svgOut != "" {
				if err := os.WriteFile(svgOut, svg, 0o644); err != nil {
					return errors.Wrap(errors.ErrCodeStorage, err, "write %s", svgOut)
				}
				printFile(svgOut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&svgOut, "svg", "", "write the embedded SVG to this file")
	return cmd
}
