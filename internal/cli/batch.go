package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/pipeline"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// fileExtensions maps formats to the extension used for batch output files.
var fileExtensions = map[string]string{
	pipeline.FormatSVG:      ".svg",
	pipeline.FormatMetadata: ".txt",
	pipeline.FormatPNG:      ".png",
	pipeline.FormatJSON:     ".json",
}

// batchOpts holds the batch command flags.
type batchOpts struct {
	count       int
	seedsFile   string
	formats     string
	outDir      string
	concurrency int
	scale       float64
	noCache     bool
}

// batchCommand creates the batch command rendering many seeds concurrently.
func (c *CLI) batchCommand() *cobra.Command {
	var opts batchOpts

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Render many seeds into a directory",
		Long: `Render artifacts for many seeds concurrently.

Seeds are read from --seeds (one hex seed per line, blank lines and # comments
ignored) or drawn at random with --count. Each artifact is written to
<out>/<seed><ext>.`,
		Example: `  squiggle batch --count 20 --formats svg,png --out gallery
  squiggle batch --seeds seeds.txt --formats metadata`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runBatch(cmd.Context(), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.count, "count", "n", 0, "number of random seeds")
	cmd.Flags().StringVar(&opts.seedsFile, "seeds", "", "file with one seed per line")
	cmd.Flags().StringVarP(&opts.formats, "formats", "f", pipeline.FormatSVG, "comma-separated formats: "+strings.Join(pipeline.FormatNames(), ","))
	cmd.Flags().StringVarP(&opts.outDir, "out", "o", ".", "output directory")
	cmd.Flags().IntVarP(&opts.concurrency, "concurrency", "j", runtime.NumCPU(), "parallel renders")
	cmd.Flags().Float64Var(&opts.scale, "scale", pipeline.DefaultScale, "PNG scale factor")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.MarkFlagsMutuallyExclusive("count", "seeds")

	return cmd
}

func (c *CLI) runBatch(ctx context.Context, opts batchOpts) error {
	seeds, err := batchSeeds(opts)
	if err != nil {
		return err
	}

	pipeOpts := pipeline.Options{Formats: parseFormats(opts.formats), Scale: opts.scale}
	if err := pipeOpts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if err := os.MkdirAll(opts.outDir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", opts.outDir)
	}

	runner, err := c.newRunner(ctx, opts.noCache, false)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering 0/%d seeds...", len(seeds)))
	spinner.Start()

	var done, hits atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.concurrency, 1))

	for _, seed := range seeds {
		g.Go(func() error {
			result, err := runner.Execute(gctx, seed, pipeOpts)
			if err != nil {
				return fmt.Errorf("seed %s: %w", seed, err)
			}
			for format, data := range result.Artifacts {
				path := filepath.Join(opts.outDir, seed.String()+fileExtensions[format])
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return errors.Wrap(errors.ErrCodeStorage, err, "write %s", path)
				}
			}
			if result.CacheInfo.AllHit {
				hits.Add(1)
			}
			spinner.SetMessage(fmt.Sprintf("Rendering %d/%d seeds...", done.Add(1), len(seeds)))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		spinner.StopWithError(fmt.Sprintf("Rendered %d/%d seeds", done.Load(), len(seeds)))
		return err
	}
	spinner.StopWithSuccess(fmt.Sprintf("Rendered %d seeds into %s", len(seeds), opts.outDir))
	prog.done("batch complete", "formats", strings.Join(pipeOpts.Formats, ","), "cached", hits.Load())
	if n := hits.Load(); n > 0 {
		printDetail("%d served from cache", n)
	}
	return nil
}

// batchSeeds resolves the seed list from either a file or a random count.
func batchSeeds(opts batchOpts) ([]squiggle.Seed, error) {
	if opts.seedsFile != "" {
		return readSeeds(opts.seedsFile)
	}
	if opts.count <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "either --count or --seeds is required")
	}
	seeds := make([]squiggle.Seed, opts.count)
	for i := range seeds {
		seed, err := squiggle.RandomSeed()
		if err != nil {
			return nil, err
		}
		seeds[i] = seed
	}
	return seeds, nil
}

// readSeeds parses one seed per line, skipping blanks and # comments.
func readSeeds(path string) ([]squiggle.Seed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open seeds file %s", path)
	}
	defer f.Close()

	var seeds []squiggle.Seed
	sc := bufio.NewScanner(f)
	for line := 1; sc.Scan(); line++ {
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		seed, err := errors.ParseSeed(text)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, line, err)
		}
		seeds = append(seeds, seed)
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "read seeds file %s", path)
	}
	if len(seeds) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no seeds in %s", path)
	}
	return seeds, nil
}
