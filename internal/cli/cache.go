package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/internal/config"
	"github.com/matzehuels/squiggle/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect or empty the local artifact cache",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "clear",
			Short: "Remove every cached artifact",
			Args:  cobra.NoArgs,
			RunE: func(*cobra.Command, []string) error {
				return c.clearCache()
			},
		},
		&cobra.Command{
			Use:   "path",
			Short: "Print the file cache directory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := c.config()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), cfg.Cache.Dir)
				return err
			},
		},
	)
	return cmd
}

// clearCache empties the file cache. Shared backends are left alone.
func (c *CLI) clearCache() error {
	cfg, err := c.config()
	if err != nil {
		return err
	}
	if cfg.Cache.Backend != config.CacheFile {
		printWarning("Cache backend is %q, only the file cache can be cleared", cfg.Cache.Backend)
		return nil
	}
	if _, err := os.Stat(cfg.Cache.Dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(cfg.Cache.Dir)
	if err != nil {
		return err
	}
	n, err := fc.(*cache.FileCache).Clear()
	if err != nil {
		return err
	}
	printSuccess("Cleared %d cached entries", n)
	printDetail("Directory: %s", cfg.Cache.Dir)
	return nil
}
