package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/internal/config"
	"github.com/matzehuels/squiggle/pkg/buildinfo"
	"github.com/matzehuels/squiggle/pkg/cache"
	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/pipeline"
	"github.com/matzehuels/squiggle/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "squiggle"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Squiggle renders deterministic generative art from 32-byte seeds",
		Long:         `Squiggle derives a gradient-stroked curve from a 32-byte seed and packages it as an SVG document and a base64 JSON metadata data URI. The same seed always yields the same bytes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	// Register all subcommands
	root.AddCommand(c.artifactCommand(pipeline.FormatSVG, "Render the SVG document for a seed"))
	root.AddCommand(c.artifactCommand(pipeline.FormatMetadata, "Render the metadata data URI for a seed"))
	root.AddCommand(c.paramsCommand())
	root.AddCommand(c.artifactCommand(pipeline.FormatPNG, "Render a PNG preview for a seed"))
	root.AddCommand(c.decodeCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.tokenCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.workerCommand())
	root.AddCommand(c.requestCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Configuration
// =============================================================================

// config loads the configuration once per process.
func (c *CLI) config() (*config.Config, error) {
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil && lvl < c.Logger.GetLevel() {
		c.Logger.SetLevel(lvl)
	}
	c.cfg = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner with the configured cache. The seed
// store is only opened when withStore is set; render-only commands get an
// empty in-memory store so an unreachable store backend cannot fail them.
func (c *CLI) newRunner(ctx context.Context, noCache, withStore bool) (*pipeline.Runner, error) {
	cfg, err := c.config()
	if err != nil {
		return nil, err
	}

	ch, keyer, err := c.openCache(ctx, cfg, noCache)
	if err != nil {
		return nil, err
	}
	var st store.Store
	if withStore {
		if st, err = c.openStore(ctx, cfg); err != nil {
			_ = ch.Close()
			return nil, err
		}
	}

	runner := pipeline.NewRunner(ch, keyer, st, c.Logger)
	runner.ArtifactTTL = cfg.Cache.TTL.Duration
	return runner, nil
}

func (c *CLI) openCache(ctx context.Context, cfg *config.Config, noCache bool) (cache.Cache, cache.Keyer, error) {
	if noCache {
		return cache.NewNullCache(), nil, nil
	}
	switch cfg.Cache.Backend {
	case config.CacheRedis:
		c.Logger.Debug("connecting to redis", "addr", cfg.Redis.Addr)
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeNetwork, err, "redis cache at %s", cfg.Redis.Addr)
		}
		return rc, cache.NewScopedKeyer(nil, cfg.Redis.Prefix), nil
	case config.CacheNone:
		return cache.NewNullCache(), nil, nil
	default:
		fc, err := cache.NewFileCache(cfg.Cache.Dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable, caching disabled", "dir", cfg.Cache.Dir, "error", err)
			return cache.NewNullCache(), nil, nil
		}
		return fc, nil, nil
	}
}

func (c *CLI) openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case config.StoreMongo:
		c.Logger.Debug("connecting to mongo", "database", cfg.Mongo.Database)
		ms, err := store.NewMongoStore(ctx, store.MongoOptions{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
			Timeout:    cfg.Mongo.Timeout.Duration,
		})
		if err != nil {
			return nil, err
		}
		return ms, nil
	case config.StoreMemory:
		return store.NewMemoryStore(), nil
	default:
		fs, err := store.NewFileStore(cfg.Store.Path)
		if err != nil {
			return nil, err
		}
		return fs, nil
	}
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// stdoutIsTerminal reports whether stdout is a character device.
func stdoutIsTerminal() bool {
	fi, err := os.Stdout.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
