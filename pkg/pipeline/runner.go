package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/squiggle/pkg/cache"
	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/observability"
	"github.com/matzehuels/squiggle/pkg/squiggle"
	"github.com/matzehuels/squiggle/pkg/store"
)

// Runner encapsulates pipeline execution with caching.
// CLI, HTTP server and NATS worker all use this to avoid duplicating
// caching logic.
//
// The Runner is stateless except for its backends - it doesn't store
// pipeline results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Store  store.Store
	Logger *log.Logger

	// ArtifactTTL overrides cache.TTLArtifact when positive.
	ArtifactTTL time.Duration
}

// NewRunner creates a runner with the given backends.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// If s is nil, an empty MemoryStore is used.
func NewRunner(c cache.Cache, keyer cache.Keyer, s store.Store, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if s == nil {
		s = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Store:  s,
		Logger: logger,
	}
}

// Execute renders every requested format for seed, serving cached
// artifacts where available.
func (r *Runner) Execute(ctx context.Context, seed squiggle.Seed, opts Options) (result *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	seedHex := seed.String()
	start := time.Now()
	observability.Generate().OnGenerateStart(ctx, seedHex, opts.Formats)
	defer func() {
		observability.Generate().OnGenerateComplete(ctx, seedHex, opts.Formats, time.Since(start), err)
	}()

	result = &Result{
		Seed:      seed,
		Params:    squiggle.DeriveParams(seed),
		Artifacts: make(map[string][]byte, len(opts.Formats)),
		CacheInfo: CacheInfo{Hits: make(map[string]bool, len(opts.Formats))},
	}

	var missing []string
	for _, format := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if opts.Refresh {
			missing = append(missing, format)
			continue
		}
		key := r.Keyer.ArtifactKey(seedHex, opts.ArtifactKeyOpts(format))
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil {
			opts.Logger.Warn("cache read failed", "format", format, "error", err)
		}
		if err == nil && hit {
			observability.Cache().OnCacheHit(ctx, format)
			result.Artifacts[format] = data
			result.CacheInfo.Hits[format] = true
			continue
		}
		observability.Cache().OnCacheMiss(ctx, format)
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		renderOpts := opts
		renderOpts.Formats = missing
		rendered, err := Render(seed, renderOpts)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", seedHex)
		}
		for format, data := range rendered {
			result.Artifacts[format] = data
			key := r.Keyer.ArtifactKey(seedHex, opts.ArtifactKeyOpts(format))
			if err := r.Cache.Set(ctx, key, data, r.artifactTTL()); err != nil {
				opts.Logger.Warn("cache write failed", "format", format, "error", err)
				continue
			}
			observability.Cache().OnCacheSet(ctx, format, len(data))
		}
	}

	result.CacheInfo.AllHit = len(missing) == 0
	result.Stats.RenderTime = time.Since(start)
	for _, data := range result.Artifacts {
		result.Stats.Bytes += len(data)
	}

	opts.Logger.Debug("rendered outputs",
		"seed", seedHex,
		"formats", opts.Formats,
		"cached", result.CacheInfo.AllHit,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// Artifact is a convenience wrapper that renders a single format.
func (r *Runner) Artifact(ctx context.Context, seed squiggle.Seed, format string, opts Options) ([]byte, error) {
	opts.Formats = []string{format}
	result, err := r.Execute(ctx, seed, opts)
	if err != nil {
		return nil, err
	}
	return result.Artifacts[format], nil
}

// RegisterToken assigns seed to tokenID. The id is normalized first, so
// "007" and "7" refer to the same token.
func (r *Runner) RegisterToken(ctx context.Context, tokenID string, seed squiggle.Seed) (string, error) {
	id, err := errors.NormalizeTokenID(tokenID)
	if err != nil {
		return "", err
	}
	if err := r.Store.Put(ctx, id, seed); err != nil {
		return "", err
	}
	r.Logger.Info("registered token", "token", id, "seed", seed.String())
	return id, nil
}

// TokenSeed resolves the seed assigned to tokenID, consulting the cache
// before the store.
func (r *Runner) TokenSeed(ctx context.Context, tokenID string) (seed squiggle.Seed, err error) {
	id, err := errors.NormalizeTokenID(tokenID)
	if err != nil {
		return squiggle.Seed{}, err
	}

	start := time.Now()
	defer func() {
		observability.Generate().OnTokenResolve(ctx, id, time.Since(start), err)
	}()

	key := r.Keyer.TokenKey(id)
	if data, hit, cerr := r.Cache.Get(ctx, key); cerr == nil && hit {
		if s, perr := squiggle.ParseSeed(string(data)); perr == nil {
			observability.Cache().OnCacheHit(ctx, "token")
			return s, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "token")

	seed, err = r.Store.Get(ctx, id)
	if err != nil {
		return squiggle.Seed{}, err
	}
	if cerr := r.Cache.Set(ctx, key, []byte(seed.String()), cache.TTLToken); cerr == nil {
		observability.Cache().OnCacheSet(ctx, "token", len(seed.String()))
	}
	return seed, nil
}

// TokenURI returns the metadata data URI of a registered token: the stored
// seed run through the metadata packager.
func (r *Runner) TokenURI(ctx context.Context, tokenID string) (string, error) {
	seed, err := r.TokenSeed(ctx, tokenID)
	if err != nil {
		return "", err
	}
	data, err := r.Artifact(ctx, seed, FormatMetadata, Options{})
	if err != nil {
		return "", fmt.Errorf("token %s: %w", tokenID, err)
	}
	return string(data), nil
}

// Close releases resources held by the runner (cache and store).
func (r *Runner) Close() error {
	var firstErr error
	if r.Cache != nil {
		firstErr = r.Cache.Close()
	}
	if r.Store != nil {
		if err := r.Store.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (r *Runner) artifactTTL() time.Duration {
	if r.ArtifactTTL > 0 {
		return r.ArtifactTTL
	}
	return cache.TTLArtifact
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
