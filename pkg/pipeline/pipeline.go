// Package pipeline turns seeds into artifacts for the CLI, HTTP server and
// NATS workers.
//
// This package wraps the pure generation core in package squiggle with the
// concerns every entry point shares: format selection, artifact caching,
// token resolution and observability hooks. By centralizing this logic,
// all entry points serve byte-identical artifacts.
//
// # Formats
//
//   - svg: the squiggle document
//   - metadata: the data:application/json;base64 token metadata URI
//   - png: a raster preview
//   - json: derived parameters and path geometry
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, store, logger)
//	result, err := runner.Execute(ctx, seed, pipeline.Options{
//	    Formats: []string{"svg", "metadata"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Resolve a registered token the way tokenURI does:
//
//	uri, err := runner.TokenURI(ctx, "42")
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/squiggle/pkg/cache"
	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

// DefaultScale is the default PNG scale factor (1000×1000 pixels).
const DefaultScale = 1.0

// MinScale and MaxScale bound PNG output to 10×10 through 4000×4000 pixels.
const (
	MinScale = 0.01
	MaxScale = 4.0
)

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatMetadata = "metadata"
	FormatPNG      = "png"
	FormatJSON     = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatSVG:      true,
	FormatMetadata: true,
	FormatPNG:      true,
	FormatJSON:     true,
}

// ContentTypes maps formats to the MIME type served for them.
var ContentTypes = map[string]string{
	FormatSVG:      "image/svg+xml",
	FormatMetadata: "text/plain; charset=utf-8",
	FormatPNG:      "image/png",
	FormatJSON:     "application/json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options configures one pipeline run.
// This struct supports JSON serialization for API and NATS requests.
type Options struct {
	Formats []string `json:"formats,omitempty"`
	Scale   float64  `json:"scale,omitempty"`
	Refresh bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Seed is the input seed.
	Seed squiggle.Seed

	// Params are the parameters derived from Seed.
	Params squiggle.Params

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks which formats were served from the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	RenderTime time.Duration
	Bytes      int
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits   map[string]bool
	AllHit bool // Whether every artifact came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// FormatNames lists the supported formats in a stable order.
func FormatNames() []string {
	return []string{FormatSVG, FormatMetadata, FormatPNG, FormatJSON}
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks formats and scale and applies defaults.
// Duplicate formats are removed, keeping first occurrence order.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	o.Formats = dedupe(o.Formats)

	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	// Written negated so NaN fails.
	if !(o.Scale >= MinScale && o.Scale <= MaxScale) {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be in [%g, %g], got %g", MinScale, MaxScale, o.Scale)
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// ArtifactKeyOpts returns cache key options for one format.
// Only PNG output depends on the scale.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func dedupe(formats []string) []string {
	seen := make(map[string]bool, len(formats))
	out := formats[:0:0]
	for _, f := range formats {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
