package pipeline

import (
	"fmt"

	"github.com/matzehuels/squiggle/pkg/sink"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// Render generates output artifacts for seed in the requested formats,
// without caching. Formats must already be validated.
func Render(seed squiggle.Seed, opts Options) (map[string][]byte, error) {
	p := squiggle.DeriveParams(seed)
	r := renderer{seed: seed, params: p, scale: opts.Scale}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		data, err := r.render(format)
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

// renderer memoizes the SVG document, which metadata embeds.
type renderer struct {
	seed   squiggle.Seed
	params squiggle.Params
	scale  float64
	svg    []byte
}

func (r *renderer) document() []byte {
	if r.svg == nil {
		r.svg = squiggle.RenderSVG(r.params)
	}
	return r.svg
}

func (r *renderer) render(format string) ([]byte, error) {
	switch format {
	case FormatSVG:
		return r.document(), nil
	case FormatMetadata:
		return []byte(squiggle.PackageMetadata(r.document())), nil
	case FormatPNG:
		scale := r.scale
		if scale == 0 {
			scale = DefaultScale
		}
		return sink.RenderPNG(r.params, sink.WithScale(scale))
	case FormatJSON:
		return sink.RenderJSON(r.params, sink.WithJSONSeed(r.seed))
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
