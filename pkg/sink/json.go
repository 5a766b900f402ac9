package sink

import (
	"encoding/json"

	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	seed    *squiggle.Seed
	compact bool
}

// WithJSONSeed records the seed the parameters were derived from.
func WithJSONSeed(s squiggle.Seed) JSONOption {
	return func(r *jsonRenderer) { r.seed = &s }
}

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	Seed     string `json:"seed,omitempty"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	Gradient string `json:"gradient"`
	squiggle.Params
	Path  string      `json:"path"`
	Start jsonPoint   `json:"start"`
	Curve []jsonCurve `json:"curves"`
}

type jsonPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type jsonCurve struct {
	C1  jsonPoint `json:"c1"`
	C2  jsonPoint `json:"c2"`
	End jsonPoint `json:"end"`
}

// RenderJSON exports p together with its path geometry. The path string is
// identical to the one embedded in the SVG document.
func RenderJSON(p squiggle.Params, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	path := p.Path()
	out := jsonOutput{
		Width:    squiggle.CanvasWidth,
		Height:   squiggle.CanvasHeight,
		Gradient: p.Gradient().Name,
		Params:   p,
		Path:     path.String(),
		Start:    toJSONPoint(path.Start),
		Curve:    make([]jsonCurve, 0, len(path.Curves)),
	}
	if r.seed != nil {
		out.Seed = r.seed.String()
	}
	for _, c := range path.Curves {
		out.Curve = append(out.Curve, jsonCurve{
			C1:  toJSONPoint(c.C1),
			C2:  toJSONPoint(c.C2),
			End: toJSONPoint(c.End),
		})
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}

func toJSONPoint(p squiggle.Point) jsonPoint { return jsonPoint{X: p.X, Y: p.Y} }
