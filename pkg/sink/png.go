package sink

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"

	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// PNGOption configures PNG rendering.
type PNGOption func(*pngRenderer)

type pngRenderer struct {
	scale float64
}

// WithScale sets the PNG scale factor (default 1.0, i.e. 1000×1000 pixels).
func WithScale(s float64) PNGOption {
	return func(r *pngRenderer) { r.scale = s }
}

// RenderPNG rasterizes the squiggle described by p.
//
// The gradient spans the horizontal extent of the path, matching the
// bounding-box units the SVG gradient uses.
func RenderPNG(p squiggle.Params, opts ...PNGOption) ([]byte, error) {
	r := pngRenderer{scale: 1.0}
	for _, opt := range opts {
		opt(&r)
	}
	w := int(float64(squiggle.CanvasWidth) * r.scale)
	h := int(float64(squiggle.CanvasHeight) * r.scale)
	if !(r.scale > 0) || math.IsInf(r.scale, 0) || w < 1 || h < 1 {
		return nil, fmt.Errorf("invalid png scale %v", r.scale)
	}
	dc := gg.NewContext(w, h)
	dc.Scale(r.scale, r.scale)

	dc.SetHexColor(squiggle.BackgroundColor)
	dc.Clear()

	path := p.Path()
	minX, maxX := path.Bounds()
	dc.SetStrokeStyle(strokeGradient(p.Gradient(), minX, maxX, r.scale))

	// Line width is applied in device pixels.
	dc.SetLineWidth(float64(p.StrokeWidth) * r.scale)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	dc.MoveTo(float64(path.Start.X), float64(path.Start.Y))
	for _, c := range path.Curves {
		dc.CubicTo(
			float64(c.C1.X), float64(c.C1.Y),
			float64(c.C2.X), float64(c.C2.Y),
			float64(c.End.X), float64(c.End.Y),
		)
	}
	dc.Stroke()

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// strokeGradient builds a horizontal gradient in device coordinates.
func strokeGradient(g squiggle.Gradient, minX, maxX int, scale float64) gg.Gradient {
	x0 := float64(minX) * scale
	x1 := float64(maxX) * scale
	if x1 <= x0 {
		x1 = x0 + 1
	}
	grad := gg.NewLinearGradient(x0, 0, x1, 0)
	for _, s := range g.Stops {
		grad.AddColorStop(s.Offset, color.RGBA{R: s.Color.R, G: s.Color.G, B: s.Color.B, A: 0xff})
	}
	return grad
}
