package squiggle

import (
	"bytes"
	"fmt"
)

// Gradient identifiers selectable by a seed.
const (
	GradientRainbow = 0
	GradientSunset  = 1
	GradientOcean   = 2
)

// RGB is an sRGB colour.
type RGB struct {
	R, G, B uint8
}

// Stop is a single colour stop. Label is the offset as written into the
// document (without the trailing "%"); Offset is the same value in [0,1].
type Stop struct {
	Label  string
	Offset float64
	Color  RGB
}

// Gradient is an immutable named palette.
type Gradient struct {
	Name  string
	Stops []Stop
}

var (
	rainbow = Gradient{Name: "rainbow", Stops: []Stop{
		{"0.00", 0, RGB{255, 0, 0}},
		{"16.67", 0.1667, RGB{255, 142, 0}},
		{"33.33", 0.3333, RGB{255, 239, 0}},
		{"50.00", 0.50, RGB{0, 241, 29}},
		{"66.67", 0.6667, RGB{0, 255, 255}},
		{"83.33", 0.8333, RGB{0, 64, 255}},
		{"100.0", 1, RGB{128, 0, 255}},
	}}

	sunset = Gradient{Name: "sunset", Stops: []Stop{
		{"0.00", 0, RGB{255, 95, 109}},
		{"25.00", 0.25, RGB{255, 140, 105}},
		{"50.00", 0.50, RGB{255, 160, 122}},
		{"75.00", 0.75, RGB{255, 182, 193}},
		{"100.0", 1, RGB{255, 192, 203}},
	}}

	ocean = Gradient{Name: "ocean", Stops: []Stop{
		{"0.00", 0, RGB{30, 144, 255}},
		{"25.00", 0.25, RGB{0, 206, 209}},
		{"50.00", 0.50, RGB{32, 178, 170}},
		{"75.00", 0.75, RGB{72, 209, 204}},
		{"100.0", 1, RGB{0, 255, 255}},
	}}
)

// GradientFor returns the palette for id. Unknown ids fall back to rainbow.
func GradientFor(id int) Gradient {
	switch id {
	case GradientSunset:
		return sunset
	case GradientOcean:
		return ocean
	default:
		return rainbow
	}
}

// GradientNames lists palette names indexed by gradient id.
func GradientNames() []string {
	return []string{rainbow.Name, sunset.Name, ocean.Name}
}

// At returns the colour at position t in [0,1], interpolating linearly
// between the surrounding stops. t is clamped to the gradient's range.
func (g Gradient) At(t float64) RGB {
	if t <= g.Stops[0].Offset {
		return g.Stops[0].Color
	}
	for i := 1; i < len(g.Stops); i++ {
		a, b := g.Stops[i-1], g.Stops[i]
		if t > b.Offset {
			continue
		}
		f := (t - a.Offset) / (b.Offset - a.Offset)
		return RGB{
			R: lerp(a.Color.R, b.Color.R, f),
			G: lerp(a.Color.G, b.Color.G, f),
			B: lerp(a.Color.B, b.Color.B, f),
		}
	}
	return g.Stops[len(g.Stops)-1].Color
}

func lerp(a, b uint8, f float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*f + 0.5)
}

// gradientElementID is referenced by the path's stroke.
const gradientElementID = "gradient"

// WriteDefs writes the <defs> block holding g as a horizontal linear gradient.
//
// The opening and closing lines contain a literal backslash-n between tags.
// Previously minted metadata carries those characters, so they are part of
// the output format.
func (g Gradient) WriteDefs(buf *bytes.Buffer) {
	fmt.Fprintf(buf, `    <defs>\n        <linearGradient id="%s" x1="0%%" y1="0%%" x2="100%%" y2="0%%">`+"\n", gradientElementID)
	for _, s := range g.Stops {
		fmt.Fprintf(buf, `            <stop offset="%s%%" style="stop-color:rgb(%d,%d,%d)"/>`+"\n",
			s.Label, s.Color.R, s.Color.G, s.Color.B)
	}
	buf.WriteString(`        </linearGradient>\n    </defs>` + "\n")
}
