package squiggle

// Parameter ranges. All bounds are inclusive.
const (
	MinOscillations = 4
	MaxOscillations = 15

	MinStrokeWidth = 10
	MaxStrokeWidth = 80

	MinPeriod = 20
	MaxPeriod = 100

	MinAmplitude = 100
	MaxAmplitude = 600

	// GradientCount is the number of palettes a seed can select.
	GradientCount = 3
)

// Byte offsets into the seed.
const (
	oscillationsByte = 0
	strokeWidthByte  = 1
	gradientByte     = 2
	periodBase       = 3
	amplitudeBase    = 15
)

// Params holds everything needed to draw a squiggle.
// XOffsets and YOffsets always have exactly Oscillations elements.
type Params struct {
	Oscillations int   `json:"oscillations"`
	StrokeWidth  int   `json:"stroke_width"`
	GradientID   int   `json:"gradient_id"`
	XOffsets     []int `json:"x_offsets"`
	YOffsets     []int `json:"y_offsets"`
}

// MapToRange scales b from [0,255] onto [min,max] with truncating division.
// Rounding must stay truncating: any other policy changes rendered output.
func MapToRange(b byte, min, max int) int {
	return min + (int(b)*(max-min))/255
}

// DeriveParams computes drawing parameters from a seed.
func DeriveParams(seed Seed) Params {
	n := MapToRange(seed[oscillationsByte], MinOscillations, MaxOscillations)

	p := Params{
		Oscillations: n,
		StrokeWidth:  MapToRange(seed[strokeWidthByte], MinStrokeWidth, MaxStrokeWidth),
		GradientID:   int(seed[gradientByte] % GradientCount),
		XOffsets:     make([]int, n),
		YOffsets:     make([]int, n),
	}

	for i := range n {
		p.XOffsets[i] = MapToRange(seed[periodBase+i], MinPeriod, MaxPeriod)
	}

	// Indices 15..17 are shared with the periods above when n > 12.
	for i := range n {
		amplitude := MapToRange(seed[amplitudeBase+i], MinAmplitude, MaxAmplitude)
		if i%2 == 0 {
			amplitude = -amplitude
		}
		p.YOffsets[i] = amplitude
	}

	return p
}

// Gradient returns the palette selected by p.GradientID.
func (p Params) Gradient() Gradient {
	return GradientFor(p.GradientID)
}

// Path builds the curve described by the offsets.
func (p Params) Path() Path {
	return BuildPath(p.XOffsets, p.YOffsets)
}
