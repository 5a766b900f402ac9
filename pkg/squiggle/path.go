package squiggle

import (
	"fmt"
	"strings"
)

// Canvas geometry shared by every squiggle.
const (
	CanvasWidth  = 1000
	CanvasHeight = 1000
	CenterY      = 500
)

// Point is an integer canvas coordinate.
type Point struct {
	X, Y int
}

// Curve is one cubic Bézier segment. Its start point is the end of the
// previous segment (or the path's start).
type Curve struct {
	C1, C2, End Point
}

// Path is a move-to followed by one curve per oscillation.
type Path struct {
	Start  Point
	Curves []Curve
}

// BuildPath lays the oscillations out left to right, centred horizontally
// on the canvas. Every curve ends back on the y=CenterY baseline.
//
// The start x is not clamped: wide squiggles start off-canvas.
func BuildPath(xOffsets, yOffsets []int) Path {
	total := 0
	for _, x := range xOffsets {
		total += x
	}

	current := (CanvasWidth - total) / 2
	p := Path{
		Start:  Point{X: current, Y: CenterY},
		Curves: make([]Curve, 0, len(xOffsets)),
	}

	for i, dx := range xOffsets {
		if i >= len(yOffsets) {
			break
		}
		y := CenterY + yOffsets[i]
		end := current + dx
		p.Curves = append(p.Curves, Curve{
			C1:  Point{X: current + dx/3, Y: y},
			C2:  Point{X: current + 2*dx/3, Y: y},
			End: Point{X: end, Y: CenterY},
		})
		current = end
	}
	return p
}

// String renders the path as SVG path data, e.g. "M 460,500 C 466,400 473,400 480,500 ".
// Each command is followed by a single space, including the last.
func (p Path) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "M %d,%d ", p.Start.X, p.Start.Y)
	for _, c := range p.Curves {
		fmt.Fprintf(&b, "C %d,%d %d,%d %d,%d ", c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.End.X, c.End.Y)
	}
	return b.String()
}

// Bounds returns the horizontal extent of the path's points, including
// control points.
func (p Path) Bounds() (minX, maxX int) {
	minX, maxX = p.Start.X, p.Start.X
	for _, c := range p.Curves {
		for _, pt := range [...]Point{c.C1, c.C2, c.End} {
			minX = min(minX, pt.X)
			maxX = max(maxX, pt.X)
		}
	}
	return minX, maxX
}
