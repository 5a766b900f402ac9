package squiggle

import (
	"bytes"
	"fmt"
)

// BackgroundColor fills the whole canvas behind the squiggle.
const BackgroundColor = "#1a1a1a"

// RenderSVG assembles the complete document for p.
func RenderSVG(p Params) []byte {
	var buf bytes.Buffer
	buf.Grow(1024)

	fmt.Fprintf(&buf, `<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+"\n",
		CanvasWidth, CanvasHeight, CanvasWidth, CanvasHeight)
	fmt.Fprintf(&buf, `    <rect width="100%%" height="100%%" fill="%s"/>`+"\n", BackgroundColor)

	writePath(&buf, p.Path(), p.StrokeWidth)
	p.Gradient().WriteDefs(&buf)

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writePath(buf *bytes.Buffer, path Path, strokeWidth int) {
	buf.WriteString("    <path \n")
	fmt.Fprintf(buf, "        d=\"%s\"\n", path)
	buf.WriteString("        fill=\"none\"\n")
	fmt.Fprintf(buf, "        stroke=\"url(#%s)\"\n", gradientElementID)
	fmt.Fprintf(buf, "        stroke-width=\"%d\"\n", strokeWidth)
	buf.WriteString("        stroke-linecap=\"round\"\n")
	buf.WriteString("    />\n")
}

// GenerateSVG returns the document for seed as text.
func GenerateSVG(seed Seed) string {
	return string(RenderSVG(DeriveParams(seed)))
}
