package squiggle

import (
	"encoding/xml"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestRenderSVGZeroSeed(t *testing.T) {
	lines := []string{
		`<svg width="1000" height="1000" viewBox="0 0 1000 1000" xmlns="http://www.w3.org/2000/svg">`,
		`    <rect width="100%" height="100%" fill="#1a1a1a"/>`,
		`    <path `,
		`        d="M 460,500 C 466,400 473,400 480,500 C 486,600 493,600 500,500 C 506,400 513,400 520,500 C 526,600 533,600 540,500 "`,
		`        fill="none"`,
		`        stroke="url(#gradient)"`,
		`        stroke-width="10"`,
		`        stroke-linecap="round"`,
		`    />`,
		`    <defs>\n        <linearGradient id="gradient" x1="0%" y1="0%" x2="100%" y2="0%">`,
		`            <stop offset="0.00%" style="stop-color:rgb(255,0,0)"/>`,
		`            <stop offset="16.67%" style="stop-color:rgb(255,142,0)"/>`,
		`            <stop offset="33.33%" style="stop-color:rgb(255,239,0)"/>`,
		`            <stop offset="50.00%" style="stop-color:rgb(0,241,29)"/>`,
		`            <stop offset="66.67%" style="stop-color:rgb(0,255,255)"/>`,
		`            <stop offset="83.33%" style="stop-color:rgb(0,64,255)"/>`,
		`            <stop offset="100.0%" style="stop-color:rgb(128,0,255)"/>`,
		`        </linearGradient>\n    </defs>`,
		`</svg>`,
	}
	want := strings.Join(lines, "\n") + "\n"

	if got := GenerateSVG(Seed{}); got != want {
		t.Errorf("GenerateSVG(zero) =\n%s\nwant\n%s", got, want)
	}
}

// svgSummary is what a generic XML parse of a document yields.
type svgSummary struct {
	root        string
	paths       int
	stops       int
	gradientIDs []string
	pathData    string
	strokeWidth string
	stroke      string
}

func parseSVG(t *testing.T, doc string) svgSummary {
	t.Helper()

	var s svgSummary
	depth := 0
	dec := xml.NewDecoder(strings.NewReader(doc))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("document is not well-formed: %v", err)
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				s.root = el.Name.Local
			}
			depth++
			switch el.Name.Local {
			case "path":
				s.paths++
				for _, a := range el.Attr {
					switch a.Name.Local {
					case "d":
						s.pathData = a.Value
					case "stroke-width":
						s.strokeWidth = a.Value
					case "stroke":
						s.stroke = a.Value
					}
				}
			case "stop":
				s.stops++
			case "linearGradient":
				for _, a := range el.Attr {
					if a.Name.Local == "id" {
						s.gradientIDs = append(s.gradientIDs, a.Value)
					}
				}
			}
		case xml.EndElement:
			depth--
		}
	}
	if depth != 0 {
		t.Fatalf("unbalanced document, depth %d at EOF", depth)
	}
	return s
}

func TestRenderSVGWellFormed(t *testing.T) {
	seeds := []Seed{
		{},
		MustParseSeed(strings.Repeat("ff", 32)),
		MustParseSeed("1234592349abcdef1234567890abcdef0001567890abcdef1234567890abcdef"),
		MustParseSeed(strings.Repeat("01", 32)),
		MustParseSeed(strings.Repeat("a2", 32)),
	}

	for _, seed := range seeds {
		t.Run(seed.String()[:8], func(t *testing.T) {
			p := DeriveParams(seed)
			doc := string(RenderSVG(p))
			s := parseSVG(t, doc)

			if s.root != "svg" {
				t.Errorf("root element = %q, want svg", s.root)
			}
			if s.paths != 1 {
				t.Errorf("got %d path elements, want 1", s.paths)
			}
			if got := strings.Count(s.pathData, "C "); got != p.Oscillations {
				t.Errorf("path has %d curves, want %d", got, p.Oscillations)
			}
			if s.stops != len(p.Gradient().Stops) {
				t.Errorf("got %d stops, want %d", s.stops, len(p.Gradient().Stops))
			}
			if len(s.gradientIDs) != 1 || s.stroke != "url(#"+s.gradientIDs[0]+")" {
				t.Errorf("stroke %q does not reference gradient %v", s.stroke, s.gradientIDs)
			}
			if !strings.HasPrefix(doc, "<svg") || !strings.HasSuffix(doc, "</svg>\n") {
				t.Error("document should start with <svg and end with </svg>")
			}
		})
	}
}

func TestRenderSVGZeroSeedStructure(t *testing.T) {
	s := parseSVG(t, GenerateSVG(Seed{}))
	if got := strings.Count(s.pathData, "C "); got != 4 {
		t.Errorf("zero seed has %d curves, want 4", got)
	}
	if s.stops != 7 {
		t.Errorf("zero seed has %d stops, want 7 (rainbow)", s.stops)
	}
	if s.strokeWidth != "10" {
		t.Errorf("stroke-width = %q, want 10", s.strokeWidth)
	}
}
