package squiggle

import (
	"bytes"
	"strings"
	"testing"
)

func TestGradientFor(t *testing.T) {
	tests := []struct {
		id        int
		wantName  string
		wantStops int
	}{
		{GradientRainbow, "rainbow", 7},
		{GradientSunset, "sunset", 5},
		{GradientOcean, "ocean", 5},
		{3, "rainbow", 7},
		{-1, "rainbow", 7},
		{255, "rainbow", 7},
	}

	for _, tt := range tests {
		g := GradientFor(tt.id)
		if g.Name != tt.wantName {
			t.Errorf("GradientFor(%d).Name = %q, want %q", tt.id, g.Name, tt.wantName)
		}
		if len(g.Stops) != tt.wantStops {
			t.Errorf("GradientFor(%d) has %d stops, want %d", tt.id, len(g.Stops), tt.wantStops)
		}
	}
}

func TestGradientStopsOrdered(t *testing.T) {
	for id, name := range GradientNames() {
		g := GradientFor(id)
		if g.Name != name {
			t.Errorf("GradientNames()[%d] = %q, GradientFor gives %q", id, name, g.Name)
		}
		first, last := g.Stops[0], g.Stops[len(g.Stops)-1]
		if first.Label != "0.00" || first.Offset != 0 {
			t.Errorf("%s: first stop = %+v", name, first)
		}
		if last.Label != "100.0" || last.Offset != 1 {
			t.Errorf("%s: last stop = %+v", name, last)
		}
		for i := 1; i < len(g.Stops); i++ {
			if g.Stops[i].Offset <= g.Stops[i-1].Offset {
				t.Errorf("%s: stop %d offset %v not increasing", name, i, g.Stops[i].Offset)
			}
		}
	}
}

func TestWriteDefs(t *testing.T) {
	var buf bytes.Buffer
	GradientFor(GradientSunset).WriteDefs(&buf)

	want := `    <defs>\n        <linearGradient id="gradient" x1="0%" y1="0%" x2="100%" y2="0%">` + "\n" +
		`            <stop offset="0.00%" style="stop-color:rgb(255,95,109)"/>` + "\n" +
		`            <stop offset="25.00%" style="stop-color:rgb(255,140,105)"/>` + "\n" +
		`            <stop offset="50.00%" style="stop-color:rgb(255,160,122)"/>` + "\n" +
		`            <stop offset="75.00%" style="stop-color:rgb(255,182,193)"/>` + "\n" +
		`            <stop offset="100.0%" style="stop-color:rgb(255,192,203)"/>` + "\n" +
		`        </linearGradient>\n    </defs>` + "\n"

	if got := buf.String(); got != want {
		t.Errorf("WriteDefs() =\n%s\nwant\n%s", got, want)
	}
	if strings.Count(buf.String(), "<stop ") != 5 {
		t.Errorf("WriteDefs() wrote %d stops, want 5", strings.Count(buf.String(), "<stop "))
	}
}

func TestGradientAt(t *testing.T) {
	g := GradientFor(GradientOcean)
	tests := []struct {
		t    float64
		want RGB
	}{
		{-1, RGB{30, 144, 255}},
		{0, RGB{30, 144, 255}},
		{0.125, RGB{15, 175, 232}},
		{0.25, RGB{0, 206, 209}},
		{1, RGB{0, 255, 255}},
		{2, RGB{0, 255, 255}},
	}
	for _, tt := range tests {
		if got := g.At(tt.t); got != tt.want {
			t.Errorf("At(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
