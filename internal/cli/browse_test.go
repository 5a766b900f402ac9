package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/squiggle/pkg/squiggle"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m seedBrowser, keys ...string) seedBrowser {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(seedBrowser)
	}
	return m
}

func TestSeedBrowserHistory(t *testing.T) {
	var zero squiggle.Seed
	m := newSeedBrowser(refSeed, t.TempDir())
	m.newSeed = func() (squiggle.Seed, error) { return zero, nil }

	m = update(t, m, "n")
	if len(m.history) != 2 || m.current() != zero {
		t.Fatalf("after n: history=%d current=%s", len(m.history), m.current())
	}

	m = update(t, m, "left")
	if m.current() != refSeed {
		t.Errorf("after left: current = %s, want reference seed", m.current())
	}
	m = update(t, m, "left")
	if m.cursor != 0 {
		t.Errorf("left at start moved cursor to %d", m.cursor)
	}
	m = update(t, m, "right", "right")
	if m.cursor != 1 {
		t.Errorf("right past end moved cursor to %d", m.cursor)
	}
}

func TestSeedBrowserSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "saved")
	m := update(t, newSeedBrowser(refSeed, dir), "s")

	if len(m.saved) != 1 {
		t.Fatalf("saved = %v, want one path", m.saved)
	}
	data, err := os.ReadFile(m.saved[0])
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != squiggle.GenerateSVG(refSeed) {
		t.Error("saved SVG differs from GenerateSVG")
	}
	if !strings.Contains(m.View(), "saved ") {
		t.Error("view should report the saved file")
	}
}

func TestSeedBrowserQuit(t *testing.T) {
	m := newSeedBrowser(refSeed, t.TempDir())
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("q should return a command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
}

func TestSeedBrowserView(t *testing.T) {
	view := newSeedBrowser(refSeed, t.TempDir()).View()
	for _, want := range []string{"0x" + refSeedHex, "ocean", "[1/1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPreviewGrid(t *testing.T) {
	p := squiggle.DeriveParams(refSeed)
	path := p.Path()
	grid := previewGrid(path, 100, 100)

	// The path starts and ends every curve on the centre line.
	startCol := path.Start.X * 100 / squiggle.CanvasWidth
	if !grid[50][startCol] {
		t.Errorf("start cell (50,%d) not set", startCol)
	}

	var set int
	for _, row := range grid {
		for _, cell := range row {
			if cell {
				set++
			}
		}
	}
	if set < len(path.Curves) {
		t.Errorf("only %d cells set for %d curves", set, len(path.Curves))
	}
}

func TestPreviewGridClipsOffCanvas(t *testing.T) {
	path := squiggle.BuildPath([]int{900, 900}, []int{-600, 600})
	grid := previewGrid(path, 10, 10)
	if len(grid) != 10 || len(grid[0]) != 10 {
		t.Fatalf("grid size %dx%d, want 10x10", len(grid), len(grid[0]))
	}
}

func TestBezier(t *testing.T) {
	if got := bezier(0, 10, 20, 30, 0); got != 0 {
		t.Errorf("bezier(t=0) = %v", got)
	}
	if got := bezier(0, 10, 20, 30, 1); got != 30 {
		t.Errorf("bezier(t=1) = %v", got)
	}
	if got := bezier(0, 10, 20, 30, 0.5); got != 15 {
		t.Errorf("bezier(t=0.5) = %v", got)
	}
}
