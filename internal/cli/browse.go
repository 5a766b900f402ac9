package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/squiggle/pkg/errors"
	"github.com/matzehuels/squiggle/pkg/squiggle"
)

// Preview grid size in terminal cells.
const (
	previewCols = 72
	previewRows = 18
)

var (
	browseKeyStyle    = lipgloss.NewStyle().Foreground(colorDim)
	browseStatusStyle = lipgloss.NewStyle().Foreground(colorGreen)
	browseErrorStyle  = lipgloss.NewStyle().Foreground(colorRed)
)

// browseCommand creates the interactive seed explorer.
func (c *CLI) browseCommand() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "browse [seed]",
		Short: "Explore seeds interactively",
		Long: `Open a terminal explorer showing the parameters and a preview of each seed.

Keys: n new random seed, ←/→ history, s save SVG, q quit.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var start squiggle.Seed
			var err error
			if len(args) == 1 {
				start, err = errors.ParseSeed(args[0])
			} else {
				start, err = squiggle.RandomSeed()
			}
			if err != nil {
				return err
			}

			final, err := tea.NewProgram(newSeedBrowser(start, outDir), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return err
			}
			if m, ok := final.(seedBrowser); ok && len(m.saved) > 0 {
				printSuccess("Saved %d squiggles", len(m.saved))
				for _, path := range m.saved {
					printFile(path)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "directory for saved SVGs")
	return cmd
}

// =============================================================================
// seedBrowser - bubbletea model
// =============================================================================

// seedBrowser is the bubbletea model behind the browse command.
type seedBrowser struct {
	history []squiggle.Seed
	cursor  int
	outDir  string
	saved   []string
	status  string
	err     error

	// newSeed is swapped in tests.
	newSeed func() (squiggle.Seed, error)
}

func newSeedBrowser(start squiggle.Seed, outDir string) seedBrowser {
	return seedBrowser{
		history: []squiggle.Seed{start},
		outDir:  outDir,
		newSeed: squiggle.RandomSeed,
	}
}

func (m seedBrowser) current() squiggle.Seed {
	return m.history[m.cursor]
}

func (m seedBrowser) Init() tea.Cmd {
	return nil
}

func (m seedBrowser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	m.status, m.err = "", nil
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "n", " ":
		seed, err := m.newSeed()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.history = append(m.history, seed)
		m.cursor = len(m.history) - 1
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
	case "right", "l":
		if m.cursor < len(m.history)-1 {
			m.cursor++
		}
	case "s", "enter":
		path, err := m.save()
		if err != nil {
			m.err = err
			return m, nil
		}
		m.saved = append(m.saved, path)
		m.status = "saved " + path
	}
	return m, nil
}

// save writes the current seed's SVG into the output directory.
func (m seedBrowser) save() (string, error) {
	seed := m.current()
	if err := os.MkdirAll(m.outDir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(m.outDir, seed.String()+".svg")
	return path, os.WriteFile(path, []byte(squiggle.GenerateSVG(seed)), 0o644)
}

func (m seedBrowser) View() string {
	seed := m.current()
	p := squiggle.DeriveParams(seed)
	g := p.Gradient()

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Squiggle Explorer"))
	b.WriteString("\n")
	b.WriteString(browseKeyStyle.Render("n new  ←/→ history  s save  q quit"))
	b.WriteString("\n\n")
	b.WriteString(StyleDim.Render("seed ") + StyleValue.Render(seedLine(seed)))
	b.WriteString("\n\n")

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Oscillations", "Stroke", "Gradient", "Periods", "Amplitudes").
		Row(
			strconv.Itoa(p.Oscillations),
			strconv.Itoa(p.StrokeWidth),
			g.Name,
			joinInts(p.XOffsets),
			joinInts(p.YOffsets),
		).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			return lipgloss.NewStyle().Foreground(colorCyan)
		})
	b.WriteString(t.Render())
	b.WriteString("\n\n")

	for _, line := range renderPreview(p.Path(), g, previewCols, previewRows) {
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(browseKeyStyle.Render(fmt.Sprintf("  [%d/%d]", m.cursor+1, len(m.history))))
	switch {
	case m.err != nil:
		b.WriteString("  " + browseErrorStyle.Render(m.err.Error()))
	case m.status != "":
		b.WriteString("  " + browseStatusStyle.Render(m.status))
	}
	b.WriteString("\n")
	return b.String()
}

// =============================================================================
// Preview
// =============================================================================

// previewGrid rasterizes path onto a cols×rows character grid covering the
// whole canvas. Cells the curve passes through are set.
func previewGrid(path squiggle.Path, cols, rows int) [][]bool {
	grid := make([][]bool, rows)
	for i := range grid {
		grid[i] = make([]bool, cols)
	}

	plot := func(x, y float64) {
		col := int(x * float64(cols) / squiggle.CanvasWidth)
		row := int(y * float64(rows) / squiggle.CanvasHeight)
		if col >= 0 && col < cols && row >= 0 && row < rows {
			grid[row][col] = true
		}
	}

	const steps = 48
	from := path.Start
	for _, c := range path.Curves {
		for i := range steps + 1 {
			t := float64(i) / steps
			plot(bezier(from.X, c.C1.X, c.C2.X, c.End.X, t), bezier(from.Y, c.C1.Y, c.C2.Y, c.End.Y, t))
		}
		from = c.End
	}
	return grid
}

// bezier evaluates one coordinate of a cubic Bézier at t.
func bezier(p0, p1, p2, p3 int, t float64) float64 {
	u := 1 - t
	return u*u*u*float64(p0) + 3*u*u*t*float64(p1) + 3*u*t*t*float64(p2) + t*t*t*float64(p3)
}

// renderPreview draws the path grid colouring each column by the gradient.
func renderPreview(path squiggle.Path, g squiggle.Gradient, cols, rows int) []string {
	grid := previewGrid(path, cols, rows)
	styles := make([]lipgloss.Style, cols)
	for col := range styles {
		c := g.At(float64(col) / float64(max(cols-1, 1)))
		styles[col] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)))
	}

	lines := make([]string, rows)
	for r, cells := range grid {
		var b strings.Builder
		for col, set := range cells {
			if set {
				b.WriteString(styles[col].Render("█"))
			} else {
				b.WriteString(" ")
			}
		}
		lines[r] = b.String()
	}
	return lines
}

func joinInts(vs []int) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}
