package sink

import (
	"math"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/wordcloud/pkg/layout"
	"github.com/matzehuels/wordcloud/pkg/render"
)

// Terminal cell styles by font weight bucket, lightest first.
var terminalStyles = []lipgloss.Style{
	lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true),
	lipgloss.NewStyle().Foreground(lipgloss.Color("36")).Bold(true),
}

// styleHighlight marks the cells of the selected word.
var styleHighlight = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)

type cell struct {
	r     rune
	style int // index into terminalStyles, -1 for highlight
}

// Terminal projects paint operations onto a character grid. Words painted
// earlier keep their cells, so heavier words win overlaps. It is safe to read
// String while another goroutine paints.
type Terminal struct {
	mu        sync.Mutex
	cols      int
	rows      int
	highlight string

	sx, sy float64
	grid   [][]cell
	frame  string
}

// NewTerminal returns a sink with a cols x rows grid.
func NewTerminal(cols, rows int) *Terminal {
	t := &Terminal{}
	t.Resize(cols, rows)
	return t
}

// Resize changes the grid size for subsequent frames.
func (t *Terminal) Resize(cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cols, t.rows = max(cols, 1), max(rows, 1)
}

// Highlight marks label in following frames. An empty label clears it.
func (t *Terminal) Highlight(label string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.highlight = label
}

// Size returns the grid size.
func (t *Terminal) Size() (cols, rows int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cols, t.rows
}

// Begin clears the grid and maps a width x height canvas onto it.
func (t *Terminal) Begin(width, height float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.grid = make([][]cell, t.rows)
	for i := range t.grid {
		t.grid[i] = make([]cell, t.cols)
	}
	t.sx = float64(t.cols) / max(width, 1)
	t.sy = float64(t.rows) / max(height, 1)
}

// Paint writes op's text centered on its cell, vertically when rotated.
func (t *Terminal) Paint(op render.PaintOp) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.grid == nil {
		return
	}
	runes := []rune(op.Text)
	n := len(runes)
	col := int(math.Round(op.X * t.sx))
	row := int(math.Round(op.Y * t.sy))

	dx, dy := 1, 0
	if op.Rotation == 90 {
		dx, dy = 0, 1
		row -= n / 2
	} else {
		col -= n / 2
	}

	// Skip words that would overwrite an earlier one or leave the grid.
	for i := range n {
		c, r := col+i*dx, row+i*dy
		if r < 0 || r >= t.rows || c < 0 || c >= t.cols || t.grid[r][c].r != 0 {
			return
		}
	}

	style := terminalStyle(op.FontWeight)
	if op.Text == t.highlight {
		style = -1
	}
	for i, ch := range runes {
		t.grid[row+i*dy][col+i*dx] = cell{r: ch, style: style}
	}
}

// End renders the grid to a string.
func (t *Terminal) End() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var b strings.Builder
	for r, line := range t.grid {
		if r > 0 {
			b.WriteByte('\n')
		}
		renderRow(&b, line)
	}
	t.frame = b.String()
	return nil
}

// String returns the last finished frame.
func (t *Terminal) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.frame
}

// Plain returns the last grid without styling, for tests and logs.
func (t *Terminal) Plain() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	lines := make([]string, len(t.grid))
	for i, line := range t.grid {
		rs := make([]rune, len(line))
		for j, c := range line {
			rs[j] = c.r
			if c.r == 0 {
				rs[j] = ' '
			}
		}
		lines[i] = string(rs)
	}
	return strings.Join(lines, "\n")
}

// renderRow writes runs of equally styled cells.
func renderRow(b *strings.Builder, line []cell) {
	for i := 0; i < len(line); {
		if line[i].r == 0 {
			b.WriteByte(' ')
			i++
			continue
		}
		j := i
		var run []rune
		for j < len(line) && line[j].r != 0 && line[j].style == line[i].style {
			run = append(run, line[j].r)
			j++
		}
		st := styleHighlight
		if s := line[i].style; s >= 0 {
			st = terminalStyles[s]
		}
		b.WriteString(st.Render(string(run)))
		i = j
	}
}

func terminalStyle(weight int) int {
	switch {
	case weight >= layout.WeightBlack:
		return 4
	case weight >= layout.WeightHeavy:
		return 3
	case weight >= layout.WeightBold:
		return 2
	case weight >= layout.WeightMedium:
		return 1
	default:
		return 0
	}
}

var _ render.Painter = (*Terminal)(nil)
