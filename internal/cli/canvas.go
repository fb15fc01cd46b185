package cli

import (
	"math"
	"path"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/tileboard/pkg/board"
	"github.com/matzehuels/tileboard/pkg/geom"
)

type cellKind int

const (
	kindEmpty cellKind = iota
	kindFill
	kindFrame
)

const deleteMarker = '×'

type cellStyle struct {
	color board.Color
	kind  cellKind
}

type cell struct {
	r  rune
	st cellStyle
}

// cellRect is a tile's footprint in terminal cells, relative to the canvas.
type cellRect struct {
	col, row, cols, rows int
}

func (m EditorModel) rect(g geom.Geometry) cellRect {
	return cellRect{
		col:  int(math.Round(g.Left / m.cellW)),
		row:  int(math.Round(g.Top / m.cellH)),
		cols: max(1, int(math.Round(g.Width/m.cellW))),
		rows: max(1, int(math.Round(g.Height/m.cellH))),
	}
}

// renderCanvas draws the tiles in insertion order, so later tiles cover
// earlier ones. Every row ends with a newline.
func (m EditorModel) renderCanvas(cols, rows int) string {
	grid := make([][]cell, rows)
	for y := range grid {
		grid[y] = make([]cell, cols)
		for x := range grid[y] {
			grid[y][x] = cell{r: ' '}
		}
	}
	set := func(x, y int, c cell) {
		if y >= 0 && y < rows && x >= 0 && x < cols {
			grid[y][x] = c
		}
	}

	for _, t := range m.board.Tiles() {
		r := m.rect(t.Geometry)
		fill := cellStyle{color: t.Color, kind: kindFill}
		frame := cellStyle{color: t.Color, kind: kindFrame}

		for y := r.row; y < r.row+r.rows; y++ {
			for x := r.col; x < r.col+r.cols; x++ {
				set(x, y, cell{r: ' ', st: fill})
			}
		}
		if t.Selected {
			drawFrame(r, frame, set)
		}

		if label := tileLabel(t); label != "" && r.cols > 2 {
			y := r.row
			if r.rows > 2 {
				y++
			}
			for i, ch := range []rune(truncate(label, r.cols-2)) {
				set(r.col+1+i, y, cell{r: ch, st: fill})
			}
		}
		set(r.col+r.cols-1, r.row, cell{r: deleteMarker, st: frame})
	}

	var b strings.Builder
	for _, row := range grid {
		writeRow(&b, row)
		b.WriteString("\n")
	}
	return b.String()
}

func drawFrame(r cellRect, st cellStyle, set func(x, y int, c cell)) {
	if r.cols < 2 || r.rows < 2 {
		return
	}
	right, bottom := r.col+r.cols-1, r.row+r.rows-1
	for x := r.col + 1; x < right; x++ {
		set(x, r.row, cell{r: '─', st: st})
		set(x, bottom, cell{r: '─', st: st})
	}
	for y := r.row + 1; y < bottom; y++ {
		set(r.col, y, cell{r: '│', st: st})
		set(right, y, cell{r: '│', st: st})
	}
	set(r.col, r.row, cell{r: '╭', st: st})
	set(right, r.row, cell{r: '╮', st: st})
	set(r.col, bottom, cell{r: '╰', st: st})
	set(right, bottom, cell{r: '╯', st: st})
}

// writeRow renders runs of equally styled cells with one style call each.
func writeRow(b *strings.Builder, row []cell) {
	for start := 0; start < len(row); {
		end := start + 1
		for end < len(row) && row[end].st == row[start].st {
			end++
		}
		runes := make([]rune, 0, end-start)
		for _, c := range row[start:end] {
			runes = append(runes, c.r)
		}
		b.WriteString(row[start].st.style().Render(string(runes)))
		start = end
	}
}

func (s cellStyle) style() lipgloss.Style {
	switch s.kind {
	case kindFill:
		return lipgloss.NewStyle().Background(tileColors[s.color]).Foreground(colorBlack)
	case kindFrame:
		return lipgloss.NewStyle().Background(tileColors[s.color]).Foreground(colorWhite).Bold(true)
	default:
		return lipgloss.NewStyle()
	}
}

// tileLabel names a tile by the last path segment of its image URL.
func tileLabel(t board.Tile) string {
	if t.Image == "" {
		return ""
	}
	return path.Base(t.Image)
}
