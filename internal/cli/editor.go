package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/tileboard/pkg/board"
	"github.com/matzehuels/tileboard/pkg/geom"
	"github.com/matzehuels/tileboard/pkg/gesture"
)

// Rows above and below the canvas.
const (
	headerRows = 1
	footerRows = 1
)

const addLabel = " + Add "

const editorHelp = "  a add · x delete · esc deselect · arrows nudge · q quit"

// EditorOptions configures an [EditorModel].
type EditorOptions struct {
	Images board.ImageSource
	Logger *log.Logger

	// CellWidth and CellHeight are the canvas units covered by one terminal
	// cell. HandleSize is the resize band thickness in cells.
	CellWidth  float64
	CellHeight float64
	HandleSize int

	Rand  *rand.Rand
	NewID func() string
}

// tileFetchedMsg carries the result of an asynchronous NewTile.
type tileFetchedMsg struct {
	tile board.Tile
	err  error
}

// EditorModel is the bubbletea model of the tile editor. The board, its
// feeds and the pointer are shared by every copy of the model; the event
// loop is their only writer.
type EditorModel struct {
	ctx     context.Context
	logger  *log.Logger
	board   *board.Board
	pointer *gesture.Pointer
	sizes   *board.SizeFeed
	clicks  *board.ClickFeed

	cellW, cellH float64

	Width    int
	Height   int
	Pending  int
	Quitting bool
}

// NewEditorModel creates the editor with an empty, mounted board. Fetches
// started by the editor are bound to ctx.
func NewEditorModel(ctx context.Context, opts EditorOptions) EditorModel {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	cw, ch := opts.CellWidth, opts.CellHeight
	if cw <= 0 {
		cw = 1
	}
	if ch <= 0 {
		ch = 1
	}
	hs := float64(max(opts.HandleSize, 1))

	m := EditorModel{
		ctx:     ctx,
		logger:  logger,
		pointer: gesture.NewPointer(hs*cw, hs*ch),
		sizes:   &board.SizeFeed{},
		clicks:  &board.ClickFeed{},
		cellW:   cw,
		cellH:   ch,
	}
	m.pointer.MinSize = min(cw, ch)
	m.board = board.New(board.Options{
		Logger:   logger.WithPrefix("board"),
		Images:   opts.Images,
		Gestures: m.pointer,
		Rand:     opts.Rand,
		NewID:    opts.NewID,
	})
	m.board.Mount(m.sizes, m.clicks)
	return m
}

// Board returns the board the editor drives.
func (m EditorModel) Board() *board.Board { return m.board }

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		if cols, rows := m.canvasSize(); cols > 0 && rows > 0 {
			m.sizes.Publish(geom.Bounds{
				Width:  float64(cols) * m.cellW,
				Height: float64(rows) * m.cellH,
			})
		}
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tileFetchedMsg:
		m.Pending--
		if msg.err != nil {
			m.logger.Error("fetch image", "err", msg.err)
			return m, nil
		}
		m.board.Insert(msg.tile)
	}
	return m, nil
}

func (m EditorModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.Quitting = true
		m.pointer.Cancel()
		m.board.Teardown()
		return m, tea.Quit
	case "a", "+":
		return m.add()
	case "x", "delete", "backspace":
		if id, ok := m.board.Selected(); ok {
			m.board.DeleteTile(id)
		}
	case "esc":
		m.clicks.Click()
	case "up":
		m.nudge(0, -m.cellH)
	case "down":
		m.nudge(0, m.cellH)
	case "left":
		m.nudge(-m.cellW, 0)
	case "right":
		m.nudge(m.cellW, 0)
	}
	return m, nil
}

// nudge moves the selected tile and commits the move as a final update.
func (m EditorModel) nudge(dx, dy float64) {
	if m.pointer.Active() {
		return
	}
	id, ok := m.board.Selected()
	if !ok {
		return
	}
	t, _ := m.board.Tile(id)
	m.board.UpdateTile(id, t.Geometry.Translate(dx, dy), true)
}

func (m EditorModel) add() (tea.Model, tea.Cmd) {
	if m.board.Closed() {
		return m, nil
	}
	m.Pending++
	b, ctx := m.board, m.ctx
	return m, func() tea.Msg {
		t, err := b.NewTile(ctx)
		return tileFetchedMsg{tile: t, err: err}
	}
}

func (m EditorModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	x, y := m.toCanvas(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionMotion:
		m.pointer.Move(x, y)
		return m, nil
	case tea.MouseActionRelease:
		m.pointer.Release(x, y)
		return m, nil
	case tea.MouseActionPress:
	default:
		return m, nil
	}
	if msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if msg.Y < headerRows {
		// The click also lands on the background.
		m.clicks.Click()
		if msg.X < lipgloss.Width(addLabel) {
			return m.add()
		}
		return m, nil
	}
	if !m.inCanvas(msg.X, msg.Y) {
		m.clicks.Click()
		return m, nil
	}

	if id, ok := m.board.TileAt(x, y); ok && m.onDeleteMarker(id, msg.X, msg.Y-headerRows) {
		m.board.DeleteTile(id)
		return m, nil
	}
	if m.pointer.Press(x, y) {
		return m, nil
	}
	if id, ok := m.board.TileAt(x, y); ok {
		m.board.Select(id)
		m.pointer.Press(x, y)
		return m, nil
	}
	m.clicks.Click()
	return m, nil
}

func (m EditorModel) onDeleteMarker(id string, col, row int) bool {
	t, ok := m.board.Tile(id)
	if !ok {
		return false
	}
	r := m.rect(t.Geometry)
	return col == r.col+r.cols-1 && row == r.row
}

// toCanvas maps a terminal cell to the canvas point at its center.
func (m EditorModel) toCanvas(col, row int) (float64, float64) {
	return (float64(col) + 0.5) * m.cellW, (float64(row-headerRows) + 0.5) * m.cellH
}

func (m EditorModel) inCanvas(col, row int) bool {
	cols, rows := m.canvasSize()
	row -= headerRows
	return col >= 0 && col < cols && row >= 0 && row < rows
}

// canvasSize returns the canvas size in cells.
func (m EditorModel) canvasSize() (cols, rows int) {
	return max(m.Width, 0), max(m.Height-headerRows-footerRows, 0)
}

func (m EditorModel) View() string {
	if m.Quitting {
		return ""
	}
	if m.Width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(styleButton.Render(addLabel))
	b.WriteString(StyleDim.Render(truncate(editorHelp, m.Width-lipgloss.Width(addLabel))))
	b.WriteString("\n")

	cols, rows := m.canvasSize()
	b.WriteString(m.renderCanvas(cols, rows))
	b.WriteString(StyleDim.Render(truncate(m.status(), m.Width)))
	return b.String()
}

func (m EditorModel) status() string {
	parts := []string{fmt.Sprintf("%d tiles", m.board.Len())}
	if id, ok := m.board.Selected(); ok {
		parts = append(parts, fmt.Sprintf("%s %s", shortID(id), m.board.State(id)))
		if t, ok := m.board.Tile(id); ok {
			parts = append(parts, t.Geometry.String())
		}
	}
	if bounds, ok := m.board.Bounds(); ok {
		parts = append(parts, fmt.Sprintf("canvas %gx%g", bounds.Width, bounds.Height))
	}
	if m.Pending > 0 {
		parts = append(parts, "fetching...")
	}
	return " " + strings.Join(parts, " · ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
