package board

import (
	"github.com/matzehuels/tileboard/pkg/geom"
	"github.com/matzehuels/tileboard/pkg/gesture"
)

// tileHandler turns gesture frames for one tile into board updates.
//
// Resize frames keep the stored top/left and only change the size; the
// position shift of north and west resizes is applied once, on release.
// West-edge resizes pin the horizontal translation at zero and recompute
// left from the width delta instead.
type tileHandler struct {
	b  *Board
	id string

	west         bool
	initialLeft  float64
	initialWidth float64
}

func newTileHandler(b *Board, id string) *tileHandler {
	return &tileHandler{b: b, id: id}
}

func (h *tileHandler) OnDrag(e gesture.Event) {
	t, ok := h.b.Tile(h.id)
	if !ok {
		return
	}
	h.b.setState(h.id, Dragging)
	h.b.UpdateTile(h.id, geom.Geometry{
		Top:    e.Top,
		Left:   e.Left,
		Width:  t.Width,
		Height: t.Height,
	}, false)
}

func (h *tileHandler) OnDragEnd(gesture.Event) {
	h.b.setState(h.id, Selected)
}

func (h *tileHandler) OnResizeStart(e *gesture.ResizeStart) {
	h.b.setState(h.id, Resizing)
	h.west = e.Direction.West()
	if h.west {
		h.initialLeft = e.Left
		h.initialWidth = e.Width
		e.PinTranslateX(0)
	}
}

func (h *tileHandler) OnResize(e gesture.Event) {
	t, ok := h.b.Tile(h.id)
	if !ok {
		return
	}
	size := geom.CapSize(geom.Geometry{Width: e.Width, Height: e.Height}, t.Top, t.Left, h.b.bounds)
	h.b.UpdateTile(h.id, geom.Geometry{
		Top:    t.Top,
		Left:   t.Left,
		Width:  size.Width,
		Height: size.Height,
	}, false)
}

func (h *tileHandler) OnResizeEnd(last gesture.Event) {
	defer func() {
		h.west = false
		h.b.setState(h.id, Selected)
	}()

	t, ok := h.b.Tile(h.id)
	if !ok {
		return
	}
	size := geom.CapSize(geom.Geometry{Width: last.Width, Height: last.Height}, t.Top, t.Left, h.b.bounds)

	top := t.Top + last.Translate[1]
	left := t.Left + last.Translate[0]
	if h.west {
		left = h.initialLeft - (last.Width - h.initialWidth)
	}

	h.b.UpdateTile(h.id, geom.Geometry{
		Top:    top,
		Left:   left,
		Width:  size.Width,
		Height: size.Height,
	}, true)
}

var _ gesture.Handler = (*tileHandler)(nil)
