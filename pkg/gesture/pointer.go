package gesture

import (
	"github.com/matzehuels/tileboard/pkg/geom"
)

type mode int

const (
	modeIdle mode = iota
	modeDrag
	modeResize
)

// DefaultMinSize is the smallest width or height a resize produces.
const DefaultMinSize = 1

// Pointer is a [Source] driven by pointer positions in canvas units.
//
// Handles are bands of HandleX units along the left and right edges and
// HandleY units along the top and bottom edges of the target. A press inside
// a band starts a resize in that direction; a press elsewhere inside the
// target starts a drag. A press and release without motion in between emits
// nothing.
//
// Pointer is not safe for concurrent use.
type Pointer struct {
	HandleX float64
	HandleY float64
	MinSize float64

	target  Target
	handler Handler
	gen     int

	mode    mode
	moved   bool
	start   geom.Geometry
	originX float64
	originY float64
	dir     Direction
	pinned  bool
	pinX    float64
	last    Event
}

// NewPointer creates a Pointer with the given handle thickness.
func NewPointer(handleX, handleY float64) *Pointer {
	return &Pointer{HandleX: handleX, HandleY: handleY, MinSize: DefaultMinSize}
}

// Attach implements [Source]. An in-progress gesture on the previous target is
// dropped without an end event.
func (p *Pointer) Attach(t Target, h Handler) func() {
	p.reset()
	p.gen++
	p.target, p.handler = t, h
	gen := p.gen
	return func() {
		if p.gen != gen {
			return
		}
		p.reset()
		p.target, p.handler = nil, nil
	}
}

// Attached reports whether a target is attached.
func (p *Pointer) Attached() bool { return p.target != nil }

// Active reports whether a drag or resize is in progress.
func (p *Pointer) Active() bool { return p.mode != modeIdle }

// Hit reports whether (x, y) lands on the attached target and which handle
// it lands on.
func (p *Pointer) Hit(x, y float64) (Direction, bool) {
	if p.target == nil {
		return Direction{}, false
	}
	g, ok := p.target.Geometry()
	if !ok || !g.Contains(x, y) {
		return Direction{}, false
	}
	return p.handleAt(g, x, y), true
}

func (p *Pointer) handleAt(g geom.Geometry, x, y float64) Direction {
	var d Direction
	switch {
	case x >= g.Right()-p.HandleX:
		d[0] = 1
	case x < g.Left+p.HandleX:
		d[0] = -1
	}
	switch {
	case y >= g.Bottom()-p.HandleY:
		d[1] = 1
	case y < g.Top+p.HandleY:
		d[1] = -1
	}
	return d
}

// Press begins a gesture if (x, y) lands on the attached target. It reports
// whether the press was consumed.
func (p *Pointer) Press(x, y float64) bool {
	dir, ok := p.Hit(x, y)
	if !ok {
		return false
	}
	g, _ := p.target.Geometry()
	p.start = g
	p.originX, p.originY = x, y
	p.dir = dir
	p.moved = false
	p.pinned = false
	p.last = Event{Top: g.Top, Left: g.Left, Width: g.Width, Height: g.Height, Direction: dir}
	if dir.Body() {
		p.mode = modeDrag
	} else {
		p.mode = modeResize
	}
	return true
}

// Move emits a frame for the gesture in progress.
func (p *Pointer) Move(x, y float64) {
	if p.mode == modeIdle || p.handler == nil {
		return
	}
	dx, dy := x-p.originX, y-p.originY
	if !p.moved {
		if dx == 0 && dy == 0 {
			return
		}
		p.moved = true
		if p.mode == modeResize {
			rs := &ResizeStart{Event: p.last, pinX: p.pin}
			p.handler.OnResizeStart(rs)
			if p.mode == modeIdle || p.handler == nil {
				return
			}
		}
	}

	switch p.mode {
	case modeDrag:
		p.last = Event{
			Top:       p.start.Top + dy,
			Left:      p.start.Left + dx,
			Width:     p.start.Width,
			Height:    p.start.Height,
			Translate: [2]float64{dx, dy},
		}
		p.handler.OnDrag(p.last)
	case modeResize:
		p.last = p.resizeFrame(dx, dy)
		p.handler.OnResize(p.last)
	}
}

func (p *Pointer) pin(x float64) {
	p.pinned = true
	p.pinX = x
}

func (p *Pointer) resizeFrame(dx, dy float64) Event {
	minSize := max(p.MinSize, 0)
	w, h := p.start.Width, p.start.Height
	switch p.dir[0] {
	case 1:
		w = p.start.Width + dx
	case -1:
		w = p.start.Width - dx
	}
	switch p.dir[1] {
	case 1:
		h = p.start.Height + dy
	case -1:
		h = p.start.Height - dy
	}
	w, h = max(w, minSize), max(h, minSize)

	var tx, ty float64
	if p.dir.West() {
		tx = p.start.Width - w
	}
	if p.dir.North() {
		ty = p.start.Height - h
	}
	if p.pinned {
		tx = p.pinX
	}

	return Event{
		Top:       p.start.Top + ty,
		Left:      p.start.Left + tx,
		Width:     w,
		Height:    h,
		Direction: p.dir,
		Translate: [2]float64{tx, ty},
	}
}

// Release applies the final position and ends the gesture in progress.
func (p *Pointer) Release(x, y float64) {
	if p.mode == modeIdle {
		return
	}
	p.Move(x, y)
	h, m, moved, last := p.handler, p.mode, p.moved, p.last
	p.reset()
	if !moved || h == nil {
		return
	}
	switch m {
	case modeDrag:
		h.OnDragEnd(last)
	case modeResize:
		h.OnResizeEnd(last)
	}
}

// Cancel drops the gesture in progress without an end event.
func (p *Pointer) Cancel() { p.reset() }

func (p *Pointer) reset() {
	p.mode = modeIdle
	p.moved = false
	p.pinned = false
	p.pinX = 0
	p.last = Event{}
}

var _ Source = (*Pointer)(nil)
