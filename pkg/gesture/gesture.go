package gesture

import (
	"github.com/matzehuels/tileboard/pkg/geom"
)

// Direction identifies a resize handle. X is -1 for the west edge, 1 for the
// east edge and 0 otherwise; Y is -1 for north, 1 for south. The zero value is
// the body of the target.
type Direction [2]int

// Handle directions.
var (
	NW = Direction{-1, -1}
	N  = Direction{0, -1}
	NE = Direction{1, -1}
	W  = Direction{-1, 0}
	E  = Direction{1, 0}
	SW = Direction{-1, 1}
	S  = Direction{0, 1}
	SE = Direction{1, 1}
)

// Body reports whether d is the zero direction.
func (d Direction) Body() bool { return d == Direction{} }

// West reports whether d moves the left edge.
func (d Direction) West() bool { return d[0] == -1 }

// North reports whether d moves the top edge.
func (d Direction) North() bool { return d[1] == -1 }

func (d Direction) String() string {
	if d.Body() {
		return "body"
	}
	s := ""
	switch d[1] {
	case -1:
		s += "n"
	case 1:
		s += "s"
	}
	switch d[0] {
	case -1:
		s += "w"
	case 1:
		s += "e"
	}
	return s
}

// Event is one frame of a gesture.
type Event struct {
	Top       float64
	Left      float64
	Width     float64
	Height    float64
	Direction Direction

	// Translate is the position shift accumulated since the gesture started,
	// as {x, y}.
	Translate [2]float64
}

// Geometry returns the proposed geometry of the frame.
func (e Event) Geometry() geom.Geometry {
	return geom.Geometry{Top: e.Top, Left: e.Left, Width: e.Width, Height: e.Height}
}

// ResizeStart is delivered once when a resize begins.
type ResizeStart struct {
	Event

	pinX func(float64)
}

// PinTranslateX fixes the horizontal translation reported by the rest of the
// resize to x.
func (r *ResizeStart) PinTranslateX(x float64) {
	if r.pinX != nil {
		r.pinX(x)
	}
}

// Handler receives gesture events for an attached target.
type Handler interface {
	OnDrag(e Event)
	OnDragEnd(last Event)
	OnResizeStart(e *ResizeStart)
	OnResize(e Event)
	OnResizeEnd(last Event)
}

// Target is the element a gesture manipulates. Geometry reports false once
// the element no longer exists.
type Target interface {
	Geometry() (geom.Geometry, bool)
}

// Source produces gesture events for at most one target at a time. Attaching
// replaces any previous attachment. The returned function detaches; calling
// it after another Attach has no effect.
type Source interface {
	Attach(t Target, h Handler) (detach func())
}
