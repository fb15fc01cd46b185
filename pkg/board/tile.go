package board

import (
	"github.com/matzehuels/tileboard/pkg/geom"
)

// Color is one of the preset tile colors.
type Color string

// Palette colors.
const (
	Red    Color = "red"
	Blue   Color = "blue"
	Yellow Color = "yellow"
	Green  Color = "green"
	Purple Color = "purple"
)

// Palette lists the colors a new tile can get.
var Palette = []Color{Red, Blue, Yellow, Green, Purple}

// Default geometry of a new tile.
const (
	DefaultTileWidth  = 100
	DefaultTileHeight = 100
)

// Tile is a positioned, sized, colored, image-backed rectangle.
type Tile struct {
	ID string `json:"id"`
	geom.Geometry
	Color Color  `json:"color"`
	Image string `json:"image"`

	// Selected is derived from the board's selection slot when the tile is
	// read. It is never stored.
	Selected bool `json:"selected"`

	// UpdateEnd is true when the last update was the final one of a gesture.
	UpdateEnd bool `json:"updateEnd"`
}

// TileState is the gesture state of a tile.
type TileState int

// Tile states.
const (
	Idle TileState = iota
	Selected
	Dragging
	Resizing
)

func (s TileState) String() string {
	switch s {
	case Selected:
		return "selected"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}
