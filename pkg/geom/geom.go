package geom

import "fmt"

// Geometry is the position and size of a tile relative to the container's
// top-left corner.
type Geometry struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bounds is the measured content box of the container.
type Bounds struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Bottom returns Top+Height.
func (g Geometry) Bottom() float64 { return g.Top + g.Height }

// Right returns Left+Width.
func (g Geometry) Right() float64 { return g.Left + g.Width }

// Contains reports whether the point (x, y) lies inside g. The right and
// bottom edges are exclusive.
func (g Geometry) Contains(x, y float64) bool {
	return x >= g.Left && x < g.Right() && y >= g.Top && y < g.Bottom()
}

// Inside reports whether g lies entirely within b.
func (g Geometry) Inside(b Bounds) bool {
	return g.Top >= 0 && g.Left >= 0 && g.Bottom() <= b.Height && g.Right() <= b.Width
}

// Translate returns g moved by (dx, dy).
func (g Geometry) Translate(dx, dy float64) Geometry {
	g.Left += dx
	g.Top += dy
	return g
}

func (g Geometry) String() string {
	return fmt.Sprintf("%gx%g@(%g,%g)", g.Width, g.Height, g.Left, g.Top)
}

// Valid reports whether both dimensions are positive.
func (b Bounds) Valid() bool { return b.Width > 0 && b.Height > 0 }

func (b Bounds) String() string {
	return fmt.Sprintf("%gx%g", b.Width, b.Height)
}
