// Package geom holds the rectangle math for the tile board.
//
// All values are in canvas units. The terminal editor maps one cell to a
// configurable number of units, so a tile of 100x100 units spans several
// cells in each direction.
//
// # Clamping
//
// [Clamp] keeps a proposed geometry inside the container bounds by moving it,
// never by shrinking it:
//
//	b := geom.Bounds{Width: 200, Height: 200}
//	g := geom.Clamp(geom.Geometry{Top: 150, Left: 150, Width: 100, Height: 100}, &b)
//	// g == {Top: 100, Left: 100, Width: 100, Height: 100}
//
// Shrinking is the job of [CapSize], which resize gestures apply against the
// tile's stored position before the update is committed.
//
// A nil *Bounds means the container has not been measured yet. Both functions
// return the geometry unchanged in that case.
package geom
