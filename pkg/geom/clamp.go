package geom

// Clamp moves g so that it fits inside b, leaving its size alone.
//
// Top and left are first raised to zero, then lowered until the far edge
// touches the container edge. When g is larger than b the far edge wins and
// the resulting offset is negative; a second Clamp with the same bounds
// returns the same geometry.
//
// Clamp returns g unchanged when b is nil.
func Clamp(g Geometry, b *Bounds) Geometry {
	if b == nil {
		return g
	}
	g.Top = min(max(g.Top, 0), b.Height-g.Height)
	g.Left = min(max(g.Left, 0), b.Width-g.Width)
	return g
}

// CapSize shrinks the width and height of g so that a tile anchored at
// (anchorLeft, anchorTop) does not extend past the right or bottom edge of b.
//
// The anchor is the tile's stored position, not g's. During a resize the
// stored position lags behind the one the gesture is moving toward, and the
// cap follows the stored one.
//
// CapSize returns g unchanged when b is nil.
func CapSize(g Geometry, anchorTop, anchorLeft float64, b *Bounds) Geometry {
	if b == nil {
		return g
	}
	if anchorTop+g.Height > b.Height {
		g.Height = b.Height - anchorTop
	}
	if anchorLeft+g.Width > b.Width {
		g.Width = b.Width - anchorLeft
	}
	return g
}
