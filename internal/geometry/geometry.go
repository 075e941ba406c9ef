// Package geometry holds the pure coordinate helpers used by the layout
// editor: grid snapping and axis-aligned rectangle math. Nothing in here
// carries state and nothing can fail.
package geometry

import "math"

// Snap rounds v to the nearest multiple of grid. A grid of zero or less
// disables snapping and returns v unchanged.
func Snap(v, grid float64) float64 {
	if grid <= 0 {
		return v
	}
	return math.Round(v/grid) * grid
}

// Rect is an axis-aligned rectangle stored normalized, so Min is always
// less than or equal to Max on both axes.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// NewRect builds a normalized Rect from two corner points. The corners may
// arrive in any order; a marquee dragged right-to-left or bottom-to-top
// produces the same rectangle as the opposite drag.
func NewRect(x1, y1, x2, y2 float64) Rect {
	return Rect{
		MinX: math.Min(x1, x2),
		MinY: math.Min(y1, y2),
		MaxX: math.Max(x1, x2),
		MaxY: math.Max(y1, y2),
	}
}

// OverlapsSquare reports whether the square with top-left corner (x, y) and
// the given edge length overlaps r. Touching edges do not count as overlap.
func (r Rect) OverlapsSquare(x, y, size float64) bool {
	return x+size > r.MinX && x < r.MaxX && y+size > r.MinY && y < r.MaxY
}
