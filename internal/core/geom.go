// Package core holds the platform-neutral types shared by games and the
// terminal layer: the cell screen, input frames and run summaries. It has no
// Bubble Tea dependency.
package core

import "cmp"

// Rect is an axis-aligned rectangle in screen cells.
type Rect struct {
	X, Y int
	W, H int
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Centered returns a w×h rectangle centered in an area of areaW×areaH cells.
func Centered(areaW, areaH, w, h int) Rect {
	return Rect{X: (areaW - w) / 2, Y: (areaH - h) / 2, W: w, H: h}
}

// Right returns the x-coordinate one past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate one past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Empty reports whether the rectangle covers no cells.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Clip returns the part of r inside a w×h screen. The result may be empty.
func (r Rect) Clip(w, h int) Rect {
	x0, y0 := max(r.X, 0), max(r.Y, 0)
	x1, y1 := min(r.Right(), w), min(r.Bottom(), h)
	return Rect{X: x0, Y: y0, W: max(x1-x0, 0), H: max(y1-y0, 0)}
}

// Clamp restricts v to [lo, hi].
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
