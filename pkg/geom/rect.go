// Package geom provides the integer pixel geometry shared by the layout
// engine and both renderers: rectangles, insets and the label alignment enum.
//
// Coordinates follow image conventions: the origin is the top-left corner of
// the canvas, X grows to the right and Y grows downward. A Rect covers the
// half-open pixel range [X, X+W) × [Y, Y+H).
package geom

import (
	"fmt"
	"image"
)

// Rect is an axis-aligned rectangle in canvas pixels.
type Rect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int) Rect { return Rect{X: x, Y: y, W: w, H: h} }

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.W }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.H }

// Area returns W×H, or 0 for empty rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Overlaps reports whether r and o share at least one pixel.
// Rectangles that merely touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether o lies entirely inside r.
func (r Rect) Contains(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y && o.Right() <= r.Right() && o.Bottom() <= r.Bottom()
}

// Inset shrinks the rectangle by the given insets. The result never has a
// negative size.
func (r Rect) Inset(in Insets) Rect {
	out := Rect{
		X: r.X + in.Left,
		Y: r.Y + in.Top,
		W: r.W - in.Left - in.Right,
		H: r.H - in.Top - in.Bottom,
	}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Image converts to an image.Rectangle for use with image/draw.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.Right(), r.Bottom())
}

// String implements fmt.Stringer.
func (r Rect) String() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.W, r.H, r.X, r.Y)
}

// Insets describes per-edge distances in pixels.
type Insets struct {
	Top, Right, Bottom, Left int
}

// Uniform returns insets of n pixels on every edge.
func Uniform(n int) Insets { return Insets{Top: n, Right: n, Bottom: n, Left: n} }
