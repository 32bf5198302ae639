package imlib

import (
	"fmt"
	"image"
	"math"
)

// Rect is an axis-aligned rectangle in pixel coordinates.
// It covers columns X..X+W-1 and rows Y..Y+H-1.
type Rect struct {
	X, Y, W, H int
}

// R is shorthand for Rect{X: x, Y: y, W: w, H: h}.
func R(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Empty reports whether the rectangle covers no pixels.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Area returns W*H, or 0 for an empty rectangle.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.W * r.H
}

// Contains reports whether pixel (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// In reports whether every pixel of r lies inside o.
// An empty r is never inside anything.
func (r Rect) In(o Rect) bool {
	if r.Empty() {
		return false
	}
	return r.X >= o.X && r.Y >= o.Y && r.X+r.W <= o.X+o.W && r.Y+r.H <= o.Y+o.H
}

// Overlaps reports whether r and o share a pixel. A zero-sized rectangle
// still overlaps a rectangle that strictly surrounds its position.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.Y < o.Y+o.H && o.X < r.X+r.W && o.Y < r.Y+r.H
}

// Union returns the smallest rectangle covering both r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.X+r.W, o.X+o.W), max(r.Y+r.H, o.Y+o.H)
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// maxGrow bounds the margin Grow applies so the grown edges of any image
// rectangle stay representable, even where int is 32 bits.
const maxGrow = math.MaxInt32 / 4

// Grow moves every edge of r outwards by m pixels. A negative m shrinks
// the rectangle; width and height never drop below zero. m is clamped to
// ±maxGrow, which already covers every image.
func (r Rect) Grow(m int) Rect {
	m = min(max(m, -maxGrow), maxGrow)
	return Rect{
		X: r.X - m,
		Y: r.Y - m,
		W: max(r.W+2*m, 0),
		H: max(r.H+2*m, 0),
	}
}

// ToImageRect converts r to an image.Rectangle.
func (r Rect) ToImageRect() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.W, r.Y+r.H)
}

// String returns "(x,y wxh)".
func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}
