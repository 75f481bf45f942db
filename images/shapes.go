// Package images - Image processing utilities
package images

import "image"

// Rect is a lightweight crop region in buffer pixel space.
type Rect struct {
	// X2,Y2 are exclusive (like image.Rectangle).
	X1, Y1, X2, Y2 int
}

// Canon returns the rectangle with its corners ordered so that X1<=X2 and Y1<=Y2.
// Two rectangles built from the same corners in any order canonicalize identically.
//
// Example Usage:
// ```go
//
//	Rect{X1: 60, Y1: 60, X2: 10, Y2: 10}.Canon() // Rect{10, 10, 60, 60}
//
// ```
func (r Rect) Canon() Rect {
	return Rect{
		X1: min(r.X1, r.X2),
		Y1: min(r.Y1, r.Y2),
		X2: max(r.X1, r.X2),
		Y2: max(r.Y1, r.Y2),
	}
}

// ClampTo limits both corners into [0,width] x [0,height].
// The rectangle is canonicalized first.
//
// Arguments:
//   - width: The buffer width.
//   - height: The buffer height.
//
// Returns:
//   - Rect: The clamped rectangle; it may be empty when the input lies outside.
func (r Rect) ClampTo(width, height int) Rect {
	c := r.Canon()
	return Rect{
		X1: ClampInt(c.X1, 0, width),
		Y1: ClampInt(c.Y1, 0, height),
		X2: ClampInt(c.X2, 0, width),
		Y2: ClampInt(c.Y2, 0, height),
	}
}

// Dx returns the width of the rectangle (negative if not canonical).
func (r Rect) Dx() int { return r.X2 - r.X1 }

// Dy returns the height of the rectangle (negative if not canonical).
func (r Rect) Dy() int { return r.Y2 - r.Y1 }

// Empty reports whether the rectangle covers zero or negative area.
func (r Rect) Empty() bool {
	return r.X2 <= r.X1 || r.Y2 <= r.Y1
}

// Area returns the covered area, or 0 for empty rectangles.
func (r Rect) Area() int {
	if r.Empty() {
		return 0
	}
	return r.Dx() * r.Dy()
}

// Rectangle converts to an image.Rectangle.
func (r Rect) Rectangle() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}
