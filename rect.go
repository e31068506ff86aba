package texpack

import (
	"fmt"
	"image"
)

// Rect is a packed image's rectangle in the pixel space of the atlas
// surface. The origin is the top-left corner.
//
// The zero Rect is returned for unknown ids and cannot be told apart from
// an image that had zero size.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// IsEmpty returns true if the rect has no area.
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Contains returns true if the point (x, y) is inside the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Overlaps returns true if r and o share at least one pixel.
func (r Rect) Overlaps(o Rect) bool {
	if r.IsEmpty() || o.IsEmpty() {
		return false
	}
	return r.X < o.X+o.Width && o.X < r.X+r.Width &&
		r.Y < o.Y+o.Height && o.Y < r.Y+r.Height
}

// Max returns the bottom-right corner (exclusive).
func (r Rect) Max() (x, y int) {
	return r.X + r.Width, r.Y + r.Height
}

// Image returns the rect as an image.Rectangle.
func (r Rect) Image() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// String returns a string representation of the rect.
func (r Rect) String() string {
	return fmt.Sprintf("Rect(%d,%d %dx%d)", r.X, r.Y, r.Width, r.Height)
}

// Size is a width and height in pixels.
type Size struct {
	Width  int
	Height int
}

// Area returns Width*Height.
func (s Size) Area() int {
	return s.Width * s.Height
}

// String returns a string representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// sizeOf returns the dimensions of img's bounds.
func sizeOf(img image.Image) Size {
	if img == nil {
		return Size{}
	}
	b := img.Bounds()
	return Size{Width: b.Dx(), Height: b.Dy()}
}
