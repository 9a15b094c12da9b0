package core

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Window is the axis-aligned world rectangle mapped onto the pixel buffer.
// LLy maps to the top pixel row and URy to the bottom one.
type Window struct {
	Bounds rect.Rect
}

// NewWindow creates a window spanning [minX, maxX] x [minY, maxY]
func NewWindow(minX, minY, maxX, maxY float64) Window {
	return Window{Bounds: rect.Rect{LLx: minX, LLy: minY, URx: maxX, URy: maxY}}
}

// DefaultWindow returns the [-2, 2] x [-2, 2] window
func DefaultWindow() Window {
	return NewWindow(-2, -2, 2, 2)
}

// IsValid reports whether the window has a positive extent on both axes
func (w Window) IsValid() bool {
	return w.Bounds.Dx() > 0 && w.Bounds.Dy() > 0
}

// Contains reports whether p lies inside the window, allowing a margin of eps
func (w Window) Contains(p Vec2, eps float64) bool {
	b := w.Bounds
	return p.X >= b.LLx-eps && p.X <= b.URx+eps && p.Y >= b.LLy-eps && p.Y <= b.URy+eps
}

// Corners returns the four window corners in the order
// (minX, minY), (maxX, minY), (maxX, maxY), (minX, maxY)
func (w Window) Corners() [4]Vec2 {
	b := w.Bounds
	return [4]Vec2{
		{X: b.LLx, Y: b.LLy},
		{X: b.URx, Y: b.LLy},
		{X: b.URx, Y: b.URy},
		{X: b.LLx, Y: b.URy},
	}
}

// PixelTransform returns the affine map from world coordinates onto
// [0, width-1] x [0, height-1] pixel coordinates
func (w Window) PixelTransform(width, height int) matrix.Matrix {
	b := w.Bounds
	return matrix.Translate(-b.LLx, -b.LLy).
		Scale(float64(width-1)/b.Dx(), float64(height-1)/b.Dy())
}
