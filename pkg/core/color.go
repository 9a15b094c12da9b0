package core

import "fmt"

// Color is an RGB radiance triple carried by a ray
type Color struct {
	R, G, B float64
}

// NewColor creates a new Color
func NewColor(r, g, b float64) Color {
	return Color{R: r, G: g, B: b}
}

// White is full unit radiance on every channel
var White = Color{R: 1, G: 1, B: 1}

// Multiply returns the component-wise product of two colors
func (c Color) Multiply(other Color) Color {
	return Color{R: c.R * other.R, G: c.G * other.G, B: c.B * other.B}
}

// Scale returns the color scaled by a scalar
func (c Color) Scale(s float64) Color {
	return Color{R: c.R * s, G: c.G * s, B: c.B * s}
}

// Add returns the component-wise sum of two colors
func (c Color) Add(other Color) Color {
	return Color{R: c.R + other.R, G: c.G + other.G, B: c.B + other.B}
}

// IsValid reports whether every channel lies in [0, 1].
// Products of colors may leave this range; nothing clamps them.
func (c Color) IsValid() bool {
	return 0 <= c.R && c.R <= 1 && 0 <= c.G && c.G <= 1 && 0 <= c.B && c.B <= 1
}

func (c Color) String() string {
	return fmt.Sprintf("(%g, %g, %g)", c.R, c.G, c.B)
}
