package core

import "fmt"

// Ray is an oriented half-line carrying radiance through the scene
type Ray struct {
	Origin    Vec2
	Direction Vec2
	Color     Color

	// Inside is true while the ray travels inside a refractive medium
	Inside bool

	// Monochromatic rays carry a hue in [0, 1] (deep red to purple) that
	// stands in for wavelength. Nothing in the propagation loop reads it.
	Monochromatic bool
	Hue           float64
}

// NewRay creates a new ray
func NewRay(origin, direction Vec2, color Color) Ray {
	return Ray{Origin: origin, Direction: direction, Color: color}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec2 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Spawn returns a ray leaving point in direction that keeps this ray's
// color, medium state and hue
func (r Ray) Spawn(point, direction Vec2) Ray {
	next := r
	next.Origin = point
	next.Direction = direction
	return next
}

func (r Ray) String() string {
	return fmt.Sprintf("{ p=(%g, %g), d=(%g, %g) }", r.Origin.X, r.Origin.Y, r.Direction.X, r.Direction.Y)
}
