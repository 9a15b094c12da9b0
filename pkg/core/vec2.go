package core

import (
	"math"

	"seehuhn.de/go/geom/vec"
)

// Vec2 is a 2D point or direction in world space
type Vec2 = vec.Vec2

const (
	// Epsilon is the tolerance used for parallelism and approximate equality tests
	Epsilon = 1e-9

	// RayEpsilon is the minimum travel distance accepted for a hit, so a ray
	// leaving a surface does not immediately re-hit it
	RayEpsilon = 1e-6

	// minLengthSquared guards normalization against near-zero vectors
	minLengthSquared = 1e-24
)

// NewVec2 creates a new Vec2
func NewVec2(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Cross returns the 2D cross product (z component of the 3D cross product)
func Cross(u, v Vec2) float64 {
	return u.X*v.Y - u.Y*v.X
}

// LengthSquared returns the squared length of v
func LengthSquared(v Vec2) float64 {
	return v.X*v.X + v.Y*v.Y
}

// Unit returns v scaled to unit length. Near-zero vectors map to the x axis.
func Unit(v Vec2) Vec2 {
	lengthSq := LengthSquared(v)
	if lengthSq <= minLengthSquared {
		return Vec2{X: 1, Y: 0}
	}
	return v.Mul(1 / math.Sqrt(lengthSq))
}

// Rotate returns v rotated counter-clockwise by theta radians
func Rotate(v Vec2, theta float64) Vec2 {
	c, s := math.Cos(theta), math.Sin(theta)
	return Vec2{X: c*v.X - s*v.Y, Y: s*v.X + c*v.Y}
}

// ApproxEqual reports whether a and b agree component-wise within eps,
// relative to the larger magnitude once that exceeds 1
func ApproxEqual(a, b Vec2, eps float64) bool {
	return approxEqual(a.X, b.X, eps) && approxEqual(a.Y, b.Y, eps)
}

func approxEqual(a, b, eps float64) bool {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	return math.Abs(a-b) <= eps*scale
}

// HasNaN reports whether either component of v is NaN
func HasNaN(v Vec2) bool {
	return math.IsNaN(v.X) || math.IsNaN(v.Y)
}
