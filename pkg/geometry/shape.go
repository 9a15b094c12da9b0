package geometry

import "github.com/jiamingluuu/RayTracer2D/pkg/core"

// Shape is a surface that rays can hit. Each shape owns exactly one material.
type Shape interface {
	// Intersect returns the smallest ray parameter t with tMin < t <= tMax at
	// which the ray meets the shape
	Intersect(ray core.Ray, tMin, tMax float64) (float64, bool)

	// Normal returns the unit normal at point, oriented against ray.Direction
	Normal(ray core.Ray, point core.Vec2) core.Vec2

	// Interact hands the hit to the shape's material and returns the next ray
	Interact(ray core.Ray, point, normal core.Vec2) core.Ray
}

// Hit is the nearest intersection found along a ray
type Hit struct {
	T     float64
	Shape Shape
}

// facing negates n when it forms an acute angle with direction, so the
// returned normal always points back against the incoming ray
func facing(direction, n core.Vec2) core.Vec2 {
	if direction.Dot(n) > 0 {
		return n.Neg()
	}
	return n
}
