package geometry

import (
	"math"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// Circle represents a circle shape
type Circle struct {
	Center   core.Vec2
	Radius   float64
	Material material.Material
}

// NewCircle creates a new circle
func NewCircle(center core.Vec2, radius float64, mat material.Material) *Circle {
	return &Circle{
		Center:   center,
		Radius:   radius,
		Material: mat,
	}
}

// Intersect returns the nearest root with tMin < t <= tMax
func (c *Circle) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	if c.Radius <= 0 {
		return 0, false
	}

	// Vector from circle center to ray origin
	oc := ray.Origin.Sub(c.Center)

	// Quadratic equation coefficients: at² + bt + c = 0
	a := ray.Direction.Dot(ray.Direction)
	b := 2 * ray.Direction.Dot(oc)
	cc := oc.Dot(oc) - c.Radius*c.Radius
	if a == 0 {
		return 0, false
	}

	discriminant := b*b - 4*a*cc
	if discriminant < 0 {
		return 0, false
	}
	sqrtD := math.Sqrt(discriminant)

	// Near root first; a ray starting inside falls through to the exit root
	root := (-b - sqrtD) / (2 * a)
	if root <= tMin || root > tMax {
		root = (-b + sqrtD) / (2 * a)
		if root <= tMin || root > tMax {
			return 0, false
		}
	}
	return root, true
}

// Normal returns the radial direction at point, flipped to face the ray
func (c *Circle) Normal(ray core.Ray, point core.Vec2) core.Vec2 {
	return facing(ray.Direction, core.Unit(point.Sub(c.Center)))
}

// Interact delegates to the circle's material
func (c *Circle) Interact(ray core.Ray, point, normal core.Vec2) core.Ray {
	return c.Material.Interact(ray, point, normal)
}
