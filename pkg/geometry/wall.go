package geometry

import (
	"math"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// Wall is a finite line segment from Origin to Origin+Displacement
type Wall struct {
	Origin       core.Vec2
	Displacement core.Vec2
	Material     material.Material
}

// NewWall creates a wall from origin spanning displacement
func NewWall(origin, displacement core.Vec2, mat material.Material) *Wall {
	return &Wall{
		Origin:       origin,
		Displacement: displacement,
		Material:     mat,
	}
}

// NewWallBetween creates a wall with the given endpoints
func NewWallBetween(from, to core.Vec2, mat material.Material) *Wall {
	return NewWall(from, to.Sub(from), mat)
}

// End returns the second endpoint of the wall
func (w *Wall) End() core.Vec2 {
	return w.Origin.Add(w.Displacement)
}

// IntersectParams solves ray.Origin + t·ray.Direction = Origin + s·Displacement.
// ok is false when the ray and the wall are parallel, which includes the
// collinear case.
func (w *Wall) IntersectParams(ray core.Ray) (t, s float64, ok bool) {
	denom := core.Cross(ray.Direction, w.Displacement)
	if math.Abs(denom) < core.Epsilon {
		return 0, 0, false
	}
	diff := w.Origin.Sub(ray.Origin)
	t = core.Cross(diff, w.Displacement) / denom
	s = core.Cross(diff, ray.Direction) / denom
	return t, s, true
}

// Intersect tests if a ray crosses the wall segment at tMin < t <= tMax
func (w *Wall) Intersect(ray core.Ray, tMin, tMax float64) (float64, bool) {
	t, s, ok := w.IntersectParams(ray)
	if !ok {
		return 0, false
	}
	if t <= tMin || t > tMax || s < 0 || s > 1 {
		return 0, false
	}
	return t, true
}

// Normal returns the wall's perpendicular, flipped to face the ray
func (w *Wall) Normal(ray core.Ray, point core.Vec2) core.Vec2 {
	return facing(ray.Direction, core.Unit(w.Displacement.Rot90()))
}

// Interact delegates to the wall's material
func (w *Wall) Interact(ray core.Ray, point, normal core.Vec2) core.Ray {
	return w.Material.Interact(ray, point, normal)
}
