package scene

import (
	"math"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/geometry"
	"github.com/jiamingluuu/RayTracer2D/pkg/lights"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// Scene contains all the elements needed for rendering
type Scene struct {
	Name   string
	Window core.Window      // World rectangle mapped onto the image
	Light  lights.Light     // The single light source
	Shapes []geometry.Shape // Surfaces in insertion order
}

// New creates an empty scene
func New(name string, window core.Window, light lights.Light) *Scene {
	return &Scene{
		Name:   name,
		Window: window,
		Light:  light,
		Shapes: make([]geometry.Shape, 0),
	}
}

// Add appends a shape to the scene
func (s *Scene) Add(shape geometry.Shape) {
	s.Shapes = append(s.Shapes, shape)
}

// AddCircle adds a circle owning mat
func (s *Scene) AddCircle(center core.Vec2, radius float64, mat material.Material) *geometry.Circle {
	circle := geometry.NewCircle(center, radius, mat)
	s.Add(circle)
	return circle
}

// AddWall adds a wall between two endpoints
func (s *Scene) AddWall(from, to core.Vec2, mat material.Material) *geometry.Wall {
	wall := geometry.NewWallBetween(from, to, mat)
	s.Add(wall)
	return wall
}

// AddBorderWalls encloses the window with four walls. newMaterial is called
// once per wall so that no two walls share a material.
func (s *Scene) AddBorderWalls(newMaterial func() material.Material) {
	corners := s.Window.Corners()
	for i := range corners {
		s.AddWall(corners[i], corners[(i+1)%len(corners)], newMaterial())
	}
}

// FindFirstHit returns the nearest shape along the ray. On exactly equal
// distances the shape added first wins.
func (s *Scene) FindFirstHit(ray core.Ray) (geometry.Hit, bool) {
	closest := geometry.Hit{T: math.Inf(1)}
	for _, shape := range s.Shapes {
		if t, ok := shape.Intersect(ray, core.RayEpsilon, closest.T); ok && t < closest.T {
			closest = geometry.Hit{T: t, Shape: shape}
		}
	}
	return closest, closest.Shape != nil
}

func (s *Scene) GetShapes() []geometry.Shape {
	return s.Shapes
}

func (s *Scene) GetLight() lights.Light {
	return s.Light
}

func (s *Scene) GetWindow() core.Window {
	return s.Window
}
