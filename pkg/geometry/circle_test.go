package geometry

import (
	"math"
	"testing"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

func TestCircle_Intersect(t *testing.T) {
	unit := NewCircle(core.NewVec2(0, 0), 1, material.NewReflective())

	tests := []struct {
		name      string
		circle    *Circle
		origin    core.Vec2
		direction core.Vec2
		shouldHit bool
		expectedT float64
	}{
		{"from outside", unit, core.NewVec2(3, 0), core.NewVec2(-1, 0), true, 2},
		{"from inside picks exit root", unit, core.NewVec2(0.5, 0), core.NewVec2(1, 0), true, 0.5},
		{"from center", unit, core.NewVec2(0, 0), core.NewVec2(0, -1), true, 1},
		{"tangent", unit, core.NewVec2(-3, 1), core.NewVec2(1, 0), true, 3},
		{"parallel chord misses", unit, core.NewVec2(-3, 2), core.NewVec2(1, 0), false, 0},
		{"circle behind origin", unit, core.NewVec2(3, 0), core.NewVec2(1, 0), false, 0},
		{"non-normalized direction", unit, core.NewVec2(3, 0), core.NewVec2(-2, 0), true, 1},
		{"far circle", NewCircle(core.NewVec2(1e6, 0), 1, material.NewReflective()), core.NewVec2(1e6-10, 0), core.NewVec2(1, 0), true, 9},
		{"zero radius", NewCircle(core.NewVec2(0, 0), 0, material.NewReflective()), core.NewVec2(3, 0), core.NewVec2(-1, 0), false, 0},
		{"zero direction", unit, core.NewVec2(3, 0), core.NewVec2(0, 0), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.origin, tt.direction, core.White)
			got, hit := tt.circle.Intersect(ray, core.RayEpsilon, math.Inf(1))

			if hit != tt.shouldHit {
				t.Fatalf("Expected hit=%v, got %v", tt.shouldHit, hit)
			}
			if hit && math.Abs(got-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, got)
			}
		})
	}
}

func TestCircle_IntersectRange(t *testing.T) {
	circle := NewCircle(core.NewVec2(0, 0), 1, material.NewReflective())
	ray := core.NewRay(core.NewVec2(3, 0), core.NewVec2(-1, 0), core.White)

	// tMax below the near root but above the far root is still a miss on the near side
	if _, hit := circle.Intersect(ray, core.RayEpsilon, 1.5); hit {
		t.Error("Expected no hit when both roots exceed tMax")
	}

	// tMin past the near root selects the far root
	got, hit := circle.Intersect(ray, 2.5, math.Inf(1))
	if !hit || math.Abs(got-4) > 1e-9 {
		t.Errorf("Expected far root t=4, got t=%f hit=%v", got, hit)
	}

	// A ray leaving the surface does not re-hit it at t≈0
	leaving := core.NewRay(core.NewVec2(1, 0), core.NewVec2(1, 0), core.White)
	if _, hit := circle.Intersect(leaving, core.RayEpsilon, math.Inf(1)); hit {
		t.Error("Expected no self-hit for a ray leaving the surface outward")
	}
}

func TestCircle_EndToEnd(t *testing.T) {
	circle := NewCircle(core.NewVec2(0, 0), 1, material.NewReflective())
	ray := core.NewRay(core.NewVec2(3, 0), core.NewVec2(-1, 0), core.White)

	tHit, hit := circle.Intersect(ray, core.RayEpsilon, math.Inf(1))
	if !hit {
		t.Fatal("Expected hit")
	}
	point := ray.At(tHit)
	if !core.ApproxEqual(point, core.NewVec2(1, 0), 1e-12) {
		t.Errorf("Expected hit point (1, 0), got %v", point)
	}
	normal := circle.Normal(ray, point)
	if !core.ApproxEqual(normal, core.NewVec2(1, 0), 1e-12) {
		t.Errorf("Expected normal (1, 0), got %v", normal)
	}

	next := circle.Interact(ray, point, normal)
	if !core.ApproxEqual(next.Direction, core.NewVec2(1, 0), 1e-12) {
		t.Errorf("Expected reflected direction (1, 0), got %v", next.Direction)
	}
}

func TestCircle_NormalFacesRay(t *testing.T) {
	circle := NewCircle(core.NewVec2(0.3, -0.2), 0.7, material.NewReflective())
	sampler := core.NewSeededSampler(11)

	for i := 0; i < 500; i++ {
		// Origins both inside and outside the circle
		origin := core.NewVec2(4*sampler.Get1D()-2, 4*sampler.Get1D()-2)
		direction := core.Rotate(core.NewVec2(1, 0), 2*math.Pi*sampler.Get1D())
		ray := core.NewRay(origin, direction, core.White)

		tHit, hit := circle.Intersect(ray, core.RayEpsilon, math.Inf(1))
		if !hit {
			continue
		}
		n := circle.Normal(ray, ray.At(tHit))
		if math.Abs(n.Length()-1) > 1e-12 {
			t.Fatalf("Expected unit normal, got length %f", n.Length())
		}
		if ray.Direction.Dot(n) > 0 {
			t.Fatalf("Normal %v forms an acute angle with direction %v", n, ray.Direction)
		}
	}
}

func TestCircle_InsideNormalPointsInward(t *testing.T) {
	circle := NewCircle(core.NewVec2(0, 0), 1, material.NewReflective())
	ray := core.NewRay(core.NewVec2(0, 0), core.NewVec2(1, 0), core.White)

	n := circle.Normal(ray, core.NewVec2(1, 0))
	if !core.ApproxEqual(n, core.NewVec2(-1, 0), 1e-12) {
		t.Errorf("Expected inward normal (-1, 0), got %v", n)
	}
}
