package lights

import (
	"math"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// PointLight emits rays from one point in directions drawn uniformly
// over the full circle
type PointLight struct {
	Origin  core.Vec2
	Color   core.Color
	sampler core.Sampler
}

// NewPointLight creates a point light drawing directions from sampler
func NewPointLight(origin core.Vec2, color core.Color, sampler core.Sampler) *PointLight {
	return &PointLight{
		Origin:  origin,
		Color:   color,
		sampler: sampler,
	}
}

func (l *PointLight) Type() LightType {
	return LightTypePoint
}

// SampleRay draws one angle in [0, 2π) and emits a unit ray along it
func (l *PointLight) SampleRay() core.Ray {
	theta := 2 * math.Pi * l.sampler.Get1D()
	direction := core.NewVec2(math.Cos(theta), math.Sin(theta))
	return core.NewRay(l.Origin, direction, l.Color)
}

func (l *PointLight) Position() core.Vec2 {
	return l.Origin
}
