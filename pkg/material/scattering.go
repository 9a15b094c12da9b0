package material

import (
	"math"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// Scattering re-emits rays diffusely into the hemisphere the normal points into
type Scattering struct {
	sampler core.Sampler // owned by this material; one draw per interaction
}

// NewScattering creates a scattering material drawing angles from sampler
func NewScattering(sampler core.Sampler) *Scattering {
	return &Scattering{sampler: sampler}
}

// Interact rotates the normal by an angle drawn uniformly from [-π/2, π/2]
func (m *Scattering) Interact(rayIn core.Ray, point, normal core.Vec2) core.Ray {
	theta := (m.sampler.Get1D() - 0.5) * math.Pi
	direction := core.Unit(core.Rotate(normal, theta))
	return rayIn.Spawn(point, direction)
}
