package material

import (
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// DefaultRefractionOffset is how far the direction is nudged along the normal
const DefaultRefractionOffset = 0.1

// Refractive is a transparent medium.
//
// This is a simplified model, not Snell's law: on entry the direction is
// nudged toward the inward normal by Offset, on exit away from it, and the
// result is renormalized. RefractiveIndex is kept for scene descriptions but
// does not influence the bend.
type Refractive struct {
	RefractiveIndex float64
	Offset          float64
}

// NewRefractive creates a refractive material with the default offset
func NewRefractive(refractiveIndex float64) *Refractive {
	return &Refractive{RefractiveIndex: refractiveIndex, Offset: DefaultRefractionOffset}
}

// Interact bends the ray and toggles whether it is inside the medium
func (m *Refractive) Interact(rayIn core.Ray, point, normal core.Vec2) core.Ray {
	offset := m.Offset
	entering := !rayIn.Inside
	if entering {
		offset = -offset
	}

	direction := core.Unit(rayIn.Direction.Add(normal.Mul(offset)))
	refracted := rayIn.Spawn(point, direction)
	refracted.Inside = !rayIn.Inside
	return refracted
}
