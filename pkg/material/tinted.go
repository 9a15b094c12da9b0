package material

import (
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// Tinted wraps another material and filters the radiance of every ray it
// produces. The three base materials never attenuate on their own.
type Tinted struct {
	Base Material
	Tint core.Color
}

// NewTinted creates a tinted material
func NewTinted(base Material, tint core.Color) *Tinted {
	return &Tinted{Base: base, Tint: tint}
}

// Interact delegates to the base material, then multiplies in the tint
func (m *Tinted) Interact(rayIn core.Ray, point, normal core.Vec2) core.Ray {
	out := m.Base.Interact(rayIn, point, normal)
	out.Color = out.Color.Multiply(m.Tint)
	return out
}
