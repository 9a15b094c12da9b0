package material

import (
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// Reflective is a perfect mirror
type Reflective struct{}

// NewReflective creates a new mirror material
func NewReflective() *Reflective {
	return &Reflective{}
}

// Interact reflects the incoming direction about the normal
func (m *Reflective) Interact(rayIn core.Ray, point, normal core.Vec2) core.Ray {
	return rayIn.Spawn(point, core.Unit(reflect(rayIn.Direction, normal)))
}

// reflect calculates the reflection of a vector v off a surface with normal n
func reflect(v, n core.Vec2) core.Vec2 {
	// r = v - 2*dot(v,n)*n
	return v.Sub(n.Mul(2 * v.Dot(n)))
}
