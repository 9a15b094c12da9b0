package material

import (
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// Material decides how a ray leaves a surface it has hit
type Material interface {
	// Interact returns the ray spawned at point after rayIn hits a surface
	// whose normal there is normal. The normal points back against rayIn.
	Interact(rayIn core.Ray, point, normal core.Vec2) core.Ray
}

// Type names a material variant, as used in scene files
type Type string

const (
	TypeReflective Type = "reflective"
	TypeScattering Type = "scattering"
	TypeRefractive Type = "refractive"
)
