package lights

import "github.com/jiamingluuu/RayTracer2D/pkg/core"

type LightType string

const (
	LightTypeLaser LightType = "laser"
	LightTypePoint LightType = "point"
)

// Light interface for sources that emit rays into the scene
type Light interface {
	Type() LightType

	// SampleRay returns one emitted ray. Stochastic lights draw from their
	// own sampler, so a light must not be shared between goroutines.
	SampleRay() core.Ray

	// Position returns the point every emitted ray starts from
	Position() core.Vec2
}
