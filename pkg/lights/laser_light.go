package lights

import "github.com/jiamingluuu/RayTracer2D/pkg/core"

// LaserLight emits every ray from one point in one fixed direction
type LaserLight struct {
	Origin    core.Vec2
	Direction core.Vec2 // unit length
	Color     core.Color
}

// NewLaserLight creates a laser pointing along direction, which is normalized
func NewLaserLight(origin, direction core.Vec2, color core.Color) *LaserLight {
	return &LaserLight{
		Origin:    origin,
		Direction: core.Unit(direction),
		Color:     color,
	}
}

func (l *LaserLight) Type() LightType {
	return LightTypeLaser
}

// SampleRay returns the same ray on every call
func (l *LaserLight) SampleRay() core.Ray {
	return core.NewRay(l.Origin, l.Direction, l.Color)
}

func (l *LaserLight) Position() core.Vec2 {
	return l.Origin
}
