package scene

import (
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/lights"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// NewDefaultScene creates the reference scene: a laser at the origin, a
// diffuse and a mirrored circle, and diffuse walls along the window border
func NewDefaultScene(seed int64) *Scene {
	seeds := core.NewSeedSequence(seed)
	scattering := func() material.Material {
		return material.NewScattering(seeds.Sampler())
	}

	laser := lights.NewLaserLight(
		core.NewVec2(0, 0),   // origin
		core.NewVec2(1, 0.8), // direction, normalized by the light
		core.White,
	)
	s := New("default", core.DefaultWindow(), laser)

	s.AddCircle(core.NewVec2(1.5, -1.5), 0.55, scattering())
	s.AddCircle(core.NewVec2(0.5, -0.5), 0.25, material.NewReflective())
	s.AddBorderWalls(scattering)

	return s
}
