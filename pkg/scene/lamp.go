package scene

import (
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/lights"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// NewLampScene creates a scene lit by a point light between two mirrors,
// with a warm diffuse circle and a glass circle
func NewLampScene(seed int64) *Scene {
	seeds := core.NewSeedSequence(seed)

	lamp := lights.NewPointLight(core.NewVec2(0, 0.5), core.NewColor(1, 0.95, 0.85), seeds.Sampler())
	s := New("lamp", core.DefaultWindow(), lamp)

	s.AddWall(core.NewVec2(-1.5, -1.2), core.NewVec2(-1.5, 1.2), material.NewReflective())
	s.AddWall(core.NewVec2(1.5, -1.2), core.NewVec2(1.5, 1.2), material.NewReflective())

	warm := material.NewTinted(material.NewScattering(seeds.Sampler()), core.NewColor(1, 0.7, 0.4))
	s.AddCircle(core.NewVec2(0.6, -0.8), 0.4, warm)
	s.AddCircle(core.NewVec2(-0.6, -0.6), 0.3, material.NewRefractive(1.33))

	s.AddBorderWalls(func() material.Material {
		return material.NewScattering(seeds.Sampler())
	})

	return s
}
