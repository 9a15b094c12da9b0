package scene

import (
	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/lights"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// NewPrismScene creates a scene where a laser crosses a row of tinted
// refractive circles before reaching diffuse walls
func NewPrismScene(seed int64) *Scene {
	seeds := core.NewSeedSequence(seed)

	laser := lights.NewLaserLight(core.NewVec2(-1.8, 0.1), core.NewVec2(1, -0.05), core.White)
	s := New("prism", core.DefaultWindow(), laser)

	tints := []core.Color{
		core.NewColor(1, 0.55, 0.55),
		core.NewColor(0.55, 1, 0.55),
		core.NewColor(0.55, 0.55, 1),
	}
	for i, tint := range tints {
		glass := material.NewTinted(material.NewRefractive(1.5), tint)
		s.AddCircle(core.NewVec2(-0.9+0.9*float64(i), 0), 0.35, glass)
	}

	// Mirror on the far side sends the beam back through the row
	s.AddWall(core.NewVec2(1.6, -1), core.NewVec2(1.9, 1), material.NewReflective())

	s.AddBorderWalls(func() material.Material {
		return material.NewScattering(seeds.Sampler())
	})

	return s
}
