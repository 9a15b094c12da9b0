package scene

import (
	"fmt"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/geometry"
	"github.com/jiamingluuu/RayTracer2D/pkg/lights"
	"github.com/jiamingluuu/RayTracer2D/pkg/loaders"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// NewFileScene creates a scene from a YAML scene file
func NewFileScene(filename string, seed int64) (*Scene, error) {
	desc, err := loaders.LoadScene(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return FromDescription(desc, seed)
}

// FromDescription builds a scene from a parsed description. Every stochastic
// material and light gets its own sampler derived from seed.
func FromDescription(desc *loaders.SceneFile, seed int64) (*Scene, error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	seeds := core.NewSeedSequence(seed)

	window := core.DefaultWindow()
	if w := desc.Window; w != nil {
		window = core.NewWindow(w.MinX, w.MinY, w.MaxX, w.MaxY)
	}

	light, err := convertLight(&desc.Light, seeds)
	if err != nil {
		return nil, fmt.Errorf("failed to convert light: %w", err)
	}

	s := New(desc.Name, window, light)
	for i := range desc.Shapes {
		shape, err := convertShape(&desc.Shapes[i], seeds)
		if err != nil {
			return nil, fmt.Errorf("failed to convert shape %d: %w", i, err)
		}
		s.Add(shape)
	}
	return s, nil
}

func convertLight(spec *loaders.LightSpec, seeds *core.SeedSequence) (lights.Light, error) {
	origin := toVec2(spec.Origin)
	color := core.White
	if spec.Color != nil {
		color = toColor(spec.Color)
	}

	switch lights.LightType(spec.Type) {
	case lights.LightTypeLaser:
		return lights.NewLaserLight(origin, toVec2(spec.Direction), color), nil
	case lights.LightTypePoint:
		return lights.NewPointLight(origin, color, seeds.Sampler()), nil
	default:
		return nil, fmt.Errorf("%w %q", loaders.ErrUnknownLight, spec.Type)
	}
}

func convertShape(spec *loaders.ShapeSpec, seeds *core.SeedSequence) (geometry.Shape, error) {
	mat, err := convertMaterial(&spec.Material, seeds)
	if err != nil {
		return nil, err
	}

	switch spec.Type {
	case "circle":
		return geometry.NewCircle(toVec2(spec.Center), spec.Radius, mat), nil
	case "wall":
		return geometry.NewWallBetween(toVec2(spec.From), toVec2(spec.To), mat), nil
	default:
		return nil, fmt.Errorf("%w %q", loaders.ErrUnknownShape, spec.Type)
	}
}

func convertMaterial(spec *loaders.MaterialSpec, seeds *core.SeedSequence) (material.Material, error) {
	var mat material.Material
	switch material.Type(spec.Type) {
	case material.TypeReflective:
		mat = material.NewReflective()
	case material.TypeScattering:
		mat = material.NewScattering(seeds.Sampler())
	case material.TypeRefractive:
		mat = material.NewRefractive(spec.Index)
	default:
		return nil, fmt.Errorf("%w %q", loaders.ErrUnknownMaterial, spec.Type)
	}

	if spec.Tint != nil {
		mat = material.NewTinted(mat, toColor(spec.Tint))
	}
	return mat, nil
}

func toVec2(values []float64) core.Vec2 {
	return core.NewVec2(values[0], values[1])
}

func toColor(values []float64) core.Color {
	return core.NewColor(values[0], values[1], values[2])
}
