package scene

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/loaders"
	"github.com/jiamingluuu/RayTracer2D/pkg/renderer"
)

const farWallScene = `name: far-wall
light: {type: laser, origin: [0, 0], direction: [1, 0]}
shapes:
  - type: wall
    from: [1e9, -1]
    to: [1e9, 1]
    material: {type: reflective}
`

func TestFileScene_FarWallRenders(t *testing.T) {
	desc, err := loaders.ParseScene(strings.NewReader(farWallScene))
	if err != nil {
		t.Fatalf("Failed to parse scene: %v", err)
	}
	s, err := FromDescription(desc, 1)
	if err != nil {
		t.Fatalf("Failed to build scene: %v", err)
	}

	rt := renderer.NewRaytracer(s, 256, 256, &renderer.DefaultLogger{Out: &strings.Builder{}})
	rt.SetSamplingConfig(renderer.SamplingConfig{NumRays: 1, MaxDepth: 1})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := rt.Render(ctx)
		done <- err
	}()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Expected the render to finish with the far segment clipped")
	}

	// The laser crosses the window along y=0 from the center to the right edge
	img := rt.Image()
	p := img.ToPixel(core.NewVec2(1.5, 0))
	if got := img.At(int(p.X+0.5), int(p.Y+0.5)); got != core.White {
		t.Errorf("Expected the beam inside the window, got %v", got)
	}
}
