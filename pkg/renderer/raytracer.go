package renderer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/geometry"
	"github.com/jiamingluuu/RayTracer2D/pkg/lights"
)

// DefaultLogger implements core.Logger by writing to Out, or stderr when Out
// is nil. It is safe for use by several workers.
type DefaultLogger struct {
	Out io.Writer
	mu  sync.Mutex
}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	dl.mu.Lock()
	defer dl.mu.Unlock()
	out := dl.Out
	if out == nil {
		out = os.Stderr
	}
	fmt.Fprintf(out, format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	NumRays  int // Number of independent light samples
	MaxDepth int // Maximum bounces per sample
}

// DefaultSamplingConfig returns sensible default values
func DefaultSamplingConfig() SamplingConfig {
	return SamplingConfig{
		NumRays:  100000,
		MaxDepth: 10,
	}
}

// Scene interface to avoid circular imports
type Scene interface {
	FindFirstHit(ray core.Ray) (geometry.Hit, bool)
	GetLight() lights.Light
	GetWindow() core.Window
	GetShapes() []geometry.Shape
}

// PathResult describes how one sample's path ended
type PathResult struct {
	Segments int  // Segments rendered into the image
	Escaped  bool // Path ended because the ray hit nothing
}

// Raytracer traces light samples through a scene into an Image
type Raytracer struct {
	scene  Scene
	image  *Image
	config SamplingConfig
	logger core.Logger
}

// NewRaytracer creates a raytracer with a fresh width x height image
// covering the scene's window
func NewRaytracer(scene Scene, width, height int, logger core.Logger) *Raytracer {
	return &Raytracer{
		scene:  scene,
		image:  NewImage(width, height, scene.GetWindow(), logger),
		config: DefaultSamplingConfig(),
		logger: logger,
	}
}

// SetSamplingConfig updates the sampling configuration
func (rt *Raytracer) SetSamplingConfig(config SamplingConfig) {
	rt.config = config
}

// Image returns the accumulation buffer
func (rt *Raytracer) Image() *Image {
	return rt.image
}

// PropagateRay follows ray for at most depth bounces, rendering each
// traversed segment. A ray that hits nothing ends only this path.
func (rt *Raytracer) PropagateRay(ray core.Ray, depth int) PathResult {
	var result PathResult
	for i := 0; i < depth; i++ {
		hit, ok := rt.scene.FindFirstHit(ray)
		if !ok {
			rt.logger.Printf("Ray escaped the scene at depth %d: %v\n", i, ray)
			result.Escaped = true
			return result
		}

		point := ray.At(hit.T)
		normal := hit.Shape.Normal(ray, point)
		rt.image.RenderRay(ray, point)
		result.Segments++

		ray = hit.Shape.Interact(ray, point, normal)
	}
	return result
}

// RenderSamples traces n light samples. Cancellation is checked between samples.
func (rt *Raytracer) RenderSamples(ctx context.Context, n int) (RenderStats, error) {
	var stats RenderStats
	light := rt.scene.GetLight()
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Add(rt.PropagateRay(light.SampleRay(), rt.config.MaxDepth))
	}
	return stats, nil
}

// Render traces every configured sample on the calling goroutine, logging
// progress every tenth of the run
func (rt *Raytracer) Render(ctx context.Context) (RenderStats, error) {
	start := time.Now()
	total := rt.config.NumRays
	chunk := total
	if total > 10 {
		chunk = total / 10
	}

	var stats RenderStats
	for done := 0; done < total; done += chunk {
		if total > 10 {
			rt.logger.Printf("Progress=%f\n", float64(done)/float64(total))
		}
		part, err := rt.RenderSamples(ctx, min(chunk, total-done))
		stats.Merge(part)
		if err != nil {
			stats.Duration = time.Since(start)
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	return stats, nil
}
