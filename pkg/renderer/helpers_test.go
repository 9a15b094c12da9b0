package renderer

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/geometry"
	"github.com/jiamingluuu/RayTracer2D/pkg/lights"
	"github.com/jiamingluuu/RayTracer2D/pkg/material"
)

// testLogger implements core.Logger for testing by capturing all output
type testLogger struct {
	mu       sync.Mutex
	messages []string
}

// Ensure testLogger implements core.Logger
var _ core.Logger = (*testLogger)(nil)

func (tl *testLogger) Printf(format string, args ...interface{}) {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	tl.messages = append(tl.messages, fmt.Sprintf(format, args...))
}

// count returns how many captured messages contain substr
func (tl *testLogger) count(substr string) int {
	tl.mu.Lock()
	defer tl.mu.Unlock()
	n := 0
	for _, m := range tl.messages {
		if strings.Contains(m, substr) {
			n++
		}
	}
	return n
}

// MockScene implements Scene for testing
type MockScene struct {
	shapes []geometry.Shape
	light  lights.Light
	window core.Window
}

func (m *MockScene) GetShapes() []geometry.Shape { return m.shapes }
func (m *MockScene) GetLight() lights.Light      { return m.light }
func (m *MockScene) GetWindow() core.Window      { return m.window }

func (m *MockScene) FindFirstHit(ray core.Ray) (geometry.Hit, bool) {
	closest := geometry.Hit{T: math.Inf(1)}
	for _, shape := range m.shapes {
		if t, ok := shape.Intersect(ray, core.RayEpsilon, closest.T); ok && t < closest.T {
			closest = geometry.Hit{T: t, Shape: shape}
		}
	}
	return closest, closest.Shape != nil
}

// newBoxScene returns a scene enclosed by four walls along the window
// border, with materials built by newMaterial
func newBoxScene(light lights.Light, newMaterial func() material.Material, extra ...geometry.Shape) *MockScene {
	window := core.DefaultWindow()
	corners := window.Corners()
	shapes := append([]geometry.Shape{}, extra...)
	for i := range corners {
		shapes = append(shapes, geometry.NewWallBetween(corners[i], corners[(i+1)%4], newMaterial()))
	}
	return &MockScene{shapes: shapes, light: light, window: window}
}

// sumImage returns the total accumulated energy over all channels
func sumImage(img *Image) float64 {
	total := 0.0
	for _, v := range img.data {
		total += v
	}
	return total
}
