package loaders

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const validScene = `
name: test-box
window: {min_x: -1, min_y: -1, max_x: 1, max_y: 1}
light:
  type: laser
  origin: [0, 0]
  direction: [1, 0.5]
  color: [1, 0.9, 0.8]
shapes:
  - type: circle
    center: [0.5, 0]
    radius: 0.2
    material: {type: refractive, index: 1.5, tint: [0.9, 0.9, 1]}
  - type: wall
    from: [-1, -1]
    to: [1, -1]
    material: {type: scattering}
`

func TestParseScene_Valid(t *testing.T) {
	scene, err := ParseScene(strings.NewReader(validScene))
	if err != nil {
		t.Fatalf("Failed to parse scene: %v", err)
	}

	expected := &SceneFile{
		Name:   "test-box",
		Window: &WindowSpec{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1},
		Light: LightSpec{
			Type:      "laser",
			Origin:    []float64{0, 0},
			Direction: []float64{1, 0.5},
			Color:     []float64{1, 0.9, 0.8},
		},
		Shapes: []ShapeSpec{
			{
				Type:     "circle",
				Center:   []float64{0.5, 0},
				Radius:   0.2,
				Material: MaterialSpec{Type: "refractive", Index: 1.5, Tint: []float64{0.9, 0.9, 1}},
			},
			{
				Type:     "wall",
				From:     []float64{-1, -1},
				To:       []float64{1, -1},
				Material: MaterialSpec{Type: "scattering"},
			},
		},
	}
	if diff := cmp.Diff(expected, scene); diff != "" {
		t.Errorf("Parsed scene mismatch (-want +got):\n%s", diff)
	}
}

func TestParseScene_Errors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		sentinel error
		contains string
	}{
		{
			name: "unknown shape",
			yaml: `
light: {type: point, origin: [0, 0]}
shapes:
  - {type: circle, center: [0, 0], radius: 1, material: {type: reflective}}
  - {type: triangle, material: {type: reflective}}
`,
			sentinel: ErrUnknownShape,
			contains: "shape 1",
		},
		{
			name: "unknown material",
			yaml: `
light: {type: point, origin: [0, 0]}
shapes:
  - {type: circle, center: [0, 0], radius: 1, material: {type: metal}}
`,
			sentinel: ErrUnknownMaterial,
			contains: "shape 0",
		},
		{
			name: "unknown light",
			yaml: `
light: {type: spot, origin: [0, 0]}
shapes:
  - {type: circle, center: [0, 0], radius: 1, material: {type: reflective}}
`,
			sentinel: ErrUnknownLight,
			contains: "light",
		},
		{
			name: "zero radius",
			yaml: `
light: {type: point, origin: [0, 0]}
shapes:
  - {type: circle, center: [0, 0], radius: 0, material: {type: reflective}}
`,
			contains: "radius must be positive",
		},
		{
			name: "zero length wall",
			yaml: `
light: {type: point, origin: [0, 0]}
shapes:
  - {type: wall, from: [1, 1], to: [1, 1], material: {type: reflective}}
`,
			contains: "zero length",
		},
		{
			name: "laser without direction",
			yaml: `
light: {type: laser, origin: [0, 0]}
shapes:
  - {type: circle, center: [0, 0], radius: 1, material: {type: reflective}}
`,
			contains: "direction needs 2 values",
		},
		{
			name: "inverted window",
			yaml: `
window: {min_x: 1, min_y: -1, max_x: -1, max_y: 1}
light: {type: point, origin: [0, 0]}
shapes:
  - {type: circle, center: [0, 0], radius: 1, material: {type: reflective}}
`,
			contains: "window",
		},
		{
			name: "no shapes",
			yaml: `
light: {type: point, origin: [0, 0]}
`,
			contains: "no shapes",
		},
		{
			name: "unknown key",
			yaml: `
light: {type: point, origin: [0, 0]}
colour: [1, 1, 1]
shapes:
  - {type: circle, center: [0, 0], radius: 1, material: {type: reflective}}
`,
			contains: "failed to parse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScene(strings.NewReader(tt.yaml))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if tt.sentinel != nil && !errors.Is(err, tt.sentinel) {
				t.Errorf("Expected error wrapping %v, got %v", tt.sentinel, err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Expected error containing %q, got %q", tt.contains, err.Error())
			}
		})
	}
}

func TestLoadScene_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mirror-room.yaml")
	body := strings.Replace(validScene, "name: test-box\n", "", 1)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write scene file: %v", err)
	}

	scene, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Failed to load scene: %v", err)
	}
	if scene.Name != "mirror-room" {
		t.Errorf("Expected name from file name, got %q", scene.Name)
	}
	if len(scene.Shapes) != 2 {
		t.Errorf("Expected 2 shapes, got %d", len(scene.Shapes))
	}
}

func TestLoadScene_InvalidPaths(t *testing.T) {
	tests := []struct {
		name string
		path string
	}{
		{"empty", ""},
		{"wrong extension", "scenes/box.pbrt"},
		{"null byte", "scenes/box\x00.yaml"},
		{"missing file", filepath.Join(os.TempDir(), "does-not-exist.yaml")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadScene(tt.path); err == nil {
				t.Errorf("Expected error for path %q", tt.path)
			}
		})
	}
}

func TestSceneFile_SaveAndLoad(t *testing.T) {
	original, err := ParseScene(strings.NewReader(validScene))
	if err != nil {
		t.Fatalf("Failed to parse scene: %v", err)
	}

	path := filepath.Join(t.TempDir(), "saved.yml")
	if err := original.Save(path); err != nil {
		t.Fatalf("Failed to save scene: %v", err)
	}

	loaded, err := LoadScene(path)
	if err != nil {
		t.Fatalf("Failed to load saved scene: %v", err)
	}
	if diff := cmp.Diff(original, loaded); diff != "" {
		t.Errorf("Saved scene mismatch (-want +got):\n%s", diff)
	}
}

func TestIsSceneFile(t *testing.T) {
	tests := []struct {
		name     string
		expected bool
	}{
		{"default", false},
		{"scenes/box.yaml", true},
		{"BOX.YML", true},
		{"box.json", false},
	}

	for _, tt := range tests {
		if got := IsSceneFile(tt.name); got != tt.expected {
			t.Errorf("IsSceneFile(%q): expected %v, got %v", tt.name, tt.expected, got)
		}
	}
}
