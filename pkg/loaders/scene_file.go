package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

var (
	ErrUnknownShape    = errors.New("unknown shape type")
	ErrUnknownMaterial = errors.New("unknown material type")
	ErrUnknownLight    = errors.New("unknown light type")
)

// SceneFile is the parsed form of a YAML scene description
type SceneFile struct {
	Name   string      `yaml:"name"`
	Window *WindowSpec `yaml:"window,omitempty"` // nil selects the default window
	Light  LightSpec   `yaml:"light"`
	Shapes []ShapeSpec `yaml:"shapes"`
}

// WindowSpec is the world rectangle mapped onto the image
type WindowSpec struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// LightSpec describes the scene's single light source
type LightSpec struct {
	Type      string    `yaml:"type"`      // laser, point
	Origin    []float64 `yaml:"origin"`    // [x, y]
	Direction []float64 `yaml:"direction"` // [x, y], laser only
	Color     []float64 `yaml:"color"`     // [r, g, b], defaults to white
}

// ShapeSpec describes one surface. Circles use Center and Radius, walls use From and To.
type ShapeSpec struct {
	Type     string       `yaml:"type"` // circle, wall
	Center   []float64    `yaml:"center,omitempty"`
	Radius   float64      `yaml:"radius,omitempty"`
	From     []float64    `yaml:"from,omitempty"`
	To       []float64    `yaml:"to,omitempty"`
	Material MaterialSpec `yaml:"material"`
}

// MaterialSpec describes the material owned by a shape
type MaterialSpec struct {
	Type  string    `yaml:"type"`            // reflective, scattering, refractive
	Index float64   `yaml:"index,omitempty"` // refractive index
	Tint  []float64 `yaml:"tint,omitempty"`  // [r, g, b] attenuation
}

// ParseScene parses a YAML scene description from an io.Reader.
// Unknown keys are rejected.
func ParseScene(reader io.Reader) (*SceneFile, error) {
	decoder := yaml.NewDecoder(reader)
	decoder.SetStrict(true)

	var scene SceneFile
	if err := decoder.Decode(&scene); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if err := scene.Validate(); err != nil {
		return nil, err
	}
	return &scene, nil
}

// LoadScene loads and parses a YAML scene file
func LoadScene(filename string) (*SceneFile, error) {
	if err := validateFilePath(filename); err != nil {
		return nil, err
	}

	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	scene, err := ParseScene(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if scene.Name == "" {
		scene.Name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	}
	return scene, nil
}

// Save writes the scene description as YAML
func (s *SceneFile) Save(filename string) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("error serializing scene: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("error writing scene file: %w", err)
	}
	return nil
}

// IsSceneFile reports whether name looks like a scene file path rather than a built-in scene name
func IsSceneFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks the description for values that cannot produce a scene
func (s *SceneFile) Validate() error {
	if w := s.Window; w != nil {
		if !(w.MinX < w.MaxX && w.MinY < w.MaxY) {
			return fmt.Errorf("window: min must be below max on both axes")
		}
	}

	if err := s.Light.validate(); err != nil {
		return fmt.Errorf("light: %w", err)
	}

	if len(s.Shapes) == 0 {
		return fmt.Errorf("scene has no shapes")
	}
	for i := range s.Shapes {
		if err := s.Shapes[i].validate(); err != nil {
			return fmt.Errorf("shape %d: %w", i, err)
		}
	}
	return nil
}

func (l *LightSpec) validate() error {
	if err := checkLen("origin", l.Origin, 2); err != nil {
		return err
	}
	if l.Color != nil {
		if err := checkLen("color", l.Color, 3); err != nil {
			return err
		}
	}

	switch l.Type {
	case "laser":
		if err := checkLen("direction", l.Direction, 2); err != nil {
			return err
		}
		if l.Direction[0] == 0 && l.Direction[1] == 0 {
			return fmt.Errorf("direction must be non-zero")
		}
	case "point":
	default:
		return fmt.Errorf("%w %q", ErrUnknownLight, l.Type)
	}
	return nil
}

func (s *ShapeSpec) validate() error {
	switch s.Type {
	case "circle":
		if err := checkLen("center", s.Center, 2); err != nil {
			return err
		}
		if s.Radius <= 0 {
			return fmt.Errorf("radius must be positive, got %g", s.Radius)
		}
	case "wall":
		if err := checkLen("from", s.From, 2); err != nil {
			return err
		}
		if err := checkLen("to", s.To, 2); err != nil {
			return err
		}
		if s.From[0] == s.To[0] && s.From[1] == s.To[1] {
			return fmt.Errorf("wall has zero length")
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownShape, s.Type)
	}

	return s.Material.validate()
}

func (m *MaterialSpec) validate() error {
	switch m.Type {
	case "reflective", "scattering":
	case "refractive":
		if m.Index < 0 {
			return fmt.Errorf("refractive index must not be negative, got %g", m.Index)
		}
	default:
		return fmt.Errorf("material: %w %q", ErrUnknownMaterial, m.Type)
	}
	if m.Tint != nil {
		if err := checkLen("tint", m.Tint, 3); err != nil {
			return fmt.Errorf("material: %w", err)
		}
	}
	return nil
}

func checkLen(field string, values []float64, want int) error {
	if len(values) != want {
		return fmt.Errorf("%s needs %d values, got %d", field, want, len(values))
	}
	return nil
}

// validateFilePath rejects paths that cannot name a scene file
func validateFilePath(filename string) error {
	if filename == "" {
		return fmt.Errorf("filename cannot be empty")
	}

	// Check for null bytes (could indicate path manipulation)
	if strings.Contains(filename, "\x00") {
		return fmt.Errorf("invalid file path: null bytes not allowed")
	}

	if len(filepath.Clean(filename)) > 512 {
		return fmt.Errorf("file path too long: maximum 512 characters allowed")
	}

	if !IsSceneFile(filename) {
		return fmt.Errorf("invalid file type: only .yaml and .yml files are allowed")
	}
	return nil
}
