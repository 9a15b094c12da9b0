package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/jiamingluuu/RayTracer2D/pkg/renderer"
)

// Accepted ranges for the render parameters
const (
	MinImageSize  = 256
	MaxImageSize  = 4096
	MinNumRays    = 1
	MaxNumRays    = 10000000
	MinTraceDepth = 1
	MaxTraceDepth = 25
)

// Options holds everything needed for one render
type Options struct {
	Width    int     `yaml:"width"`
	Height   int     `yaml:"height"`
	NumRays  int     `yaml:"num_rays"`
	MaxDepth int     `yaml:"max_depth"`
	Scene    string  `yaml:"scene"`  // Built-in scene name or .yaml path
	Output   string  `yaml:"output"` // Output image path
	Format   string  `yaml:"format"` // Empty means infer from Output
	Seed     int64   `yaml:"seed"`
	Workers  int     `yaml:"workers"` // 1 renders on the calling goroutine
	Outline  bool    `yaml:"outline"` // Draw shape outlines over the render
	Gamma    float64 `yaml:"gamma"`   // Offset used by the log compression
}

// DefaultOptions creates the default render options
func DefaultOptions() *Options {
	sampling := renderer.DefaultSamplingConfig()
	return &Options{
		Width:    1024,
		Height:   1024,
		NumRays:  sampling.NumRays,
		MaxDepth: sampling.MaxDepth,
		Scene:    "default",
		Output:   "output.ppm",
		Seed:     1,
		Workers:  1,
		Gamma:    renderer.DefaultGammaOffset,
	}
}

// ValidationError lists every option that is out of range
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "invalid configuration: " + strings.Join(e.Violations, "; ")
}

// Validate checks all options and returns a *ValidationError naming each violation
func (o *Options) Validate() error {
	var violations []string
	checkRange := func(name string, value, min, max int) {
		if value < min || value > max {
			violations = append(violations, fmt.Sprintf("%s must be between %d and %d, got %d", name, min, max, value))
		}
	}

	checkRange("width", o.Width, MinImageSize, MaxImageSize)
	checkRange("height", o.Height, MinImageSize, MaxImageSize)
	checkRange("num_rays", o.NumRays, MinNumRays, MaxNumRays)
	checkRange("max_depth", o.MaxDepth, MinTraceDepth, MaxTraceDepth)

	if o.Workers < 1 {
		violations = append(violations, fmt.Sprintf("workers must be at least 1, got %d", o.Workers))
	}
	if !(o.Gamma > 0) {
		violations = append(violations, fmt.Sprintf("gamma must be positive, got %g", o.Gamma))
	}
	if o.Scene == "" {
		violations = append(violations, "scene must not be empty")
	}
	if o.Output == "" {
		violations = append(violations, "output must not be empty")
	} else if _, err := o.OutputFormat(); err != nil {
		violations = append(violations, err.Error())
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// OutputFormat returns the explicit format, or the one implied by the output extension
func (o *Options) OutputFormat() (renderer.Format, error) {
	if o.Format != "" {
		return renderer.ParseFormat(o.Format)
	}
	return renderer.FormatFromFilename(o.Output)
}

// SamplingConfig returns the ray budget as a renderer config
func (o *Options) SamplingConfig() renderer.SamplingConfig {
	return renderer.SamplingConfig{
		NumRays:  o.NumRays,
		MaxDepth: o.MaxDepth,
	}
}

// Load reads options from a YAML file. Keys missing from the file keep
// their default values; unknown keys are an error.
func Load(path string) (*Options, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	opts := DefaultOptions()
	if err := yaml.UnmarshalStrict(data, opts); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return opts, nil
}

// Save writes options to a YAML file
func Save(opts *Options, path string) error {
	data, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
