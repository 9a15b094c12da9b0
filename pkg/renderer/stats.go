package renderer

import (
	"image"
	"time"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	Samples  int           // Light samples traced
	Segments int           // Segments rendered into the image
	Escaped  int           // Samples that ended early because nothing was hit
	Duration time.Duration // Wall time of the render
}

// Add records one finished path
func (s *RenderStats) Add(path PathResult) {
	s.Samples++
	s.Segments += path.Segments
	if path.Escaped {
		s.Escaped++
	}
}

// Merge folds the counters of another run into s. Durations are not summed;
// parallel runs overlap in time.
func (s *RenderStats) Merge(other RenderStats) {
	s.Samples += other.Samples
	s.Segments += other.Segments
	s.Escaped += other.Escaped
}

// AverageSegments returns the mean number of segments per sample
func (s RenderStats) AverageSegments() float64 {
	if s.Samples == 0 {
		return 0
	}
	return float64(s.Segments) / float64(s.Samples)
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of an image
// in [0, 1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += (0.2126*float64(r) + 0.7152*float64(g) + 0.0722*float64(b)) / 0xffff
		}
	}
	return total / float64(pixels)
}
