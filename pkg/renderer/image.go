package renderer

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/floats"
	"seehuhn.de/go/geom/matrix"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
)

// DefaultGammaOffset is the constant added before log compression
const DefaultGammaOffset = 1.5

// Image accumulates radiance in a floating point RGB buffer addressed in
// world coordinates. Writes are additive until AdjustGamma runs.
type Image struct {
	Width, Height int

	window  core.Window
	toPixel matrix.Matrix
	data    []float64 // row-major RGB triples

	gammaApplied bool
	layers       []*image.RGBA // overlays added on export
	logger       core.Logger
}

// NewImage creates a zeroed buffer mapping window onto width x height pixels
func NewImage(width, height int, window core.Window, logger core.Logger) *Image {
	return &Image{
		Width:   width,
		Height:  height,
		window:  window,
		toPixel: window.PixelTransform(width, height),
		data:    make([]float64, width*height*3),
		logger:  logger,
	}
}

// Window returns the world rectangle the image covers
func (img *Image) Window() core.Window {
	return img.window
}

// ToPixel maps a world point to continuous pixel coordinates
func (img *Image) ToPixel(p core.Vec2) core.Vec2 {
	return img.toPixel.Apply(p)
}

// At returns the accumulated radiance of a pixel
func (img *Image) At(x, y int) core.Color {
	if !img.inBounds(x, y) {
		return core.Color{}
	}
	i := img.index(x, y)
	return core.Color{R: img.data[i], G: img.data[i+1], B: img.data[i+2]}
}

// Add deposits c into pixel (x, y); pixels outside the buffer are skipped
func (img *Image) Add(x, y int, c core.Color) {
	if !img.inBounds(x, y) {
		return
	}
	i := img.index(x, y)
	img.data[i] += c.R
	img.data[i+1] += c.G
	img.data[i+2] += c.B
}

func (img *Image) inBounds(x, y int) bool {
	return x >= 0 && x < img.Width && y >= 0 && y < img.Height
}

func (img *Image) index(x, y int) int {
	return (x + y*img.Width) * 3
}

// Splat adds c to the 3x3 neighbourhood around p, each pixel weighted by
// exp(-d²/2) of its distance to the exact pixel position of p
func (img *Image) Splat(p core.Vec2, c core.Color) {
	if !c.IsValid() {
		img.logger.Printf("Splat: color %v outside [0, 1]\n", c)
	}
	px := img.ToPixel(p)
	cx, cy := int(math.Round(px.X)), int(math.Round(px.Y))

	for j := cy - 1; j <= cy+1; j++ {
		for i := cx - 1; i <= cx+1; i++ {
			dx, dy := px.X-float64(i), px.Y-float64(j)
			weight := math.Exp(-0.5 * (dx*dx + dy*dy))
			img.Add(i, j, c.Scale(weight))
		}
	}
}

// RenderRay rasterizes the segment from the ray's origin to end using the
// ray's color. Endpoints outside the window are reported but still drawn.
func (img *Image) RenderRay(ray core.Ray, end core.Vec2) {
	if !img.window.Contains(ray.Origin, core.RayEpsilon) || !img.window.Contains(end, core.RayEpsilon) {
		img.logger.Printf("RenderRay: segment endpoint outside the window, p1=(%g, %g) p2=(%g, %g)\n",
			ray.Origin.X, ray.Origin.Y, end.X, end.Y)
	}
	img.RenderSegment(ray.Origin, end, ray.Color)
}

// RenderSegment adds c to every pixel visited by a DDA walk from a to b,
// stepping one pixel at a time along the axis with the larger extent. The
// walk is clipped to the buffer, so far endpoints cost nothing.
func (img *Image) RenderSegment(a, b core.Vec2, c core.Color) {
	p1, p2 := img.ToPixel(a), img.ToPixel(b)
	if !isFinite(p1) || !isFinite(p2) {
		img.logger.Printf("RenderSegment: non-finite endpoint, p1=%v p2=%v\n", p1, p2)
		return
	}
	dx, dy := p2.X-p1.X, p2.Y-p1.Y

	// Single pixel segment
	if dx == 0 && dy == 0 {
		img.Add(int(math.Round(p1.X)), int(math.Round(p1.Y)), c)
		return
	}

	if math.Abs(dx) >= math.Abs(dy) {
		if p2.X < p1.X {
			p1, p2 = p2, p1
		}
		inc := (p2.Y - p1.Y) / (p2.X - p1.X)
		xs, xe := clip(p1.X, p2.X, img.Width)
		yt := p1.Y + (xs-p1.X)*inc
		for xt := xs; xt <= xe; xt++ {
			img.Add(int(math.Round(xt)), int(math.Round(yt)), c)
			yt += inc
		}
		return
	}

	if p2.Y < p1.Y {
		p1, p2 = p2, p1
	}
	inc := (p2.X - p1.X) / (p2.Y - p1.Y)
	ys, ye := clip(p1.Y, p2.Y, img.Height)
	xt := p1.X + (ys-p1.Y)*inc
	for yt := ys; yt <= ye; yt++ {
		img.Add(int(math.Round(xt)), int(math.Round(yt)), c)
		xt += inc
	}
}

// clip narrows [from, to] to one pixel beyond each edge of an axis with
// size pixels. from > to afterwards means the span misses the buffer.
func clip(from, to float64, size int) (float64, float64) {
	return math.Max(from, -1), math.Min(to, float64(size))
}

func isFinite(p core.Vec2) bool {
	return !math.IsInf(p.X, 0) && !math.IsNaN(p.X) && !math.IsInf(p.Y, 0) && !math.IsNaN(p.Y)
}

// AdjustGamma compresses the dynamic range with v = log(v + offset). It
// runs at most once per image and reports whether it ran.
func (img *Image) AdjustGamma(offset float64) bool {
	if img.gammaApplied {
		return false
	}
	for i, v := range img.data {
		img.data[i] = math.Log(v + offset)
	}
	img.gammaApplied = true
	return true
}

// GammaApplied reports whether AdjustGamma has run
func (img *Image) GammaApplied() bool {
	return img.gammaApplied
}

// Merge adds another buffer of the same size into this one
func (img *Image) Merge(other *Image) error {
	if other.Width != img.Width || other.Height != img.Height {
		return fmt.Errorf("cannot merge %dx%d image into %dx%d image",
			other.Width, other.Height, img.Width, img.Height)
	}
	if img.gammaApplied || other.gammaApplied {
		return fmt.Errorf("cannot merge images after gamma adjustment")
	}
	floats.Add(img.data, other.data)
	return nil
}

// AddLayer registers an overlay added onto the normalized image on export
func (img *Image) AddLayer(layer *image.RGBA) error {
	if b := layer.Bounds(); b.Dx() != img.Width || b.Dy() != img.Height {
		return fmt.Errorf("layer size %dx%d does not match image size %dx%d",
			b.Dx(), b.Dy(), img.Width, img.Height)
	}
	img.layers = append(img.layers, layer)
	return nil
}

// Range returns the smallest and largest channel value in the buffer
func (img *Image) Range() (lo, hi float64) {
	return floats.Min(img.data), floats.Max(img.data)
}

// ToRGBA rescales the buffer linearly so its global minimum maps to 0 and
// its maximum to 255, then adds any overlay layers, saturating at 255.
// A buffer holding a single value maps to black.
func (img *Image) ToRGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	lo, hi := img.Range()
	scale := 0.0
	if hi > lo {
		scale = 255 / (hi - lo)
	}

	for y := 0; y < img.Height; y++ {
		for x := 0; x < img.Width; x++ {
			i := img.index(x, y)
			px := color.RGBA{
				R: toByte(scale * (img.data[i] - lo)),
				G: toByte(scale * (img.data[i+1] - lo)),
				B: toByte(scale * (img.data[i+2] - lo)),
				A: 255,
			}
			for _, layer := range img.layers {
				o := layer.RGBAAt(x, y)
				px.R = addSaturating(px.R, o.R)
				px.G = addSaturating(px.G, o.G)
				px.B = addSaturating(px.B, o.B)
			}
			out.SetRGBA(x, y, px)
		}
	}
	return out
}

// toByte truncates v to a byte, clamping rounding overshoot at either end
func toByte(v float64) uint8 {
	if v >= 255 {
		return 255
	}
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	return uint8(v)
}

func addSaturating(a, b uint8) uint8 {
	if sum := int(a) + int(b); sum < 255 {
		return uint8(sum)
	}
	return 255
}
