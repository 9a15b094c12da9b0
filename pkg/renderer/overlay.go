package renderer

import (
	"fmt"
	"image"

	"github.com/fogleman/gg"

	"github.com/jiamingluuu/RayTracer2D/pkg/core"
	"github.com/jiamingluuu/RayTracer2D/pkg/geometry"
)

// NewOutlineLayer draws circles in green and walls in white onto a
// transparent layer the size of the image
func NewOutlineLayer(width, height int, window core.Window, shapes []geometry.Shape) (*image.RGBA, error) {
	layer := image.NewRGBA(image.Rect(0, 0, width, height))
	dc := gg.NewContextForRGBA(layer)
	dc.SetLineWidth(1)

	toPixel := window.PixelTransform(width, height)
	scaleX := float64(width-1) / window.Bounds.Dx()
	scaleY := float64(height-1) / window.Bounds.Dy()

	for i, shape := range shapes {
		switch s := shape.(type) {
		case *geometry.Circle:
			c := toPixel.Apply(s.Center)
			dc.SetRGB(0, 1, 0)
			dc.DrawEllipse(c.X, c.Y, s.Radius*scaleX, s.Radius*scaleY)
		case *geometry.Wall:
			a, b := toPixel.Apply(s.Origin), toPixel.Apply(s.End())
			dc.SetRGB(1, 1, 1)
			dc.DrawLine(a.X, a.Y, b.X, b.Y)
		default:
			return nil, fmt.Errorf("shape %d: no outline for %T", i, shape)
		}
		dc.Stroke()
	}

	return layer, nil
}

// DrawOutlines adds the shape outlines of scene as an overlay layer and
// marks the light's position with a white splat. It runs on the tone-mapped
// buffer so the marker stands out against the render.
func DrawOutlines(img *Image, scene Scene) error {
	layer, err := NewOutlineLayer(img.Width, img.Height, img.Window(), scene.GetShapes())
	if err != nil {
		return err
	}
	if err := img.AddLayer(layer); err != nil {
		return err
	}
	img.Splat(scene.GetLight().Position(), core.White)
	return nil
}
