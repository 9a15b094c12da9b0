package renderer

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func newTestRGBA() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(1, 0, color.RGBA{255, 0, 0, 255})
	img.SetRGBA(0, 1, color.RGBA{0, 0, 200, 255})
	img.SetRGBA(2, 1, color.RGBA{1, 2, 3, 255})
	return img
}

func TestWritePPM(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePPM(&buf, newTestRGBA()); err != nil {
		t.Fatalf("WritePPM failed: %v", err)
	}

	header := "P6\n# Output from RayTracer2D\n3 2\n255\n"
	pixels := []byte{
		0, 0, 0, 255, 0, 0, 0, 0, 0,
		0, 0, 200, 0, 0, 0, 1, 2, 3,
	}
	expected := append([]byte(header), pixels...)
	if !bytes.Equal(buf.Bytes(), expected) {
		t.Errorf("Expected %q, got %q", expected, buf.Bytes())
	}
}

func TestFormatFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		expected Format
		wantErr  bool
	}{
		{"output.ppm", FormatPPM, false},
		{"render.PNG", FormatPNG, false},
		{"out/render.tif", FormatTIFF, false},
		{"render.tiff", FormatTIFF, false},
		{"render.bmp", FormatBMP, false},
		{"render.jpg", "", true},
		{"render", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromFilename(tt.filename)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: expected error=%v, got %v", tt.filename, tt.wantErr, err)
			continue
		}
		if got != tt.expected {
			t.Errorf("%s: expected %q, got %q", tt.filename, tt.expected, got)
		}
	}
}

func TestSaveImage_AllFormats(t *testing.T) {
	src := newTestRGBA()
	dir := t.TempDir()

	decoders := map[Format]func(*os.File) (image.Image, error){
		FormatPNG:  func(f *os.File) (image.Image, error) { return png.Decode(f) },
		FormatTIFF: func(f *os.File) (image.Image, error) { return tiff.Decode(f) },
		FormatBMP:  func(f *os.File) (image.Image, error) { return bmp.Decode(f) },
	}

	for format, decode := range decoders {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(dir, "render."+string(format))
			if err := SaveImage(path, src, format); err != nil {
				t.Fatalf("SaveImage failed: %v", err)
			}

			f, err := os.Open(path)
			if err != nil {
				t.Fatalf("Failed to open output: %v", err)
			}
			defer f.Close()

			decoded, err := decode(f)
			if err != nil {
				t.Fatalf("Failed to decode output: %v", err)
			}
			if decoded.Bounds() != src.Bounds() {
				t.Fatalf("Expected bounds %v, got %v", src.Bounds(), decoded.Bounds())
			}
			for y := 0; y < 2; y++ {
				for x := 0; x < 3; x++ {
					r1, g1, b1, _ := src.At(x, y).RGBA()
					r2, g2, b2, _ := decoded.At(x, y).RGBA()
					if r1 != r2 || g1 != g2 || b1 != b2 {
						t.Errorf("Pixel (%d, %d) changed: %v vs %v", x, y, src.At(x, y), decoded.At(x, y))
					}
				}
			}
		})
	}
}

func TestSaveImage_PPMFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "output.ppm")
	if err := SaveImage(path, newTestRGBA(), FormatPPM); err != nil {
		t.Fatalf("SaveImage failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read output: %v", err)
	}
	headerLen := len("P6\n# Output from RayTracer2D\n3 2\n255\n")
	if len(data) != headerLen+3*2*3 {
		t.Errorf("Expected %d bytes, got %d", headerLen+18, len(data))
	}
}

func TestSaveImage_Errors(t *testing.T) {
	dir := t.TempDir()

	missingDir := filepath.Join(dir, "missing", "output.ppm")
	if err := SaveImage(missingDir, newTestRGBA(), FormatPPM); err == nil {
		t.Error("Expected error for unwritable path")
	}

	badFormat := filepath.Join(dir, "output.xyz")
	if err := SaveImage(badFormat, newTestRGBA(), Format("xyz")); err == nil {
		t.Error("Expected error for unknown format")
	}
	if _, err := os.Stat(badFormat); !os.IsNotExist(err) {
		t.Error("Expected no file to be left behind after a failed encode")
	}
}
