package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// Format names a raster output format
type Format string

const (
	FormatPPM  Format = "ppm"
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
	FormatBMP  Format = "bmp"
)

// ppmComment is written on the second line of every PPM file
const ppmComment = "# Output from RayTracer2D"

// ParseFormat validates a format name, case-insensitively. "tif" is accepted for TIFF.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	case "tif", "tiff":
		return FormatTIFF, nil
	case "bmp":
		return FormatBMP, nil
	}
	return "", fmt.Errorf("unsupported output format %q", name)
}

// FormatFromFilename picks the format matching a file extension
func FormatFromFilename(filename string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "", fmt.Errorf("cannot infer output format from %q", filename)
	}
	return ParseFormat(ext)
}

// WritePPM writes img as a binary P6 pixel map: a header with the
// dimensions and maximum value 255, then RGB bytes row by row from the top
func WritePPM(w io.Writer, img *image.RGBA) error {
	bounds := img.Bounds()
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%s\n%d %d\n255\n", ppmComment, bounds.Dx(), bounds.Dy()); err != nil {
		return err
	}

	row := make([]byte, bounds.Dx()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := img.RGBAAt(x, y)
			i := (x - bounds.Min.X) * 3
			row[i], row[i+1], row[i+2] = c.R, c.G, c.B
		}
		if _, err := bw.Write(row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Encode writes img to w in the given format
func Encode(w io.Writer, img *image.RGBA, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, img)
	case FormatPNG:
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	case FormatBMP:
		return bmp.Encode(w, img)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// SaveImage writes img to filename. No file is left behind when encoding fails.
func SaveImage(filename string, img *image.RGBA, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("can not create output image file: %w", err)
	}

	if err := Encode(file, img, format); err != nil {
		file.Close()
		os.Remove(filename)
		return fmt.Errorf("error encoding %s: %w", format, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error closing %s: %w", filename, err)
	}
	return nil
}
