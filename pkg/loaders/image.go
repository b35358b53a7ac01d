package loaders

import (
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
	_ "golang.org/x/image/bmp"  // BMP decoder
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder
)

// ImageData contains loaded image data as Vec3 color array
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major, row 0 at the top
	Format string      // Decoder that read the file, e.g. "jpeg"
}

// LoadImage loads an image file and converts it to a Vec3 color array.
// Channel values are the stored (sRGB-encoded) values scaled to [0, 1].
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	data, err := DecodeImage(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return data, nil
}

// DecodeImage decodes any registered format (PNG, JPEG, GIF, BMP, TIFF, WebP) from r
func DecodeImage(r io.Reader) (*ImageData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535], convert to [0, 1]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
		Format: format,
	}, nil
}

// Linear returns a copy of the image with the sRGB transfer curve removed
func (d *ImageData) Linear() *ImageData {
	pixels := make([]core.Vec3, len(d.Pixels))
	for i, p := range d.Pixels {
		pixels[i] = core.NewVec3(core.SRGBToLinear(p.X), core.SRGBToLinear(p.Y), core.SRGBToLinear(p.Z))
	}
	return &ImageData{Width: d.Width, Height: d.Height, Pixels: pixels, Format: d.Format}
}

// LoadImageTexture loads an image file as a texture in linear color
func LoadImageTexture(filename string) (*material.ImageTexture, error) {
	data, err := LoadImage(filename)
	if err != nil {
		return nil, err
	}
	linear := data.Linear()
	return material.NewImageTexture(linear.Width, linear.Height, linear.Pixels), nil
}
