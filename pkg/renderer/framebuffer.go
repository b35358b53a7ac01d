package renderer

import (
	"fmt"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Framebuffer holds the linear radiance of a whole image, row 0 at the top
type Framebuffer struct {
	width, height int
	pixels        []core.Vec3
}

// NewFramebuffer creates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		width:  width,
		height: height,
		pixels: make([]core.Vec3, width*height),
	}
}

// Size returns the framebuffer dimensions
func (fb *Framebuffer) Size() (width, height int) {
	return fb.width, fb.height
}

// PixelAt returns the linear color of pixel (x, y)
func (fb *Framebuffer) PixelAt(x, y int) core.Vec3 {
	return fb.pixels[y*fb.width+x]
}

// Place copies a rendered tile into the framebuffer at its own position
func (fb *Framebuffer) Place(tile *Tile) error {
	if tile.X < 0 || tile.Y < 0 || tile.X+tile.Width > fb.width || tile.Y+tile.Height > fb.height {
		return fmt.Errorf("tile %v outside %dx%d framebuffer", tile.Bounds(), fb.width, fb.height)
	}
	for y := 0; y < tile.Height; y++ {
		row := (tile.Y+y)*fb.width + tile.X
		copy(fb.pixels[row:row+tile.Width], tile.Pixels[y*tile.Width:(y+1)*tile.Width])
	}
	return nil
}
