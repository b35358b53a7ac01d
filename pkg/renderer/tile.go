package renderer

import (
	"image"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Tile is a rectangular block of rendered pixels. Edge tiles are clipped to
// the image, so Width and Height may be smaller than the tile size.
type Tile struct {
	X, Y          int         // Top left pixel in image space (row 0 is the top)
	Width, Height int         // Clipped extent
	Pixels        []core.Vec3 // Row-major linear radiance, Width*Height entries
	Duration      time.Duration
}

// NewTile creates an empty tile at (x, y), clipped to a width x height image
func NewTile(x, y, tileSize, width, height int) *Tile {
	w := max(0, min(tileSize, width-x))
	h := max(0, min(tileSize, height-y))
	return &Tile{
		X:      x,
		Y:      y,
		Width:  w,
		Height: h,
		Pixels: make([]core.Vec3, w*h),
	}
}

// At returns the pixel at tile-local coordinates (x, y)
func (t *Tile) At(x, y int) core.Vec3 {
	return t.Pixels[y*t.Width+x]
}

// Set stores the pixel at tile-local coordinates (x, y)
func (t *Tile) Set(x, y int, color core.Vec3) {
	t.Pixels[y*t.Width+x] = color
}

// Bounds returns the tile's pixel region in image space
func (t *Tile) Bounds() image.Rectangle {
	return image.Rect(t.X, t.Y, t.X+t.Width, t.Y+t.Height)
}
