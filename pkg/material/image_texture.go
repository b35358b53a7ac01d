package material

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// ImageTexture provides color from a 2D image
type ImageTexture struct {
	Width  int
	Height int
	Pixels []core.Vec3 // Row-major: Pixels[y*Width + x], linear color
}

// NewImageTexture creates a new image texture
func NewImageTexture(width, height int, pixels []core.Vec3) *ImageTexture {
	return &ImageTexture{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}
}

// Evaluate samples the texture at given UV coordinates using nearest-neighbor filtering.
// UV is clamped to [0, 1]; an empty image evaluates to cyan so missing data stands out.
func (t *ImageTexture) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	if t.Width == 0 || t.Height == 0 || len(t.Pixels) < t.Width*t.Height {
		return core.NewVec3(0, 1, 1)
	}

	u = max(0, min(1, u))
	// V=0 is bottom, V=1 is top (flip V for image coordinates where origin is top-left)
	v = 1 - max(0, min(1, v))

	x := min(int(u*float64(t.Width)), t.Width-1)
	y := min(int(v*float64(t.Height)), t.Height-1)

	return t.Pixels[y*t.Width+x]
}
