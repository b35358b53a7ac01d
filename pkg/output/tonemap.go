package output

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Tonemap clamps a linear color to [0, 1] and encodes it with the sRGB curve.
// NaN channels become 0.
func Tonemap(color core.Vec3) core.Vec3 {
	return core.NewVec3(tonemapChannel(color.X), tonemapChannel(color.Y), tonemapChannel(color.Z))
}

func tonemapChannel(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return core.LinearToSRGB(math.Max(0, math.Min(1, value)))
}

// Dither quantizes a stream of row-major pixels with Floyd-Steinberg error diffusion
type Dither struct {
	max     float64
	width   int
	x       int
	current [][3]float64 // Error carried into the current row, padded by one on each side
	next    [][3]float64 // Error carried into the next row
}

// NewDither creates a ditherer for rows of width pixels quantized to bits per channel
func NewDither(bits, width int) *Dither {
	return &Dither{
		max:     float64(int(1)<<bits - 1),
		width:   width,
		current: make([][3]float64, width+2),
		next:    make([][3]float64, width+2),
	}
}

// Quantize returns the integer levels of the next pixel, whose channels are in [0, 1]
func (d *Dither) Quantize(color core.Vec3) [3]uint16 {
	var out [3]uint16
	i := d.x + 1
	for c, value := range [3]float64{color.X, color.Y, color.Z} {
		wanted := value*d.max + d.current[i][c]
		level := math.Round(math.Max(0, math.Min(d.max, wanted)))
		out[c] = uint16(level)

		diff := wanted - level
		d.current[i+1][c] += diff * 7 / 16
		d.next[i-1][c] += diff * 3 / 16
		d.next[i][c] += diff * 5 / 16
		d.next[i+1][c] += diff * 1 / 16
	}

	d.x++
	if d.x == d.width {
		d.x = 0
		d.current, d.next = d.next, d.current
		clear(d.next)
	}
	return out
}
