package material

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

const perlinPointCount = 256

// PerlinSource is the randomness a Perlin lattice is built from; *rand.Rand satisfies it
type PerlinSource interface {
	Float64() float64
	Intn(n int) int
}

// Perlin is a value-noise lattice with smoothed trilinear interpolation
type Perlin struct {
	floats [perlinPointCount]float64
	permX  [perlinPointCount]int
	permY  [perlinPointCount]int
	permZ  [perlinPointCount]int
}

// NewPerlin builds a lattice from random
func NewPerlin(random PerlinSource) *Perlin {
	p := &Perlin{}
	for i := range p.floats {
		p.floats[i] = random.Float64()
	}
	generatePerm(random, &p.permX)
	generatePerm(random, &p.permY)
	generatePerm(random, &p.permZ)
	return p
}

// generatePerm fills perm with a shuffled identity permutation
func generatePerm(random PerlinSource, perm *[perlinPointCount]int) {
	for i := range perm {
		perm[i] = i
	}
	for i := len(perm) - 1; i > 0; i-- {
		target := random.Intn(i)
		perm[i], perm[target] = perm[target], perm[i]
	}
}

// Noise returns the lattice value at point, in [0, 1]
func (p *Perlin) Noise(point core.Vec3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)

	// Hermite smoothing removes grid artifacts at cell boundaries
	u := smoothstep(point.X - fx)
	v := smoothstep(point.Y - fy)
	w := smoothstep(point.Z - fz)

	i, j, k := int(fx), int(fy), int(fz)

	var acc float64
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				c := p.floats[p.permX[wrap(i+di)]^p.permY[wrap(j+dj)]^p.permZ[wrap(k+dk)]]
				acc += weight(di, u) * weight(dj, v) * weight(dk, w) * c
			}
		}
	}
	return acc
}

// Turbulence sums depth octaves of noise at doubling frequency and halving weight,
// normalized back to [0, 1]
func (p *Perlin) Turbulence(point core.Vec3, depth int) float64 {
	if depth < 1 {
		return p.Noise(point)
	}

	var acc, total float64
	w := 1.0
	for i := 0; i < depth; i++ {
		acc += w * p.Noise(point)
		total += w
		w *= 0.5
		point = point.Multiply(2)
	}
	return acc / total
}

func smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

func weight(corner int, t float64) float64 {
	if corner == 1 {
		return t
	}
	return 1 - t
}

// wrap reduces a lattice coordinate into the table range, including negatives
func wrap(i int) int {
	return ((i % perlinPointCount) + perlinPointCount) % perlinPointCount
}
