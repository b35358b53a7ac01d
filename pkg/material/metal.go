package material

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Metal represents a reflective material
type Metal struct {
	Albedo   Texture // Reflectance color
	Fuzzness float64 // Radius of the reflection perturbation in [0, 1]; 0 is a perfect mirror
}

// NewMetal creates a new metal material with solid color.
// Fuzzness is clamped to [0, 1].
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	return NewTexturedMetal(NewSolidColor(albedo), fuzzness)
}

// NewTexturedMetal creates a new metal material with texture
func NewTexturedMetal(albedo Texture, fuzzness float64) *Metal {
	return &Metal{
		Albedo:   albedo,
		Fuzzness: max(0, min(1, fuzzness)),
	}
}

// Scatter mirrors the ray about the normal, perturbed inside a sphere of radius Fuzzness.
// Perturbations that end up below the surface are absorbed.
func (m *Metal) Scatter(random *rand.Rand, rayIn core.Ray, hit *core.HitRecord) (core.ScatterResult, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)
	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzzness))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return core.ScatterResult{}, false
	}

	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, reflected, rayIn.Time),
		Attenuation: m.Albedo.Evaluate(hit.U, hit.V, hit.Point),
	}, true
}
