package material

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material
type DiffuseLight struct {
	Emission Texture // Emitted radiance, may exceed 1
}

// NewDiffuseLight creates a light with uniform emission
func NewDiffuseLight(emission core.Vec3) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// NewTexturedDiffuseLight creates a light whose emission varies over the surface
func NewTexturedDiffuseLight(emission Texture) *DiffuseLight {
	return &DiffuseLight{Emission: emission}
}

// Scatter absorbs all incoming rays; lights only emit
func (e *DiffuseLight) Scatter(random *rand.Rand, rayIn core.Ray, hit *core.HitRecord) (core.ScatterResult, bool) {
	return core.ScatterResult{}, false
}

// Emitted returns the emission at the hit point
func (e *DiffuseLight) Emitted(u, v float64, point core.Vec3) core.Vec3 {
	return e.Emission.Evaluate(u, v, point)
}

// Isotropic scatters uniformly in every direction; the phase function of constant media
type Isotropic struct {
	Albedo Texture
}

// NewIsotropic creates an isotropic phase function with the given albedo
func NewIsotropic(albedo Texture) *Isotropic {
	return &Isotropic{Albedo: albedo}
}

// Scatter picks a new direction uniformly inside the unit sphere
func (i *Isotropic) Scatter(random *rand.Rand, rayIn core.Ray, hit *core.HitRecord) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, core.RandomInUnitSphere(random), rayIn.Time),
		Attenuation: i.Albedo.Evaluate(hit.U, hit.V, hit.Point),
	}, true
}
