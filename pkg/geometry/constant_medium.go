package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// ConstantMedium is a volume of uniform density filling a closed boundary (smoke, fog, subsurface)
type ConstantMedium struct {
	Boundary      core.Hittable
	PhaseFunction core.Material
	negInvDensity float64
}

// NewConstantMedium creates a volume inside boundary scattering with an isotropic texture
func NewConstantMedium(boundary core.Hittable, density float64, texture material.Texture) *ConstantMedium {
	return &ConstantMedium{
		Boundary:      boundary,
		PhaseFunction: material.NewIsotropic(texture),
		negInvDensity: -1.0 / density,
	}
}

// NewConstantMediumColor creates a volume with a single scattering color
func NewConstantMediumColor(boundary core.Hittable, density float64, color core.Vec3) *ConstantMedium {
	return NewConstantMedium(boundary, density, material.NewSolidColor(color))
}

// Hit samples an exponential free-flight distance through the boundary.
// The boundary must be convex: only the first entry and exit points are considered.
func (m *ConstantMedium) Hit(random *rand.Rand, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	entry, ok := m.Boundary.Hit(random, ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}
	exit, ok := m.Boundary.Hit(random, ray, entry.T+0.0001, math.Inf(1))
	if !ok {
		return nil, false
	}

	t0 := math.Max(entry.T, tMin)
	t1 := math.Min(exit.T, tMax)
	if t0 >= t1 {
		return nil, false
	}
	t0 = math.Max(t0, 0)

	rayLength := ray.Direction.Length()
	distanceInsideBoundary := (t1 - t0) * rayLength
	hitDistance := m.negInvDensity * math.Log(random.Float64())
	if hitDistance > distanceInsideBoundary {
		return nil, false
	}

	t := t0 + hitDistance/rayLength
	point := ray.At(t)

	// v follows the latitude within the boundary so gradient textures work on volumes
	v := 1.0
	if box, ok := m.BoundingBox(ray.Time, ray.Time); ok {
		center := box.Center()
		if radius := box.Max.X - center.X; radius > 0 {
			_, v = SphereUV(point.Subtract(center).Multiply(1 / radius))
		}
	}

	return &core.HitRecord{
		T:         t,
		Point:     point,
		Normal:    core.NewVec3(1, 0, 0), // arbitrary
		FrontFace: true,
		U:         1,
		V:         v,
		Material:  m.PhaseFunction,
	}, true
}

// BoundingBox returns the boundary's box
func (m *ConstantMedium) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return m.Boundary.BoundingBox(time0, time1)
}
