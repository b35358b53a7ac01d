package geometry

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// rectThickness pads the flat dimension of a rectangle's bounding box
const rectThickness = 0.0001

// Plane names the axis-aligned plane a rectangle lies in
type Plane int

const (
	PlaneXY Plane = iota // Constant Z
	PlaneXZ              // Constant Y
	PlaneYZ              // Constant X
)

// axes returns the two in-plane axes and the constant axis
func (p Plane) axes() (a, b, k int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

// AARect is an axis-aligned rectangle [A0,A1]×[B0,B1] lying at K on the constant axis of its plane
type AARect struct {
	Plane    Plane
	A0, A1   float64
	B0, B1   float64
	K        float64
	Material core.Material
}

// NewXYRect creates a rectangle spanning [x0,x1]×[y0,y1] at z=k
func NewXYRect(x0, x1, y0, y1, k float64, material core.Material) *AARect {
	return &AARect{Plane: PlaneXY, A0: x0, A1: x1, B0: y0, B1: y1, K: k, Material: material}
}

// NewXZRect creates a rectangle spanning [x0,x1]×[z0,z1] at y=k
func NewXZRect(x0, x1, z0, z1, k float64, material core.Material) *AARect {
	return &AARect{Plane: PlaneXZ, A0: x0, A1: x1, B0: z0, B1: z1, K: k, Material: material}
}

// NewYZRect creates a rectangle spanning [y0,y1]×[z0,z1] at x=k
func NewYZRect(y0, y1, z0, z1, k float64, material core.Material) *AARect {
	return &AARect{Plane: PlaneYZ, A0: y0, A1: y1, B0: z0, B1: z1, K: k, Material: material}
}

// Hit tests if a ray intersects with the rectangle
func (r *AARect) Hit(random *rand.Rand, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	a, b, k := r.Plane.axes()

	t := (r.K - ray.Origin.Axis(k)) / ray.Direction.Axis(k)
	if t < tMin || t > tMax {
		return nil, false
	}

	x := ray.Origin.Axis(a) + t*ray.Direction.Axis(a)
	y := ray.Origin.Axis(b) + t*ray.Direction.Axis(b)
	if x < r.A0 || x > r.A1 || y < r.B0 || y > r.B1 {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:        t,
		Point:    ray.At(t),
		U:        (x - r.A0) / (r.A1 - r.A0),
		V:        (y - r.B0) / (r.B1 - r.B0),
		Material: r.Material,
	}
	hitRecord.SetFaceNormal(ray, axisVector(k, 1))

	return hitRecord, true
}

// BoundingBox returns the rectangle's box, padded along the constant axis
func (r *AARect) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	a, b, k := r.Plane.axes()

	min := axisVector(a, r.A0).Add(axisVector(b, r.B0)).Add(axisVector(k, r.K-rectThickness))
	max := axisVector(a, r.A1).Add(axisVector(b, r.B1)).Add(axisVector(k, r.K+rectThickness))
	return core.NewAABB(min, max), true
}

// axisVector returns a vector with value on the given axis and zero elsewhere
func axisVector(axis int, value float64) core.Vec3 {
	switch axis {
	case 0:
		return core.NewVec3(value, 0, 0)
	case 1:
		return core.NewVec3(0, value, 0)
	default:
		return core.NewVec3(0, 0, value)
	}
}
