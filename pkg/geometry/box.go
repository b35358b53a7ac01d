package geometry

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Box is an axis-aligned box made of 6 rectangles
type Box struct {
	Min, Max core.Vec3
	sides    *HittableList
}

// NewBox creates a box spanning the corners p0 and p1, with every face using material
func NewBox(p0, p1 core.Vec3, material core.Material) *Box {
	sides := NewHittableList(
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p0.Z, material),
		NewXYRect(p0.X, p1.X, p0.Y, p1.Y, p1.Z, material),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p0.Y, material),
		NewXZRect(p0.X, p1.X, p0.Z, p1.Z, p1.Y, material),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p0.X, material),
		NewYZRect(p0.Y, p1.Y, p0.Z, p1.Z, p1.X, material),
	)

	return &Box{Min: p0, Max: p1, sides: sides}
}

// Hit returns the closest face the ray crosses
func (b *Box) Hit(random *rand.Rand, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return b.sides.Hit(random, ray, tMin, tMax)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.NewAABB(b.Min, b.Max), true
}
