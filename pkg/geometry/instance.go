package geometry

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Translate moves an object by Offset without copying its geometry
type Translate struct {
	Object core.Hittable
	Offset core.Vec3
}

// NewTranslate wraps object so it appears displaced by offset
func NewTranslate(object core.Hittable, offset core.Vec3) *Translate {
	return &Translate{Object: object, Offset: offset}
}

// Hit moves the ray into object space, then moves the hit back out
func (tr *Translate) Hit(random *rand.Rand, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	moved := ray
	moved.Origin = ray.Origin.Subtract(tr.Offset)

	hit, ok := tr.Object.Hit(random, moved, tMin, tMax)
	if !ok {
		return nil, false
	}

	// Translation leaves the normal and its facing untouched
	hit.Point = hit.Point.Add(tr.Offset)
	return hit, true
}

// BoundingBox returns the object's box shifted by Offset
func (tr *Translate) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	box, ok := tr.Object.BoundingBox(time0, time1)
	if !ok {
		return core.AABB{}, false
	}
	return core.NewAABB(box.Min.Add(tr.Offset), box.Max.Add(tr.Offset)), true
}

// RotateY rotates an object about the Y axis
type RotateY struct {
	Object   core.Hittable
	sinTheta float64
	cosTheta float64
	box      core.AABB
	hasBox   bool
}

// NewRotateY wraps object rotated by angle degrees about the Y axis.
// The rotated box is computed for the shutter interval [0, 1].
func NewRotateY(object core.Hittable, angle float64) *RotateY {
	radians := angle * math.Pi / 180
	r := &RotateY{
		Object:   object,
		sinTheta: math.Sin(radians),
		cosTheta: math.Cos(radians),
	}

	box, ok := object.BoundingBox(0, 1)
	if !ok {
		return r
	}

	corners := make([]core.Vec3, 0, 8)
	for _, x := range []float64{box.Min.X, box.Max.X} {
		for _, y := range []float64{box.Min.Y, box.Max.Y} {
			for _, z := range []float64{box.Min.Z, box.Max.Z} {
				corners = append(corners, r.toWorld(core.NewVec3(x, y, z)))
			}
		}
	}
	r.box = core.NewAABBFromPoints(corners...)
	r.hasBox = true

	return r
}

// toObject rotates a world-space vector by -theta
func (r *RotateY) toObject(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X-r.sinTheta*v.Z,
		v.Y,
		r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// toWorld rotates an object-space vector by theta
func (r *RotateY) toWorld(v core.Vec3) core.Vec3 {
	return core.NewVec3(
		r.cosTheta*v.X+r.sinTheta*v.Z,
		v.Y,
		-r.sinTheta*v.X+r.cosTheta*v.Z,
	)
}

// Hit rotates the ray into object space, then rotates the hit back out
func (r *RotateY) Hit(random *rand.Rand, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	rotated := ray
	rotated.Origin = r.toObject(ray.Origin)
	rotated.Direction = r.toObject(ray.Direction)

	hit, ok := r.Object.Hit(random, rotated, tMin, tMax)
	if !ok {
		return nil, false
	}

	// Rotation preserves angles, so FrontFace computed in object space still holds
	hit.Point = r.toWorld(hit.Point)
	hit.Normal = r.toWorld(hit.Normal)
	return hit, true
}

// BoundingBox returns the box enclosing all eight rotated corners of the object's box
func (r *RotateY) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return r.box, r.hasBox
}
