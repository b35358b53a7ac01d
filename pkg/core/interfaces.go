package core

import "math/rand"

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Hittable is anything a ray can intersect: primitives, instances, lists and BVH nodes.
// Implementations must be safe for concurrent use once constructed.
type Hittable interface {
	// Hit returns the closest intersection with t in [tMin, tMax].
	// The random source is only consumed by participating media.
	Hit(random *rand.Rand, ray Ray, tMin, tMax float64) (*HitRecord, bool)

	// BoundingBox returns the box enclosing the object over the shutter interval [time0, time1].
	// ok is false when the object has no finite bounds.
	BoundingBox(time0, time1 float64) (box AABB, ok bool)
}

// Material decides how light scatters at a surface
type Material interface {
	// Scatter returns the attenuation and scattered ray, or false if the ray is absorbed
	Scatter(random *rand.Rand, rayIn Ray, hit *HitRecord) (ScatterResult, bool)
}

// Emitter is implemented by materials that radiate light.
// Materials that don't implement it emit nothing.
type Emitter interface {
	Emitted(u, v float64, point Vec3) Vec3
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Scattered   Ray  // The scattered ray
	Attenuation Vec3 // Color attenuation
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3     // Point of intersection
	Normal    Vec3     // Unit surface normal, always facing against the incoming ray
	T         float64  // Parameter t along the ray
	U, V      float64  // Surface coordinates
	FrontFace bool     // Whether ray hit the front face
	Material  Material // Material of the hit object
	Visits    int      // BVH nodes visited; only counted for debug rays
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}
