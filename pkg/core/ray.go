package core

// Ray represents a ray with an origin, a direction, and the time it was emitted
type Ray struct {
	Origin    Vec3
	Direction Vec3
	Time      float64 // Shutter time, used by moving geometry
	Debug     bool    // Collect BVH traversal counts for debug visualization
}

// NewRay creates a new ray emitted at the given time
func NewRay(origin, direction Vec3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}
