package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Hits closer than this are ignored so a scattered ray does not re-hit its own origin
const shadowAcneEpsilon = 0.001

// heatScale is the BVH visit count rendered as full white
const heatScale = 100.0

// PathTracingIntegrator implements unidirectional path tracing against a constant background
type PathTracingIntegrator struct {
	Background core.Vec3 // Radiance returned by rays that escape the scene
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(background core.Vec3) *PathTracingIntegrator {
	return &PathTracingIntegrator{Background: background}
}

// RayColor computes the color for a single ray using unidirectional path tracing
func (pt *PathTracingIntegrator) RayColor(random *rand.Rand, ray core.Ray, world core.Hittable, depth int) core.Vec3 {
	var peak int
	return pt.rayColor(random, ray, world, depth, &peak)
}

// RayColorDepth behaves like RayColor and also reports how many times the path recursed,
// including the terminating call
func (pt *PathTracingIntegrator) RayColorDepth(random *rand.Rand, ray core.Ray, world core.Hittable, depth int) (core.Vec3, int) {
	var peak int
	color := pt.rayColor(random, ray, world, depth, &peak)
	return color, peak
}

func (pt *PathTracingIntegrator) rayColor(random *rand.Rand, ray core.Ray, world core.Hittable, depth int, peak *int) core.Vec3 {
	*peak++

	// If we've exceeded the ray bounce limit, no more light is gathered
	if depth <= 0 {
		return core.Vec3{}
	}

	hit, isHit := world.Hit(random, ray, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return pt.Background
	}

	emitted := emittedLight(hit)

	scatter, didScatter := hit.Material.Scatter(random, ray, hit)
	if !didScatter {
		return emitted
	}

	incoming := pt.rayColor(random, scatter.Scattered, world, depth-1, peak)
	return emitted.Add(scatter.Attenuation.MultiplyVec(incoming))
}

// emittedLight returns the emitted light from a material if it's emissive
func emittedLight(hit *core.HitRecord) core.Vec3 {
	if emitter, isEmissive := hit.Material.(core.Emitter); isEmissive {
		return emitter.Emitted(hit.U, hit.V, hit.Point)
	}
	return core.Vec3{}
}

// visitCounter is implemented by acceleration structures that can report traversal cost
type visitCounter interface {
	HitCounted(random *rand.Rand, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool, int)
}

// BVHVisits returns how many BVH nodes the primary ray visits, hit or miss.
// Worlds that are not BVHs report 1 for a hit and 0 for a miss.
func (pt *PathTracingIntegrator) BVHVisits(random *rand.Rand, ray core.Ray, world core.Hittable) int {
	if counter, ok := world.(visitCounter); ok {
		_, _, visits := counter.HitCounted(random, ray, shadowAcneEpsilon, math.Inf(1))
		return visits
	}

	ray.Debug = true
	hit, isHit := world.Hit(random, ray, shadowAcneEpsilon, math.Inf(1))
	if !isHit {
		return 0
	}
	return max(1, hit.Visits)
}

// DepthShade maps a path's recursion count to grey relative to the depth limit
func DepthShade(peak, maxDepth int) core.Vec3 {
	if maxDepth <= 0 {
		return core.Vec3{}
	}
	shade := float64(peak) / float64(maxDepth)
	return core.NewVec3(shade, shade, shade)
}

// HeatColor maps a BVH visit count to grey, saturating at heatScale visits
func HeatColor(visits int) core.Vec3 {
	shade := math.Min(float64(visits)/heatScale, 1)
	return core.NewVec3(shade, shade, shade)
}
