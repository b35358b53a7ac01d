package integrator

import (
	"fmt"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the radiance arriving along ray, following at most depth bounces
	RayColor(random *rand.Rand, ray core.Ray, world core.Hittable, depth int) core.Vec3
}

// DebugMode selects a diagnostic visualization instead of shaded color
type DebugMode int

const (
	DebugNone  DebugMode = iota // Regular path-traced color
	DebugDepth                  // Grey by number of bounces relative to the depth limit
	DebugBVH                    // Grey by BVH nodes visited by the primary ray
)

// ParseDebugMode converts a flag value to a DebugMode; the empty string means DebugNone
func ParseDebugMode(name string) (DebugMode, error) {
	switch name {
	case "", "none":
		return DebugNone, nil
	case "depth":
		return DebugDepth, nil
	case "bvh":
		return DebugBVH, nil
	default:
		return DebugNone, fmt.Errorf("unknown debug mode %q (expected depth or bvh)", name)
	}
}

// String returns the flag name of the mode
func (m DebugMode) String() string {
	switch m {
	case DebugDepth:
		return "depth"
	case DebugBVH:
		return "bvh"
	default:
		return "none"
	}
}
