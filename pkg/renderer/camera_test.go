package renderer

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func vecNear(a, b core.Vec3, tolerance float64) bool {
	return math.Abs(a.X-b.X) <= tolerance &&
		math.Abs(a.Y-b.Y) <= tolerance &&
		math.Abs(a.Z-b.Z) <= tolerance
}

func pinholeConfig() CameraConfig {
	return CameraConfig{
		LookFrom:    core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        90,
		AspectRatio: 2,
		FocusDist:   1,
	}
}

func TestCamera_PinholeRays(t *testing.T) {
	camera := NewCamera(pinholeConfig())
	random := rand.New(rand.NewSource(42))

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"Center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"Lower left", 0, 0, core.NewVec3(-2, -1, -1)},
		{"Upper right", 1, 1, core.NewVec3(2, 1, -1)},
		{"Right edge", 1, 0.5, core.NewVec3(2, 0, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(random, tt.s, tt.t)
			if !vecNear(ray.Origin, core.Vec3{}, 1e-12) {
				t.Errorf("Expected origin at camera position, got %v", ray.Origin)
			}
			if !vecNear(ray.Direction, tt.direction, 1e-9) {
				t.Errorf("Expected direction %v, got %v", tt.direction, ray.Direction)
			}
		})
	}
}

func TestCamera_DefocusConvergesOnFocusPlane(t *testing.T) {
	config := pinholeConfig()
	config.Aperture = 2 // lens radius 1
	config.FocusDist = 3
	camera := NewCamera(config)
	random := rand.New(rand.NewSource(42))

	pinhole := NewCamera(CameraConfig{
		LookFrom: config.LookFrom, LookAt: config.LookAt, VUp: config.VUp,
		VFov: config.VFov, AspectRatio: config.AspectRatio, FocusDist: config.FocusDist,
	})

	sawOffset := false
	for i := 0; i < 200; i++ {
		s, tt := random.Float64(), random.Float64()
		ray := camera.GetRay(random, s, tt)

		if ray.Origin.Z != 0 || ray.Origin.X*ray.Origin.X+ray.Origin.Y*ray.Origin.Y >= 1 {
			t.Fatalf("Expected origin on the unit lens disk, got %v", ray.Origin)
		}
		if ray.Origin.Length() > 1e-6 {
			sawOffset = true
		}

		// Every lens sample reaches the same point on the focus plane
		target := pinhole.GetRay(random, s, tt)
		if !vecNear(ray.At(1), target.At(1), 1e-9) {
			t.Fatalf("Expected ray to pass through %v, got %v", target.At(1), ray.At(1))
		}
	}
	if !sawOffset {
		t.Errorf("Expected some rays to start off the lens center")
	}
}

func TestCamera_ShutterTime(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	config := pinholeConfig()
	config.Time0, config.Time1 = 0, 1
	camera := NewCamera(config)

	early, late := false, false
	for i := 0; i < 1000; i++ {
		ray := camera.GetRay(random, 0.5, 0.5)
		if ray.Time < 0 || ray.Time >= 1 {
			t.Fatalf("Expected time in [0, 1), got %f", ray.Time)
		}
		early = early || ray.Time < 0.5
		late = late || ray.Time >= 0.5
	}
	if !early || !late {
		t.Errorf("Expected times spread over the shutter interval")
	}

	config.Time0, config.Time1 = 0.25, 0.25
	instant := NewCamera(config)
	if ray := instant.GetRay(random, 0.5, 0.5); ray.Time != 0.25 {
		t.Errorf("Expected time 0.25 for a closed shutter interval, got %f", ray.Time)
	}
}

func TestCamera_ImageHeight(t *testing.T) {
	config := pinholeConfig()
	config.AspectRatio = 16.0 / 9.0
	camera := NewCamera(config)

	if camera.AspectRatio() != 16.0/9.0 {
		t.Errorf("Expected aspect ratio 16/9, got %f", camera.AspectRatio())
	}
	if height := camera.ImageHeight(600); height != 337 {
		t.Errorf("Expected height 337, got %d", height)
	}
}
