package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func TestSphere_Hit_Miss(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(2, 0, 0), core.NewVec3(0, 1, 0), 0)

	hit, isHit := sphere.Hit(nil, ray, 0.001, 1000.0)
	if isHit {
		t.Errorf("Expected miss, but got hit at t=%f", hit.T)
	}
}

func TestSphere_Hit_FrontAndBackFace(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)

	tests := []struct {
		name           string
		rayOrigin      core.Vec3
		rayDirection   core.Vec3
		expectedT      float64
		expectedFront  bool
		expectedNormal core.Vec3
	}{
		{
			name:           "front face hit",
			rayOrigin:      core.NewVec3(0, 0, 2),
			rayDirection:   core.NewVec3(0, 0, -1),
			expectedT:      1.0,
			expectedFront:  true,
			expectedNormal: core.NewVec3(0, 0, 1),
		},
		{
			name:           "back face hit",
			rayOrigin:      core.NewVec3(0, 0, 0),
			rayDirection:   core.NewVec3(0, 0, 1),
			expectedT:      1.0,
			expectedFront:  false,
			expectedNormal: core.NewVec3(0, 0, -1),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := core.NewRay(tt.rayOrigin, tt.rayDirection, 0)
			hit, isHit := sphere.Hit(nil, ray, 0.001, 1000.0)

			if !isHit {
				t.Fatal("Expected hit, but got miss")
			}
			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if hit.FrontFace != tt.expectedFront {
				t.Errorf("Expected front face %t, got %t", tt.expectedFront, hit.FrontFace)
			}
			if hit.Normal.Subtract(tt.expectedNormal).Length() > 1e-9 {
				t.Errorf("Expected normal %v, got %v", tt.expectedNormal, hit.Normal)
			}
		})
	}
}

func TestSphere_Hit_RespectsInterval(t *testing.T) {
	sphere := NewSphere(core.NewVec3(0, 0, 0), 1.0, nil)
	ray := core.NewRay(core.NewVec3(0, 0, -5), core.NewVec3(0, 0, 1), 0)

	// Near root at t=4 is excluded, far root at t=6 is taken
	hit, isHit := sphere.Hit(nil, ray, 4.5, 1000.0)
	if !isHit || math.Abs(hit.T-6) > 1e-9 {
		t.Errorf("Expected far hit at t=6, got %v", hit)
	}

	if _, isHit := sphere.Hit(nil, ray, 0.001, 3.9); isHit {
		t.Error("Expected miss when tMax ends before the sphere")
	}
}

func TestSphereUV(t *testing.T) {
	tests := []struct {
		name  string
		point core.Vec3
		u, v  float64
	}{
		{"+X", core.NewVec3(1, 0, 0), 0.50, 0.50},
		{"+Y", core.NewVec3(0, 1, 0), 0.50, 1.00},
		{"-Y", core.NewVec3(0, -1, 0), 0.50, 0.00},
		{"-X", core.NewVec3(-1, 0, 0), 0.00, 0.50},
		{"+Z", core.NewVec3(0, 0, 1), 0.25, 0.50},
		{"-Z", core.NewVec3(0, 0, -1), 0.75, 0.50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, v := SphereUV(tt.point)
			if math.Abs(u-tt.u) > 1e-9 || math.Abs(v-tt.v) > 1e-9 {
				t.Errorf("Expected (%v,%v), got (%v,%v)", tt.u, tt.v, u, v)
			}
		})
	}
}

func TestSphere_BoundingBox(t *testing.T) {
	sphere := NewSphere(core.NewVec3(1, 2, 3), -2, nil)

	box, ok := sphere.BoundingBox(0, 1)
	if !ok {
		t.Fatal("Expected sphere to have a bounding box")
	}
	expected := core.NewAABB(core.NewVec3(-1, 0, 1), core.NewVec3(3, 4, 5))
	if box != expected {
		t.Errorf("Expected %v for negative radius, got %v", expected, box)
	}
}

func TestMovingSphere(t *testing.T) {
	sphere := NewMovingSphere(core.NewVec3(0, 0, 0), core.NewVec3(0, 2, 0), 0, 1, 0.5, nil)

	if center := sphere.Center(0.5); center != core.NewVec3(0, 1, 0) {
		t.Errorf("Expected center (0,1,0) at t=0.5, got %v", center)
	}

	// Ray along X at height 2 only hits the sphere late in the shutter interval
	early := core.NewRay(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 0)
	late := core.NewRay(core.NewVec3(-5, 2, 0), core.NewVec3(1, 0, 0), 1)
	if _, isHit := sphere.Hit(nil, early, 0.001, math.Inf(1)); isHit {
		t.Error("Expected miss at time 0")
	}
	if _, isHit := sphere.Hit(nil, late, 0.001, math.Inf(1)); !isHit {
		t.Error("Expected hit at time 1")
	}

	box, _ := sphere.BoundingBox(0, 1)
	expected := core.NewAABB(core.NewVec3(-0.5, -0.5, -0.5), core.NewVec3(0.5, 2.5, 0.5))
	if box != expected {
		t.Errorf("Expected box %v covering both ends, got %v", expected, box)
	}
}
