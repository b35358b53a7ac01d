package integrator

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// mockWorld records the interval it was queried with and returns a fixed result
type mockWorld struct {
	hitFn      func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool)
	tMin, tMax float64
	calls      int
}

func (m *mockWorld) Hit(random *rand.Rand, ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	m.calls++
	m.tMin, m.tMax = tMin, tMax
	if m.hitFn == nil {
		return nil, false
	}
	return m.hitFn(ray, tMin, tMax)
}

func (m *mockWorld) BoundingBox(time0, time1 float64) (core.AABB, bool) {
	return core.AABB{}, false
}

// mirrorMaterial scatters straight back with a fixed attenuation
type mirrorMaterial struct {
	attenuation core.Vec3
}

func (m mirrorMaterial) Scatter(random *rand.Rand, rayIn core.Ray, hit *core.HitRecord) (core.ScatterResult, bool) {
	return core.ScatterResult{
		Scattered:   core.NewRay(hit.Point, rayIn.Direction.Negate(), rayIn.Time),
		Attenuation: m.attenuation,
	}, true
}

func TestPathTracingDepthTermination(t *testing.T) {
	background := core.NewVec3(0.7, 0.8, 1.0)
	integrator := NewPathTracingIntegrator(background)
	world := &mockWorld{}
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0)

	for _, depth := range []int{0, -1} {
		color, peak := integrator.RayColorDepth(rand.New(rand.NewSource(42)), ray, world, depth)
		if color != (core.Vec3{}) {
			t.Errorf("Expected black color for depth %d, got %v", depth, color)
		}
		if peak != 1 {
			t.Errorf("Expected a single call for depth %d, got %d", depth, peak)
		}
	}
	if world.calls != 0 {
		t.Errorf("Expected no intersection queries at depth 0, got %d", world.calls)
	}
}

func TestPathTracingMissReturnsBackground(t *testing.T) {
	background := core.NewVec3(0.7, 0.8, 1.0)
	integrator := NewPathTracingIntegrator(background)
	world := &mockWorld{}

	color := integrator.RayColor(rand.New(rand.NewSource(42)), core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), world, 50)
	if color != background {
		t.Errorf("Expected background %v, got %v", background, color)
	}
	if world.tMin != 0.001 || !math.IsInf(world.tMax, 1) {
		t.Errorf("Expected query over [0.001, +Inf), got [%v, %v]", world.tMin, world.tMax)
	}
}

func TestPathTracingEmissionAndAttenuation(t *testing.T) {
	background := core.NewVec3(1, 1, 1)
	integrator := NewPathTracingIntegrator(background)

	// Hits a light, which absorbs
	light := material.NewDiffuseLight(core.NewVec3(4, 2, 1))
	lightWorld := &mockWorld{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		return &core.HitRecord{T: 1, Point: ray.At(1), Material: light}, true
	}}
	if color := integrator.RayColor(nil, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), lightWorld, 10); color != core.NewVec3(4, 2, 1) {
		t.Errorf("Expected emitted color (4,2,1), got %v", color)
	}

	// A single bounce off a mirror then escapes: attenuation × background
	bounces := 0
	mirror := mirrorMaterial{attenuation: core.NewVec3(0.5, 0.25, 1)}
	mirrorWorld := &mockWorld{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		bounces++
		if bounces > 1 {
			return nil, false
		}
		return &core.HitRecord{T: 1, Point: ray.At(1), Material: mirror}, true
	}}
	color, peak := integrator.RayColorDepth(nil, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), mirrorWorld, 10)
	if color != core.NewVec3(0.5, 0.25, 1) {
		t.Errorf("Expected attenuated background (0.5,0.25,1), got %v", color)
	}
	if peak != 2 {
		t.Errorf("Expected 2 recursive calls, got %d", peak)
	}
}

func TestPathTracingBounceLimitIsBlack(t *testing.T) {
	integrator := NewPathTracingIntegrator(core.NewVec3(1, 1, 1))

	// Between two facing mirrors a path never escapes
	mirror := mirrorMaterial{attenuation: core.NewVec3(1, 1, 1)}
	world := &mockWorld{hitFn: func(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
		return &core.HitRecord{T: 1, Point: ray.At(1), Material: mirror}, true
	}}

	color, peak := integrator.RayColorDepth(nil, core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0), world, 5)
	if color != (core.Vec3{}) {
		t.Errorf("Expected black once the bounce limit is reached, got %v", color)
	}
	if peak != 6 {
		t.Errorf("Expected 6 calls for depth 5, got %d", peak)
	}
}

func TestPathTracingDiffuseSphereUnderSky(t *testing.T) {
	sky := core.NewVec3(0.7, 0.8, 1.0)
	albedo := core.NewVec3(0.5, 0.5, 0.5)
	integrator := NewPathTracingIntegrator(sky)
	sphere := geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5, material.NewLambertian(albedo))
	random := rand.New(rand.NewSource(42))
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0)

	// Every bounce off a lone convex sphere escapes, so the result is exactly albedo × sky
	expected := albedo.MultiplyVec(sky)
	for i := 0; i < 100; i++ {
		color := integrator.RayColor(random, ray, sphere, 50)
		if color.Subtract(expected).Length() > 1e-12 {
			t.Fatalf("Expected %v, got %v", expected, color)
		}
	}

	// With a single bounce allowed the scattered ray has no budget left
	if color := integrator.RayColor(random, ray, sphere, 1); color != (core.Vec3{}) {
		t.Errorf("Expected black for depth 1 on a non-emissive surface, got %v", color)
	}
}

func TestBVHVisitsAndHeatColor(t *testing.T) {
	random := rand.New(rand.NewSource(42))
	objects := []core.Hittable{
		geometry.NewSphere(core.NewVec3(-2, 0, -5), 1, nil),
		geometry.NewSphere(core.NewVec3(0, 0, -5), 1, nil),
		geometry.NewSphere(core.NewVec3(2, 0, -5), 1, nil),
		geometry.NewSphere(core.NewVec3(4, 0, -5), 1, nil),
	}
	bvh, err := core.NewBVH(random, objects, 0, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	integrator := NewPathTracingIntegrator(core.Vec3{})

	through := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, -1), 0)
	away := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1), 0)

	if visits := integrator.BVHVisits(random, through, bvh); visits < 2 {
		t.Errorf("Expected ray through the tree to visit several nodes, got %d", visits)
	}
	if visits := integrator.BVHVisits(random, away, bvh); visits != 1 {
		t.Errorf("Expected ray missing the root to visit only the root, got %d", visits)
	}

	// Plain objects count a hit as a single visit
	if visits := integrator.BVHVisits(random, through, objects[1]); visits != 1 {
		t.Errorf("Expected 1 visit for a bare sphere hit, got %d", visits)
	}

	if c := HeatColor(0); c != (core.Vec3{}) {
		t.Errorf("Expected black for no visits, got %v", c)
	}
	if c := HeatColor(50); c != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected mid grey for 50 visits, got %v", c)
	}
	if c := HeatColor(1000); c != core.NewVec3(1, 1, 1) {
		t.Errorf("Expected saturated white, got %v", c)
	}
	if c := DepthShade(25, 50); c != core.NewVec3(0.5, 0.5, 0.5) {
		t.Errorf("Expected mid grey depth shade, got %v", c)
	}
}

func TestParseDebugMode(t *testing.T) {
	tests := []struct {
		name     string
		expected DebugMode
		wantErr  bool
	}{
		{"", DebugNone, false},
		{"none", DebugNone, false},
		{"depth", DebugDepth, false},
		{"bvh", DebugBVH, false},
		{"normals", DebugNone, true},
	}

	for _, tt := range tests {
		mode, err := ParseDebugMode(tt.name)
		if (err != nil) != tt.wantErr {
			t.Errorf("%q: expected error=%v, got %v", tt.name, tt.wantErr, err)
		}
		if mode != tt.expected {
			t.Errorf("%q: expected %v, got %v", tt.name, tt.expected, mode)
		}
	}
}
