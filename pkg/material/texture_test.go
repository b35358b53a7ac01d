package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

func TestCheckerTexture(t *testing.T) {
	odd := core.NewVec3(1, 0, 0)
	even := core.NewVec3(0, 0, 1)
	checker := NewCheckerColors(odd, even)

	// sin(1)^3 > 0
	if got := checker.Evaluate(0, 0, core.NewVec3(0.1, 0.1, 0.1)); got != even {
		t.Errorf("Expected even color, got %v", got)
	}
	// sin(-1)·sin(1)·sin(1) < 0
	if got := checker.Evaluate(0, 0, core.NewVec3(-0.1, 0.1, 0.1)); got != odd {
		t.Errorf("Expected odd color, got %v", got)
	}
}

func TestStripeTexture(t *testing.T) {
	colors := []core.Vec3{
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1),
	}
	stripes := NewStripeColors(colors, false)

	tests := []struct {
		v        float64
		expected core.Vec3
	}{
		{0, colors[0]},
		{0.2, colors[0]},
		{0.5, colors[1]},
		{0.9, colors[2]},
		{1, colors[2]},    // Top edge clamps into the last stripe
		{-0.5, colors[0]}, // Out-of-range clamps into the first stripe
	}
	for _, tt := range tests {
		if got := stripes.Evaluate(0, tt.v, core.Vec3{}); got != tt.expected {
			t.Errorf("v=%v: expected %v, got %v", tt.v, tt.expected, got)
		}
	}

	// Sphere adjustment equalizes stripe area and lists stripes from the north pole down
	adjusted := NewStripeColors(colors, true)
	adjustedTests := []struct {
		v        float64
		expected core.Vec3
	}{
		{0.9, colors[0]},
		{0.5, colors[1]},
		{0.3, colors[2]},
	}
	for _, tt := range adjustedTests {
		if got := adjusted.Evaluate(0, tt.v, core.Vec3{}); got != tt.expected {
			t.Errorf("Adjusted v=%v: expected %v, got %v", tt.v, tt.expected, got)
		}
	}
}

func TestFuncAndScaledTexture(t *testing.T) {
	uv := FuncTexture(func(u, v float64, point core.Vec3) core.Vec3 {
		return core.NewVec3(u, v, 0)
	})
	if got := uv.Evaluate(0.25, 0.75, core.Vec3{}); got != core.NewVec3(0.25, 0.75, 0) {
		t.Errorf("Expected (0.25,0.75,0), got %v", got)
	}

	scaled := NewScaledTexture(uv, 4)
	if got := scaled.Evaluate(0.25, 0.75, core.Vec3{}); got != core.NewVec3(1, 3, 0) {
		t.Errorf("Expected (1,3,0), got %v", got)
	}
}

func TestImageTextureEvaluate(t *testing.T) {
	// Layout:
	//   white black
	//   black white
	white := core.NewVec3(1, 1, 1)
	black := core.NewVec3(0, 0, 0)
	texture := NewImageTexture(2, 2, []core.Vec3{white, black, black, white})

	tests := []struct {
		name     string
		u, v     float64
		expected core.Vec3
	}{
		{"Bottom-left", 0.1, 0.1, black},
		{"Bottom-right", 0.9, 0.1, white},
		{"Top-left", 0.1, 0.9, white},
		{"Top-right", 0.9, 0.9, black},
		{"Corner u=1 v=0 clamps", 1, 0, white},
		{"Out of range clamps", 2, 2, black},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := texture.Evaluate(tt.u, tt.v, core.Vec3{}); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}

	empty := NewImageTexture(0, 0, nil)
	if got := empty.Evaluate(0.5, 0.5, core.Vec3{}); got != core.NewVec3(0, 1, 1) {
		t.Errorf("Expected cyan for empty image, got %v", got)
	}
}

func TestPerlin_RangeAndDeterminism(t *testing.T) {
	first := NewPerlin(rand.New(rand.NewSource(7)))
	second := NewPerlin(rand.New(rand.NewSource(7)))
	random := rand.New(rand.NewSource(42))

	for i := 0; i < 1000; i++ {
		p := core.RandomVec3(random, -50, 50)
		n := first.Noise(p)
		if n < 0 || n > 1 {
			t.Fatalf("Expected noise in [0,1], got %v at %v", n, p)
		}
		if n != second.Noise(p) {
			t.Fatalf("Expected identical noise for identical seeds at %v", p)
		}
		if turb := first.Turbulence(p, 7); turb < 0 || turb > 1 {
			t.Fatalf("Expected turbulence in [0,1], got %v", turb)
		}
	}
}

func TestPerlin_Continuity(t *testing.T) {
	perlin := NewPerlin(rand.New(rand.NewSource(3)))
	p := core.NewVec3(1.5, -2.25, 3.75)
	delta := core.NewVec3(1e-6, 0, 0)

	if diff := perlin.Noise(p.Add(delta)) - perlin.Noise(p); diff > 1e-4 || diff < -1e-4 {
		t.Errorf("Expected noise to change smoothly, got jump %v", diff)
	}
}

func TestNoiseTexture_InterpolatesEndpoints(t *testing.T) {
	low := core.NewVec3(0, 0, 0)
	high := core.NewVec3(1, 1, 1)
	noise := NewNoiseTexture(rand.New(rand.NewSource(1)), NewSolidColor(low), NewSolidColor(high), 4, 7)

	random := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		c := noise.Evaluate(0, 0, core.RandomVec3(random, -5, 5))
		if c.X < 0 || c.X > 1 || c.X != c.Y || c.Y != c.Z {
			t.Fatalf("Expected grey between low and high, got %v", c)
		}
	}
}
