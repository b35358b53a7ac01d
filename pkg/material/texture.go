package material

import (
	"math"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// Texture provides spatially-varying colors for materials
type Texture interface {
	// Evaluate returns color at given surface coordinates and 3D point
	// UV is used for image and stripe textures, point for procedural textures
	Evaluate(u, v float64, point core.Vec3) core.Vec3
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Vec3
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Vec3) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	return s.Color
}

// CheckerTexture alternates between two textures in a 3-D checker pattern
type CheckerTexture struct {
	Odd, Even Texture
}

// NewCheckerTexture creates a checker of two textures
func NewCheckerTexture(odd, even Texture) *CheckerTexture {
	return &CheckerTexture{Odd: odd, Even: even}
}

// NewCheckerColors creates a checker of two solid colors
func NewCheckerColors(odd, even core.Vec3) *CheckerTexture {
	return NewCheckerTexture(NewSolidColor(odd), NewSolidColor(even))
}

// Evaluate picks a texture by the sign of sin(10x)·sin(10y)·sin(10z)
func (c *CheckerTexture) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	sines := math.Sin(10*point.X) * math.Sin(10*point.Y) * math.Sin(10*point.Z)
	if sines < 0 {
		return c.Odd.Evaluate(u, v, point)
	}
	return c.Even.Evaluate(u, v, point)
}

// StripeTexture splits the v range into equal horizontal stripes
type StripeTexture struct {
	Stripes []Texture
	// SphereAdjust gives every stripe equal surface area on a sphere instead of equal height,
	// with the first stripe at the north pole
	SphereAdjust bool
}

// NewStripeTexture creates a stripe texture from textures listed bottom to top
func NewStripeTexture(stripes []Texture, sphereAdjust bool) *StripeTexture {
	return &StripeTexture{Stripes: stripes, SphereAdjust: sphereAdjust}
}

// NewStripeColors creates a stripe texture from solid colors listed bottom to top
func NewStripeColors(colors []core.Vec3, sphereAdjust bool) *StripeTexture {
	stripes := make([]Texture, len(colors))
	for i, color := range colors {
		stripes[i] = NewSolidColor(color)
	}
	return NewStripeTexture(stripes, sphereAdjust)
}

// Evaluate returns the stripe containing v
func (s *StripeTexture) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	if s.SphereAdjust {
		v = (1 - math.Cos(math.Pi*(1-v))) / 2
	}

	index := int(v * float64(len(s.Stripes)))
	index = max(0, min(len(s.Stripes)-1, index))
	return s.Stripes[index].Evaluate(u, v, point)
}

// Flag stripe palettes, bottom stripe first
var (
	TransColors = []core.Vec3{
		core.NewColorFromHex(0x5bcefa),
		core.NewColorFromHex(0xf5a9b8),
		core.NewColorFromHex(0xffffff),
		core.NewColorFromHex(0xf5a9b8),
		core.NewColorFromHex(0x5bcefa),
	}
	RainbowColors = []core.Vec3{
		core.NewColorFromHex(0xe40303),
		core.NewColorFromHex(0xff8c00),
		core.NewColorFromHex(0xffed00),
		core.NewColorFromHex(0x008026),
		core.NewColorFromHex(0x004dff),
		core.NewColorFromHex(0x750787),
	}
	EnbyColors = []core.Vec3{
		core.NewColorFromHex(0xfef333),
		core.NewColorFromHex(0xffffff),
		core.NewColorFromHex(0x9a58cf),
		core.NewColorFromHex(0x2d2d2d),
	}
	BiColors = []core.Vec3{
		core.NewColorFromHex(0xd60270),
		core.NewColorFromHex(0xd60270),
		core.NewColorFromHex(0x9b4f96),
		core.NewColorFromHex(0x0038a8),
		core.NewColorFromHex(0x0038a8),
	}
)

// FuncTexture adapts an ordinary function to the Texture interface
type FuncTexture func(u, v float64, point core.Vec3) core.Vec3

// Evaluate calls f(u, v, point)
func (f FuncTexture) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	return f(u, v, point)
}

// ScaledTexture multiplies another texture by a constant factor
type ScaledTexture struct {
	Texture Texture
	Scale   float64
}

// NewScaledTexture creates a texture that is scale times brighter than texture
func NewScaledTexture(texture Texture, scale float64) *ScaledTexture {
	return &ScaledTexture{Texture: texture, Scale: scale}
}

// Evaluate returns the scaled color
func (s *ScaledTexture) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	return s.Texture.Evaluate(u, v, point).Multiply(s.Scale)
}

// NoiseTexture blends two textures by Perlin turbulence
type NoiseTexture struct {
	Noise     *Perlin
	Low, High Texture
	Scale     float64 // Frequency of the noise in world units
	Depth     int     // Number of turbulence octaves
}

// NewNoiseTexture creates a noise texture whose lattice is drawn from random
func NewNoiseTexture(random PerlinSource, low, high Texture, scale float64, depth int) *NoiseTexture {
	return &NoiseTexture{
		Noise: NewPerlin(random),
		Low:   low,
		High:  high,
		Scale: scale,
		Depth: depth,
	}
}

// Evaluate interpolates between Low and High by the turbulence at the scaled point
func (n *NoiseTexture) Evaluate(u, v float64, point core.Vec3) core.Vec3 {
	low := n.Low.Evaluate(u, v, point)
	high := n.High.Evaluate(u, v, point)
	t := n.Noise.Turbulence(point.Multiply(n.Scale), n.Depth)
	return low.Add(high.Subtract(low).Multiply(t))
}
