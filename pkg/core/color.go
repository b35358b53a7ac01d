package core

import "math"

// SRGBToLinear decodes one sRGB-encoded channel in [0, 1] to linear light
func SRGBToLinear(value float64) float64 {
	if value <= 0.04045 {
		return value / 12.92
	}
	return math.Pow((value+0.055)/1.055, 2.4)
}

// LinearToSRGB encodes one linear channel with the sRGB transfer curve
func LinearToSRGB(value float64) float64 {
	if value <= 0.0031308 {
		return 12.92 * value
	}
	return 1.055*math.Pow(value, 1/2.4) - 0.055
}

// NewColorFromSRGB creates a linear color from 8-bit sRGB channels
func NewColorFromSRGB(r, g, b uint8) Vec3 {
	return NewVec3(
		SRGBToLinear(float64(r)/255),
		SRGBToLinear(float64(g)/255),
		SRGBToLinear(float64(b)/255),
	)
}

// NewColorFromHex creates a linear color from a 0xRRGGBB sRGB code
func NewColorFromHex(code uint32) Vec3 {
	return NewColorFromSRGB(uint8(code>>16), uint8(code>>8), uint8(code))
}
