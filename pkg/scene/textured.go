package scene

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

const earthTexture = "earthmap.jpg"

// NewPerlinScene places a marbled sphere on a turbulent metal ground
func NewPerlinScene(random *rand.Rand) *Scene {
	s := &Scene{Background: skyColor}
	s.CameraConfig = standardCamera()
	s.CameraConfig.VFov = 45
	s.CameraConfig.Aperture = 0
	s.CameraConfig.FocusDist = 1

	low := material.NewSolidColor(black)
	high := material.NewSolidColor(white)
	ground := material.NewNoiseTexture(random, low, high, 4, 7)

	noise := material.NewNoiseTexture(random, low, high, 10, 50)
	blue := core.NewVec3(0, 0.1, 0.15)
	marble := material.FuncTexture(func(u, v float64, point core.Vec3) core.Vec3 {
		t := noise.Evaluate(u, v, point).X
		// the high exponent keeps most of the surface dark
		return blue.Add(white.Subtract(blue).Multiply(math.Pow(t, 15)))
	})

	s.Add(
		geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, material.NewTexturedMetal(ground, 0.3)),
		geometry.NewSphere(core.NewVec3(0, 2, 0), 2, material.NewTexturedLambertian(marble)),
	)
	return s
}

// NewEarthScene renders a globe wrapped in the earth map from options.TextureDir
func NewEarthScene(options Options) (*Scene, error) {
	earth, err := loaders.LoadImageTexture(options.texturePath(earthTexture))
	if err != nil {
		return nil, err
	}

	s := &Scene{Background: skyColor}
	s.CameraConfig = standardCamera()
	s.CameraConfig.LookFrom = core.NewVec3(14, 0, 0)
	s.CameraConfig.Aperture = 0
	s.CameraConfig.FocusDist = 1

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 2, material.NewTexturedLambertian(earth)))
	return s, nil
}

// NewSphereScene is a single diffuse sphere under a sky, small enough to render in tests
func NewSphereScene() *Scene {
	s := &Scene{Background: skyColor}
	s.CameraConfig = standardCamera()
	s.CameraConfig.LookFrom = core.NewVec3(0, 0, 3)
	s.CameraConfig.VFov = 90
	s.CameraConfig.AspectRatio = 1
	s.CameraConfig.Aperture = 0
	s.CameraConfig.FocusDist = 3

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, 0), 1, material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))))
	return s
}
