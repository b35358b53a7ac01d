package scene

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/loaders"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewWeekScene builds the closing scene of "Ray Tracing: The Next Week": a field
// of boxes, moving and glass spheres, fog, the earth, marble and a rotated
// cluster of small spheres
func NewWeekScene(random *rand.Rand, options Options) (*Scene, error) {
	earth, err := loaders.LoadImageTexture(options.texturePath(earthTexture))
	if err != nil {
		return nil, err
	}

	s := &Scene{
		CameraConfig: boxCamera(core.NewVec3(478, 278, -600), core.NewVec3(278, 278, 0)),
		Background:   black,
	}

	ground := material.NewLambertian(core.NewVec3(0.48, 0.83, 0.53))
	const boxesPerSide, boxWidth = 20, 100.0
	for i := 0; i < boxesPerSide; i++ {
		for j := 0; j < boxesPerSide; j++ {
			x0 := -1000 + float64(i)*boxWidth
			z0 := -1000 + float64(j)*boxWidth
			y1 := 1 + random.Float64()*100
			s.Add(geometry.NewBox(core.NewVec3(x0, 0, z0), core.NewVec3(x0+boxWidth, y1, z0+boxWidth), ground))
		}
	}

	s.Add(geometry.NewXZRect(123, 423, 147, 412, 554, material.NewDiffuseLight(core.NewVec3(7, 7, 7))))

	center0 := core.NewVec3(400, 400, 200)
	center1 := center0.Add(core.NewVec3(30, 0, 0))
	s.Add(geometry.NewMovingSphere(center0, center1, 0, 1, 50, material.NewLambertian(core.NewVec3(0.7, 0.3, 0.1))))

	s.Add(
		geometry.NewSphere(core.NewVec3(260, 150, 45), 50, material.NewDielectric(1.5)),
		geometry.NewSphere(core.NewVec3(0, 150, 145), 50, material.NewMetal(core.NewVec3(0.8, 0.8, 0.9), 1)),
	)

	// a glass shell filled with blue smoke
	shell := geometry.NewSphere(core.NewVec3(360, 150, 145), 70, material.NewDielectric(1.5))
	s.Add(shell, geometry.NewConstantMediumColor(shell, 0.2, core.NewVec3(0.2, 0.4, 0.9)))

	haze := geometry.NewSphere(core.NewVec3(0, 0, 0), 5000, material.NewDielectric(1.5))
	s.Add(geometry.NewConstantMediumColor(haze, 0.0001, white))

	s.Add(geometry.NewSphere(core.NewVec3(400, 200, 400), 100, material.NewTexturedLambertian(earth)))

	marble := material.NewNoiseTexture(random, material.NewSolidColor(black), material.NewSolidColor(white), 0.1, 7)
	s.Add(geometry.NewSphere(core.NewVec3(220, 280, 300), 80, material.NewTexturedLambertian(marble)))

	cluster := make([]core.Hittable, 1000)
	whiteBall := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	for i := range cluster {
		center := core.RandomVec3(random, 0, 165)
		var mat core.Material = whiteBall
		if i < 50 {
			mat = material.NewDiffuseLight(core.RandomVec3(random, 0, 50))
		}
		cluster[i] = geometry.NewSphere(center, 10, mat)
	}
	clusterBVH, err := core.NewBVH(random, cluster, 0, 1)
	if err != nil {
		return nil, err
	}
	s.Add(geometry.NewTranslate(geometry.NewRotateY(clusterBVH, 15), core.NewVec3(-100, 270, 395)))

	return s, nil
}
