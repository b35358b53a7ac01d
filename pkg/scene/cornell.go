package scene

import (
	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// NewCornellScene creates the 555-unit Cornell box with a tall and a short block
func NewCornellScene() *Scene {
	s := &Scene{
		CameraConfig: boxCamera(core.NewVec3(278, 278, -800), core.NewVec3(278, 278, 0)),
		Background:   black,
	}

	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	whiteWall := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))
	light := material.NewDiffuseLight(core.NewVec3(15, 15, 15))

	s.Add(
		geometry.NewYZRect(0, 555, 0, 555, 555, green),
		geometry.NewYZRect(0, 555, 0, 555, 0, red),
		// just below the ceiling so the two never overlap
		geometry.NewXZRect(213, 343, 227, 332, 554.99, light),
		geometry.NewXZRect(0, 555, 0, 555, 0, whiteWall),
		geometry.NewXZRect(0, 555, 0, 555, 555, whiteWall),
		geometry.NewXYRect(0, 555, 0, 555, 555, whiteWall),
	)

	tall := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 320, 165), whiteWall)
	s.Add(geometry.NewTranslate(geometry.NewRotateY(tall, 15), core.NewVec3(265, 0, 295)))

	short := geometry.NewBox(core.NewVec3(0, 0, 0), core.NewVec3(165, 165, 165), whiteWall)
	s.Add(geometry.NewTranslate(geometry.NewRotateY(short, -18), core.NewVec3(130, 0, 65)))

	return s
}

// NewBisexualScene adds a bi flag ceiling light, a glass ball, a blue mist and
// a tilted glass pane to the Cornell box
func NewBisexualScene() *Scene {
	s := NewCornellScene()

	ceiling := material.NewScaledTexture(material.NewStripeColors(material.BiColors, false), 2)
	s.Add(geometry.NewXZRect(0, 555, 0, 555, 554.9, material.NewTexturedDiffuseLight(ceiling)))

	s.Add(geometry.NewSphere(core.NewVec3(400, 80, 100), 50, material.NewDielectric(1.5)))

	mist := geometry.NewBox(core.NewVec3(100, 200, 0), core.NewVec3(200, 300, 400), material.NewLambertian(black))
	s.Add(geometry.NewConstantMediumColor(mist, 0.01, core.NewVec3(0, 0, 0.5)))

	pane := geometry.NewBox(core.NewVec3(150, 50, 0), core.NewVec3(250, 300, 10), material.NewDielectric(1.1))
	s.Add(geometry.NewRotateY(pane, 30))

	return s
}
