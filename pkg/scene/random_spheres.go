package scene

import (
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/geometry"
	"github.com/df07/go-tile-pathtracer/pkg/material"
)

// prideMaterials returns the sixteen flag materials: every stripe texture as
// Lambertian, fuzzy metal, glass and a bright emitter
func prideMaterials() []core.Material {
	textures := []material.Texture{
		material.NewStripeColors(material.TransColors, true),
		material.NewStripeColors(material.RainbowColors, true),
		material.NewStripeColors(material.EnbyColors, true),
		material.NewStripeColors(material.BiColors, true),
	}

	materials := make([]core.Material, 16)
	for i := range materials {
		texture := textures[i%4]
		switch i / 4 {
		case 0:
			materials[i] = material.NewTexturedLambertian(texture)
		case 1:
			materials[i] = material.NewTexturedMetal(texture, 0.2)
		case 2:
			materials[i] = material.NewDielectric(1.5)
		default:
			materials[i] = material.NewTexturedDiffuseLight(material.NewScaledTexture(texture, 20))
		}
	}
	return materials
}

// NewRandomSpheresScene scatters small spheres on a grid around three large ones.
// nextWeek adds a checkered ground and motion blur to the diffuse spheres; pride
// swaps the random materials for flag stripes and lights the scene from within a fog.
func NewRandomSpheresScene(random *rand.Rand, nextWeek, pride bool) *Scene {
	s := &Scene{CameraConfig: standardCamera(), Background: skyColor}

	var ground core.Material = material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	if nextWeek {
		ground = material.NewTexturedLambertian(material.NewCheckerColors(
			core.NewVec3(0.2, 0.3, 0.1),
			core.NewVec3(0.9, 0.9, 0.9),
		))
	}
	s.Add(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000, ground))

	pridePalette := prideMaterials()
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for b := -11; b < 11; b++ {
			choose := random.Float64()
			center := core.NewVec3(
				float64(a)+0.9*random.Float64(),
				0.2,
				float64(b)+0.9*random.Float64(),
			)
			if center.Subtract(clearing).LengthSquared() <= 0.9*0.9 {
				continue
			}

			var mat core.Material
			switch {
			case pride:
				mat = pridePalette[int(choose*float64(len(pridePalette)))]
			case choose < 0.8:
				albedo := core.RandomVec3(random, 0, 1).MultiplyVec(core.RandomVec3(random, 0, 1))
				mat = material.NewLambertian(albedo)
			case choose < 0.95:
				albedo := core.RandomVec3(random, 0.5, 1)
				fuzz := random.Float64() * 0.5
				mat = material.NewMetal(albedo, fuzz)
			default:
				mat = material.NewDielectric(1.5)
			}

			if nextWeek && choose < 0.8 {
				center1 := center.Add(core.NewVec3(0, random.Float64()*0.5, 0))
				s.Add(geometry.NewMovingSphere(center, center1, 0, 1, 0.2, mat))
			} else {
				s.Add(geometry.NewSphere(center, 0.2, mat))
			}
		}
	}

	s.Add(geometry.NewSphere(core.NewVec3(0, 1, 0), 1, material.NewDielectric(1.5)))

	var middle core.Material = material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))
	if pride {
		middle = material.NewDiffuseLight(core.NewVec3(4, 4, 4))
	}
	s.Add(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1, middle))

	s.Add(geometry.NewSphere(core.NewVec3(4, 1, 0), 1, material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)))

	if pride {
		fog := geometry.NewSphere(core.NewVec3(0, 0, 0), 25, material.NewDielectric(1.5))
		s.Add(geometry.NewConstantMediumColor(fog, 0.05, core.NewVec3(0.04, 0.08, 0.1)))
		s.Background = black
	}

	return s
}
