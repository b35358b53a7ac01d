package scene

import (
	"errors"
	"fmt"
	"math/rand"
	"path/filepath"
	"sort"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/renderer"
)

// ErrUnknownScene is returned by Build for names not in the registry
var ErrUnknownScene = errors.New("unknown scene")

// Scene contains all the elements needed for rendering
type Scene struct {
	Objects      []core.Hittable // Top-level objects, gathered into a BVH before rendering
	CameraConfig renderer.CameraConfig
	Background   core.Vec3 // Radiance returned by rays that escape the world
}

// Options controls where scenes find their external assets
type Options struct {
	TextureDir string // Directory holding earthmap.jpg
}

// DefaultOptions returns options that look for textures next to the working directory
func DefaultOptions() Options {
	return Options{TextureDir: "textures"}
}

func (o Options) texturePath(name string) string {
	return filepath.Join(o.TextureDir, name)
}

// Add appends objects to the scene
func (s *Scene) Add(objects ...core.Hittable) {
	s.Objects = append(s.Objects, objects...)
}

// Camera builds the camera described by CameraConfig
func (s *Scene) Camera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// BuildBVH gathers the scene's objects into a BVH spanning the camera's shutter interval
func (s *Scene) BuildBVH(random *rand.Rand) (*core.BVHNode, error) {
	bvh, err := core.NewBVH(random, s.Objects, s.CameraConfig.Time0, s.CameraConfig.Time1)
	if err != nil {
		return nil, fmt.Errorf("building scene BVH: %w", err)
	}
	return bvh, nil
}

// GetPrimitiveCount returns the number of top-level objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Objects)
}

// SceneInfo describes a registered scene
type SceneInfo struct {
	Name        string
	Description string
}

type builder func(random *rand.Rand, options Options) (*Scene, error)

type entry struct {
	info  SceneInfo
	build builder
}

var registry = map[string]entry{}

func register(name, description string, build builder) {
	registry[name] = entry{info: SceneInfo{Name: name, Description: description}, build: build}
}

func init() {
	register("weekend", "Random spheres around three large ones, the cover of the first book",
		func(random *rand.Rand, _ Options) (*Scene, error) {
			return NewRandomSpheresScene(random, false, false), nil
		})
	register("gay", "Random spheres in flag stripes, lit by glowing spheres in fog",
		func(random *rand.Rand, _ Options) (*Scene, error) {
			return NewRandomSpheresScene(random, false, true), nil
		})
	register("tuesday", "Random spheres with motion blur over a checkered ground",
		func(random *rand.Rand, _ Options) (*Scene, error) {
			return NewRandomSpheresScene(random, true, false), nil
		})
	register("perlin", "Two spheres textured with Perlin turbulence",
		func(random *rand.Rand, _ Options) (*Scene, error) {
			return NewPerlinScene(random), nil
		})
	register("earth", "An image-textured globe",
		func(_ *rand.Rand, options Options) (*Scene, error) {
			return NewEarthScene(options)
		})
	register("cornell", "The Cornell box with two rotated blocks",
		func(_ *rand.Rand, _ Options) (*Scene, error) {
			return NewCornellScene(), nil
		})
	register("bisexual", "The Cornell box lit by a striped ceiling, with glass and fog",
		func(_ *rand.Rand, _ Options) (*Scene, error) {
			return NewBisexualScene(), nil
		})
	register("week", "The final scene of the second book",
		func(random *rand.Rand, options Options) (*Scene, error) {
			return NewWeekScene(random, options)
		})
	register("sphere", "A single diffuse sphere under a sky",
		func(_ *rand.Rand, _ Options) (*Scene, error) {
			return NewSphereScene(), nil
		})
}

// List returns the registered scenes sorted by name
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(registry))
	for _, e := range registry {
		infos = append(infos, e.info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// Names returns the registered scene names sorted alphabetically
func Names() []string {
	infos := List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	return names
}

// Build creates the named scene, drawing any random placement from random
func Build(name string, random *rand.Rand, options Options) (*Scene, error) {
	e, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScene, name)
	}
	s, err := e.build(random, options)
	if err != nil {
		return nil, fmt.Errorf("scene %s: %w", name, err)
	}
	return s, nil
}

// standardCamera is the camera shared by the random sphere scenes
func standardCamera() renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:    core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        20,
		AspectRatio: 3.0 / 2.0,
		Aperture:    0.1,
		FocusDist:   10,
		Time0:       0,
		Time1:       1,
	}
}

// boxCamera looks into a 555-unit box from the front, focused on the look-at point
func boxCamera(from, at core.Vec3) renderer.CameraConfig {
	return renderer.CameraConfig{
		LookFrom:    from,
		LookAt:      at,
		VUp:         core.NewVec3(0, 1, 0),
		VFov:        40,
		AspectRatio: 1,
		Aperture:    0.1,
		FocusDist:   at.Subtract(from).Length(),
		Time0:       0,
		Time1:       1,
	}
}

var (
	skyColor = core.NewVec3(0.7, 0.8, 1.0)
	black    = core.NewVec3(0, 0, 0)
	white    = core.NewVec3(1, 1, 1)
)
