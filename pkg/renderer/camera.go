package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-tile-pathtracer/pkg/core"
)

// CameraConfig contains all parameters needed to create a camera
type CameraConfig struct {
	LookFrom    core.Vec3 // Camera position
	LookAt      core.Vec3 // Point the camera is looking at
	VUp         core.Vec3 // Up direction (usually 0,1,0)
	VFov        float64   // Vertical field of view in degrees
	AspectRatio float64   // Width / height
	Aperture    float64   // Lens diameter; 0 gives a pinhole camera
	FocusDist   float64   // Distance to the plane in perfect focus
	Time0       float64   // Shutter open
	Time1       float64   // Shutter close
}

// Camera generates primary rays with defocus blur and shutter time
type Camera struct {
	origin          core.Vec3
	lowerLeftCorner core.Vec3
	horizontal      core.Vec3
	vertical        core.Vec3
	u, v            core.Vec3
	lensRadius      float64
	time0, time1    float64
	aspectRatio     float64
}

// NewCamera creates a camera from the given configuration
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180.0
	h := math.Tan(theta / 2.0)
	viewportHeight := 2.0 * h
	viewportWidth := config.AspectRatio * viewportHeight

	// Orthonormal basis: w points backwards, u right, v up
	w := config.LookFrom.Subtract(config.LookAt).Normalize()
	u := config.VUp.Cross(w).Normalize()
	v := w.Cross(u)

	horizontal := u.Multiply(config.FocusDist * viewportWidth)
	vertical := v.Multiply(config.FocusDist * viewportHeight)
	lowerLeftCorner := config.LookFrom.
		Subtract(horizontal.Multiply(0.5)).
		Subtract(vertical.Multiply(0.5)).
		Subtract(w.Multiply(config.FocusDist))

	return &Camera{
		origin:          config.LookFrom,
		lowerLeftCorner: lowerLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		lensRadius:      config.Aperture / 2.0,
		time0:           config.Time0,
		time1:           config.Time1,
		aspectRatio:     config.AspectRatio,
	}
}

// GetRay returns a ray through the image plane point (s, t), where 0 <= s,t <= 1
// and (0, 0) is the lower left corner
func (c *Camera) GetRay(random *rand.Rand, s, t float64) core.Ray {
	rd := core.RandomInUnitDisk(random).Multiply(c.lensRadius)
	offset := c.u.Multiply(rd.X).Add(c.v.Multiply(rd.Y))

	direction := c.lowerLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Add(c.vertical.Multiply(t)).
		Subtract(c.origin).
		Subtract(offset)

	time := c.time0
	if c.time1 > c.time0 {
		time += (c.time1 - c.time0) * random.Float64()
	}

	return core.NewRay(c.origin.Add(offset), direction, time)
}

// AspectRatio returns the width / height ratio the camera was built for
func (c *Camera) AspectRatio() float64 {
	return c.aspectRatio
}

// ImageHeight returns the image height matching width at the camera's aspect ratio
func (c *Camera) ImageHeight(width int) int {
	return int(float64(width) / c.aspectRatio)
}
