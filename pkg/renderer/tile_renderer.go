package renderer

import (
	"math/rand"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
)

// TileConfig contains the per-worker rendering parameters
type TileConfig struct {
	Width, Height   int                  // Image size in pixels
	TileSize        int                  // Tile edge length (0 = DefaultTileSize)
	SamplesPerPixel int                  // Samples averaged per pixel
	MaxDepth        int                  // Maximum ray bounce depth
	SampleSeed      uint64               // Combined with tile coordinates to seed each tile
	Debug           integrator.DebugMode // Diagnostic visualization, if any
}

// TileRenderer renders tiles of one image using the path tracing integrator
type TileRenderer struct {
	world      core.Hittable
	camera     *Camera
	integrator *integrator.PathTracingIntegrator
	config     TileConfig
}

// NewTileRenderer creates a tile renderer for world as seen through camera
func NewTileRenderer(world core.Hittable, camera *Camera, background core.Vec3, config TileConfig) *TileRenderer {
	if config.TileSize <= 0 {
		config.TileSize = DefaultTileSize
	}
	return &TileRenderer{
		world:      world,
		camera:     camera,
		integrator: integrator.NewPathTracingIntegrator(background),
		config:     config,
	}
}

// RenderTiles is the worker loop: it claims tiles from cursor until it is
// exhausted, renders each one and sends it to out. It returns the worker's
// accumulated render time and pixel count.
func RenderTiles(out chan<- *Tile, world core.Hittable, camera *Camera, background core.Vec3, cursor *Cursor, config TileConfig) WorkerStats {
	config.TileSize = cursor.TileSize()
	return NewTileRenderer(world, camera, background, config).Run(out, cursor)
}

// Run claims and renders tiles until cursor is exhausted
func (tr *TileRenderer) Run(out chan<- *Tile, cursor *Cursor) WorkerStats {
	var stats WorkerStats
	for {
		x, y, ok := cursor.Next()
		if !ok {
			return stats
		}

		tile := tr.RenderTile(x, y)
		stats.Elapsed += tile.Duration
		stats.Pixels += tile.Width * tile.Height
		stats.Tiles++

		out <- tile
	}
}

// RenderTile renders the tile whose top left pixel is (x, y).
// The result depends only on the configuration, the world and (x, y).
func (tr *TileRenderer) RenderTile(x, y int) *Tile {
	cfg := tr.config
	tile := NewTile(x, y, cfg.TileSize, cfg.Width, cfg.Height)
	random := rand.New(rand.NewSource(int64(cfg.SampleSeed ^ uint64(x) ^ uint64(y))))

	start := time.Now()
	for ty := 0; ty < tile.Height; ty++ {
		for tx := 0; tx < tile.Width; tx++ {
			tile.Set(tx, ty, tr.samplePixel(random, x+tx, y+ty))
		}
	}
	tile.Duration = time.Since(start)

	return tile
}

// samplePixel returns the mean of SamplesPerPixel jittered samples of pixel (i, j).
// Row j = 0 is the top of the image, which is t = 1 on the camera's image plane.
func (tr *TileRenderer) samplePixel(random *rand.Rand, i, j int) core.Vec3 {
	cfg := tr.config
	if cfg.SamplesPerPixel <= 0 {
		return core.Vec3{}
	}

	uScale := float64(max(1, cfg.Width-1))
	vScale := float64(max(1, cfg.Height-1))
	row := float64(cfg.Height - 1 - j)

	var colorAccum core.Vec3
	for sample := 0; sample < cfg.SamplesPerPixel; sample++ {
		u := (float64(i) + random.Float64()) / uScale
		v := (row + random.Float64()) / vScale
		ray := tr.camera.GetRay(random, u, v)
		colorAccum = colorAccum.Add(tr.sample(random, ray))
	}

	return colorAccum.Multiply(1.0 / float64(cfg.SamplesPerPixel))
}

// sample traces one primary ray according to the debug mode
func (tr *TileRenderer) sample(random *rand.Rand, ray core.Ray) core.Vec3 {
	switch tr.config.Debug {
	case integrator.DebugDepth:
		_, peak := tr.integrator.RayColorDepth(random, ray, tr.world, tr.config.MaxDepth)
		return integrator.DepthShade(peak, tr.config.MaxDepth)
	case integrator.DebugBVH:
		return integrator.HeatColor(tr.integrator.BVHVisits(random, ray, tr.world))
	default:
		return tr.integrator.RayColor(random, ray, tr.world, tr.config.MaxDepth)
	}
}
