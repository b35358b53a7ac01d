package renderer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/df07/go-tile-pathtracer/pkg/core"
	"github.com/df07/go-tile-pathtracer/pkg/integrator"
)

// Config contains rendering configuration
type Config struct {
	Width           int                  // Image width in pixels
	Height          int                  // Image height in pixels (0 = derive from the camera aspect ratio)
	SamplesPerPixel int                  // Number of rays per pixel
	MaxDepth        int                  // Maximum ray bounce depth
	TileSize        int                  // Tile edge length in pixels
	NumWorkers      int                  // Number of parallel workers (0 = use CPU count)
	SampleSeed      uint64               // Seed for per-tile sample generators
	Debug           integrator.DebugMode // Diagnostic visualization
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:           600,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		TileSize:        DefaultTileSize,
		NumWorkers:      0, // Auto-detect CPU count
	}
}

// Validate reports the first invalid setting
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return fmt.Errorf("width must be positive, got %d", c.Width)
	case c.Height < 0:
		return fmt.Errorf("height must not be negative, got %d", c.Height)
	case c.SamplesPerPixel <= 0:
		return fmt.Errorf("samples per pixel must be positive, got %d", c.SamplesPerPixel)
	case c.MaxDepth < 0:
		return fmt.Errorf("max depth must not be negative, got %d", c.MaxDepth)
	case c.TileSize < 0:
		return fmt.Errorf("tile size must not be negative, got %d", c.TileSize)
	case c.NumWorkers < 0:
		return fmt.Errorf("number of workers must not be negative, got %d", c.NumWorkers)
	}
	return nil
}

// Progress describes the state of a render after a tile has been placed
type Progress struct {
	Tile        *Tile         // The tile just completed
	TilesDone   int           // Tiles placed so far
	TotalTiles  int           // Tiles in the image
	PixelsDone  int           // Pixels placed so far
	TotalPixels int           // Pixels in the image
	Fraction    float64       // PixelsDone / TotalPixels
	Elapsed     time.Duration // Time since the render started
	ETA         time.Duration // Estimated time remaining
}

// Raytracer drives a tiled render of one world through one camera
type Raytracer struct {
	world      core.Hittable
	camera     *Camera
	background core.Vec3
	config     Config
	logger     core.Logger
}

// NewRaytracer creates a new raytracer. A nil logger discards messages.
func NewRaytracer(world core.Hittable, camera *Camera, background core.Vec3, config Config, logger core.Logger) *Raytracer {
	if config.Height == 0 {
		config.Height = camera.ImageHeight(config.Width)
	}
	if config.TileSize == 0 {
		config.TileSize = DefaultTileSize
	}
	if logger == nil {
		logger = discardLogger{}
	}
	return &Raytracer{
		world:      world,
		camera:     camera,
		background: background,
		config:     config,
		logger:     logger,
	}
}

// Config returns the effective configuration, with the image height resolved
func (rt *Raytracer) Config() Config {
	return rt.config
}

// Render renders the whole image. onTile, if non-nil, is called from the
// calling goroutine after each tile is placed. Cancelling ctx stops workers
// from claiming new tiles; Render then returns ctx.Err().
func (rt *Raytracer) Render(ctx context.Context, onTile func(Progress)) (*Framebuffer, RenderStats, error) {
	cfg := rt.config
	if err := ctx.Err(); err != nil {
		return nil, RenderStats{}, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, RenderStats{}, err
	}
	if cfg.Height <= 0 {
		return nil, RenderStats{}, fmt.Errorf("image height must be positive, got %d", cfg.Height)
	}

	cursor := NewCursor(cfg.Width, cfg.Height, cfg.TileSize)
	tileRenderer := NewTileRenderer(rt.world, rt.camera, rt.background, TileConfig{
		Width:           cfg.Width,
		Height:          cfg.Height,
		TileSize:        cfg.TileSize,
		SamplesPerPixel: cfg.SamplesPerPixel,
		MaxDepth:        cfg.MaxDepth,
		SampleSeed:      cfg.SampleSeed,
		Debug:           cfg.Debug,
	})
	pool := NewWorkerPool(tileRenderer, cursor, cfg.NumWorkers)

	rt.logger.Printf("Rendering %dx%d, %d samples/pixel, depth %d, %d tiles on %d workers\n",
		cfg.Width, cfg.Height, cfg.SamplesPerPixel, cfg.MaxDepth, cursor.TileCount(), pool.GetNumWorkers())

	stopCursor := context.AfterFunc(ctx, cursor.Stop)
	defer stopCursor()

	start := time.Now()
	pool.Start()

	fb := NewFramebuffer(cfg.Width, cfg.Height)
	progress := Progress{
		TotalTiles:  cursor.TileCount(),
		TotalPixels: cfg.Width * cfg.Height,
	}

	var placeErr error
	for tile := range pool.Tiles() {
		if err := fb.Place(tile); err != nil {
			// Keep draining so workers are never blocked on a full channel
			placeErr = errors.Join(placeErr, err)
			cursor.Stop()
			continue
		}

		progress.Tile = tile
		progress.TilesDone++
		progress.PixelsDone += tile.Width * tile.Height
		progress.Fraction = float64(progress.PixelsDone) / float64(progress.TotalPixels)
		progress.Elapsed = time.Since(start)
		progress.ETA = time.Duration(float64(progress.Elapsed)/progress.Fraction) - progress.Elapsed

		if onTile != nil {
			onTile(progress)
		}
	}

	workers, workerErr := pool.Wait()
	stats := RenderStats{
		Workers:         workers,
		Elapsed:         time.Since(start),
		TotalPixels:     progress.TotalPixels,
		SamplesPerPixel: cfg.SamplesPerPixel,
	}

	if err := errors.Join(workerErr, placeErr); err != nil {
		return nil, stats, err
	}
	if progress.PixelsDone < progress.TotalPixels {
		if err := ctx.Err(); err != nil {
			rt.logger.Printf("Rendering cancelled after %d of %d tiles\n", progress.TilesDone, progress.TotalTiles)
			return nil, stats, err
		}
		return nil, stats, fmt.Errorf("render incomplete: %d of %d pixels", progress.PixelsDone, progress.TotalPixels)
	}

	rt.logger.Printf("Render completed in %v\n", stats.Elapsed)
	return fb, stats, nil
}
