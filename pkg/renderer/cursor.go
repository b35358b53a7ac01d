package renderer

import "sync"

// DefaultTileSize is the edge length in pixels of a square tile
const DefaultTileSize = 16

// Cursor hands out tile origins in row-major order to any number of workers.
// It is the only state shared between workers during a render.
type Cursor struct {
	mu       sync.Mutex
	x, y     int
	done     bool
	width    int
	height   int
	tileSize int
}

// NewCursor creates a cursor over a width x height image split into tileSize tiles
func NewCursor(width, height, tileSize int) *Cursor {
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}
	return &Cursor{
		width:    width,
		height:   height,
		tileSize: tileSize,
		done:     width <= 0 || height <= 0,
	}
}

// Next claims the next tile and returns its top left pixel.
// ok is false once every tile has been claimed or Stop was called.
func (c *Cursor) Next() (x, y int, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.done {
		return 0, 0, false
	}

	x, y = c.x, c.y
	c.x += c.tileSize
	if c.x >= c.width {
		c.x = 0
		c.y += c.tileSize
	}
	if c.y >= c.height {
		c.done = true
	}
	return x, y, true
}

// Stop makes every subsequent Next call report exhaustion.
// Tiles already claimed are still rendered and delivered.
func (c *Cursor) Stop() {
	c.mu.Lock()
	c.done = true
	c.mu.Unlock()
}

// TileSize returns the tile edge length
func (c *Cursor) TileSize() int {
	return c.tileSize
}

// TileCount returns the total number of tiles covering the image
func (c *Cursor) TileCount() int {
	if c.width <= 0 || c.height <= 0 {
		return 0
	}
	tilesX := (c.width + c.tileSize - 1) / c.tileSize // Ceiling division
	tilesY := (c.height + c.tileSize - 1) / c.tileSize
	return tilesX * tilesY
}
