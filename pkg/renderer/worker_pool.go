package renderer

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
)

// ErrWorkerPanic is returned when a worker goroutine panics during a render
var ErrWorkerPanic = errors.New("render worker panicked")

// WorkerPool runs one TileRenderer loop per worker goroutine, all sharing one cursor
type WorkerPool struct {
	renderer   *TileRenderer
	cursor     *Cursor
	numWorkers int
	tiles      chan *Tile
	stats      []WorkerStats
	errs       []error
	wg         sync.WaitGroup
}

// NewWorkerPool creates a pool with numWorkers workers (0 = use CPU count).
// The tile channel is buffered to one tile per worker, so workers block when
// the collector falls behind.
func NewWorkerPool(renderer *TileRenderer, cursor *Cursor, numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{
		renderer:   renderer,
		cursor:     cursor,
		numWorkers: numWorkers,
		tiles:      make(chan *Tile, numWorkers),
		stats:      make([]WorkerStats, numWorkers),
		errs:       make([]error, numWorkers),
	}
}

// Start launches the workers. The tile channel is closed once all of them have returned.
func (wp *WorkerPool) Start() {
	for id := 0; id < wp.numWorkers; id++ {
		wp.wg.Add(1)
		go wp.run(id)
	}

	go func() {
		wp.wg.Wait()
		close(wp.tiles)
	}()
}

// Tiles returns the channel completed tiles arrive on, in completion order
func (wp *WorkerPool) Tiles() <-chan *Tile {
	return wp.tiles
}

// Wait blocks until every worker has returned and reports their statistics.
// The tile channel must be drained for Wait to return.
func (wp *WorkerPool) Wait() ([]WorkerStats, error) {
	wp.wg.Wait()
	return wp.stats, errors.Join(wp.errs...)
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return wp.numWorkers
}

// run is the main worker loop. A panic stops the cursor so the other workers
// wind down, and is reported from Wait.
func (wp *WorkerPool) run(id int) {
	defer wp.wg.Done()
	defer func() {
		if r := recover(); r != nil {
			wp.cursor.Stop()
			wp.errs[id] = fmt.Errorf("%w: worker %d: %v", ErrWorkerPanic, id, r)
		}
	}()

	wp.stats[id] = wp.renderer.Run(wp.tiles, wp.cursor)
}
