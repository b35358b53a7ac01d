package renderer

import (
	"fmt"
	"time"
)

// WorkerStats contains what a single worker rendered
type WorkerStats struct {
	Elapsed time.Duration // Time spent rendering tiles, excluding waits on the tile channel
	Pixels  int           // Pixels rendered
	Tiles   int           // Tiles rendered
}

// RaysPerSecond returns the worker's primary ray throughput
func (ws WorkerStats) RaysPerSecond(samplesPerPixel int) float64 {
	seconds := ws.Elapsed.Seconds()
	if seconds <= 0 {
		return 0
	}
	return float64(ws.Pixels*samplesPerPixel) / seconds
}

// RenderStats contains statistics about a complete render
type RenderStats struct {
	Workers         []WorkerStats // One entry per worker, in worker order
	Elapsed         time.Duration // Wall clock time of the render
	TotalPixels     int           // Pixels in the image
	SamplesPerPixel int           // Samples taken per pixel
}

// RaysPerSecond returns the summed throughput of all workers
func (rs RenderStats) RaysPerSecond() float64 {
	var total float64
	for _, worker := range rs.Workers {
		total += worker.RaysPerSecond(rs.SamplesPerPixel)
	}
	return total
}

// PixelsRendered returns the number of pixels the workers delivered
func (rs RenderStats) PixelsRendered() int {
	var total int
	for _, worker := range rs.Workers {
		total += worker.Pixels
	}
	return total
}

// FormatRayRate formats a ray rate with a k/M/G prefix, e.g. " 12.34 MRay/s"
func FormatRayRate(raysPerSecond float64) string {
	measurement, prefix := raysPerSecond, ""
	switch {
	case raysPerSecond >= 1e9:
		measurement, prefix = raysPerSecond/1e9, "G"
	case raysPerSecond >= 1e6:
		measurement, prefix = raysPerSecond/1e6, "M"
	case raysPerSecond >= 1e3:
		measurement, prefix = raysPerSecond/1e3, "k"
	}
	return fmt.Sprintf("%6.2f %sRay/s", measurement, prefix)
}

// FormatETA formats a duration as h:mm:ss, m:ss or plain seconds
func FormatETA(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSecs := int64(d / time.Second)
	hours := totalSecs / 3600
	mins := (totalSecs % 3600) / 60
	secs := totalSecs % 60

	switch {
	case hours > 0:
		return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
	case mins > 0:
		return fmt.Sprintf("%d:%02d", mins, secs)
	default:
		return fmt.Sprintf("%d", secs)
	}
}
