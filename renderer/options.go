package renderer

import "runtime"

const (
	// Default wall-clock budget before the render is cut short.
	DefaultMaxRenderSeconds = 294.0

	// Default interval between preview snapshots.
	DefaultSnapshotInterval = 29.9
)

// Receives resolved frames. The name carries no extension; encoding and
// the container format are entirely the writer's concern. Pixels are
// linear RGB, three float32 components per pixel, rows top to bottom.
type FrameWriter func(name string, width, height uint32, pixels []float32) error

type Options struct {
	// Frame dims.
	FrameW uint32
	FrameH uint32

	// Number of samples per sub-pixel cell.
	SamplesPerPixel int

	// Side of the regular sub-sample grid.
	SubSamples int

	// Bounce budget for the path loop.
	MaxBounces int

	// Worker pool size; 0 probes the platform.
	NumWorkers int

	// Scheduler work unit edge length.
	TileSize uint32

	// Wall-clock render budget in seconds; 0 applies the default.
	MaxRenderSeconds float64

	// Seconds between preview snapshots; 0 applies the default.
	SnapshotInterval float64

	// Directory snapshot and output names are rooted at.
	OutputDir string

	// Base seed for the per-tile random streams.
	Seed uint32

	// Frame output sink. Optional; a nil writer discards frames.
	FrameWriter FrameWriter
}

// Fill in defaults for unset fields. The worker count is probed from the
// platform and falls back to a single worker.
func (o *Options) applyDefaults() {
	if o.NumWorkers <= 0 {
		o.NumWorkers = runtime.NumCPU()
		if o.NumWorkers < 1 {
			o.NumWorkers = 1
		}
	}
	if o.SamplesPerPixel <= 0 {
		o.SamplesPerPixel = 1
	}
	if o.SubSamples <= 0 {
		o.SubSamples = 1
	}
	if o.TileSize == 0 {
		o.TileSize = 32
	}
	if o.MaxRenderSeconds <= 0 {
		o.MaxRenderSeconds = DefaultMaxRenderSeconds
	}
	if o.SnapshotInterval <= 0 {
		o.SnapshotInterval = DefaultSnapshotInterval
	}
}
