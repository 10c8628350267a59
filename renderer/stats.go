package renderer

import "time"

type FrameStats struct {
	// Total render time for the frame.
	RenderTime time.Duration

	// Tiles merged into the target versus tiles scheduled. The counts
	// differ when the wall-clock budget stopped the run early.
	TilesRendered int
	TilesTotal    int

	// Worker pool size used for the frame.
	Workers int

	// Samples discarded for producing non-finite radiance.
	DroppedSamples uint64
}
