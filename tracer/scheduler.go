package tracer

import (
	"sync"
	"sync/atomic"

	"github.com/shadercoder/Salty/log"
	"github.com/shadercoder/Salty/scene"
	"github.com/shadercoder/Salty/types"
)

// Default edge length for scheduler work units.
const DefaultTileSize = 32

// A rectangular image region owned by a single worker while it renders.
// Bounds are half-open in buffer coordinates.
type Tile struct {
	X0, Y0 uint32
	X1, Y1 uint32
}

// Partition a frame into tiles in row-major order. Edge tiles shrink to
// fit; every pixel belongs to exactly one tile.
func SplitTiles(width, height, tileSize uint32) []Tile {
	if tileSize == 0 {
		tileSize = DefaultTileSize
	}

	var tiles []Tile
	for y := uint32(0); y < height; y += tileSize {
		y1 := y + tileSize
		if y1 > height {
			y1 = height
		}
		for x := uint32(0); x < width; x += tileSize {
			x1 := x + tileSize
			if x1 > width {
				x1 = width
			}
			tiles = append(tiles, Tile{X0: x, Y0: y, X1: x1, Y1: y1})
		}
	}
	return tiles
}

// Scheduler parameters, fixed for the lifetime of a run.
type SchedulerConfig struct {
	SamplesPerPixel int

	// Side of the regular sub-sample grid per pixel.
	SubSamples int

	MaxBounce  int
	NumWorkers int
	TileSize   uint32
	Seed       uint32
}

// Dispatches pixel tiles to a pool of workers. A shared job index is
// advanced atomically as workers claim the next tile; workers block only
// on that claim. The scene is immutable and read concurrently without
// synchronization.
type Scheduler struct {
	logger log.Logger

	sc     *scene.Scene
	target *RenderTarget
	config SchedulerConfig
	tiles  []Tile

	jobIndex       uint32
	stopRequested  uint32
	tilesCompleted uint32
	droppedSamples uint64
}

// Create a scheduler for a compiled scene and target.
func NewScheduler(sc *scene.Scene, target *RenderTarget, config SchedulerConfig) *Scheduler {
	if config.SubSamples < 1 {
		config.SubSamples = 1
	}
	if config.SamplesPerPixel < 1 {
		config.SamplesPerPixel = 1
	}
	if config.NumWorkers < 1 {
		config.NumWorkers = 1
	}

	return &Scheduler{
		logger: log.New("scheduler"),
		sc:     sc,
		target: target,
		config: config,
		tiles:  SplitTiles(target.Width, target.Height, config.TileSize),
	}
}

// Request an early stop. Workers notice at the next tile boundary.
func (s *Scheduler) RequestStop() {
	atomic.StoreUint32(&s.stopRequested, 1)
}

func (s *Scheduler) stopped() bool {
	return atomic.LoadUint32(&s.stopRequested) == 1
}

// Get the number of tiles merged into the target so far.
func (s *Scheduler) TilesCompleted() uint32 {
	return atomic.LoadUint32(&s.tilesCompleted)
}

// Get the total tile count.
func (s *Scheduler) TileCount() int {
	return len(s.tiles)
}

// Get the number of samples discarded for producing non-finite
// radiance.
func (s *Scheduler) DroppedSamples() uint64 {
	return atomic.LoadUint64(&s.droppedSamples)
}

// Render all tiles, blocking until the frame completes or a stop is
// requested.
func (s *Scheduler) Run() {
	var wg sync.WaitGroup
	for i := 0; i < s.config.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.workerLoop()
		}()
	}
	wg.Wait()

	s.logger.Infof(
		"rendered %d/%d tiles with %d workers",
		s.TilesCompleted(), len(s.tiles), s.config.NumWorkers,
	)
	if dropped := s.DroppedSamples(); dropped > 0 {
		s.logger.Warningf("discarded %d non-finite samples", dropped)
	}
}

// Claim and render tiles until the queue drains or a stop is requested.
func (s *Scheduler) workerLoop() {
	integrator := NewIntegrator(s.sc, s.config.MaxBounce)

	for !s.stopped() {
		tileIndex := atomic.AddUint32(&s.jobIndex, 1) - 1
		if tileIndex >= uint32(len(s.tiles)) {
			return
		}

		s.renderTile(s.tiles[tileIndex], tileIndex, integrator)
		atomic.AddUint32(&s.tilesCompleted, 1)
	}
}

// Render one tile into a local accumulation buffer and merge it into
// the shared target. The per-tile random stream is seeded from the tile
// index so the frame is reproducible regardless of which worker rendered
// which tile.
func (s *Scheduler) renderTile(tile Tile, tileIndex uint32, integrator Integrator) {
	tileW := tile.X1 - tile.X0
	tileH := tile.Y1 - tile.Y0
	accum := make([]types.Vec3, tileW*tileH)
	samples := make([]uint32, tileW*tileH)

	rng := NewRandom(s.config.Seed ^ (tileIndex+1)*0x9e3779b9)

	subSamples := s.config.SubSamples
	rate := 1.0 / float32(subSamples)
	invW := 1.0 / float32(s.target.Width)
	invH := 1.0 / float32(s.target.Height)

	camera := s.sc.Camera
	var dropped uint64

	// Deterministic scan order within the tile.
	for y := tile.Y0; y < tile.Y1; y++ {
		for x := tile.X0; x < tile.X1; x++ {
			idx := (y-tile.Y0)*tileW + (x - tile.X0)

			sampleIndex := 0
			for sy := 0; sy < subSamples; sy++ {
				for sx := 0; sx < subSamples; sx++ {
					for n := 0; n < s.config.SamplesPerPixel; n++ {
						jx, jy := sampleJitter(sampleIndex)
						sampleIndex++

						// Cell-center offset within the sub-sample
						// grid plus the per-index jitter.
						px := (float32(x) + (float32(sx)+0.5+jx)*rate) * invW
						py := (float32(y) + (float32(sy)+0.5+jy)*rate) * invH

						ray := camera.PrimaryRay(px, py)
						radiance := integrator.Radiance(ray, rng)
						if !radiance.IsFinite() {
							dropped++
							continue
						}

						accum[idx] = accum[idx].Add(radiance)
						samples[idx]++
					}
				}
			}
		}
	}

	s.target.MergeTile(tile, accum, samples)
	if dropped > 0 {
		atomic.AddUint64(&s.droppedSamples, dropped)
	}
}

// A small deterministic jitter derived from the sample index via the R2
// low-discrepancy sequence, centered on zero so stratification is
// preserved.
func sampleJitter(index int) (jx, jy float32) {
	const (
		alpha1 = 0.7548776662
		alpha2 = 0.5698402909
	)

	f1 := float32(index) * alpha1
	f2 := float32(index) * alpha2
	jx = (f1 - float32(int(f1))) - 0.5
	jy = (f2 - float32(int(f2))) - 0.5
	return jx * 0.5, jy * 0.5
}
