package renderer

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/shadercoder/Salty/log"
	"github.com/shadercoder/Salty/scene"
	"github.com/shadercoder/Salty/tracer"
)

// Watcher poll period.
const watcherPollInterval = 100 * time.Millisecond

// A single-frame Monte Carlo renderer: it owns the render target, the
// tile scheduler and the watcher goroutine that produces periodic
// snapshots and enforces the wall-clock budget.
type Monte struct {
	logger log.Logger

	opts      Options
	sc        *scene.Scene
	target    *tracer.RenderTarget
	scheduler *tracer.Scheduler

	// Shutdown coordination between the render and watcher goroutines.
	mu          sync.Mutex
	finished    bool
	watcherDone bool

	stats FrameStats
}

// Create a renderer for a compiled scene. Configuration and scene
// problems surface here so a broken setup never spawns workers.
func New(sc *scene.Scene, opts Options) (*Monte, error) {
	opts.applyDefaults()

	if opts.FrameW == 0 || opts.FrameH == 0 {
		return nil, fmt.Errorf("%w: frame dimensions %dx%d", ErrInvalidConfig, opts.FrameW, opts.FrameH)
	}
	if sc == nil {
		return nil, ErrSceneNotDefined
	}
	if sc.PrimitiveCount() == 0 {
		return nil, ErrEmptyScene
	}
	if sc.Camera == nil {
		return nil, fmt.Errorf("%w: scene defines no camera", ErrInvalidConfig)
	}

	target, err := tracer.NewRenderTarget(opts.FrameW, opts.FrameH)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFrameAllocation, err)
	}

	sc.Camera.Update(opts.FrameW, opts.FrameH)

	r := &Monte{
		logger: log.New("renderer"),
		opts:   opts,
		sc:     sc,
		target: target,
	}
	r.scheduler = tracer.NewScheduler(sc, target, tracer.SchedulerConfig{
		SamplesPerPixel: opts.SamplesPerPixel,
		SubSamples:      opts.SubSamples,
		MaxBounce:       opts.MaxBounces,
		NumWorkers:      opts.NumWorkers,
		TileSize:        opts.TileSize,
		Seed:            opts.Seed,
	})

	return r, nil
}

// Render the frame. Blocks until the scheduler drains or the wall-clock
// budget cuts the run short, then emits the final frame through the
// configured writer.
func (r *Monte) Render() error {
	r.logger.Noticef(
		"rendering %dx%d frame: %d spp x %dx%d sub-samples, %d bounces, %d workers",
		r.opts.FrameW, r.opts.FrameH,
		r.opts.SamplesPerPixel, r.opts.SubSamples, r.opts.SubSamples,
		r.opts.MaxBounces, r.opts.NumWorkers,
	)

	start := time.Now()
	go r.watch(start)

	r.scheduler.Run()

	r.mu.Lock()
	r.finished = true
	r.mu.Unlock()

	// Wait for the watcher to notice and retire.
	for !r.watcherIsDone() {
		time.Sleep(watcherPollInterval / 10)
	}

	r.stats = FrameStats{
		RenderTime:     time.Since(start),
		TilesRendered:  int(r.scheduler.TilesCompleted()),
		TilesTotal:     r.scheduler.TileCount(),
		Workers:        r.opts.NumWorkers,
		DroppedSamples: r.scheduler.DroppedSamples(),
	}

	r.writeFrame("output_" + time.Now().Format("20060102_150405"))
	return nil
}

// Get render statistics for the completed frame.
func (r *Monte) Stats() FrameStats {
	return r.stats
}

// Get the render target.
func (r *Monte) Target() *tracer.RenderTarget {
	return r.target
}

func (r *Monte) renderIsFinished() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finished
}

func (r *Monte) watcherIsDone() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.watcherDone
}

// Watch the render: emit a preview snapshot on the configured interval
// and request a stop when the wall-clock budget runs out. Snapshot reads
// are non-blocking and may observe partially rendered tiles.
func (r *Monte) watch(start time.Time) {
	lastSnapshot := start
	budget := time.Duration(r.opts.MaxRenderSeconds * float64(time.Second))
	interval := time.Duration(r.opts.SnapshotInterval * float64(time.Second))
	budgetSpent := false

	for {
		if r.renderIsFinished() {
			break
		}

		now := time.Now()
		if now.Sub(lastSnapshot) >= interval {
			r.writeFrame("frame_" + now.Format("20060102_150405"))
			lastSnapshot = now
		}

		if !budgetSpent && now.Sub(start) >= budget {
			r.logger.Warningf("render budget of %.1f s spent, stopping workers", r.opts.MaxRenderSeconds)
			r.scheduler.RequestStop()
			budgetSpent = true
		}

		time.Sleep(watcherPollInterval)
	}

	r.mu.Lock()
	r.watcherDone = true
	r.mu.Unlock()
}

// Resolve the target and hand it to the frame writer. Write failures are
// logged but never abort the render.
func (r *Monte) writeFrame(name string) {
	if r.opts.FrameWriter == nil {
		return
	}

	path := name
	if r.opts.OutputDir != "" {
		path = filepath.Join(r.opts.OutputDir, name)
	}

	if err := r.opts.FrameWriter(path, r.target.Width, r.target.Height, r.target.Resolve()); err != nil {
		r.logger.Warningf("could not write frame %s: %s", path, err)
		return
	}
	r.logger.Infof("wrote frame %s", path)
}
