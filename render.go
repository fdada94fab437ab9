package mandel

import (
	"time"

	"github.com/gogpu/mandel/internal/parallel"
)

// Pool is a fixed set of worker goroutines shared by renders.
//
// Create one at startup, pass it to renderers with WithPool, and Close it at
// exit. A Pool is safe for concurrent use by several renders.
type Pool struct {
	wp *parallel.WorkerPool
}

// NewPool starts a pool of workers goroutines.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	return &Pool{wp: parallel.NewWorkerPool(workers)}
}

// Workers returns the number of workers in the pool.
func (p *Pool) Workers() int {
	return p.wp.Workers()
}

// Close waits for queued work and stops the workers.
// Close is safe to call multiple times.
func (p *Pool) Close() {
	p.wp.Close()
}

// Result is a finished render.
type Result struct {
	// Params are the parameters the render ran with.
	Params Params

	// Scalars holds the smooth escape value per pixel, row-major.
	Scalars []float64

	// Pixels holds the packed 0xAARRGGBB color per pixel, row-major.
	Pixels []uint32

	// Range is the normalization range computed from Scalars.
	Range Range

	// Elapsed is the wall-clock time of both phases and the reduction.
	Elapsed time.Duration

	// Dropped is the number of trailing pixels left unprocessed by
	// GapTruncate. Zero under GapFillLast or when partitions divide evenly.
	Dropped int
}

// ElapsedMilliseconds returns Elapsed in fractional milliseconds.
func (r *Result) ElapsedMilliseconds() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// Image returns an image.Image view over Pixels.
func (r *Result) Image() *Image {
	return NewImage(r.Params.Size, r.Params.Size, r.Pixels)
}

// Renderer runs the two-phase pipeline: smooth escape values over all
// partitions, a global min/max reduction, then the color ramp over all
// partitions. Each step starts only after the previous one has fully
// completed.
//
// A Renderer holds only immutable configuration and may be used by several
// goroutines at once.
type Renderer struct {
	opts rendererOptions
}

// NewRenderer creates a Renderer.
func NewRenderer(opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Renderer{opts: o}
}

// Render computes the image described by p.
//
// Render blocks until the color buffer is complete. There is no cancellation
// and no partial result: a panic in a worker is re-raised here as a
// *parallel.TaskPanic.
func (r *Renderer) Render(p Params) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	total := p.Total()
	res := &Result{
		Params:  p,
		Scalars: make([]float64, total),
		Pixels:  make([]uint32, total),
	}
	r.transition(StateCreated)

	var wp *parallel.WorkerPool
	switch {
	case p.Workers == 1:
		// single partition runs in the caller
	case r.opts.pool != nil:
		wp = r.opts.pool.wp
	default:
		tmp := parallel.NewWorkerPool(p.Workers)
		defer tmp.Close()
		wp = tmp
	}
	sched := parallel.NewScheduler(wp)

	spans := parallel.Partition(total, p.Workers, r.opts.gap)
	if r.opts.gap == GapTruncate {
		res.Dropped = parallel.Dropped(total, p.Workers)
	}
	logger := Logger()
	if res.Dropped > 0 {
		logger.Warn("mandel: partition leaves trailing pixels unprocessed",
			"size", p.Size, "workers", p.Workers, "dropped", res.Dropped)
	}
	logger.Debug("mandel: render start",
		"size", p.Size, "depth", p.Depth, "escape2", p.Escape2,
		"workers", p.Workers, "job", parallel.JobSize(total, p.Workers), "gap", r.opts.gap)

	start := time.Now()

	r.transition(StateComputingScalars)
	scalars := res.Scalars
	sched.RunPhase(spans, func(sp parallel.Span) {
		for idx := sp.Begin; idx < sp.End; idx++ {
			scalars[idx] = SmoothEscape(idx, p)
		}
	})
	logger.Debug("mandel: scalars done", "elapsed", time.Since(start))

	r.transition(StateReducing)
	rng := Reduce(scalars)
	res.Range = rng
	logger.Debug("mandel: range", "min", rng.Min, "max", rng.Max, "degenerate", rng.Degenerate())

	r.transition(StateComputingColors)
	pal := r.opts.palette
	pixels := res.Pixels
	sched.RunPhase(spans, func(sp parallel.Span) {
		for idx := sp.Begin; idx < sp.End; idx++ {
			pixels[idx] = MapToARGB(scalars[idx], rng, &pal)
		}
	})

	res.Elapsed = time.Since(start)
	r.transition(StateDone)
	logger.Debug("mandel: render done", "elapsed", res.Elapsed)

	return res, nil
}

func (r *Renderer) transition(s State) {
	if r.opts.stateHook != nil {
		r.opts.stateHook(s)
	}
}

// Render computes the image described by p with a temporary pool of
// p.Workers goroutines and GapTruncate. It is the
// one-shot form of NewRenderer().Render(p).
func Render(p Params) (*Result, error) {
	return NewRenderer().Render(p)
}
