package mandel

import "github.com/gogpu/mandel/internal/parallel"

// GapPolicy selects how the trailing Size*Size % Workers pixels are handled
// when the pixel count does not divide evenly into partitions.
type GapPolicy = parallel.GapPolicy

const (
	// GapTruncate leaves the trailing pixels unprocessed (scalar 0, color 0).
	// The render logs a warning and reports the count in Result.Dropped.
	GapTruncate = parallel.GapTruncate

	// GapFillLast assigns the trailing pixels to the last partition.
	GapFillLast = parallel.GapFillLast
)

// Option configures a Renderer during creation.
// Use functional options to customize Renderer behavior.
//
// Example:
//
//	// Default: temporary pool per render, GapTruncate
//	r := mandel.NewRenderer()
//
//	// Shared pool, every pixel rendered
//	pool := mandel.NewPool(8)
//	defer pool.Close()
//	r := mandel.NewRenderer(mandel.WithPool(pool), mandel.WithGapPolicy(mandel.GapFillLast))
type Option func(*rendererOptions)

// rendererOptions holds optional configuration for Renderer creation.
type rendererOptions struct {
	pool      *Pool
	gap       GapPolicy
	palette   Palette
	stateHook func(State)
}

// defaultOptions returns the default renderer options.
func defaultOptions() rendererOptions {
	return rendererOptions{
		pool:    nil, // a temporary pool is created per render
		gap:     GapTruncate,
		palette: DefaultPalette,
	}
}

// WithPool makes the Renderer dispatch phases to a shared pool instead of
// creating one per render. The caller owns the pool and must close it.
func WithPool(p *Pool) Option {
	return func(o *rendererOptions) {
		o.pool = p
	}
}

// WithGapPolicy sets how pixels beyond the last full partition are handled.
func WithGapPolicy(g GapPolicy) Option {
	return func(o *rendererOptions) {
		o.gap = g
	}
}

// WithPalette replaces DefaultPalette. The palette is copied.
func WithPalette(p Palette) Option {
	return func(o *rendererOptions) {
		o.palette = p
	}
}

// WithStateHook registers fn to be called synchronously on every state
// transition, from the goroutine calling Render.
func WithStateHook(fn func(State)) Option {
	return func(o *rendererOptions) {
		o.stateHook = fn
	}
}
