package mandel

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidParams is returned when render parameters are out of range.
var ErrInvalidParams = errors.New("mandel: invalid parameters")

// Default render parameters.
const (
	// DefaultSize is the default grid side in pixels.
	DefaultSize = 1000

	// DefaultDepth is the default iteration cap.
	DefaultDepth = 200

	// DefaultEscape2 is the default squared escape radius.
	DefaultEscape2 = 400.0

	// DefaultWorkers is the default number of partitions and pool workers.
	DefaultWorkers = 8
)

// Params describes one render.
type Params struct {
	// Size is the grid side N; the image is Size×Size pixels.
	Size int

	// Depth is the iteration cap. Points that survive Depth+1 iterations
	// are treated as inside the set.
	Depth int

	// Escape2 is the squared escape radius.
	Escape2 float64

	// Workers is the number of partitions per phase.
	Workers int
}

// DefaultParams returns the canonical 1000×1000, depth 200, radius 20,
// eight-worker configuration.
func DefaultParams() Params {
	return Params{
		Size:    DefaultSize,
		Depth:   DefaultDepth,
		Escape2: DefaultEscape2,
		Workers: DefaultWorkers,
	}
}

// Total returns the number of pixels, Size*Size.
func (p Params) Total() int {
	return p.Size * p.Size
}

// Validate reports whether p can be rendered.
// The returned error wraps ErrInvalidParams.
func (p Params) Validate() error {
	switch {
	case p.Size <= 0:
		return fmt.Errorf("%w: size=%d (must be > 0)", ErrInvalidParams, p.Size)
	case p.Depth < 0:
		return fmt.Errorf("%w: depth=%d (must be >= 0)", ErrInvalidParams, p.Depth)
	case !(p.Escape2 > 0) || math.IsInf(p.Escape2, 1):
		return fmt.Errorf("%w: escape2=%v (must be finite and > 0)", ErrInvalidParams, p.Escape2)
	case p.Workers < 1:
		return fmt.Errorf("%w: workers=%d (must be >= 1)", ErrInvalidParams, p.Workers)
	}
	return nil
}
