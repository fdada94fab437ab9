package mandel

import "fmt"

// State is a stage of the render pipeline. A render moves through the
// states in declaration order and never goes back.
type State uint8

const (
	// StateCreated: buffers allocated, nothing computed.
	StateCreated State = iota

	// StateComputingScalars: phase 1, smooth escape values per span.
	StateComputingScalars

	// StateReducing: single-threaded min/max scan of the full scalar buffer.
	StateReducing

	// StateComputingColors: phase 2, color ramp per span with a fixed range.
	StateComputingColors

	// StateDone: color buffer and elapsed time are final.
	StateDone
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateCreated:
		return "created"
	case StateComputingScalars:
		return "computing-scalars"
	case StateReducing:
		return "reducing"
	case StateComputingColors:
		return "computing-colors"
	case StateDone:
		return "done"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}
