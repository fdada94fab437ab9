// Package parallel provides the partitioned two-phase execution used by the
// mandel renderer.
//
// A flat index space [0, total) is split into contiguous, non-overlapping
// spans, one per task. Each task owns its span for the duration of a phase
// and writes only inside it, so phase buffers need no per-element locking.
// A phase ends at the barrier in WorkerPool.ExecuteAll.
package parallel

import "fmt"

// GapPolicy selects what happens to the trailing total%parts indices that
// truncating division leaves outside every span.
type GapPolicy uint8

const (
	// GapTruncate leaves [parts*(total/parts), total) unprocessed.
	// Known gap: those indices are never written by any span.
	GapTruncate GapPolicy = iota

	// GapFillLast extends the last span to total so every index is covered.
	GapFillLast
)

// String returns the policy name.
func (g GapPolicy) String() string {
	switch g {
	case GapTruncate:
		return "truncate"
	case GapFillLast:
		return "fill-last"
	default:
		return fmt.Sprintf("GapPolicy(%d)", uint8(g))
	}
}

// Span is a half-open range [Begin, End) of flat buffer indices.
type Span struct {
	Begin int
	End   int
}

// Len returns the number of indices in the span.
func (s Span) Len() int {
	return s.End - s.Begin
}

// String implements fmt.Stringer.
func (s Span) String() string {
	return fmt.Sprintf("[%d, %d)", s.Begin, s.End)
}

// JobSize returns the truncated per-span size total/parts.
func JobSize(total, parts int) int {
	if parts <= 0 {
		return 0
	}
	return total / parts
}

// Dropped returns how many trailing indices GapTruncate leaves unprocessed.
// A single span always covers everything.
func Dropped(total, parts int) int {
	if parts <= 1 {
		return 0
	}
	return total - parts*JobSize(total, parts)
}

// Partition splits [0, total) into parts spans of JobSize(total, parts)
// indices each, span i being [i*job, (i+1)*job).
//
// With parts == 1 the single span is [0, total) regardless of policy.
// Otherwise, under GapTruncate the indices [parts*job, total) belong to no
// span; under GapFillLast the last span ends at total.
//
// Partition returns nil if total or parts is not positive.
func Partition(total, parts int, policy GapPolicy) []Span {
	if total <= 0 || parts <= 0 {
		return nil
	}
	if parts == 1 {
		return []Span{{Begin: 0, End: total}}
	}

	job := JobSize(total, parts)
	spans := make([]Span, parts)
	for i := range spans {
		spans[i] = Span{Begin: i * job, End: (i + 1) * job}
	}
	if policy == GapFillLast {
		spans[parts-1].End = total
	}
	return spans
}
