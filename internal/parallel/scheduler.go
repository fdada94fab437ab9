package parallel

// Scheduler runs phases of span tasks on a WorkerPool.
//
// A phase hands each task only its span bounds. Tasks must not retain the
// span or touch indices outside it after returning.
type Scheduler struct {
	pool *WorkerPool
}

// NewScheduler returns a scheduler dispatching to pool.
// A nil pool is valid; every phase then runs in the caller.
func NewScheduler(pool *WorkerPool) *Scheduler {
	return &Scheduler{pool: pool}
}

// RunPhase calls fn once per span and returns after every call has returned.
//
// A single span, a nil pool or a closed pool runs synchronously in the
// calling goroutine. The output is identical either way.
func (s *Scheduler) RunPhase(spans []Span, fn func(Span)) {
	switch {
	case len(spans) == 0:
		return
	case len(spans) == 1 || s.pool == nil || !s.pool.IsRunning():
		for _, sp := range spans {
			fn(sp)
		}
		return
	}

	work := make([]func(), len(spans))
	for i, sp := range spans {
		work[i] = func() { fn(sp) }
	}
	s.pool.ExecuteAll(work)
}
