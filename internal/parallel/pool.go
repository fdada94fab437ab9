package parallel

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"
)

// TaskPanic is raised by ExecuteAll in the calling goroutine when a task
// panicked on a worker. Only the first panic of a phase is kept.
type TaskPanic struct {
	// Value is the value passed to panic by the task.
	Value any

	// Stack is the worker's stack at the time of the panic.
	Stack []byte
}

func (p *TaskPanic) Error() string {
	return fmt.Sprintf("parallel: task panicked: %v\n%s", p.Value, p.Stack)
}

// WorkerPool is a fixed pool of goroutines that executes phases of
// independent span tasks.
//
// Each worker owns a queue. Workers steal from other queues when their own
// is empty, which keeps all workers busy when spans take uneven time (spans
// crossing the set boundary iterate to the cap, others escape early).
//
// Thread safety: WorkerPool is safe for concurrent use.
type WorkerPool struct {
	// workers is the number of worker goroutines.
	workers int

	// workQueues holds per-worker work queues.
	workQueues []chan func()

	// done signals workers to stop.
	done chan struct{}

	// wg waits for all workers to finish.
	wg sync.WaitGroup

	// running indicates whether the pool is accepting work.
	running atomic.Bool

	// mu is held shared while ExecuteAll enqueues and exclusively while
	// Close flips running and closes done. No task is enqueued after done
	// is closed, so every queued task is drained by its owning worker.
	mu sync.RWMutex
}

// NewWorkerPool creates a new worker pool with the specified number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
// The pool starts immediately and workers begin waiting for work.
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	queueSize := workers * 4
	if queueSize < 8 {
		queueSize = 8
	}

	p := &WorkerPool{
		workers:    workers,
		workQueues: make([]chan func(), workers),
		done:       make(chan struct{}),
	}

	for i := range workers {
		p.workQueues[i] = make(chan func(), queueSize)
	}

	p.running.Store(true)

	p.wg.Add(workers)
	for i := range workers {
		go p.worker(i)
	}

	return p
}

// worker is the main loop for each worker goroutine.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	myQueue := p.workQueues[id]

	for {
		select {
		case <-p.done:
			p.drainQueue(myQueue)
			return

		case work := <-myQueue:
			if work != nil {
				work()
			}

		default:
			if stolen := p.steal(id); stolen != nil {
				stolen()
				continue
			}
			// Nothing anywhere, block on own queue.
			select {
			case <-p.done:
				p.drainQueue(myQueue)
				return
			case work := <-myQueue:
				if work != nil {
					work()
				}
			}
		}
	}
}

// drainQueue executes all remaining work in a queue.
func (p *WorkerPool) drainQueue(queue chan func()) {
	for {
		select {
		case work := <-queue:
			if work != nil {
				work()
			}
		default:
			return
		}
	}
}

// steal attempts to take work from another worker's queue.
// Returns nil if no work is available.
func (p *WorkerPool) steal(myID int) func() {
	for i := range p.workers {
		if i == myID {
			continue
		}

		select {
		case work := <-p.workQueues[i]:
			return work
		default:
		}
	}
	return nil
}

// ExecuteAll distributes work across workers and waits for all of it to
// complete. It is the phase barrier: when ExecuteAll returns, every task has
// returned and its writes are visible to the caller.
//
// If a task panics, the remaining tasks still run to completion and the first
// panic is re-raised in the caller as a *TaskPanic. There is no partial result.
//
// If the pool is closed, the work runs synchronously in the caller. A Close
// racing with ExecuteAll waits until all of the work is queued.
func (p *WorkerPool) ExecuteAll(work []func()) {
	if len(work) == 0 {
		return
	}

	p.mu.RLock()
	if !p.running.Load() {
		p.mu.RUnlock()
		for _, fn := range work {
			fn()
		}
		return
	}

	var (
		completionWG sync.WaitGroup
		failure      atomic.Pointer[TaskPanic]
	)
	completionWG.Add(len(work))

	for i, fn := range work {
		workFn := fn
		wrapped := func() {
			defer completionWG.Done()
			defer func() {
				if v := recover(); v != nil {
					failure.CompareAndSwap(nil, &TaskPanic{Value: v, Stack: debug.Stack()})
				}
			}()
			workFn()
		}

		p.workQueues[i%p.workers] <- wrapped
	}
	p.mu.RUnlock()

	completionWG.Wait()

	if tp := failure.Load(); tp != nil {
		panic(tp)
	}
}

// Close gracefully shuts down the pool.
// It stops accepting new work, waits for all queued work to complete,
// and then stops all workers.
// Close is safe to call multiple times.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.mu.Unlock()
		return
	}
	close(p.done)
	p.mu.Unlock()

	p.wg.Wait()
}

// Workers returns the number of workers in the pool.
func (p *WorkerPool) Workers() int {
	return p.workers
}

// IsRunning returns true if the pool is still accepting work.
func (p *WorkerPool) IsRunning() bool {
	return p.running.Load()
}
