package parallel

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// =============================================================================
// WorkerPool Creation Tests
// =============================================================================

func TestWorkerPool_Create(t *testing.T) {
	pool := NewWorkerPool(8)
	defer pool.Close()

	if pool.Workers() != 8 {
		t.Errorf("Workers() = %d, want 8", pool.Workers())
	}

	if !pool.IsRunning() {
		t.Error("Pool should be running after creation")
	}
}

func TestWorkerPool_CreateNonPositiveWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewWorkerPool(n)
		expected := runtime.GOMAXPROCS(0)
		if pool.Workers() != expected {
			t.Errorf("NewWorkerPool(%d).Workers() = %d, want %d (GOMAXPROCS)", n, pool.Workers(), expected)
		}
		pool.Close()
	}
}

// =============================================================================
// ExecuteAll Tests
// =============================================================================

func TestWorkerPool_ExecuteAll(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numTasks := 100

	work := make([]func(), numTasks)
	for i := range work {
		work[i] = func() {
			counter.Add(1)
		}
	}

	pool.ExecuteAll(work)

	if counter.Load() != int64(numTasks) {
		t.Errorf("counter = %d, want %d", counter.Load(), numTasks)
	}
}

func TestWorkerPool_ExecuteAll_DisjointWrites(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Each task writes its own slot without locking; the barrier publishes them.
	buf := make([]int, 16)
	work := make([]func(), len(buf))
	for i := range work {
		work[i] = func() { buf[i] = i * i }
	}

	pool.ExecuteAll(work)

	for i, v := range buf {
		if v != i*i {
			t.Errorf("buf[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestWorkerPool_ExecuteAll_Empty(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Should not panic or block
	pool.ExecuteAll(nil)
	pool.ExecuteAll([]func(){})
}

func TestWorkerPool_ExecuteAll_Reuse(t *testing.T) {
	pool := NewWorkerPool(3)
	defer pool.Close()

	var counter atomic.Int64
	for range 10 {
		work := make([]func(), 3)
		for i := range work {
			work[i] = func() { counter.Add(1) }
		}
		pool.ExecuteAll(work)
	}

	if counter.Load() != 30 {
		t.Errorf("counter = %d, want 30", counter.Load())
	}
}

// =============================================================================
// Panic Propagation Tests
// =============================================================================

func TestWorkerPool_ExecuteAll_PanicPropagates(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var completed atomic.Int64
	work := make([]func(), 8)
	for i := range work {
		work[i] = func() {
			if i == 3 {
				panic("boom")
			}
			completed.Add(1)
		}
	}

	defer func() {
		v := recover()
		tp, ok := v.(*TaskPanic)
		if !ok {
			t.Fatalf("recovered %T (%v), want *TaskPanic", v, v)
		}
		if tp.Value != "boom" {
			t.Errorf("TaskPanic.Value = %v, want boom", tp.Value)
		}
		if len(tp.Stack) == 0 {
			t.Error("TaskPanic.Stack is empty")
		}
		// The barrier holds even when a task fails.
		if completed.Load() != 7 {
			t.Errorf("completed = %d, want 7", completed.Load())
		}
	}()

	pool.ExecuteAll(work)
	t.Fatal("ExecuteAll should have panicked")
}

func TestWorkerPool_SurvivesTaskPanic(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	func() {
		defer func() { _ = recover() }()
		pool.ExecuteAll([]func(){func() { panic(errors.New("first")) }, func() {}})
	}()

	var executed atomic.Bool
	pool.ExecuteAll([]func(){func() { executed.Store(true) }, func() {}})
	if !executed.Load() {
		t.Error("pool did not execute work after a task panic")
	}
}

// =============================================================================
// Close Tests
// =============================================================================

func TestWorkerPool_Close(t *testing.T) {
	pool := NewWorkerPool(4)

	if !pool.IsRunning() {
		t.Error("Pool should be running before close")
	}

	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_CloseIdempotent(t *testing.T) {
	pool := NewWorkerPool(4)

	// Multiple closes should not panic
	pool.Close()
	pool.Close()
	pool.Close()

	if pool.IsRunning() {
		t.Error("Pool should not be running after close")
	}
}

func TestWorkerPool_ExecuteAllAfterClose(t *testing.T) {
	pool := NewWorkerPool(4)
	pool.Close()

	var counter atomic.Int64
	pool.ExecuteAll([]func(){
		func() { counter.Add(1) },
		func() { counter.Add(1) },
	})

	// A closed pool degrades to synchronous execution.
	if counter.Load() != 2 {
		t.Errorf("counter = %d, want 2", counter.Load())
	}
}

// =============================================================================
// Concurrency Tests
// =============================================================================

func TestWorkerPool_Concurrent(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var counter atomic.Int64
	numGoroutines := 10
	numTasksPerGoroutine := 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()

			work := make([]func(), numTasksPerGoroutine)
			for i := range work {
				work[i] = func() {
					counter.Add(1)
				}
			}

			pool.ExecuteAll(work)
		}()
	}

	wg.Wait()

	expected := int64(numGoroutines * numTasksPerGoroutine)
	if counter.Load() != expected {
		t.Errorf("counter = %d, want %d", counter.Load(), expected)
	}
}

func TestWorkerPool_WorkStealing(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	// Uneven spans: some iterate to the cap, most escape early.
	var fastCount, slowCount atomic.Int64

	work := make([]func(), 100)
	for i := range work {
		if i%10 == 0 {
			work[i] = func() {
				time.Sleep(10 * time.Millisecond)
				slowCount.Add(1)
			}
		} else {
			work[i] = func() {
				fastCount.Add(1)
			}
		}
	}

	start := time.Now()
	pool.ExecuteAll(work)
	elapsed := time.Since(start)

	if slowCount.Load() != 10 {
		t.Errorf("slowCount = %d, want 10", slowCount.Load())
	}
	if fastCount.Load() != 90 {
		t.Errorf("fastCount = %d, want 90", fastCount.Load())
	}

	t.Logf("Elapsed time: %v", elapsed)
}

func TestWorkerPool_NoGoroutineLeak(t *testing.T) {
	runtime.GC()
	time.Sleep(50 * time.Millisecond)
	baseline := runtime.NumGoroutine()

	for range 5 {
		pool := NewWorkerPool(4)

		work := make([]func(), 100)
		for j := range work {
			work[j] = func() {}
		}
		pool.ExecuteAll(work)

		pool.Close()
	}

	runtime.GC()
	time.Sleep(100 * time.Millisecond)

	final := runtime.NumGoroutine()

	// Allow for some variance (test framework goroutines, etc.)
	if final > baseline+2 {
		t.Errorf("goroutine count: baseline=%d, final=%d (leak detected)", baseline, final)
	}
}

// =============================================================================
// Edge Case Tests
// =============================================================================

func TestWorkerPool_SingleWorker(t *testing.T) {
	pool := NewWorkerPool(1)
	defer pool.Close()

	var counter atomic.Int64
	work := make([]func(), 20)
	for i := range work {
		work[i] = func() { counter.Add(1) }
	}

	pool.ExecuteAll(work)

	if counter.Load() != 20 {
		t.Errorf("counter = %d, want 20", counter.Load())
	}
}

func TestWorkerPool_CloseDuringExecuteAll(t *testing.T) {
	// Close races with dispatch. ExecuteAll must still run every task and
	// return, whichever side wins.
	const rounds = 200
	const tasks = 64

	for round := range rounds {
		pool := NewWorkerPool(4)

		var ran atomic.Int64
		work := make([]func(), tasks)
		for i := range work {
			work[i] = func() { ran.Add(1) }
		}

		done := make(chan struct{})
		go func() {
			defer close(done)
			pool.ExecuteAll(work)
		}()
		go pool.Close()

		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Fatalf("round %d: ExecuteAll did not return after concurrent Close", round)
		}
		if got := ran.Load(); got != tasks {
			t.Fatalf("round %d: ran %d tasks, want %d", round, got, tasks)
		}
		pool.Close()
	}
}

// =============================================================================
// Benchmarks
// =============================================================================

func BenchmarkWorkerPool_ExecuteAll_8(b *testing.B) {
	pool := NewWorkerPool(8)
	defer pool.Close()

	work := make([]func(), 8)
	for i := range work {
		work[i] = func() {}
	}

	b.ReportAllocs()
	for b.Loop() {
		pool.ExecuteAll(work)
	}
}

func BenchmarkWorkerPool_vs_Goroutines(b *testing.B) {
	const tasks = 8

	b.Run("Pool", func(b *testing.B) {
		pool := NewWorkerPool(tasks)
		defer pool.Close()

		work := make([]func(), tasks)
		for i := range work {
			work[i] = func() {}
		}
		for b.Loop() {
			pool.ExecuteAll(work)
		}
	})

	b.Run("Goroutines", func(b *testing.B) {
		for b.Loop() {
			var wg sync.WaitGroup
			wg.Add(tasks)
			for range tasks {
				go wg.Done()
			}
			wg.Wait()
		}
	})
}
