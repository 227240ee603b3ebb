package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestLoop_PostRunsInOrder(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var got []int
	for i := 0; i < 10; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}

	// Call drains behind the posted tasks, so got is complete afterwards.
	l.Call(func() {})

	if len(got) != 10 {
		t.Fatalf("Expected 10 tasks to run, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("Tasks ran out of order: %v", got)
		}
	}
}

func TestLoop_HandlersNeverOverlap(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	// A plain int is safe only if no two handlers ever run concurrently;
	// the race detector would flag any overlap.
	counter := 0
	for i := 0; i < 200; i++ {
		l.Post(func() { counter++ })
	}
	l.Call(func() {})

	if counter != 200 {
		t.Errorf("Expected 200 increments, got %d", counter)
	}
}

func TestLoop_CallBlocksUntilExecuted(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	value := 0
	l.Call(func() { value = 42 })
	if value != 42 {
		t.Errorf("Call should have executed synchronously, value=%d", value)
	}
}

func TestLoop_OneShotTimerFires(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var fired atomic.Int32
	l.AddTimer(10*time.Millisecond, 0, func() { fired.Add(1) })

	time.Sleep(100 * time.Millisecond)
	if n := fired.Load(); n != 1 {
		t.Errorf("One-shot timer should fire exactly once, fired %d times", n)
	}
}

func TestLoop_RepeatingTimerFires(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var fired atomic.Int32
	l.AddTimer(10*time.Millisecond, 10*time.Millisecond, func() { fired.Add(1) })

	time.Sleep(150 * time.Millisecond)
	if n := fired.Load(); n < 3 {
		t.Errorf("Repeating timer should keep firing, fired %d times", n)
	}
}

func TestLoop_RemoveTimer(t *testing.T) {
	l := NewLoop()
	l.Start()
	defer l.Stop()

	var fired atomic.Int32
	id := l.AddTimer(50*time.Millisecond, 0, func() { fired.Add(1) })
	l.RemoveTimer(id)

	time.Sleep(100 * time.Millisecond)
	if n := fired.Load(); n != 0 {
		t.Errorf("Removed timer must not fire, fired %d times", n)
	}
}

func TestLoop_StopEndsLoop(t *testing.T) {
	l := NewLoop()
	l.Start()
	l.Stop()

	select {
	case <-l.done:
	case <-time.After(time.Second):
		t.Fatal("Loop goroutine should exit after Stop")
	}
}
