package reactivity

import "testing"

func TestAtomicModeCoalescesWritesWithinOnePass(t *testing.T) {
	passes := 0
	d := New(ModeAtomic, func() { passes++ })

	sig := NewSignal(d, 0)

	// Simulate an event handler writing the same signal multiple times
	// before the driver gets a chance to run a pass: a naive per-write
	// scheduler would run three passes; atomic coalescing must run one.
	d.running = true // emulate "a pass is already scheduled/in flight"
	sig.Set(1)
	sig.Set(2)
	sig.Set(3)
	d.running = false
	d.RunPass()

	if passes != 1 {
		t.Fatalf("expected exactly one pass after coalesced writes, got %d", passes)
	}
}

func TestRetainedModeDoesNotAutoSchedule(t *testing.T) {
	passes := 0
	d := New(ModeRetained, func() { passes++ })
	sig := NewSignal(d, 0)

	sig.Set(1)
	sig.Set(2)

	if passes != 0 {
		t.Fatalf("expected no automatic passes in retained mode, got %d", passes)
	}

	d.RequestPass()
	if passes != 1 {
		t.Fatalf("expected exactly one pass after explicit request, got %d", passes)
	}
}

func TestImmediateModeSchedulesOnEveryWriteWithoutBoundProgram(t *testing.T) {
	passes := 0
	d := New(ModeImmediate, func() { passes++ })
	sig := NewSignal(d, 0)

	sig.Set(1)
	sig.Set(2)

	if passes != 2 {
		t.Fatalf("expected one pass per write in immediate mode, got %d", passes)
	}
}

func TestRunPassReRunsIfWriteArrivesDuringPass(t *testing.T) {
	d := New(ModeAtomic, nil)
	var sig *Signal[int]
	passes := 0
	d.onPass = func() {
		passes++
		if passes == 1 {
			sig.Set(99) // write during the pass must trigger exactly one more pass
		}
	}
	sig = NewSignal(d, 0)

	d.RunPass()

	if passes != 2 {
		t.Fatalf("expected a re-run pass after a write during the first pass, got %d passes", passes)
	}
}

func TestComputedCachesUntilDependencyChanges(t *testing.T) {
	d := New(ModeRetained, nil)
	sig := NewSignal(d, 2)
	calls := 0
	c := NewComputed(d, func() int {
		calls++
		return sig.Get() * 10
	})

	if got := c.Get(); got != 20 {
		t.Fatalf("expected 20, got %d", got)
	}
	if got := c.Get(); got != 20 || calls != 1 {
		t.Fatalf("expected cached result without recompute, got %d with %d calls", got, calls)
	}

	sig.Set(3)
	if got := c.Get(); got != 30 || calls != 2 {
		t.Fatalf("expected recompute to 30 after dependency write, got %d with %d calls", got, calls)
	}
}

func TestSignalPeekDoesNotTrackDependency(t *testing.T) {
	d := New(ModeRetained, nil)
	sig := NewSignal(d, 5)
	calls := 0
	c := NewComputed(d, func() int {
		calls++
		return sig.Peek() + 1 // Peek must not register sig as a dependency
	})

	c.Get()
	sig.Set(100) // must not invalidate the cache, since Peek didn't track
	got := c.Get()

	if calls != 1 {
		t.Fatalf("expected Peek-based computed to never recompute, got %d calls", calls)
	}
	if got != 6 {
		t.Fatalf("expected cached value 6, got %d", got)
	}
}
