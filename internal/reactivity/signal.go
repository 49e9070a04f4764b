// Package reactivity implements the three-mode reactivity driver
// (Atomic/Immediate/Retained) and the Signal/Computed reactive containers
// it schedules around, generalizing the teacher's core.Signal[T] and
// CallbackScheduler (pkg/core/signal.go, scheduler.go) to vapor's
// build-diff-apply pass instead of per-component watcher callbacks.
package reactivity

import "sync"

// Signal is a reactive value container: reads register the calling
// Driver pass as a dependent, and writes mark every dependent dirty so the
// driver knows to schedule another pass, mirroring core.Signal[T]'s
// dependency bookkeeping but keyed to passes instead of per-field watcher
// callbacks.
type Signal[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	driver  *Driver
}

// NewSignal creates a Signal holding the given initial value, registered
// against driver so writes can schedule a pass. driver may be nil for
// signals used outside the engine (tests, standalone value holders); such
// signals behave like a plain box with no scheduling side effects.
func NewSignal[T any](driver *Driver, initial T) *Signal[T] {
	return &Signal[T]{value: initial, driver: driver}
}

// Get returns the current value and, if called during a tracked pass,
// registers this signal as a dependency of that pass.
func (s *Signal[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.driver != nil {
		s.driver.track(s)
	}
	return s.value
}

// Peek returns the current value without registering a dependency, for
// reads that should not cause future writes to retrigger the caller.
func (s *Signal[T]) Peek() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Set stores a new value and notifies the driver so dependents are
// scheduled for the next pass. It does not compare v with the current
// value: every Set counts as a write.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	s.version++
	s.mu.Unlock()
	if s.driver != nil {
		s.driver.dirty(s)
	}
}

// Update atomically reads and writes the signal via fn, useful for
// read-modify-write sequences (counters, append-to-slice) that would
// otherwise race between Get and Set under concurrent writers.
func (s *Signal[T]) Update(fn func(T) T) {
	s.mu.Lock()
	s.value = fn(s.value)
	s.version++
	s.mu.Unlock()
	if s.driver != nil {
		s.driver.dirty(s)
	}
}

// signalVersion reports the signal's write generation, used by Computed to
// decide whether a cached result is stale.
func (s *Signal[T]) signalVersion() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}
