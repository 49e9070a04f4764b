// Package arena implements the bump-allocator abstraction Vapor uses to
// scope UI data to frame, view, persist, and scratch lifetimes instead of
// freeing individual nodes.
//
// Unlike a classic unsafe-pointer arena, Vapor's Arena hands out opaque,
// bounds-checked Ref values backed by a single growable byte slice. A Ref
// stays valid until the arena it came from is Reset; reading through a Ref
// from the wrong arena panics, and reading through one after a reset
// returns ErrStale, instead of corrupting memory. This trades a little performance for the safety Go programmers
// expect, while keeping the same allocate/duplicate/reset contract spec.md
// asks for.
package arena

import "fmt"

// Kind names one of the four arenas the engine maintains.
type Kind int

const (
	// Frame is reset at the end of every render pass.
	Frame Kind = iota
	// View is reset whenever the router crosses a route boundary.
	View
	// Persist is reset only on engine teardown.
	Persist
	// Scratch is never reset by the engine; callers own its lifetime.
	Scratch
)

func (k Kind) String() string {
	switch k {
	case Frame:
		return "frame"
	case View:
		return "view"
	case Persist:
		return "persist"
	case Scratch:
		return "scratch"
	default:
		return fmt.Sprintf("arena.Kind(%d)", int(k))
	}
}

// defaultChunkSize is the initial backing capacity for a fresh arena.
const defaultChunkSize = 4096

// Arena is a bump allocator: Alloc hands out monotonically increasing
// slices of a single backing buffer, and Reset rewinds the bump pointer to
// zero in one O(1) step. It does not free individual allocations.
//
// The zero value is not ready to use; call New.
type Arena struct {
	kind    Kind
	buf     []byte
	off     int
	epoch   uint64 // bumped on every Reset so stale Refs report ErrStale instead of aliasing
	maxUsed int    // high-water mark, exposed for diagnostics
	ceiling int    // optional hard cap used to make exhaustion deterministic in tests
}

// New creates an arena of the given kind with an initial backing capacity.
// A capacity of 0 uses a reasonable default.
func New(kind Kind, capacity int) *Arena {
	if capacity <= 0 {
		capacity = defaultChunkSize
	}
	return &Arena{
		kind: kind,
		buf:  make([]byte, 0, capacity),
	}
}

// Kind reports which of the four named arenas this is.
func (a *Arena) Kind() Kind { return a.kind }

// Ref is an opaque handle to a byte range inside a particular arena epoch.
// Ref is only valid until the next Reset of the arena that produced it.
type Ref struct {
	arena *Arena
	epoch uint64
	start int
	len   int
}

// Len reports the length in bytes of the referenced allocation.
func (r Ref) Len() int { return r.len }

// Valid reports whether the arena that produced this Ref has not been
// reset since.
func (r Ref) Valid() bool {
	return r.arena != nil && r.arena.epoch == r.epoch
}

// ErrStale is returned by Arena.Bytes when a Ref outlives a Reset.
type ErrStale struct {
	Kind Kind
}

func (e ErrStale) Error() string {
	return fmt.Sprintf("arena: stale reference into %s arena after reset", e.Kind)
}

// ErrExhausted is returned by Alloc/Duplicate when growth would exceed the
// arena's configured ceiling (see SetCeiling). Every arena is unbounded
// until SetCeiling is called on it.
type ErrExhausted struct {
	Kind      Kind
	Requested int
	Ceiling   int
}

func (e ErrExhausted) Error() string {
	return fmt.Sprintf("arena: %s arena exhausted (requested %d bytes, ceiling %d)", e.Kind, e.Requested, e.Ceiling)
}

// ceiling, when non-zero, caps how large the backing buffer may grow.
// SetCeiling configures it; used to make allocation-exhaustion testable
// deterministically (see scenario 4 in spec.md §8).
func (a *Arena) SetCeiling(bytes int) { a.ceiling = bytes }

// Alloc reserves size bytes aligned to align (align must be a power of two)
// and returns a Ref to the reserved, zeroed range. It returns ErrExhausted
// if the arena has a ceiling and satisfying the request would exceed it.
func (a *Arena) Alloc(size, align int) (Ref, error) {
	if size < 0 {
		panic("arena: negative size")
	}
	if align <= 0 {
		align = 1
	}
	padded := alignUp(a.off, align) - a.off
	need := padded + size
	if a.ceiling > 0 && a.off+need > a.ceiling {
		return Ref{}, ErrExhausted{Kind: a.kind, Requested: size, Ceiling: a.ceiling}
	}
	start := a.off + padded
	end := start + size
	if end > cap(a.buf) {
		a.grow(end)
	}
	a.buf = a.buf[:end]
	for i := a.off; i < start; i++ {
		a.buf[i] = 0
	}
	for i := start; i < end; i++ {
		a.buf[i] = 0
	}
	a.off = end
	if a.off > a.maxUsed {
		a.maxUsed = a.off
	}
	return Ref{arena: a, epoch: a.epoch, start: start, len: size}, nil
}

// Duplicate copies src into a freshly allocated range of this arena and
// returns a Ref to the copy. This is how data escaping a shorter-lived
// arena (e.g. a frame-arena text slice a caller wants to retain) is
// promoted to a longer-lived one: Duplicate into Persist or View.
func (a *Arena) Duplicate(src []byte) (Ref, error) {
	ref, err := a.Alloc(len(src), 1)
	if err != nil {
		return Ref{}, err
	}
	copy(a.buf[ref.start:ref.start+ref.len], src)
	return ref, nil
}

// Bytes returns the byte slice backing ref. It panics if ref was not
// produced by this arena, and returns ErrStale if the arena has been reset
// since ref was created.
func (a *Arena) Bytes(ref Ref) ([]byte, error) {
	if ref.arena != a {
		panic("arena: Ref used against the wrong Arena")
	}
	if ref.epoch != a.epoch {
		return nil, ErrStale{Kind: a.kind}
	}
	return a.buf[ref.start : ref.start+ref.len], nil
}

// Reset rewinds the arena to empty in O(1); every Ref issued before this
// call becomes stale. The backing buffer's capacity is retained so the
// next pass over this arena typically allocates nothing from the Go heap.
func (a *Arena) Reset() {
	a.buf = a.buf[:0]
	a.off = 0
	a.epoch++
}

// Used reports the number of bytes currently allocated (since the last Reset).
func (a *Arena) Used() int { return a.off }

// HighWaterMark reports the largest Used() has ever been since creation.
func (a *Arena) HighWaterMark() int { return a.maxUsed }

func (a *Arena) grow(minCap int) {
	newCap := cap(a.buf)
	if newCap == 0 {
		newCap = defaultChunkSize
	}
	for newCap < minCap {
		newCap *= 2
	}
	grown := make([]byte, len(a.buf), newCap)
	copy(grown, a.buf)
	a.buf = grown
}

func alignUp(n, align int) int {
	return (n + align - 1) &^ (align - 1)
}
