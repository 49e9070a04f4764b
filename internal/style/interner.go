package style

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Handle is an opaque integer naming an interned Value. Handles are stable
// for the lifetime of the Interner (the session); equal values always
// collapse to equal handles regardless of submission order.
type Handle uint64

// Zero is the handle naming the zero (all-unset) Value, always interned
// first so empty styles share a single handle across the session.
const Zero Handle = 1

// ErrExhausted is returned by Intern when minting a new handle would
// exceed the distinct-value ceiling configured with SetCeiling.
type ErrExhausted struct{}

func (ErrExhausted) Error() string { return "style: interner persist storage exhausted" }

// entry pairs a canonical value with the handle it was assigned.
type entry struct {
	value  Value
	handle Handle
}

// Interner deduplicates Value instances into stable Handles. Lookup is
// expected O(1): values are grouped by hash, and each hash bucket is
// probed for exact field-wise equality before a new handle is minted,
// exactly as spec.md §4.2 requires (hash collisions probe for equality;
// only exact equality reuses a handle).
//
// Interner is safe for concurrent use, though the engine's single-threaded
// cooperative scheduling (spec.md §5) means contention is rare in practice;
// the lock exists mainly to guard against a host calling Intern from a
// background goroutine (e.g. async theme loading).
type Interner struct {
	mu       sync.Mutex
	buckets  map[uint64][]entry
	byHandle []Value // index 0 unused; handle N lives at byHandle[N]
	next     Handle
	ceiling  int // optional cap on number of distinct values, 0 = unbounded
}

// New creates an empty Interner with the zero Value pre-interned as Zero.
func New() *Interner {
	in := &Interner{
		buckets:  make(map[uint64][]entry),
		byHandle: make([]Value, 2), // index 0 unused, index 1 = Zero
		next:     2,
	}
	in.byHandle[Zero] = Value{}
	h := hashValue(Value{})
	in.buckets[h] = []entry{{value: Value{}, handle: Zero}}
	return in
}

// SetCeiling bounds how many distinct style values may be interned,
// modeling the "persist arena exhausted" failure path from spec.md §4.2.
func (in *Interner) SetCeiling(n int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.ceiling = n
}

// Intern returns the stable Handle for v, minting a new one only if no
// field-wise-equal value has been interned before.
func (in *Interner) Intern(v Value) (Handle, error) {
	h := hashValue(v)

	in.mu.Lock()
	defer in.mu.Unlock()

	for _, e := range in.buckets[h] {
		if e.value.Equal(v) {
			return e.handle, nil
		}
	}

	if in.ceiling > 0 && len(in.byHandle)-1 >= in.ceiling {
		return 0, ErrExhausted{}
	}

	handle := in.next
	in.next++
	in.byHandle = append(in.byHandle, v)
	in.buckets[h] = append(in.buckets[h], entry{value: v, handle: handle})
	return handle, nil
}

// Resolve returns the canonical Value for a Handle previously returned by
// Intern. It panics on an unknown handle, since handles are only ever
// produced by this Interner and callers should never fabricate one.
func (in *Interner) Resolve(h Handle) Value {
	in.mu.Lock()
	defer in.mu.Unlock()
	if int(h) <= 0 || int(h) >= len(in.byHandle) {
		panic(fmt.Sprintf("style: unknown handle %d", h))
	}
	return in.byHandle[h]
}

// Count returns the number of distinct interned values.
func (in *Interner) Count() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.byHandle) - 1
}

// hashValue content-addresses a Value with xxhash over a stable field
// encoding. Field order is fixed so equal Values always hash equal.
func hashValue(v Value) uint64 {
	var buf [256]byte
	b := buf[:0]
	b = appendColor(b, v.Foreground)
	b = appendColor(b, v.Background)
	b = append(b, byte(v.Bold), byte(v.Italic), byte(v.Underline), byte(v.Strikethrough))
	b = appendIntField(b, v.Width)
	b = appendIntField(b, v.Height)
	b = appendIntField(b, v.PaddingTop)
	b = appendIntField(b, v.PaddingRight)
	b = appendIntField(b, v.PaddingBottom)
	b = appendIntField(b, v.PaddingLeft)
	b = appendIntField(b, v.MarginTop)
	b = appendIntField(b, v.MarginRight)
	b = appendIntField(b, v.MarginBottom)
	b = appendIntField(b, v.MarginLeft)
	b = append(b, byte(v.BorderStyle))
	b = appendColor(b, v.BorderColor)
	b = append(b, byte(v.Align))
	b = append(b, []byte(v.Transition)...)
	b = append(b, 0)

	sum := xxhash.Sum64(b)
	if v.Hover != nil {
		sum ^= hashValue(*v.Hover)<<1 | 1
	}
	if v.Focus != nil {
		sum ^= hashValue(*v.Focus)<<1 | 2
	}
	return sum
}

func appendColor(b []byte, c Color) []byte {
	if !c.IsSet() {
		return append(b, 0)
	}
	if c.IsToken() {
		b = append(b, 1)
		return append(b, []byte(c.Token())...)
	}
	b = append(b, 2)
	return append(b, []byte(c.Value())...)
}

func appendIntField(b []byte, f intField) []byte {
	if !f.set {
		return append(b, 0)
	}
	var tmp [9]byte
	tmp[0] = 1
	binary.LittleEndian.PutUint64(tmp[1:], uint64(int64(f.value)))
	return append(b, tmp[:]...)
}
