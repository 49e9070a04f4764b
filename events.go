package vapor

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/cespare/xxhash/v2"

	"github.com/vapor-ui/vapor/internal/vtree"
)

// EventKind names a node-scoped interaction the engine delivers to a
// handler bound via OnEvent/OnEventCtx.
type EventKind int

const (
	EventClick EventKind = iota
	EventChange
	EventFocus
	EventBlur
	EventSubmit
	EventKeyPress
)

// GlobalEventKind names an interaction delivered to listeners registered
// via EventListener, independent of which node was under focus.
type GlobalEventKind int

const (
	GlobalEventResize GlobalEventKind = iota
	GlobalEventRouteChange
	GlobalEventTick
)

// Event is the payload delivered to a bound handler: the node it fired on
// (zero value for global listeners), and a kind-specific value (the new
// text for EventChange, the key name for EventKeyPress, and so on) left
// untyped the way the teacher's EventHandler payload is, since the shape
// varies by kind and callers already know which kind they registered for.
type Event struct {
	Target vtree.ID
	Kind   EventKind
	Data   any
}

// handlerID computes the identity used to detect whether a rebuilt node's
// handler is "the same" handler as last pass, per SPEC_FULL.md §4.5.2:
// the function pointer folded with a hash of the bound argument tuple.
// Two passes binding the same closure pointer to the same arguments
// produce the same ID, so the reconciler does not emit a spurious handler
// update for a handler that is logically unchanged.
func handlerID(fn any, args ...any) vtree.HandlerID {
	ptr := reflect.ValueOf(fn).Pointer()

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(ptr))
	h := xxhash.Sum64(buf[:])

	for _, a := range args {
		h ^= argHash(a)*1099511628211 + 0x9e3779b97f4a7c15
	}
	return vtree.HandlerID(h)
}

// argHash hashes a bound argument for folding into handlerID. It uses
// fmt's default formatting as a stable-enough textual encoding; callers
// binding non-comparable, non-printable-meaningful arguments (channels,
// funcs) should expect coarser deduplication, which is an accepted
// tradeoff of the function-pointer-based identity scheme documented in
// SPEC_FULL.md.
func argHash(a any) uint64 {
	return xxhash.Sum64([]byte(fmt.Sprintf("%#v", a)))
}
