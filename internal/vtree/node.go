package vtree

import "github.com/vapor-ui/vapor/internal/style"

// Attrs holds the non-style, kind-gated payload a node carries: text
// content, input value, checked state, option list, progress fraction,
// href, and the identity of any bound event handler. The element
// constructors in package vapor populate Attrs directly; the reconciler
// diffs it field-by-field against the retained node.
type Attrs struct {
	Text        string
	Value       string
	Checked     bool
	Options     []string
	Progress    float64
	Href        string
	HandlerID   HandlerID
	HasHandler  bool
}

// HandlerID identifies a bound event handler for equality comparison across
// passes, computed from the handler's function pointer and closed-over
// argument tuple (SPEC_FULL.md §9, Open Question resolution: "handler
// identity"). Two builder passes that bind what is logically the same
// callback with the same arguments produce the same HandlerID, so the
// reconciler does not emit a spurious update command for a handler that
// did not really change.
type HandlerID uint64

// Node is one element in a tree: a stable identity, its kind, an interned
// style handle, kind-gated attributes, and the identities of its children
// in order. Node storage is heap-backed (Tree.byID is a plain map), not
// arena-allocated: the retained tree must survive every Frame reset and
// most View resets, which an arena-backed Node cannot do without its
// handles going stale out from under the very data that is supposed to
// persist (SPEC_FULL.md §4.3 explains the tradeoff). C1's arenas back
// pass-scoped scratch data instead — see Engine.openChildren in engine.go
// for the concrete example.
type Node struct {
	ID       ID
	Parent   ID
	Kind     Kind
	Key      string
	Style    style.Handle
	Attrs    Attrs
	Children []ID
}

// Clone returns a deep-enough copy of n suitable for storing in the
// retained tree: Children and Options are copied so later mutation of the
// source slice (e.g. a builder reusing a scratch-arena backed slice) cannot
// corrupt the retained snapshot.
func (n Node) Clone() Node {
	out := n
	if n.Children != nil {
		out.Children = append([]ID(nil), n.Children...)
	}
	if n.Attrs.Options != nil {
		out.Attrs.Options = append([]string(nil), n.Attrs.Options...)
	}
	return out
}
