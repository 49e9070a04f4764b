package vtree

import "fmt"

// ErrUnknownNode is returned when a lookup names an ID the tree has never
// indexed, which signals a bug in the calling builder or reconciler rather
// than a recoverable runtime condition.
type ErrUnknownNode struct{ ID ID }

func (e ErrUnknownNode) Error() string { return fmt.Sprintf("vtree: unknown node %s", e.ID) }

// Tree is an identity-indexed store of Nodes, generalizing the teacher's
// ComponentManager/ComponentSnapshot path-indexing (pkg/core/component_diff.go)
// from component paths to the (parent, position, kind, key, salt) identity
// tuple computed by Identity. A Tree holds exactly one generation of nodes:
// the builder surface constructs a "new" Tree each pass, and the engine
// keeps a second Tree as the "retained" snapshot of what was last applied
// to the host (SPEC_FULL.md §4.3).
type Tree struct {
	byID     map[ID]*Node
	order    []ID // insertion order; Walk follows rootKids and Children instead
	rootKids []ID
}

// New returns an empty Tree with capacity hints sized for a UI of roughly
// hint nodes; hint may be zero.
func New(hint int) *Tree {
	return &Tree{
		byID: make(map[ID]*Node, hint),
	}
}

// Insert adds or replaces the node at n.ID. If n.Parent is Root, n is also
// tracked as a top-level child for Roots(). Insert does not validate parent
// linkage against Kind.ChildArity(); the builder surface is responsible for
// only ever constructing structurally valid trees.
func (t *Tree) Insert(n Node) {
	if _, exists := t.byID[n.ID]; !exists {
		t.order = append(t.order, n.ID)
		if n.Parent == Root {
			t.rootKids = append(t.rootKids, n.ID)
		}
	}
	stored := n.Clone()
	t.byID[n.ID] = &stored
}

// Get returns the node stored at id, or false if id has not been inserted.
func (t *Tree) Get(id ID) (Node, bool) {
	n, ok := t.byID[id]
	if !ok {
		return Node{}, false
	}
	return *n, true
}

// MustGet is Get but panics on an unknown id; callers use it where absence
// would indicate a reconciler bug rather than a legitimate miss.
func (t *Tree) MustGet(id ID) Node {
	n, ok := t.Get(id)
	if !ok {
		panic(ErrUnknownNode{ID: id})
	}
	return n
}

// Has reports whether id has been inserted into the tree.
func (t *Tree) Has(id ID) bool {
	_, ok := t.byID[id]
	return ok
}

// Remove deletes id (and only id, not its children: callers walk and remove
// each descendant explicitly so removal order is visible to the reconciler).
func (t *Tree) Remove(id ID) {
	delete(t.byID, id)
}

// Roots returns the top-level node identities in the order they were first
// inserted.
func (t *Tree) Roots() []ID {
	return append([]ID(nil), t.rootKids...)
}

// Len returns the number of nodes currently stored.
func (t *Tree) Len() int {
	return len(t.byID)
}

// Walk visits every node reachable from the roots in depth-first,
// children-in-order sequence, which is the order the host applier expects
// structural commands to arrive in (SPEC_FULL.md §6).
func (t *Tree) Walk(fn func(Node)) {
	var visit func(ID)
	visit = func(id ID) {
		n, ok := t.byID[id]
		if !ok {
			return
		}
		fn(*n)
		for _, c := range n.Children {
			visit(c)
		}
	}
	for _, r := range t.rootKids {
		visit(r)
	}
}

// Reset clears the tree back to empty, for reuse across frames without
// reallocating the backing map (SPEC_FULL.md §4.3: the "new" tree is reset
// and rebuilt every pass).
func (t *Tree) Reset() {
	for k := range t.byID {
		delete(t.byID, k)
	}
	t.order = t.order[:0]
	t.rootKids = t.rootKids[:0]
}
