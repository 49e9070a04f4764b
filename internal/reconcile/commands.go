// Package reconcile implements the O(n) tree diff that turns a freshly
// built "new" vtree.Tree and a "retained" vtree.Tree from the previous pass
// into a disjoint set of add/remove/update commands for the host applier,
// generalizing the teacher's ComponentDiffer (pkg/core/component_diff.go)
// from component trees to vtree's identity-addressed node trees.
package reconcile

import "github.com/vapor-ui/vapor/internal/vtree"

// Op names the kind of structural change a Command describes.
type Op int

const (
	OpAdd Op = iota
	OpRemove
	OpUpdate
	OpMove
)

func (o Op) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpRemove:
		return "remove"
	case OpUpdate:
		return "update"
	case OpMove:
		return "move"
	default:
		return "unknown"
	}
}

// AttrDelta records which Attrs fields changed between the retained and
// new node, so the host applier can patch only what moved instead of
// re-serializing the whole attribute set.
type AttrDelta struct {
	Text       bool
	Value      bool
	Checked    bool
	Options    bool
	Progress   bool
	Href       bool
	Handler    bool
}

// Command is one instruction in the set the reconciler hands to
// vapor.Applier. Add and Update commands carry the full Node (applier
// implementations are expected to read whichever fields their host
// surface needs); Remove only needs the identity being torn down.
type Command struct {
	Op          Op
	ID          vtree.ID
	Parent      vtree.ID
	Index       int // position among parent's children after this command set applies
	Node        vtree.Node
	StyleDirty  bool
	Attrs       AttrDelta
	PrevSibling vtree.ID // for OpMove: the id this node now follows, or vtree.Root for "first"
}

// Commands is the ordered, disjoint result of a Diff call. Host appliers
// must apply Removes, then Updates/Moves, then Adds, in slice order within
// each group, matching the order the teacher's command pipeline
// (pkg/core/update_queue.go) enforces for its own add/remove/update sets.
type Commands struct {
	Removes []Command
	Updates []Command
	Adds    []Command
}

// Len reports the total number of commands across all three groups.
func (c Commands) Len() int {
	return len(c.Removes) + len(c.Updates) + len(c.Adds)
}

// Empty reports whether the diff produced no changes at all.
func (c Commands) Empty() bool {
	return c.Len() == 0
}
