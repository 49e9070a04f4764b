// Package vtesting provides an in-memory Applier for exercising the
// builder, lifecycle, and reconciler without a real terminal host,
// generalizing the teacher's testing/btesting alias-package pattern
// (a friendlier import path over an internal harness) to vapor's own
// Applier contract.
package vtesting

import (
	"sync"

	"github.com/vapor-ui/vapor/internal/reconcile"
	"github.com/vapor-ui/vapor/internal/vtree"
)

// RecordingApplier records every command set it receives, in order, and
// also maintains a best-effort mirror of the applied tree shape (parent ->
// ordered children, and per-node attrs) so assertions can check either the
// raw command log or the resulting shape.
type RecordingApplier struct {
	mu       sync.Mutex
	Passes   []reconcile.Commands
	children map[vtree.ID][]vtree.ID
	attrs    map[vtree.ID]vtree.Attrs
}

// NewRecordingApplier returns an empty RecordingApplier.
func NewRecordingApplier() *RecordingApplier {
	return &RecordingApplier{
		children: make(map[vtree.ID][]vtree.ID),
		attrs:    make(map[vtree.ID]vtree.Attrs),
	}
}

// Apply implements vapor.Applier.
func (r *RecordingApplier) Apply(cmds reconcile.Commands) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Passes = append(r.Passes, cmds)

	for _, c := range cmds.Removes {
		r.removeChild(c.Parent, c.ID)
		delete(r.attrs, c.ID)
	}
	for _, c := range cmds.Updates {
		if c.Op == reconcile.OpUpdate {
			r.attrs[c.ID] = c.Node.Attrs
		}
	}
	for _, c := range cmds.Adds {
		r.children[c.Parent] = append(r.children[c.Parent], c.ID)
		r.attrs[c.ID] = c.Node.Attrs
	}
	return nil
}

func (r *RecordingApplier) removeChild(parent, id vtree.ID) {
	kids := r.children[parent]
	for i, k := range kids {
		if k == id {
			r.children[parent] = append(kids[:i], kids[i+1:]...)
			return
		}
	}
}

// ChildrenOf returns the recorded children of parent in applied order.
func (r *RecordingApplier) ChildrenOf(parent vtree.ID) []vtree.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]vtree.ID(nil), r.children[parent]...)
}

// AttrsOf returns the last-applied Attrs for id.
func (r *RecordingApplier) AttrsOf(id vtree.ID) (vtree.Attrs, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.attrs[id]
	return a, ok
}

// PassCount returns how many Apply calls have been recorded.
func (r *RecordingApplier) PassCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Passes)
}

// LastCommands returns the most recent command set, or the zero value if
// Apply has never been called.
func (r *RecordingApplier) LastCommands() reconcile.Commands {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Passes) == 0 {
		return reconcile.Commands{}
	}
	return r.Passes[len(r.Passes)-1]
}
