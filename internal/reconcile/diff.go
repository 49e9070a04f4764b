package reconcile

import "github.com/vapor-ui/vapor/internal/vtree"

// Diff compares newTree against retained and returns the command set that
// brings the host-applied surface from retained's shape to newTree's
// shape. Matching is by identity: a node present in both trees under the
// same vtree.ID is a candidate Update (and possibly Move, if its sibling
// order changed); a node only in retained is a Remove; a node only in
// newTree is an Add. Diff runs in O(n) in the total number of nodes: every
// node is visited a constant number of times, and child-list comparison
// uses a longest-increasing-subsequence pass bounded by the child count.
func Diff(newTree, retained *vtree.Tree) Commands {
	var cmds Commands

	retainedIDs := map[vtree.ID]bool{}
	retained.Walk(func(n vtree.Node) { retainedIDs[n.ID] = true })

	newIDs := map[vtree.ID]bool{}
	newTree.Walk(func(n vtree.Node) { newIDs[n.ID] = true })

	// Removes: anything retained but absent from the new pass. Walking
	// retained (not newTree) means we see stale subtrees even if their
	// parent was also removed; order here does not matter to appliers
	// beyond "removes happen before adds", per Commands' documented
	// contract.
	retained.Walk(func(n vtree.Node) {
		if !newIDs[n.ID] {
			cmds.Removes = append(cmds.Removes, Command{Op: OpRemove, ID: n.ID, Parent: n.Parent})
		}
	})

	// Adds and updates: walk the new tree; for nodes also in retained,
	// compute an attribute/style delta and, if the parent's child order
	// changed, a move hint.
	newTree.Walk(func(n vtree.Node) {
		if !retainedIDs[n.ID] {
			cmds.Adds = append(cmds.Adds, Command{Op: OpAdd, ID: n.ID, Parent: n.Parent, Node: n})
			return
		}

		old := retained.MustGet(n.ID)
		delta, styleDirty := diffNode(old, n)
		if delta != (AttrDelta{}) || styleDirty {
			cmds.Updates = append(cmds.Updates, Command{
				Op:         OpUpdate,
				ID:         n.ID,
				Parent:     n.Parent,
				Node:       n,
				StyleDirty: styleDirty,
				Attrs:      delta,
			})
		}
	})

	// Moves: for each parent present in both trees, compare child order
	// and emit Move commands for the minimal set of children that must
	// shift, using an LIS over retained positions keyed by the new order
	// (the classic keyed-list-reorder algorithm: children forming the
	// longest run already in relative order are left alone; everything
	// else gets a positional Move).
	newTree.Walk(func(n vtree.Node) {
		if !retainedIDs[n.ID] {
			return
		}
		old := retained.MustGet(n.ID)
		cmds.Updates = append(cmds.Updates, moves(old, n)...)
	})

	return cmds
}

func diffNode(old, n vtree.Node) (AttrDelta, bool) {
	var d AttrDelta
	d.Text = old.Attrs.Text != n.Attrs.Text
	d.Value = old.Attrs.Value != n.Attrs.Value
	d.Checked = old.Attrs.Checked != n.Attrs.Checked
	d.Progress = old.Attrs.Progress != n.Attrs.Progress
	d.Href = old.Attrs.Href != n.Attrs.Href
	d.Handler = old.Attrs.HasHandler != n.Attrs.HasHandler || old.Attrs.HandlerID != n.Attrs.HandlerID
	d.Options = !equalStrings(old.Attrs.Options, n.Attrs.Options)
	styleDirty := old.Style != n.Style
	return d, styleDirty
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// moves diffs old's and n's direct children for reordering, returning a
// Move command for each child present in both that is not part of the
// longest run already in the right relative order. Children new to n get
// no Move; their Add command places them.
func moves(old, n vtree.Node) []Command {
	if len(old.Children) == 0 || len(n.Children) == 0 {
		return nil
	}

	oldPos := make(map[vtree.ID]int, len(old.Children))
	for i, c := range old.Children {
		oldPos[c] = i
	}

	// positions, in new order, of each new child's old index (or -1 if new).
	seq := make([]int, 0, len(n.Children))
	present := make([]vtree.ID, 0, len(n.Children))
	for _, c := range n.Children {
		if p, ok := oldPos[c]; ok {
			seq = append(seq, p)
			present = append(present, c)
		}
	}

	keep := longestIncreasingSubsequence(seq)
	keepSet := make(map[int]bool, len(keep))
	for _, idx := range keep {
		keepSet[idx] = true
	}

	var cmds []Command
	var prev vtree.ID = vtree.Root
	for i, c := range n.Children {
		if _, retained := oldPos[c]; retained && !keepSet[indexOf(present, c)] {
			cmds = append(cmds, Command{Op: OpMove, ID: c, Parent: n.ID, Index: i, PrevSibling: prev})
		}
		prev = c
	}
	return cmds
}

func indexOf(ids []vtree.ID, target vtree.ID) int {
	for i, id := range ids {
		if id == target {
			return i
		}
	}
	return -1
}

// longestIncreasingSubsequence returns the indices (into seq) of an
// increasing subsequence of maximal length, computed in O(n log n) with
// the standard patience-sorting technique.
func longestIncreasingSubsequence(seq []int) []int {
	if len(seq) == 0 {
		return nil
	}
	tails := []int{}      // tails[k] = index into seq of smallest tail of an increasing run of length k+1
	prev := make([]int, len(seq))
	for i, v := range seq {
		lo, hi := 0, len(tails)
		for lo < hi {
			mid := (lo + hi) / 2
			if seq[tails[mid]] < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		if lo > 0 {
			prev[i] = tails[lo-1]
		} else {
			prev[i] = -1
		}
		if lo == len(tails) {
			tails = append(tails, i)
		} else {
			tails[lo] = i
		}
	}

	out := make([]int, len(tails))
	k := tails[len(tails)-1]
	for i := len(tails) - 1; i >= 0; i-- {
		out[i] = k
		k = prev[k]
	}
	return out
}
