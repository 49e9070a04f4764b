package hostterm

import (
	"strings"
	"testing"

	"github.com/vapor-ui/vapor/internal/reconcile"
	"github.com/vapor-ui/vapor/internal/style"
	"github.com/vapor-ui/vapor/internal/vtree"
)

func TestApplyAddThenViewRendersText(t *testing.T) {
	in := style.New()
	h := New(in, nil)

	id := vtree.Identity(vtree.Root, 0, vtree.KindText, "", 0)
	node := vtree.Node{ID: id, Parent: vtree.Root, Kind: vtree.KindText, Style: style.Zero, Attrs: vtree.Attrs{Text: "hello"}}

	err := h.Apply(reconcile.Commands{Adds: []reconcile.Command{{Op: reconcile.OpAdd, ID: id, Parent: vtree.Root, Node: node}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := h.View(); !strings.Contains(got, "hello") {
		t.Fatalf("expected rendered view to contain %q, got %q", "hello", got)
	}
}

func TestApplyRemoveDropsFromView(t *testing.T) {
	in := style.New()
	h := New(in, nil)
	id := vtree.Identity(vtree.Root, 0, vtree.KindText, "", 0)
	node := vtree.Node{ID: id, Parent: vtree.Root, Kind: vtree.KindText, Attrs: vtree.Attrs{Text: "bye"}}

	h.Apply(reconcile.Commands{Adds: []reconcile.Command{{Op: reconcile.OpAdd, ID: id, Parent: vtree.Root, Node: node}}})
	h.Apply(reconcile.Commands{Removes: []reconcile.Command{{Op: reconcile.OpRemove, ID: id, Parent: vtree.Root}}})

	if got := h.View(); strings.Contains(got, "bye") {
		t.Fatalf("expected removed node to be gone from view, got %q", got)
	}
}

func TestApplyUpdateChangesRenderedText(t *testing.T) {
	in := style.New()
	h := New(in, nil)
	id := vtree.Identity(vtree.Root, 0, vtree.KindText, "", 0)

	h.Apply(reconcile.Commands{Adds: []reconcile.Command{{
		Op: reconcile.OpAdd, ID: id, Parent: vtree.Root,
		Node: vtree.Node{ID: id, Parent: vtree.Root, Kind: vtree.KindText, Attrs: vtree.Attrs{Text: "v1"}},
	}}})
	h.Apply(reconcile.Commands{Updates: []reconcile.Command{{
		Op: reconcile.OpUpdate, ID: id, Parent: vtree.Root,
		Node: vtree.Node{ID: id, Parent: vtree.Root, Kind: vtree.KindText, Attrs: vtree.Attrs{Text: "v2"}},
	}}})

	got := h.View()
	if strings.Contains(got, "v1") || !strings.Contains(got, "v2") {
		t.Fatalf("expected updated text v2 only, got %q", got)
	}
}

func TestApplyListRendersChildrenThroughViewport(t *testing.T) {
	in := style.New()
	h := New(in, nil)

	listID := vtree.Identity(vtree.Root, 0, vtree.KindList, "list", 0)
	itemID := vtree.Identity(listID, 0, vtree.KindText, "item", 0)

	err := h.Apply(reconcile.Commands{Adds: []reconcile.Command{
		{Op: reconcile.OpAdd, ID: listID, Parent: vtree.Root, Node: vtree.Node{
			ID: listID, Parent: vtree.Root, Kind: vtree.KindList, Key: "list", Children: []vtree.ID{itemID},
		}},
		{Op: reconcile.OpAdd, ID: itemID, Parent: listID, Node: vtree.Node{
			ID: itemID, Parent: listID, Kind: vtree.KindText, Key: "item", Attrs: vtree.Attrs{Text: "row one"},
		}},
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := h.View(); !strings.Contains(got, "row one") {
		t.Fatalf("expected the list's viewport-rendered content to contain %q, got %q", "row one", got)
	}

	if _, ok := h.viewports[listID]; !ok {
		t.Fatalf("expected a cached viewport.Model for the list node")
	}

	h.Apply(reconcile.Commands{Removes: []reconcile.Command{{Op: reconcile.OpRemove, ID: listID, Parent: vtree.Root}}})
	if _, ok := h.viewports[listID]; ok {
		t.Fatalf("expected the list's viewport to be evicted on remove")
	}
}

func TestNonWindowSizeMessageLeavesDimensionsUntouched(t *testing.T) {
	h := New(style.New(), nil)
	_, _ = h.Update(struct{ Width, Height int }{})
	// A tea.WindowSizeMsg specifically is required to update dimensions;
	// an unrelated message must be ignored without panicking.
	if h.width != 0 || h.height != 0 {
		t.Fatalf("expected dimensions untouched by a non-WindowSizeMsg message")
	}
}
