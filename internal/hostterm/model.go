// Package hostterm implements a terminal host applier on top of
// bubbletea and lipgloss, generalizing the teacher's BubbleModel
// (pkg/bubble/bubble_model.go) from a component-tree wrapper to a
// vapor.Applier that paints a reconciled vtree.Tree onto a terminal
// screen.
package hostterm

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vapor-ui/vapor/internal/reconcile"
	"github.com/vapor-ui/vapor/internal/style"
	"github.com/vapor-ui/vapor/internal/vtree"
)

// defaultListWidth/defaultListHeight size a KindList node's viewport when
// its style leaves Width/Height unset.
const (
	defaultListWidth  = 40
	defaultListHeight = 10
)

// screenNode is the host-side mirror of one vtree.Node: enough to render
// without re-walking the engine's own tree, since Apply only receives a
// diff, not the full shape, on incremental passes.
type screenNode struct {
	kind     vtree.Kind
	parent   vtree.ID
	children []vtree.ID
	attrs    vtree.Attrs
	styleH   style.Handle
}

// Host is a bubbletea tea.Model that also implements vapor.Applier. The
// engine calls Apply as reconciliation produces command sets; bubbletea
// calls View to paint the accumulated screen tree whenever the program
// asks for a frame.
type Host struct {
	mu       sync.RWMutex
	nodes    map[vtree.ID]*screenNode
	roots    []vtree.ID
	interner *style.Interner
	theme    style.Theme

	// viewportsMu guards viewports independently of mu: viewports are a
	// render-time cache keyed by node ID, mutated from renderLocked (which
	// only holds mu for reading) rather than from Apply.
	viewportsMu sync.Mutex
	viewports   map[vtree.ID]*viewport.Model

	width, height int
}

// New returns a Host backed by interner for resolving style handles. theme
// may be nil, in which case token colors resolve to unset (no color).
func New(interner *style.Interner, theme style.Theme) *Host {
	return &Host{
		nodes:     make(map[vtree.ID]*screenNode),
		interner:  interner,
		theme:     theme,
		viewports: make(map[vtree.ID]*viewport.Model),
	}
}

// Apply implements vapor.Applier by mutating the host's screen mirror to
// match the reconciled command set, in the documented remove/update/add
// order.
func (h *Host) Apply(cmds reconcile.Commands) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range cmds.Removes {
		h.removeLocked(c.ID, c.Parent)
	}
	for _, c := range cmds.Updates {
		switch c.Op {
		case reconcile.OpUpdate:
			h.upsertLocked(c.ID, c.Parent, c.Node)
		case reconcile.OpMove:
			h.moveLocked(c.Parent, c.ID, c.PrevSibling)
		}
	}
	for _, c := range cmds.Adds {
		h.upsertLocked(c.ID, c.Parent, c.Node)
		h.linkLocked(c.Parent, c.ID)
	}
	return nil
}

func (h *Host) upsertLocked(id, parent vtree.ID, n vtree.Node) {
	sn, ok := h.nodes[id]
	if !ok {
		sn = &screenNode{parent: parent}
		h.nodes[id] = sn
	}
	sn.kind = n.Kind
	sn.attrs = n.Attrs
	sn.styleH = n.Style
	sn.children = append([]vtree.ID(nil), n.Children...)
}

func (h *Host) linkLocked(parent, id vtree.ID) {
	if parent == vtree.Root {
		if !containsID(h.roots, id) {
			h.roots = append(h.roots, id)
		}
		return
	}
	// A parent added in the same command set already lists id.
	if p, ok := h.nodes[parent]; ok && !containsID(p.children, id) {
		p.children = append(p.children, id)
	}
}

func containsID(ids []vtree.ID, id vtree.ID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

func (h *Host) removeLocked(id, parent vtree.ID) {
	delete(h.nodes, id)
	h.viewportsMu.Lock()
	delete(h.viewports, id)
	h.viewportsMu.Unlock()
	if parent == vtree.Root {
		h.roots = removeID(h.roots, id)
		return
	}
	if p, ok := h.nodes[parent]; ok {
		p.children = removeID(p.children, id)
	}
}

func (h *Host) moveLocked(parent, id, after vtree.ID) {
	var kids *[]vtree.ID
	if parent == vtree.Root {
		kids = &h.roots
	} else if p, ok := h.nodes[parent]; ok {
		kids = &p.children
	} else {
		return
	}
	*kids = removeID(*kids, id)
	if after == vtree.Root {
		*kids = append([]vtree.ID{id}, *kids...)
		return
	}
	for i, k := range *kids {
		if k == after {
			rest := append([]vtree.ID{id}, (*kids)[i+1:]...)
			*kids = append((*kids)[:i+1], rest...)
			return
		}
	}
	*kids = append(*kids, id)
}

func removeID(ids []vtree.ID, target vtree.ID) []vtree.ID {
	for i, id := range ids {
		if id == target {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}

// Init implements tea.Model.
func (h *Host) Init() tea.Cmd { return nil }

// Update implements tea.Model, handling only window-size bookkeeping; the
// engine's reactivity driver owns translating other messages into signal
// updates and re-running the builder pass.
func (h *Host) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sz, ok := msg.(tea.WindowSizeMsg); ok {
		h.mu.Lock()
		h.width, h.height = sz.Width, sz.Height
		h.mu.Unlock()
	}
	return h, nil
}

// View implements tea.Model by rendering the current screen tree with
// lipgloss, resolving each node's style handle through the interner.
func (h *Host) View() string {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var b strings.Builder
	for _, r := range h.roots {
		b.WriteString(h.renderLocked(r))
	}
	return b.String()
}

func (h *Host) renderLocked(id vtree.ID) string {
	n, ok := h.nodes[id]
	if !ok {
		return ""
	}

	var sv style.Value
	if h.interner != nil {
		sv = h.interner.Resolve(n.styleH)
	}
	s := style.ToLipgloss(sv, h.theme)

	switch n.kind {
	case vtree.KindText, vtree.KindButton, vtree.KindLink:
		return s.Render(n.attrs.Text)
	case vtree.KindInput:
		return s.Render(n.attrs.Value)
	case vtree.KindCheckbox:
		mark := "[ ]"
		if n.attrs.Checked {
			mark = "[x]"
		}
		return s.Render(mark + " " + n.attrs.Text)
	case vtree.KindProgress:
		return s.Render(renderProgressBar(n.attrs.Progress))
	case vtree.KindSelect:
		return s.Render(strings.Join(n.attrs.Options, " / "))
	case vtree.KindList:
		parts := make([]string, 0, len(n.children))
		for _, c := range n.children {
			parts = append(parts, h.renderLocked(c))
		}
		return s.Render(h.renderListLocked(id, s, strings.Join(parts, "\n")))
	default:
		parts := make([]string, 0, len(n.children))
		for _, c := range n.children {
			parts = append(parts, h.renderLocked(c))
		}
		return s.Render(strings.Join(parts, "\n"))
	}
}

// renderListLocked scrolls a KindList's rendered children through a
// bubbles/viewport.Model keyed by id, so a list taller than its style's
// Height clips and scrolls rather than overflowing the screen the way the
// plain join used by other container kinds would.
func (h *Host) renderListLocked(id vtree.ID, s lipgloss.Style, content string) string {
	w, ht := s.GetWidth(), s.GetHeight()
	if w <= 0 {
		w = defaultListWidth
	}
	if ht <= 0 {
		ht = defaultListHeight
	}

	h.viewportsMu.Lock()
	defer h.viewportsMu.Unlock()

	vp, ok := h.viewports[id]
	if !ok {
		nv := viewport.New(w, ht)
		vp = &nv
		h.viewports[id] = vp
	} else if vp.Width != w || vp.Height != ht {
		vp.Width, vp.Height = w, ht
	}
	vp.SetContent(content)
	return vp.View()
}

func renderProgressBar(frac float64) string {
	const width = 20
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	filled := int(frac * float64(width))
	return "[" + strings.Repeat("=", filled) + strings.Repeat(" ", width-filled) + "]"
}
