package vapor

import (
	"runtime"
	"sort"

	"github.com/vapor-ui/vapor/internal/style"
	"github.com/vapor-ui/vapor/internal/verrors"
	"github.com/vapor-ui/vapor/internal/vtree"
)

// Builder is the fluent, value-returning construction surface: every
// style/attribute method returns a new Builder with one field changed,
// grounded in the teacher's NewComponent(...).Setup(...).Template(...)
// chain generalized from "assemble one component" to "assemble one node",
// per SPEC_FULL.md §4.5. A Builder is inert data until a commit point
// (End, Children, StyleChildren) walks it onto the lifecycle stack and
// into the active engine's building tree.
type Builder struct {
	kind     vtree.Kind
	key      string
	salt     uint64
	style    style.Handle
	attrs    vtree.Attrs
	children []Builder
	handlers map[EventKind]func(Event)
	ctxArgs  []any

	// pendingStyle accumulates per-field style writes made through
	// Foreground/Bold/Padding/... (see value.go's With* setters); styleSet
	// is false until the first such call. Engine.resolveStyle merges
	// pendingStyle onto style and interns the result at commit time.
	pendingStyle style.Value
	styleSet     bool
}

func callSiteSalt(skip int) uint64 {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return 0
	}
	return uint64(pc)
}

func newBuilder(kind vtree.Kind, salt uint64) Builder {
	return Builder{kind: kind, style: style.Zero, salt: salt}
}

// Key overrides positional identity with a developer-supplied key, the
// mechanism that lets a reordered list item keep its identity across
// passes (spec.md §6.2).
func (b Builder) Key(k string) Builder {
	b.key = k
	return b
}

// Style attaches an already-interned style handle to the node directly,
// for callers reusing a handle computed once (e.g. a shared theme style)
// rather than composing one field at a time. It composes with the
// per-field methods below: they merge onto whatever Value this handle
// resolves to.
func (b Builder) Style(h style.Handle) Builder {
	b.style = h
	return b
}

// Foreground sets the node's foreground color, interned alongside any
// other per-field style writes at commit time (SPEC_FULL.md §4.5/§6).
func (b Builder) Foreground(c style.Color) Builder {
	b.pendingStyle = b.pendingStyle.WithForeground(c)
	b.styleSet = true
	return b
}

// Background sets the node's background color.
func (b Builder) Background(c style.Color) Builder {
	b.pendingStyle = b.pendingStyle.WithBackground(c)
	b.styleSet = true
	return b
}

// Bold sets or clears bold text rendering.
func (b Builder) Bold(v bool) Builder {
	b.pendingStyle = b.pendingStyle.WithBold(v)
	b.styleSet = true
	return b
}

// Italic sets or clears italic text rendering.
func (b Builder) Italic(v bool) Builder {
	b.pendingStyle = b.pendingStyle.WithItalic(v)
	b.styleSet = true
	return b
}

// Underline sets or clears underlined text rendering.
func (b Builder) Underline(v bool) Builder {
	b.pendingStyle = b.pendingStyle.WithUnderline(v)
	b.styleSet = true
	return b
}

// Strikethrough sets or clears strikethrough text rendering.
func (b Builder) Strikethrough(v bool) Builder {
	b.pendingStyle = b.pendingStyle.WithStrikethrough(v)
	b.styleSet = true
	return b
}

// Width fixes the node's content width in cells.
func (b Builder) Width(w int) Builder {
	b.pendingStyle = b.pendingStyle.WithWidth(w)
	b.styleSet = true
	return b
}

// Height fixes the node's content height in cells.
func (b Builder) Height(h int) Builder {
	b.pendingStyle = b.pendingStyle.WithHeight(h)
	b.styleSet = true
	return b
}

// Padding sets inner spacing on all four sides.
func (b Builder) Padding(top, right, bottom, left int) Builder {
	b.pendingStyle = b.pendingStyle.WithPadding(top, right, bottom, left)
	b.styleSet = true
	return b
}

// Margin sets outer spacing on all four sides.
func (b Builder) Margin(top, right, bottom, left int) Builder {
	b.pendingStyle = b.pendingStyle.WithMargin(top, right, bottom, left)
	b.styleSet = true
	return b
}

// BorderStyle selects the node's border rendering.
func (b Builder) BorderStyle(s style.Border) Builder {
	b.pendingStyle = b.pendingStyle.WithBorderStyle(s)
	b.styleSet = true
	return b
}

// BorderColor sets the node's border color.
func (b Builder) BorderColor(c style.Color) Builder {
	b.pendingStyle = b.pendingStyle.WithBorderColor(c)
	b.styleSet = true
	return b
}

// Align sets the node's horizontal content alignment.
func (b Builder) Align(a style.Align) Builder {
	b.pendingStyle = b.pendingStyle.WithAlign(a)
	b.styleSet = true
	return b
}

// Transition names an animation-binding token the host interprets; the
// core carries it opaquely (spec.md Non-goals: no animation engine here).
func (b Builder) Transition(name string) Builder {
	b.pendingStyle = b.pendingStyle.WithTransition(name)
	b.styleSet = true
	return b
}

// Hover attaches a partial style override a host applies while the node
// reports hover state.
func (b Builder) Hover(v style.Value) Builder {
	b.pendingStyle = b.pendingStyle.WithHover(v)
	b.styleSet = true
	return b
}

// Focus attaches a partial style override a host applies while the node
// reports focus state.
func (b Builder) Focus(v style.Value) Builder {
	b.pendingStyle = b.pendingStyle.WithFocus(v)
	b.styleSet = true
	return b
}

// OnEvent binds fn to fire when kind occurs on this node. Handler
// identity is computed at commit time from fn's function pointer so a
// rebuilt node with "the same" handler does not appear changed to the
// reconciler (SPEC_FULL.md §4.5.2).
func (b Builder) OnEvent(kind EventKind, fn func(Event)) Builder {
	b.handlers = cloneHandlers(b.handlers)
	b.handlers[kind] = fn
	return b
}

// OnEventCtx binds a context-carrying handler, folding ctx into the
// handler's identity alongside its function pointer. It is a free
// function rather than a generic method because Go methods cannot carry
// their own type parameters; ButtonWithCtx follows the same pattern.
func OnEventCtx[A any](b Builder, kind EventKind, fn func(A, Event), ctx A) Builder {
	wrapped := func(ev Event) { fn(ctx, ev) }
	b.handlers = cloneHandlers(b.handlers)
	b.handlers[kind] = wrapped
	b.ctxArgs = append(append([]any(nil), b.ctxArgs...), ctx)
	return b
}

func cloneHandlers(h map[EventKind]func(Event)) map[EventKind]func(Event) {
	out := make(map[EventKind]func(Event), len(h)+1)
	for k, v := range h {
		out[k] = v
	}
	return out
}

// commitNode walks b onto the lifecycle stack and into the active
// engine's building tree, returning the identity assigned to it. Children
// commit depth-first before their parent closes, matching the teacher's
// "evaluate children, then close the parent frame" builder discipline.
func (e *Engine) commitNode(b Builder) vtree.ID {
	if b.kind.ChildArity() == vtree.ArityZero && len(b.children) > 0 {
		panic(verrors.New(verrors.KindProtocol, "node kind does not accept children").
			WithDiagnostic(verrors.Diagnostic{Operation: b.kind.String()}))
	}

	e.mu.Lock()
	parent, _ := e.stack.Top()
	id := e.stack.Open(b.kind, b.key, b.salt)
	e.stack.Configure()
	e.mu.Unlock()

	for _, c := range b.children {
		e.commitNode(c)
	}

	e.mu.Lock()
	if err := e.stack.Close(id); err != nil {
		e.mu.Unlock()
		panic(verrors.New(verrors.KindProtocol, err.Error()))
	}
	children := e.takeChildrenLocked(id)

	attrs := b.attrs
	attrs.HasHandler = len(b.handlers) > 0
	if attrs.HasHandler {
		attrs.HandlerID = combinedHandlerID(b.handlers, b.ctxArgs)
		e.handlers[id] = b.handlers
	} else {
		delete(e.handlers, id)
	}

	e.building.Insert(vtree.Node{
		ID:       id,
		Parent:   parent,
		Kind:     b.kind,
		Key:      b.key,
		Style:    e.resolveStyle(b),
		Attrs:    attrs,
		Children: children,
	})
	e.appendOpenChildLocked(parent, id)
	e.mu.Unlock()

	return id
}

func (e *Engine) takeChildrenLocked(id vtree.ID) []vtree.ID {
	s, ok := e.openChildren[id]
	if !ok {
		return nil
	}
	delete(e.openChildren, id)
	return s.Snapshot()
}

// combinedHandlerID folds every (kind, handler) pair bound on a node into
// one HandlerID, iterating kinds in a fixed order so the result is
// deterministic regardless of call order.
func combinedHandlerID(handlers map[EventKind]func(Event), ctxArgs []any) vtree.HandlerID {
	kinds := make([]int, 0, len(handlers))
	for k := range handlers {
		kinds = append(kinds, int(k))
	}
	sort.Ints(kinds)

	var id vtree.HandlerID
	for _, k := range kinds {
		id ^= handlerID(handlers[EventKind(k)], k) << 1
	}
	for _, a := range ctxArgs {
		id ^= vtree.HandlerID(argHash(a))
	}
	return id
}

// End commits b as a child of the currently open frame (or as a root, if
// no frame is open), returning a handle to the committed node.
func (b Builder) End() Node {
	return Node{id: currentEngine().commitNode(b)}
}

// Children commits b, then runs fn imperatively: every builder call and
// commit point fn executes attaches as a child of b, grounded in
// spec.md §4.5's "Children(func())" commit point as the imperative
// alternative to passing a value-based children list to Container.
func (b Builder) Children(fn func()) Node {
	e := currentEngine()

	e.mu.Lock()
	parent, _ := e.stack.Top()
	id := e.stack.Open(b.kind, b.key, b.salt)
	e.stack.Configure()
	e.mu.Unlock()

	fn()

	e.mu.Lock()
	if err := e.stack.Close(id); err != nil {
		e.mu.Unlock()
		panic(verrors.New(verrors.KindProtocol, err.Error()))
	}
	children := e.takeChildrenLocked(id)
	e.building.Insert(vtree.Node{
		ID:       id,
		Parent:   parent,
		Kind:     b.kind,
		Key:      b.key,
		Style:    e.resolveStyle(b),
		Attrs:    b.attrs,
		Children: children,
	})
	e.appendOpenChildLocked(parent, id)
	e.mu.Unlock()

	return Node{id: id}
}

// StyleChildren is Style followed by Children, for the common case of
// styling a container while also populating it imperatively.
func (b Builder) StyleChildren(h style.Handle, fn func()) Node {
	return b.Style(h).Children(fn)
}
