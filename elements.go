package vapor

import "github.com/vapor-ui/vapor/internal/vtree"

// Container starts a KindContainer node. Children passed as values commit
// depth-first when the returned Builder reaches End(); alternatively, call
// Container().Children(func() { ... }) to populate it imperatively.
func Container(children ...Builder) Builder {
	b := newBuilder(vtree.KindContainer, callSiteSalt(2))
	b.children = children
	return b
}

// Text starts a KindText leaf carrying content.
func Text(content string) Builder {
	b := newBuilder(vtree.KindText, callSiteSalt(2))
	b.attrs.Text = content
	return b
}

// Input starts a KindInput leaf bound to value, firing EventChange with the
// new text as Event.Data when the host reports a change.
func Input(value string) Builder {
	b := newBuilder(vtree.KindInput, callSiteSalt(2))
	b.attrs.Value = value
	return b
}

// Button starts a KindButton leaf labeled label, invoking onClick on
// EventClick.
func Button(label string, onClick func()) Builder {
	b := newBuilder(vtree.KindButton, callSiteSalt(2))
	b.attrs.Text = label
	if onClick != nil {
		b.handlers = map[EventKind]func(Event){EventClick: func(Event) { onClick() }}
	}
	return b
}

// ButtonWithCtx starts a KindButton leaf whose click handler closes over
// ctx, with ctx folded into the handler's identity so a rebuilt button
// bound to the same function and an equal ctx is not treated as changed.
// It is a free function, not a generic method, because Go methods cannot
// declare their own type parameters.
func ButtonWithCtx[A any](label string, onClick func(A), ctx A) Builder {
	b := newBuilder(vtree.KindButton, callSiteSalt(2))
	b.attrs.Text = label
	if onClick != nil {
		b.handlers = map[EventKind]func(Event){EventClick: func(Event) { onClick(ctx) }}
		b.ctxArgs = []any{ctx}
	}
	return b
}

// Image starts a KindImage leaf referencing src (interpreted by the host
// Applier, e.g. a path or an already-resolved glyph).
func Image(src string) Builder {
	b := newBuilder(vtree.KindImage, callSiteSalt(2))
	b.attrs.Href = src
	return b
}

// List starts a KindList container of items, each normally given a Key so
// the reconciler can detect minimal-move reorders (spec.md §6.2).
func List(items ...Builder) Builder {
	b := newBuilder(vtree.KindList, callSiteSalt(2))
	b.children = items
	return b
}

// Checkbox starts a KindCheckbox leaf in state checked.
func Checkbox(checked bool) Builder {
	b := newBuilder(vtree.KindCheckbox, callSiteSalt(2))
	b.attrs.Checked = checked
	return b
}

// Select starts a KindSelect leaf offering options.
func Select(options ...string) Builder {
	b := newBuilder(vtree.KindSelect, callSiteSalt(2))
	b.attrs.Options = options
	return b
}

// Progress starts a KindProgress leaf at fraction (clamped to [0,1] by the
// host Applier at render time).
func Progress(fraction float64) Builder {
	b := newBuilder(vtree.KindProgress, callSiteSalt(2))
	b.attrs.Progress = fraction
	return b
}

// Link starts a KindLink leaf labeled label pointing at href.
func Link(label, href string) Builder {
	b := newBuilder(vtree.KindLink, callSiteSalt(2))
	b.attrs.Text = label
	b.attrs.Href = href
	return b
}
