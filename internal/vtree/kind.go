package vtree

// Kind is the closed enumeration of display primitives the engine knows
// how to reconcile and apply (spec.md §3, concretized by SPEC_FULL.md §3).
type Kind int

const (
	KindContainer Kind = iota
	KindText
	KindInput
	KindButton
	KindImage
	KindList
	KindCheckbox
	KindSelect
	KindProgress
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindInput:
		return "input"
	case KindButton:
		return "button"
	case KindImage:
		return "image"
	case KindList:
		return "list"
	case KindCheckbox:
		return "checkbox"
	case KindSelect:
		return "select"
	case KindProgress:
		return "progress"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Arity describes how many children a node of this kind may have.
type Arity int

const (
	ArityZero Arity = iota
	ArityOne
	ArityMany
)

// ChildArity reports the permitted child arity for a kind, per spec.md §3
// ("the engine knows each kind's permitted ... children arity (0, 1, n)").
func (k Kind) ChildArity() Arity {
	switch k {
	case KindContainer, KindList, KindSelect:
		return ArityMany
	default:
		return ArityZero
	}
}

// capability is a bit gating which kind-specific builder accessors apply,
// per spec.md §9 ("a trait-like capability set the builder carries").
type capability uint8

const (
	capText capability = 1 << iota
	capInput
	capHandler
	capImage
	capChecked
	capOptions
	capProgress
	capHref
)

func (k Kind) capabilities() capability {
	switch k {
	case KindText:
		return capText
	case KindInput:
		return capText | capInput | capHandler
	case KindButton:
		return capText | capHandler
	case KindImage:
		return capImage
	case KindCheckbox:
		return capChecked | capHandler
	case KindSelect:
		return capOptions | capHandler
	case KindProgress:
		return capProgress
	case KindLink:
		return capText | capHref | capHandler
	default:
		return 0
	}
}

// has reports whether a node of this kind carries the given capability,
// backing the exported Has* helpers below. The element constructors in
// package vapor set Attrs directly and do not consult these helpers.
func (k Kind) has(c capability) bool { return k.capabilities()&c != 0 }

func (k Kind) HasText() bool     { return k.has(capText) }
func (k Kind) HasInput() bool    { return k.has(capInput) }
func (k Kind) HasHandler() bool  { return k.has(capHandler) }
func (k Kind) HasImage() bool    { return k.has(capImage) }
func (k Kind) HasChecked() bool  { return k.has(capChecked) }
func (k Kind) HasOptions() bool  { return k.has(capOptions) }
func (k Kind) HasProgress() bool { return k.has(capProgress) }
func (k Kind) HasHref() bool     { return k.has(capHref) }
