package arena

// Set bundles the four arenas an engine instance owns. It exists so the
// engine can construct and reset them together without every caller
// re-deriving the Frame/View/Persist/Scratch quadruple.
type Set struct {
	Frame   *Arena
	View    *Arena
	Persist *Arena
	Scratch *Arena
}

// NewSet constructs a fresh Set with default backing capacities.
func NewSet() *Set {
	return &Set{
		Frame:   New(Frame, 0),
		View:    New(View, 0),
		Persist: New(Persist, 0),
		Scratch: New(Scratch, 0),
	}
}

// Get returns the arena for the given kind.
func (s *Set) Get(kind Kind) *Arena {
	switch kind {
	case Frame:
		return s.Frame
	case View:
		return s.View
	case Persist:
		return s.Persist
	case Scratch:
		return s.Scratch
	default:
		panic("arena: unknown kind")
	}
}

// ResetFrame resets only the frame arena. Called at the end of every
// render pass, after commands have been emitted and dispatched.
func (s *Set) ResetFrame() { s.Frame.Reset() }

// ResetView resets only the view arena. Called when the router crosses a
// route boundary.
func (s *Set) ResetView() { s.View.Reset() }
