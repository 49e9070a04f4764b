package vapor

import "github.com/vapor-ui/vapor/internal/reconcile"

// Applier is the contract a host implements to turn a reconciled
// command set into changes on a real display surface (a terminal screen
// buffer, a DOM, a native widget tree). The engine never touches the host
// surface directly: every structural or attribute change after the first
// frame flows through Apply, which is what lets the same engine target
// multiple hosts (internal/hostterm for terminals today; SPEC_FULL.md
// leaves room for a DOM or native host behind the same interface).
type Applier interface {
	// Apply receives one reconciled command set per pass, in the order
	// Commands documents (removes, then updates/moves, then adds).
	Apply(cmds reconcile.Commands) error
}

// ApplierFunc adapts a plain function to the Applier interface, mirroring
// the standard library's http.HandlerFunc pattern for single-method
// interfaces.
type ApplierFunc func(reconcile.Commands) error

func (f ApplierFunc) Apply(cmds reconcile.Commands) error { return f(cmds) }
