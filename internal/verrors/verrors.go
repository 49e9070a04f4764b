// Package verrors defines the closed set of error Kinds the engine can
// produce and the Diagnostic payload attached to each, grounded in the
// teacher's observability.ErrorReporter/ErrorContext shape
// (pkg/bubbly/observability/reporter.go) but generalized from "report a
// panic that happened in an event handler" to "classify and report any
// engine-level failure" (allocation exhaustion, interner exhaustion,
// lifecycle protocol violation, reconciliation inconsistency, router
// mismatch, collaborator compile failure).
package verrors

import "fmt"

// Kind is the closed enumeration of engine failure categories.
type Kind int

const (
	// KindResource covers arena/interner exhaustion.
	KindResource Kind = iota
	// KindProtocol covers lifecycle open/configure/close misuse.
	KindProtocol
	// KindReconcile covers an identity-index inconsistency the reconciler
	// could not resolve short of a full-replace fallback.
	KindReconcile
	// KindRouter covers navigation failures (no matching route, guard
	// rejection).
	KindRouter
	// KindCollaborator covers a form/markdown/theme compilation failure.
	KindCollaborator
	// KindHandler covers a panic recovered from a bound event handler.
	KindHandler
)

func (k Kind) String() string {
	switch k {
	case KindResource:
		return "resource"
	case KindProtocol:
		return "protocol"
	case KindReconcile:
		return "reconcile"
	case KindRouter:
		return "router"
	case KindCollaborator:
		return "collaborator"
	case KindHandler:
		return "handler"
	default:
		return "unknown"
	}
}

// Diagnostic carries the contextual payload attached to an Error, mirroring
// the teacher's ErrorContext (component name/id, event name, timestamp)
// generalized to vapor's node-identity-addressed world.
type Diagnostic struct {
	Component string
	NodeID    string
	Operation string
}

// Error is the error type every engine-level failure is reported as. It
// always carries a Kind so callers (and the observability reporters in
// vapor/observability) can triage without string-matching messages.
type Error struct {
	Kind       Kind
	Message    string
	Diagnostic Diagnostic
	Cause      error
}

// New constructs an Error of the given kind.
func New(kind Kind, message string) Error {
	return Error{Kind: kind, Message: message}
}

// WithDiagnostic attaches contextual diagnostic fields and returns the
// updated Error (Error is a value type; builder-style methods return a
// modified copy rather than mutating in place).
func (e Error) WithDiagnostic(d Diagnostic) Error {
	e.Diagnostic = d
	return e
}

// WithCause attaches an underlying cause, retrievable via errors.Unwrap.
func (e Error) WithCause(cause error) Error {
	e.Cause = cause
	return e
}

// Error implements the error interface.
func (e Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("vapor: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("vapor: %s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause, if any, so errors.Is/As work
// through an Error the way the standard library expects.
func (e Error) Unwrap() error { return e.Cause }
