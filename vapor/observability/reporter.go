// Package observability defines the pluggable error-reporting surface the
// engine calls when a pass panics or a handler panics, generalized from the
// teacher's pkg/bubbly/observability (ErrorReporter, ErrorContext,
// Breadcrumb) from "per-component panic tracking" to "per-node,
// verrors.Error-addressed diagnostic reporting". If no Reporter is
// registered, diagnostics are dropped with a single nil check, matching
// the teacher's zero-overhead-when-unconfigured stance.
package observability

import (
	"sync"
	"time"

	"github.com/vapor-ui/vapor/internal/verrors"
)

// Breadcrumb is one action in the trail leading up to a diagnostic,
// mirroring the teacher's Breadcrumb shape.
type Breadcrumb struct {
	Category string
	Message  string
	Level    string
	At       time.Time
	Data     map[string]any
}

// Context carries the rich, optional detail a Reporter can attach to a
// diagnostic beyond what verrors.Error itself already classifies.
type Context struct {
	Tags        map[string]string
	Extra       map[string]any
	Breadcrumbs []Breadcrumb
	StackTrace  []byte
}

// Reporter is a pluggable error-tracking backend, generalizing the
// teacher's ErrorReporter interface to verrors.Error as the reported type.
type Reporter interface {
	Report(err verrors.Error, ctx Context)
	Flush(timeout time.Duration) error
}

var (
	mu       sync.RWMutex
	reporter Reporter
)

// SetReporter configures the process-wide Reporter. Passing nil disables
// reporting.
func SetReporter(r Reporter) {
	mu.Lock()
	defer mu.Unlock()
	reporter = r
}

// Report delivers err (with ctx) to the configured Reporter, if any.
func Report(err verrors.Error, ctx Context) {
	mu.RLock()
	r := reporter
	mu.RUnlock()
	if r == nil {
		return
	}
	r.Report(err, ctx)
}

// Flush flushes the configured Reporter, if any.
func Flush(timeout time.Duration) error {
	mu.RLock()
	r := reporter
	mu.RUnlock()
	if r == nil {
		return nil
	}
	return r.Flush(timeout)
}
