package observability

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/vapor-ui/vapor/internal/verrors"
)

// SentryReporter sends diagnostics to Sentry, adapted from the teacher's
// SentryReporter (pkg/bubbly/observability/sentry_reporter.go) to report
// verrors.Error values instead of HandlerPanicError, since vapor's engine
// classifies every failure (not just handler panics) through one closed
// Kind enum.
type SentryReporter struct {
	hub *sentry.Hub
}

// SentryOption configures the Sentry client during NewSentryReporter.
type SentryOption func(*sentry.ClientOptions)

// WithDebug enables Sentry SDK debug logging.
func WithDebug(debug bool) SentryOption {
	return func(o *sentry.ClientOptions) { o.Debug = debug }
}

// WithEnvironment tags every event with environment.
func WithEnvironment(environment string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Environment = environment }
}

// WithRelease tags every event with release.
func WithRelease(release string) SentryOption {
	return func(o *sentry.ClientOptions) { o.Release = release }
}

// NewSentryReporter initializes the Sentry SDK with dsn (empty disables
// sending, useful in tests) and returns a Reporter backed by it.
func NewSentryReporter(dsn string, opts ...SentryOption) (*SentryReporter, error) {
	clientOpts := sentry.ClientOptions{Dsn: dsn}
	for _, opt := range opts {
		opt(&clientOpts)
	}
	if err := sentry.Init(clientOpts); err != nil {
		return nil, fmt.Errorf("vapor/observability: sentry init: %w", err)
	}
	return &SentryReporter{hub: sentry.CurrentHub()}, nil
}

func (r *SentryReporter) Report(err verrors.Error, ctx Context) {
	r.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("kind", err.Kind.String())
		scope.SetTag("component", err.Diagnostic.Component)
		scope.SetTag("node_id", err.Diagnostic.NodeID)
		scope.SetTag("operation", err.Diagnostic.Operation)
		for k, v := range ctx.Tags {
			scope.SetTag(k, v)
		}
		for k, v := range ctx.Extra {
			scope.SetExtra(k, v)
		}
		for _, bc := range ctx.Breadcrumbs {
			scope.AddBreadcrumb(&sentry.Breadcrumb{
				Category:  bc.Category,
				Message:   bc.Message,
				Level:     sentry.Level(bc.Level),
				Timestamp: bc.At,
				Data:      bc.Data,
			}, 100)
		}
		r.hub.CaptureException(err)
	})
}

func (r *SentryReporter) Flush(timeout time.Duration) error {
	sentry.Flush(timeout)
	return nil
}
