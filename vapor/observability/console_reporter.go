package observability

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vapor-ui/vapor/internal/verrors"
)

// ConsoleReporter writes diagnostics to an io.Writer (stderr by default),
// grounded on the teacher's ConsoleReporter used in development before a
// Sentry DSN is configured.
type ConsoleReporter struct {
	w       io.Writer
	verbose bool
}

// NewConsoleReporter returns a ConsoleReporter writing to stderr. When
// verbose is true, Context.Extra and breadcrumbs are printed too.
func NewConsoleReporter(verbose bool) *ConsoleReporter {
	return &ConsoleReporter{w: os.Stderr, verbose: verbose}
}

func (r *ConsoleReporter) Report(err verrors.Error, ctx Context) {
	fmt.Fprintf(r.w, "[vapor] %s\n", err.Error())
	if !r.verbose {
		return
	}
	for k, v := range ctx.Tags {
		fmt.Fprintf(r.w, "  tag %s=%s\n", k, v)
	}
	for k, v := range ctx.Extra {
		fmt.Fprintf(r.w, "  extra %s=%v\n", k, v)
	}
	for _, bc := range ctx.Breadcrumbs {
		fmt.Fprintf(r.w, "  breadcrumb [%s] %s\n", bc.Category, bc.Message)
	}
}

func (r *ConsoleReporter) Flush(time.Duration) error { return nil }
