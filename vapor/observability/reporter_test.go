package observability

import (
	"testing"
	"time"

	"github.com/vapor-ui/vapor/internal/verrors"
)

type recordingReporter struct {
	reports []verrors.Error
	flushed bool
}

func (r *recordingReporter) Report(err verrors.Error, ctx Context) { r.reports = append(r.reports, err) }
func (r *recordingReporter) Flush(time.Duration) error             { r.flushed = true; return nil }

func TestReportIsNoOpWithoutConfiguredReporter(t *testing.T) {
	SetReporter(nil)
	Report(verrors.New(verrors.KindHandler, "boom"), Context{})
}

func TestReportDeliversToConfiguredReporter(t *testing.T) {
	rec := &recordingReporter{}
	SetReporter(rec)
	defer SetReporter(nil)

	Report(verrors.New(verrors.KindHandler, "boom"), Context{Tags: map[string]string{"a": "b"}})
	if len(rec.reports) != 1 || rec.reports[0].Message != "boom" {
		t.Fatalf("expected the error to reach the configured reporter, got %+v", rec.reports)
	}
}

func TestFlushDelegatesToConfiguredReporter(t *testing.T) {
	rec := &recordingReporter{}
	SetReporter(rec)
	defer SetReporter(nil)

	if err := Flush(time.Second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !rec.flushed {
		t.Fatalf("expected Flush to delegate to the configured reporter")
	}
}
