package verrors

import (
	"errors"
	"testing"
)

func TestErrorMessageIncludesKindAndCause(t *testing.T) {
	cause := errors.New("boom")
	e := New(KindResource, "persist arena exhausted").WithCause(cause)

	got := e.Error()
	if got != "vapor: resource: persist arena exhausted: boom" {
		t.Fatalf("unexpected error message: %q", got)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("boom")
	e := New(KindHandler, "panic recovered").WithCause(cause)

	if !errors.Is(e, cause) {
		t.Fatalf("expected errors.Is to find the wrapped cause")
	}
}

func TestWithDiagnosticIsImmutable(t *testing.T) {
	base := New(KindRouter, "no matching route")
	withDiag := base.WithDiagnostic(Diagnostic{Operation: "navigate"})

	if base.Diagnostic.Operation != "" {
		t.Fatalf("expected base Error to be unmodified, got %+v", base.Diagnostic)
	}
	if withDiag.Diagnostic.Operation != "navigate" {
		t.Fatalf("expected diagnostic attached to the returned copy")
	}
}
