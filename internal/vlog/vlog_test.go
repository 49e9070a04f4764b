package vlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfoWritesLevelAndMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.Info("pass committed", Field("commands", "3"))

	out := buf.String()
	if !strings.Contains(out, "[INFO]") || !strings.Contains(out, "pass committed") {
		t.Fatalf("expected level and message in output, got %q", out)
	}
	if !strings.Contains(out, `commands="3"`) {
		t.Fatalf("expected field rendered in output, got %q", out)
	}
}

func TestDiscardProducesNoOutput(t *testing.T) {
	l := Discard()
	l.Error("should not appear")
	// Discard has no observable buffer; this test only asserts it does not panic.
}
