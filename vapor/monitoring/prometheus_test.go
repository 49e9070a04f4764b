package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordPassIncrementsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordPass(5*time.Millisecond, map[string]int{"add": 2, "update": 1})

	mf, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error gathering metrics: %v", err)
	}

	var sawPasses, sawCommands bool
	for _, f := range mf {
		switch f.GetName() {
		case "vapor_passes_total":
			sawPasses = true
			if f.Metric[0].GetCounter().GetValue() != 1 {
				t.Fatalf("expected 1 pass recorded, got %v", f.Metric[0].GetCounter().GetValue())
			}
		case "vapor_commands_applied_total":
			sawCommands = true
		}
	}
	if !sawPasses || !sawCommands {
		t.Fatalf("expected both pass and command metrics registered, got %v", namesOf(mf))
	}
}

func namesOf(mf []*dto.MetricFamily) []string {
	out := make([]string, len(mf))
	for i, f := range mf {
		out[i] = f.GetName()
	}
	return out
}

func TestRecordArenaAllocationIncrementsPerKind(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)

	m.RecordArenaAllocation("frame")
	m.RecordArenaAllocation("frame")
	m.RecordArenaAllocation("view")

	mf, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error gathering metrics: %v", err)
	}
	for _, f := range mf {
		if f.GetName() != "vapor_arena_allocations_total" {
			continue
		}
		for _, metric := range f.Metric {
			for _, l := range metric.Label {
				if l.GetName() == "kind" && l.GetValue() == "frame" && metric.GetCounter().GetValue() != 2 {
					t.Fatalf("expected frame kind counted twice, got %v", metric.GetCounter().GetValue())
				}
			}
		}
	}
}
