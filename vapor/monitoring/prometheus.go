// Package monitoring exposes Prometheus metrics for the engine's pass
// loop, reconciler, and arenas, adapted from the teacher's
// pkg/bubbly/monitoring.PrometheusMetrics (composable-creation/cache-hit
// counters) to vapor's pass-centric metrics: pass duration, command
// counts by op, and arena allocation counts by kind. All metrics are
// prefixed "vapor_" in place of the teacher's "bubblyui_" prefix.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the set of Prometheus collectors the engine reports pass
// telemetry through.
type Metrics struct {
	passDuration    prometheus.Histogram
	commandsApplied *prometheus.CounterVec
	passesTotal     prometheus.Counter
	arenaAllocs     *prometheus.CounterVec
}

// NewMetrics registers every collector against reg (prometheus.
// DefaultRegisterer for the global registry, or prometheus.NewRegistry()
// for an isolated one) and returns a handle for recording observations.
// Registration failures (e.g. duplicate names) panic, matching the
// teacher's fail-fast-at-startup stance.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	passDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "vapor_pass_duration_seconds",
		Help:    "Duration of one build+reconcile+apply pass.",
		Buckets: prometheus.DefBuckets,
	})
	commandsApplied := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vapor_commands_applied_total",
		Help: "Total number of reconciler commands applied, partitioned by op.",
	}, []string{"op"})
	passesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "vapor_passes_total",
		Help: "Total number of completed passes.",
	})
	arenaAllocs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "vapor_arena_allocations_total",
		Help: "Total number of arena allocations, partitioned by arena kind.",
	}, []string{"kind"})

	reg.MustRegister(passDuration, commandsApplied, passesTotal, arenaAllocs)

	return &Metrics{
		passDuration:    passDuration,
		commandsApplied: commandsApplied,
		passesTotal:     passesTotal,
		arenaAllocs:     arenaAllocs,
	}
}

// RecordPass records one completed pass's wall-clock duration and the
// number of commands it applied, partitioned by op name.
func (m *Metrics) RecordPass(d time.Duration, commandCountsByOp map[string]int) {
	m.passDuration.Observe(d.Seconds())
	m.passesTotal.Inc()
	for op, n := range commandCountsByOp {
		m.commandsApplied.WithLabelValues(op).Add(float64(n))
	}
}

// RecordArenaAllocation records one allocation from the named arena kind.
func (m *Metrics) RecordArenaAllocation(kind string) {
	m.arenaAllocs.WithLabelValues(kind).Inc()
}
