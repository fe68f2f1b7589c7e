// Package metrics instruments kedge.Table dispatch with Prometheus
// collectors: a SummaryVec of dispatch latency by method/pattern/outcome,
// plus a lock-free counter of total dispatches kept alongside the vector
// for cheap reads that don't walk Prometheus's own label index.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/atomic"

	"github.com/dormoron/kedge"
)

// Recorder wraps a *kedge.Table[H] so every Dispatch call is observed. It
// does not alter dispatch semantics in any way — a miss is still a miss, a
// prefix-only match still reports a nil handler — it only measures.
type Recorder[H any] struct {
	table   *kedge.Table[H]
	latency *prometheus.SummaryVec
	total   atomic.Int64
}

// NewRecorder builds a Recorder around table, registering a SummaryVec
// named <namespace>_<subsystem>_dispatch_duration_microseconds.
// Registration follows the teacher's prometheus middleware convention:
// MustRegister at construction time, so a duplicate Recorder for the same
// namespace/subsystem panics exactly as repeated prometheus.MustRegister
// calls would.
func NewRecorder[H any](table *kedge.Table[H], namespace, subsystem string) *Recorder[H] {
	vec := prometheus.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "dispatch_duration_microseconds",
		Help:      "Route dispatch latency in microseconds, by method, pattern, and outcome.",
		Objectives: map[float64]float64{
			0.5:   0.01,
			0.9:   0.01,
			0.99:  0.001,
			0.999: 0.0001,
		},
	}, []string{"method", "pattern", "hit"})
	prometheus.MustRegister(vec)

	return &Recorder[H]{table: table, latency: vec}
}

// Dispatch measures and delegates to the underlying Table's Dispatch.
func (r *Recorder[H]) Dispatch(method, path string) (kedge.Match[H], bool) {
	start := time.Now()
	match, ok := r.table.Dispatch(method, path)
	duration := time.Since(start).Microseconds()

	pattern := match.FullPath
	if pattern == "" {
		pattern = "unknown"
	}
	r.latency.WithLabelValues(method, pattern, strconv.FormatBool(ok)).Observe(float64(duration))
	r.total.Add(1)

	return match, ok
}

// TotalDispatches returns the number of Dispatch calls observed so far.
func (r *Recorder[H]) TotalDispatches() int64 {
	return r.total.Load()
}
