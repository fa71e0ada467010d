package workload

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/openfga/linkedstack/internal/build"
)

const (
	popOutcomeValue = "value"
	popOutcomeEmpty = "empty"
)

// Metrics holds the collectors updated by Run.
type Metrics struct {
	pushCount          *prometheus.CounterVec
	popCount           *prometheus.CounterVec
	releasedNodesCount *prometheus.CounterVec
	teardownDurationMs *prometheus.HistogramVec
}

// NewMetrics creates the workload collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		pushCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: build.ProjectName,
			Name:      "push_count",
			Help:      "The total number of values pushed onto stacks.",
		}, []string{"variant"}),

		popCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: build.ProjectName,
			Name:      "pop_count",
			Help:      "The total number of pop calls, labeled by whether a value was returned.",
		}, []string{"variant", "outcome"}),

		releasedNodesCount: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: build.ProjectName,
			Name:      "released_nodes_count",
			Help:      "The total number of nodes dropped by stack teardown.",
		}, []string{"variant"}),

		teardownDurationMs: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:                       build.ProjectName,
			Name:                            "teardown_duration_ms",
			Help:                            "Time taken to release a whole stack.",
			Buckets:                         []float64{0.1, 0.5, 1, 5, 10, 25, 50, 100, 500, 1000},
			NativeHistogramBucketFactor:     1.1,
			NativeHistogramMaxBucketNumber:  100,
			NativeHistogramMinResetDuration: time.Hour,
		}, []string{"variant"}),
	}
}

func (m *Metrics) observe(variant Variant, w WorkerReport) {
	if m == nil {
		return
	}

	v := string(variant)
	m.pushCount.WithLabelValues(v).Add(float64(w.Pushed))
	m.popCount.WithLabelValues(v, popOutcomeValue).Add(float64(w.Popped))
	m.popCount.WithLabelValues(v, popOutcomeEmpty).Add(float64(w.EmptyPops))
	m.releasedNodesCount.WithLabelValues(v).Add(float64(w.Released))
	m.teardownDurationMs.WithLabelValues(v).Observe(float64(w.TeardownDuration) / float64(time.Millisecond))
}
