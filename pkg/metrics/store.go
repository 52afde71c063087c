package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records latency and failures of key-value store operations.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	failure  *prometheus.CounterVec
}

// NewStoreMetrics registers the store metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kv_operation_duration_seconds",
		Help:    "Duration of key-value store operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"backend", "op"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kv_operation_failures_total",
		Help: "Failed key-value store operations.",
	}, []string{"backend", "op"})
	reg.MustRegister(duration, failure)
	return &StoreMetrics{
		duration: duration,
		failure:  failure,
	}
}

// ObserveDuration records how long op took against backend.
func (s *StoreMetrics) ObserveDuration(backend, op string, duration time.Duration) {
	if s == nil || s.duration == nil {
		return
	}
	s.duration.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Observe(duration.Seconds())
}

// IncFailure increments the failure counter for op against backend.
func (s *StoreMetrics) IncFailure(backend, op string) {
	if s == nil || s.failure == nil {
		return
	}
	s.failure.WithLabelValues(normalizeLabel(backend), normalizeLabel(op)).Inc()
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
