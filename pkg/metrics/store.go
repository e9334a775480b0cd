package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// StoreMetrics records outcomes of datastore operations.
type StoreMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
}

// NewStoreMetrics registers the datastore metrics on the provided registerer.
func NewStoreMetrics(reg prometheus.Registerer) *StoreMetrics {
	if reg == nil {
		return &StoreMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of datastore operations in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operation_success",
		Help: "Successful datastore operations.",
	}, []string{"operation"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "store_operation_failure",
		Help: "Failed datastore operations.",
	}, []string{"operation"})
	reg.MustRegister(duration, success, failure)
	return &StoreMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
	}
}

// Observe records a completed operation with its duration and outcome.
func (s *StoreMetrics) Observe(operation string, duration time.Duration, err error) {
	if s == nil {
		return
	}
	label := normalizeLabel(operation)
	if s.duration != nil {
		s.duration.WithLabelValues(label).Observe(duration.Seconds())
	}
	if err != nil {
		if s.failure != nil {
			s.failure.WithLabelValues(label).Inc()
		}
		return
	}
	if s.success != nil {
		s.success.WithLabelValues(label).Inc()
	}
}

func normalizeLabel(operation string) string {
	if operation == "" {
		return "unknown"
	}
	return operation
}
