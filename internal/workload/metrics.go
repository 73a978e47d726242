package workload

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the workload counters, labeled by ring mode.
type Metrics struct {
	Enqueued   *prometheus.CounterVec
	Rejected   *prometheus.CounterVec
	Dequeued   *prometheus.CounterVec
	EmptyPolls *prometheus.CounterVec
	Duration   *prometheus.HistogramVec
}

// NewMetrics creates and registers the workload metrics.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	factory := promauto.With(registry)
	labels := []string{"mode"}

	return &Metrics{
		Enqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hioload_ring_enqueued_total",
				Help: "Total number of items accepted by the ring",
			},
			labels,
		),
		Rejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hioload_ring_rejected_total",
				Help: "Total number of enqueue attempts rejected because the ring was full",
			},
			labels,
		),
		Dequeued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hioload_ring_dequeued_total",
				Help: "Total number of items removed from the ring",
			},
			labels,
		),
		EmptyPolls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hioload_ring_empty_polls_total",
				Help: "Total number of dequeue attempts on an empty ring",
			},
			labels,
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "hioload_ring_run_duration_seconds",
				Help:    "Wall time of completed workload runs",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
			},
			labels,
		),
	}
}

func (m *Metrics) observe(r *Result) {
	if m == nil {
		return
	}
	m.Enqueued.WithLabelValues(r.Mode).Add(float64(r.Enqueued))
	m.Rejected.WithLabelValues(r.Mode).Add(float64(r.Rejected))
	m.Dequeued.WithLabelValues(r.Mode).Add(float64(r.Dequeued))
	m.EmptyPolls.WithLabelValues(r.Mode).Add(float64(r.EmptyPolls))
	m.Duration.WithLabelValues(r.Mode).Observe(r.Duration.Seconds())
}
