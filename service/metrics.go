package service

import "github.com/prometheus/client_golang/prometheus"

// Metrics instruments a Service.
type Metrics struct {
	updates  *prometheus.CounterVec
	rejected *prometheus.CounterVec
	vertices *prometheus.HistogramVec
	compute  prometheus.Histogram
}

// NewMetrics creates the service collectors and registers them on reg.
// A nil reg leaves them unregistered, which is what tests and embedded
// uses without a metrics endpoint want.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zplot",
			Name:      "updates_total",
			Help:      "Inbound updates applied, by message kind.",
		}, []string{"kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "zplot",
			Name:      "rejected_updates_total",
			Help:      "Inbound updates rejected, by message kind.",
		}, []string{"kind"}),
		vertices: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "zplot",
			Name:      "grid_vertices",
			Help:      "Vertices per emitted grid, by topology.",
			Buckets:   prometheus.ExponentialBuckets(16, 4, 8),
		}, []string{"mode"}),
		compute: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "zplot",
			Name:      "compute_seconds",
			Help:      "Time spent recomputing the grid.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.updates, m.rejected, m.vertices, m.compute)
	}
	return m
}
