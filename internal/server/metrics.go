package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the API.
type Metrics struct {
	Conversions        *prometheus.CounterVec
	ConversionDuration prometheus.Histogram
	DatasetLoads       *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewMetrics registers the API collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Conversions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asselect_conversions_total",
				Help: "OpenAir conversions by output format and status",
			},
			[]string{"format", "status"},
		),
		ConversionDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "asselect_conversion_duration_seconds",
				Help:    "OpenAir conversion latency in seconds",
				Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
			},
		),
		DatasetLoads: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "asselect_dataset_loads_total",
				Help: "Dataset cache lookups by result (hit, unchanged, loaded, error)",
			},
			[]string{"result"},
		),
		registry: reg,
	}
}

// Registry returns the registry the collectors live in.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }
