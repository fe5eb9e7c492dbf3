package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the meeting pipeline.
type Metrics struct {
	RunsTotal          *prometheus.CounterVec
	StageSeconds       *prometheus.HistogramVec
	StageFailuresTotal *prometheus.CounterVec
	DeadlinesExtracted prometheus.Histogram
}

// DefaultMetrics creates metrics on the default registerer.
func DefaultMetrics() *Metrics {
	return NewMetrics(prometheus.DefaultRegisterer)
}

// NewMetrics creates a new set of pipeline metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minuted_pipeline_runs_total",
				Help: "Total pipeline runs by outcome",
			},
			[]string{"status"},
		),
		StageSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "minuted_pipeline_stage_seconds",
				Help:    "Duration of each pipeline stage",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 12),
			},
			[]string{"stage"},
		),
		StageFailuresTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "minuted_pipeline_stage_failures_total",
				Help: "Stage failures, including absorbed ones",
			},
			[]string{"stage"},
		),
		DeadlinesExtracted: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "minuted_deadlines_extracted",
				Help:    "Number of deadlines extracted per meeting",
				Buckets: prometheus.LinearBuckets(0, 1, 11),
			},
		),
	}
}
