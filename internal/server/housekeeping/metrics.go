package housekeeping

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains Prometheus metrics for the housekeeping sweeper.
type Metrics struct {
	sweeps        *prometheus.CounterVec
	softDeleted   prometheus.Counter
	deleted       *prometheus.CounterVec
	sweepDuration prometheus.Histogram
}

// NewMetrics creates sweep collectors registered against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		sweeps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rallly_housekeeping_sweeps_total",
				Help: "Total number of housekeeping sweeps, by result",
			},
			[]string{"result"},
		),

		softDeleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "rallly_housekeeping_polls_soft_deleted_total",
				Help: "Total number of polls tombstoned for inactivity",
			},
		),

		deleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rallly_housekeeping_polls_deleted_total",
				Help: "Total number of polls permanently removed, by pass",
			},
			[]string{"pass"},
		),

		sweepDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "rallly_housekeeping_sweep_duration_seconds",
				Help:    "Duration of a full housekeeping sweep",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
