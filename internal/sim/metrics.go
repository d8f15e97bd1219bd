package sim

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generations = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cellgrid",
		Subsystem: "sim",
		Name:      "generations_total",
		Help:      "Generations computed by the transition engine.",
	})
	tickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cellgrid",
		Subsystem: "sim",
		Name:      "tick_duration_seconds",
		Help:      "Wall time of one advance+reconcile tick.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	})
)
