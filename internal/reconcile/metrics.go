package reconcile

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rebuilds = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cellgrid",
		Subsystem: "reconcile",
		Name:      "rebuilds_total",
		Help:      "Number of full entity set rebuilds.",
	})
	entitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cellgrid",
		Subsystem: "reconcile",
		Name:      "entities_created_total",
		Help:      "Cell entities created in the entity store.",
	})
	entitiesDeleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "cellgrid",
		Subsystem: "reconcile",
		Name:      "entities_deleted_total",
		Help:      "Cell entities deleted from the entity store.",
	})
	entitiesLive = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "cellgrid",
		Subsystem: "reconcile",
		Name:      "entities",
		Help:      "Cell entities currently owned by the reconciler.",
	})
)
