package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	adjustmentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_adjustments_total",
			Help: "Number of committed stock adjustments by type.",
		},
		[]string{"adjustment_type"},
	)

	operationFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_operation_failures_total",
			Help: "Number of failed ledger operations by operation name.",
		},
		[]string{"operation"},
	)
)
