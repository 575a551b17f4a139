// Package v1 implements the v1 API for ledger sessions and snapshots.
package v1

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/workload-planner/backend/internal/session"
)

// Controller holds the state the handlers work on.
type Controller struct {
	Sessions      *session.Store
	DefaultTarget decimal.Decimal // Target for every month of ledgers created without targets
}

var editCount = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "ledger_edits_total",
		Help: "How many ledger edits were processed, partitioned by the kind of edit and whether it was accepted.",
	},
	[]string{"kind", "result"},
)

// Collectors returns the Prometheus collectors of the v1 API.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{editCount}
}

// countEdit records the result of an edit.
func countEdit(kind string, err error) {
	result := "accepted"
	if err != nil {
		result = "rejected"
	}
	editCount.WithLabelValues(kind, result).Inc()
}
