package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OpCreate = "create"
	OpUpdate = "update"
	OpCancel = "cancel"

	OutcomeOK        = "ok"
	OutcomeDuplicate = "duplicate"
	OutcomeNotFound  = "not_found"
	OutcomeError     = "error"
)

var (
	ReservationOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservation_operations_total",
			Help: "Reservation store operations by outcome",
		},
		[]string{"op", "outcome"},
	)
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "page_sessions_active",
			Help: "Open page sessions",
		},
	)
)
