package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sns_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DomainEvents counts change events handed to the publisher, by type and outcome.
	DomainEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sns_domain_events_total",
		Help: "Total number of domain change events by type and outcome",
	}, []string{"type", "outcome"})

	// StoreTxDuration records how long a unit of work held the store.
	StoreTxDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "sns_store_tx_seconds",
		Help:    "Duration of store units of work in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode", "outcome"})
)

// ObserveStoreTx records a unit of work that started at start.
func ObserveStoreTx(mode string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	StoreTxDuration.WithLabelValues(mode, outcome).Observe(time.Since(start).Seconds())
}
