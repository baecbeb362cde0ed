// Package telemetry exposes the batch run's Prometheus metrics: orders
// processed, placement attempts/failures, GA generations run, and search
// duration. Served over /metrics by the optional "serve" command.
package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

var (
	// Registry is the dedicated Prometheus registry for this run, kept
	// separate from the global default registry so embedding callers never
	// collide with it.
	Registry = prometheus.NewRegistry()

	// OrdersProcessed counts completed orders by outcome.
	OrdersProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "palletizer_orders_processed_total", Help: "Orders processed by outcome."},
		[]string{"outcome"}, // "placed", "unplaced", "failed"
	)

	// PlacementAttempts counts placement attempts across all pallets.
	PlacementAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "palletizer_placement_attempts_total", Help: "Item placement attempts by result."},
		[]string{"result"}, // "committed", "rejected"
	)

	// GAGenerations records how many generations a search ran before
	// stopping (generation cap or stagnation).
	GAGenerations = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "palletizer_ga_generations", Help: "GA generations run per order search.", Buckets: prometheus.LinearBuckets(0, 5, 7)},
	)

	// SearchDuration records per-order wall-clock search time.
	SearchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{Name: "palletizer_search_duration_seconds", Help: "Per-order search duration in seconds.", Buckets: prometheus.DefBuckets},
	)
)

var regOnce sync.Once

// RegisterDefault registers every collector on Registry exactly once.
func RegisterDefault() {
	regOnce.Do(func() {
		Registry.MustRegister(OrdersProcessed)
		Registry.MustRegister(PlacementAttempts)
		Registry.MustRegister(GAGenerations)
		Registry.MustRegister(SearchDuration)
		Registry.MustRegister(collectors.NewGoCollector())
		Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	})
}
