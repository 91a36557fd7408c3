package metrics

import "github.com/prometheus/client_golang/prometheus"

// NewAssignmentsCreatedTotal returns a Prometheus counter for created assignments
func NewAssignmentsCreatedTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "assignments_created_total",
		Help: "Total number of restaurant assignments dispatched",
	})
}

// NewAssignmentResolutionsTotal returns a Prometheus counter vector for applied
// assignment resolutions, labeled by terminal outcome
func NewAssignmentResolutionsTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "assignment_resolutions_total",
		Help: "Total number of applied assignment resolutions by outcome",
	}, []string{"outcome"})
}

// NewOrdersFinalizedTotal returns a Prometheus counter vector for orders that
// reached a terminal status through the assignment engine
func NewOrdersFinalizedTotal() *prometheus.CounterVec {
	return prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_finalized_total",
		Help: "Total number of orders finalized by the assignment engine, by status",
	}, []string{"status"})
}

// NewStaleEventsTotal returns a Prometheus counter for discarded stale events
func NewStaleEventsTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "stale_events_total",
		Help: "Total number of stale assignment events discarded by the projector",
	})
}

// NewStoreRetriesTotal returns a Prometheus counter for store operation retries
func NewStoreRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "store_retries_total",
		Help: "Total number of retry attempts against the assignment record store",
	})
}

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}
