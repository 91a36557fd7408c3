package app

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"service-assignment/internal/metrics"
)

type metricsOut struct {
	dig.Out

	Created     prometheus.Counter     `name:"assignments_created_total"`
	Resolutions *prometheus.CounterVec `name:"assignment_resolutions_total"`
	Finalized   *prometheus.CounterVec `name:"orders_finalized_total"`
	Stale       prometheus.Counter     `name:"stale_events_total"`
	Retries     prometheus.Counter     `name:"store_retries_total"`
	RateLimit   prometheus.Counter     `name:"rate_limit_exceeded_total"`
}

func newMetrics() metricsOut {
	out := metricsOut{
		Created:     metrics.NewAssignmentsCreatedTotal(),
		Resolutions: metrics.NewAssignmentResolutionsTotal(),
		Finalized:   metrics.NewOrdersFinalizedTotal(),
		Stale:       metrics.NewStaleEventsTotal(),
		Retries:     metrics.NewStoreRetriesTotal(),
		RateLimit:   metrics.NewRateLimitExceededTotal(),
	}

	for _, c := range []prometheus.Collector{
		out.Created, out.Resolutions, out.Finalized, out.Stale, out.Retries, out.RateLimit,
	} {
		registerCollector(c)
	}
	return out
}

// registerCollector tolerates re-registration so tests can build the
// container more than once per process.
func registerCollector(c prometheus.Collector) {
	if err := prometheus.Register(c); err != nil {
		var already prometheus.AlreadyRegisteredError
		if !errors.As(err, &already) {
			panic(err)
		}
	}
}

func registerMetrics(container *dig.Container) error {
	return provideAll(container, newMetrics)
}
