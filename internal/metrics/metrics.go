// Package metrics holds the prometheus collectors shared by the catalog,
// cart and checkout services.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agrimart"

var (
	CatalogQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "queries_total",
		Help:      "Catalog queries by sort key",
	}, []string{"sort"})

	CatalogQueryDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "query_duration_seconds",
		Help:      "Time spent evaluating a catalog query",
		Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
	})

	CatalogFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "location_fallbacks_total",
		Help:      "Queries answered from similar locations",
	})

	CatalogCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "catalog",
		Name:      "cache_lookups_total",
		Help:      "Query cache lookups by result",
	}, []string{"result"})

	CartOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "operations_total",
		Help:      "Cart mutations by operation and outcome",
	}, []string{"op", "outcome"})

	CheckoutPayments = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "checkout",
		Name:      "payments_total",
		Help:      "Payment attempts by method and outcome",
	}, []string{"method", "outcome"})

	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route pattern and status class",
	}, []string{"route", "code"})
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// OutcomeOf maps err to an outcome label.
func OutcomeOf(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeOK
}

type Timer struct {
	start time.Time
}

func StartTimer() *Timer {
	return &Timer{start: time.Now()}
}

func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

// ObserveDuration records the elapsed time on h.
func (t *Timer) ObserveDuration(h prometheus.Observer) time.Duration {
	d := t.Duration()
	h.Observe(d.Seconds())
	return d
}
