// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var CalculationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "depreciation",
	Subsystem: "calculator",
	Name:      "calculations_total",
	Help:      "Schedules produced, by method.",
}, []string{"method"})

var InvalidRequestsTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "depreciation",
	Subsystem: "calculator",
	Name:      "invalid_requests_total",
	Help:      "Requests rejected as invalid.",
})

var CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "depreciation",
	Subsystem: "cache",
	Name:      "lookups_total",
	Help:      "Schedule cache lookups, by result (hit or miss).",
}, []string{"result"})

var RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "depreciation",
	Subsystem: "http",
	Name:      "rate_limited_total",
	Help:      "Requests rejected by the per-client rate limiter.",
})

func RecordCalculation(method string) {
	CalculationsTotal.WithLabelValues(method).Inc()
}

func RecordInvalid() {
	InvalidRequestsTotal.Inc()
}

func RecordCacheLookup(hit bool) {
	if hit {
		CacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	CacheLookupsTotal.WithLabelValues("miss").Inc()
}

func RecordRateLimited() {
	RateLimitedTotal.Inc()
}
