// Package metrics provides Prometheus metrics for the taskboard server.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal counts finished RPCs by method and status code.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskboard",
			Name:      "rpc_requests_total",
			Help:      "Total number of handled RPCs",
		},
		[]string{"method", "code"},
	)

	// RequestDuration measures RPC latency.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "taskboard",
			Name:      "rpc_duration_seconds",
			Help:      "Duration of RPCs in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	// MutationsTotal counts successful task and profile writes.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "taskboard",
			Name:      "mutations_total",
			Help:      "Total number of successful mutations",
		},
		[]string{"entity", "operation"},
	)
)

// RecordRequest records one finished RPC.
func RecordRequest(method, code string, seconds float64) {
	RequestsTotal.WithLabelValues(method, code).Inc()
	RequestDuration.WithLabelValues(method).Observe(seconds)
}

// RecordMutation records a successful write of entity.
func RecordMutation(entity, operation string) {
	MutationsTotal.WithLabelValues(entity, operation).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
