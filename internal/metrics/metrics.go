package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Count of HTTP requests"},
		[]string{"path", "method", "status"},
	)
	HTTPLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Latency of HTTP requests",
			Buckets: prometheus.DefBuckets,
		}, []string{"path", "method"},
	)
	// LedgerOps counts seat operations by resource, operation and outcome.
	LedgerOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "capacity_ledger_operations_total", Help: "Seat reserve/release outcomes"},
		[]string{"resource", "op", "result"},
	)
	// HistorialDropped counts audit entries lost to failed writes.
	HistorialDropped = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "historial_entries_dropped_total", Help: "Audit entries that could not be written"},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPLatency, LedgerOps, HistorialDropped)
}
