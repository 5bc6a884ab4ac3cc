package services

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds every collector exposed on /metrics
var Registry = prometheus.NewRegistry()

var (
	// AttorneyRecords is the record count seen by the last read or write
	AttorneyRecords = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "attorney_records",
		Help: "Number of attorney records in the document after the last access.",
	})

	// HTTPRequests counts gateway requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "attorney_http_requests_total",
		Help: "HTTP requests handled, partitioned by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by method and route
	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "attorney_http_request_duration_seconds",
		Help:    "HTTP request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
)

func init() {
	Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		AttorneyRecords,
		HTTPRequests,
		HTTPDuration,
	)
}

// MetricsHandler serves the registry in the Prometheus exposition format
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{
		ErrorHandling: promhttp.ContinueOnError,
	})
}
