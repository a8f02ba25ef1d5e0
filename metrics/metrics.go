// Package metrics holds the broker's prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsReceived counts decoded requests by API name.
	RequestsReceived = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tinkafka_requests_received_total",
		Help: "Total number of requests received",
	}, []string{"api"})

	// RequestErrors counts request cycles aborted by a decode or encode error.
	RequestErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "tinkafka_request_errors_total",
		Help: "Total number of request cycles aborted by an error",
	}, []string{"api"})

	// UnknownAPIRequests counts frames silently dropped for an unsupported API key.
	UnknownAPIRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "tinkafka_unknown_api_requests_total",
		Help: "Total number of requests dropped for an unsupported API key",
	})

	// OpenConnections tracks currently open client connections.
	OpenConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "tinkafka_open_connections",
		Help: "Number of currently open client connections",
	})
)

// Serve exposes /metrics on the given address. Blocks.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
