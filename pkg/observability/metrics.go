// Package observability provides Prometheus metrics for the fortune
// server. Metrics are exposed on the admin listener, never on the art
// port, which must stay free of HTTP parsing.
package observability

import "github.com/prometheus/client_golang/prometheus"

// PipelineBuckets defines histogram buckets suited for short-lived
// subprocess pipelines, ranging from 5ms to 10s.
var PipelineBuckets = []float64{0.005, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10}

// Connection outcome label values.
const (
	OutcomeOK              = "ok"
	OutcomeGenerationError = "generation_error"
	OutcomeWriteError      = "write_error"
)

var (
	// ConnectionsTotal counts handled connections by outcome.
	ConnectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fortuned_connections_total",
			Help: "Connections handled",
		},
		[]string{"outcome"},
	)

	// GenerationDuration records the external pipeline duration in
	// seconds by output mode.
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "fortuned_generation_duration_seconds",
			Help:    "Quote pipeline duration",
			Buckets: PipelineBuckets,
		},
		[]string{"mode"},
	)

	// ResponseBytesTotal counts bytes written in successful responses.
	ResponseBytesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "fortuned_response_bytes_total",
			Help: "Response bytes written",
		},
	)
)

func init() {
	prometheus.MustRegister(
		ConnectionsTotal,
		GenerationDuration,
		ResponseBytesTotal,
	)
}
