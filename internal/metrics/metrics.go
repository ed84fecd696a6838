// Package metrics defines the Prometheus instruments for the MCP tool
// surface and serves them over HTTP when a listen address is configured.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the instruments shared by every tool handler.
type Metrics struct {
	toolCalls    *prometheus.CounterVec
	toolDuration *prometheus.HistogramVec
}

// New registers the tool instruments on a fresh registry and returns
// both. A dedicated registry keeps the exposition free of default
// collectors from other libraries.
func New() (*Metrics, *prometheus.Registry) {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	m := &Metrics{
		toolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gatherings",
			Name:      "tool_calls_total",
			Help:      "Tool invocations by tool name and outcome.",
		}, []string{"tool", "status"}),
		toolDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gatherings",
			Name:      "tool_duration_seconds",
			Help:      "Tool handler latency by tool name.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"tool"}),
	}
	return m, registry
}

// ObserveToolCall records one completed tool invocation.
func (m *Metrics) ObserveToolCall(tool string, err error, elapsed time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.toolCalls.WithLabelValues(tool, status).Inc()
	m.toolDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// Handler returns the HTTP handler exposing the registry in the
// Prometheus text format.
func Handler(registry *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
