package web

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metrics holds the server's collectors. Every label has a bounded value
// set: routes are chi patterns, never raw paths.
type metrics struct {
	registry *prometheus.Registry

	requests    *prometheus.CounterVec
	latency     *prometheus.HistogramVec
	simulations *prometheus.CounterVec
	simulated   prometheus.Counter
	streams     prometheus.Gauge
	rejected    *prometheus.CounterVec
}

// newMetrics registers on a private registry so several servers can live
// in one process.
func newMetrics() *metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &metrics{
		registry: reg,
		requests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bounce_http_requests_total",
			Help: "HTTP requests by route and status.",
		}, []string{"method", "route", "status"}),
		latency: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "bounce_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		simulations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bounce_simulations_total",
			Help: "Replay scripts run, by result.",
		}, []string{"result"}), // ok, invalid
		simulated: f.NewCounter(prometheus.CounterOpts{
			Name: "bounce_simulated_milliseconds_total",
			Help: "Engine time simulated by replays.",
		}),
		streams: f.NewGauge(prometheus.GaugeOpts{
			Name: "bounce_replay_streams_active",
			Help: "Open replay websocket streams.",
		}),
		rejected: f.NewCounterVec(prometheus.CounterOpts{
			Name: "bounce_requests_rejected_total",
			Help: "Requests refused before reaching a handler.",
		}, []string{"reason"}), // rate_limit, origin
	}
}

func (m *metrics) handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
