// Package metrics exposes Prometheus collectors for the API and the game.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agents_rest_http_requests_total",
			Help: "HTTP requests handled, by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "agents_rest_http_request_duration_seconds",
			Help:    "Duration of HTTP request handling",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	EntityMovesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agents_rest_entity_moves_total",
			Help: "Location changes applied, by entity kind and cause",
		},
		[]string{"kind", "cause"}, // agent|target, pin|move|mission
	)

	MissionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "agents_rest_missions_total",
			Help: "Mission transitions, by resulting status",
		},
		[]string{"status"},
	)

	FeedSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "agents_rest_feed_subscribers",
			Help: "Connected live feed subscribers",
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestsTotal)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(EntityMovesTotal)
	prometheus.MustRegister(MissionsTotal)
	prometheus.MustRegister(FeedSubscribers)
}

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
