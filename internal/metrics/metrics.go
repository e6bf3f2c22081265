// Package metrics defines Prometheus metrics for campusnav.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "campusnav_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusnav_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusnav_errors_total",
			Help: "Total errors by code",
		},
		[]string{"code"},
	)

	QueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusnav_queries_total",
			Help: "Map queries by algorithm and outcome",
		},
		[]string{"algorithm", "outcome"},
	)

	CacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "campusnav_cache_lookups_total",
			Help: "Result cache lookups by result",
		},
		[]string{"result"},
	)

	Locations = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusnav_locations",
			Help: "Locations on the loaded map",
		},
	)

	Corridors = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "campusnav_corridors",
			Help: "Corridors on the loaded map",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		QueriesTotal, CacheLookups,
		Locations, Corridors,
	)
}
