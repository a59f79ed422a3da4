// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallpapersky_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallpapersky_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// Wallpapers
var (
	// OperationsTotal counts create/delete/upload outcomes.
	OperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallpapersky_operations_total",
			Help: "Wallpaper operations by kind and result.",
		},
		[]string{"operation", "result"},
	)

	WallpapersTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallpapersky_wallpapers",
			Help: "Number of wallpaper records in the store.",
		},
	)

	ImageBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallpapersky_image_bytes",
			Help: "Bytes used by stored images.",
		},
	)
)

func ObserveOperation(operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	OperationsTotal.WithLabelValues(operation, result).Inc()
}
