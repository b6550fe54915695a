package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrframe_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "qrframe_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	rendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrframe_renders_total",
			Help: "Rendered codes by output format and template",
		},
		[]string{"format", "template"},
	)

	detectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrframe_detections_total",
			Help: "Detection outcomes by winning region",
		},
		[]string{"outcome", "region"}, // outcome: found, no_qr, error
	)

	detectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qrframe_detection_duration_seconds",
			Help:    "Time spent in the region search, settle delay included",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
		},
	)

	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "qrframe_upload_size_bytes",
			Help:    "Size of uploaded images in bytes",
			Buckets: []float64{10 << 10, 100 << 10, 1 << 20, 5 << 20, 20 << 20},
		},
	)

	rateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "qrframe_rate_limit_hits_total",
			Help: "Requests rejected by the detection rate limit",
		},
	)

	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "qrframe_websocket_active_connections",
			Help: "Number of active live-scan connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "qrframe_websocket_messages_total",
			Help: "Live-scan messages by direction",
		},
		[]string{"direction"}, // received, sent
	)
)

// Instrument records request counts and latencies per route template.
func Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Metrics serves the Prometheus exposition format.
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

func observeDetection(start time.Time, outcome, region string) {
	detectionDuration.Observe(time.Since(start).Seconds())
	detectionsTotal.WithLabelValues(outcome, region).Inc()
}
