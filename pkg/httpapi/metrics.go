package httpapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	statusSuccess = "success"
	statusError   = "error"
)

// Metrics holds all Prometheus metrics for the control plane: HTTP
// request metrics plus the stream gauges the /stats handler refreshes.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight *prometheus.GaugeVec

	streamWritesTotal    *prometheus.CounterVec
	streamWriteDuration  prometheus.Histogram
	streamSizeBytes      prometheus.Gauge
	streamFramesReplayed prometheus.Gauge

	healthChecksTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staabler_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),
		httpRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "staabler_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),
		httpRequestsInFlight: promauto.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "staabler_http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
			[]string{"method", "endpoint"},
		),
		streamWritesTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staabler_stream_writes_total",
				Help: "Total number of writeManySync batches, by outcome",
			},
			[]string{"status"},
		),
		streamWriteDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "staabler_stream_write_duration_seconds",
				Help:    "writeManySync batch duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		streamSizeBytes: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "staabler_stream_size_bytes",
				Help: "Current on-disk size of the append-only record stream",
			},
		),
		streamFramesReplayed: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "staabler_stream_frames_replayed",
				Help: "Frames validated during the most recent Open replay",
			},
		),
		healthChecksTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "staabler_health_checks_total",
				Help: "Total number of health checks",
			},
			[]string{"status"},
		),
	}
}

// RecordHTTPRequest records an HTTP request.
func (m *Metrics) RecordHTTPRequest(method, endpoint string, statusCode int, duration time.Duration) {
	statusCodeStr := strconv.Itoa(statusCode)
	m.httpRequestsTotal.WithLabelValues(method, endpoint, statusCodeStr).Inc()
	m.httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordStreamWrite records one writeManySync batch.
func (m *Metrics) RecordStreamWrite(success bool, duration time.Duration) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.streamWritesTotal.WithLabelValues(status).Inc()
	m.streamWriteDuration.Observe(duration.Seconds())
}

// UpdateStreamStats refreshes the gauges the /stats handler also reports.
func (m *Metrics) UpdateStreamStats(sizeBytes int64, framesReplayed int64) {
	m.streamSizeBytes.Set(float64(sizeBytes))
	m.streamFramesReplayed.Set(float64(framesReplayed))
}

// RecordHealthCheck records a health check.
func (m *Metrics) RecordHealthCheck(success bool) {
	status := statusSuccess
	if !success {
		status = statusError
	}
	m.healthChecksTotal.WithLabelValues(status).Inc()
}

// InstrumentHandler instruments an HTTP handler with request metrics.
func (m *Metrics) InstrumentHandler(method, endpoint string, handler http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		gauge := m.httpRequestsInFlight.WithLabelValues(method, endpoint)
		gauge.Inc()
		defer gauge.Dec()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		handler(rw, r)

		m.RecordHTTPRequest(method, endpoint, rw.statusCode, time.Since(start))
	}
}
