// Package metrics exposes the Prometheus registry of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the registry and the collectors recorded by the service.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	exportsTotal    *prometheus.CounterVec
	exportDuration  *prometheus.HistogramVec
	queueClaimed    prometheus.Counter
}

// New initializes the registry with HTTP, export and queue metrics.
func New() *Metrics {
	registry := prometheus.NewRegistry()
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carbex_http_requests_total",
		Help: "HTTP requests by route, method and status code.",
	}, []string{"route", "method", "code"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carbex_http_request_duration_seconds",
		Help:    "HTTP request latency by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
	exports := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "carbex_exports_total",
		Help: "Generated report artifacts by format and outcome.",
	}, []string{"format", "status"})
	exportDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "carbex_export_duration_seconds",
		Help:    "Time spent building, rendering and storing an artifact.",
		Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
	}, []string{"format"})
	claimed := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "carbex_report_queue_claimed_total",
		Help: "Pending reports claimed by the queue worker.",
	})
	registry.MustRegister(requests, duration, exports, exportDuration, claimed,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	return &Metrics{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestsTotal:   requests,
		requestDuration: duration,
		exportsTotal:    exports,
		exportDuration:  exportDuration,
		queueClaimed:    claimed,
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// Middleware records request count and latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requestsTotal.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ObserveExport records one artifact generation.
func (m *Metrics) ObserveExport(format string, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "failure"
	}
	m.exportsTotal.WithLabelValues(format, status).Inc()
	m.exportDuration.WithLabelValues(format).Observe(elapsed.Seconds())
}

// QueueClaimed counts reports claimed by one poll.
func (m *Metrics) QueueClaimed(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.queueClaimed.Add(float64(n))
}
