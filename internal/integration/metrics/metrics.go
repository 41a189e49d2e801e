// Package metrics exposes the service's Prometheus collectors.
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

const namespace = "backoffice"

// Recorder implements adapter.MetricsRecorder and the HTTP instrumentation on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	userDeletions        *prometheus.CounterVec
	installmentsProduced prometheus.Counter
	httpRequests         *prometheus.CounterVec
	httpDuration         *prometheus.HistogramVec
}

// NewRecorder creates a Recorder with every collector registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		userDeletions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "admin_user_deletions_total",
				Help:      "Admin user deletion requests by outcome.",
			},
			[]string{"outcome"},
		),
		installmentsProduced: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "installments_generated_total",
				Help:      "Installments projected by the schedule generator.",
			},
		),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests handled.",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP requests.",
				Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
			},
			[]string{"method", "route"},
		),
	}

	r.registry.MustRegister(
		r.userDeletions,
		r.installmentsProduced,
		r.httpRequests,
		r.httpDuration,
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	return r
}

// RecordUserDeletion counts one admin deletion request by outcome.
func (r *Recorder) RecordUserDeletion(outcome string) {
	r.userDeletions.WithLabelValues(outcome).Inc()
}

// RecordInstallmentsGenerated counts projected installments.
func (r *Recorder) RecordInstallmentsGenerated(count int) {
	if count > 0 {
		r.installmentsProduced.Add(float64(count))
	}
}

// Handler returns an HTTP handler exposing the registered metrics.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Middleware records request counts and latency per matched route.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		r.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
