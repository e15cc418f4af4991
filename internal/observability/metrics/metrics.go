// Package metrics exposes the application's prometheus instruments.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
)

// Metrics holds the application-level instruments.
type Metrics struct {
	bookingTransitions *prometheus.CounterVec
	pointsAwarded      prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

// NewRegistry builds the registry with the standard process and Go collectors.
func NewRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// New registers the application instruments on the given registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		bookingTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subiclife_booking_transitions_total",
			Help: "Booking lifecycle transitions by operation and resulting status.",
		}, []string{"operation", "status"}),
		pointsAwarded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subiclife_loyalty_points_awarded_total",
			Help: "Loyalty points awarded by lifecycle transitions.",
		}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "subiclife_http_requests_total",
			Help: "HTTP requests by method, route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "subiclife_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	registry.MustRegister(m.bookingTransitions, m.pointsAwarded, m.httpRequests, m.httpDuration)
	return m
}

// ObserveTransition counts one lifecycle transition.
func (m *Metrics) ObserveTransition(operation, status string) {
	m.bookingTransitions.WithLabelValues(operation, status).Inc()
}

// ObservePoints counts loyalty points handed out.
func (m *Metrics) ObservePoints(points int) {
	m.pointsAwarded.Add(float64(points))
}

// GinMiddleware instruments every request by route template.
func (m *Metrics) GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Module wires the prometheus registry and application instruments.
var Module = fx.Module("observability.metrics",
	fx.Provide(NewRegistry),
	fx.Provide(New),
)
