// Package metrics exposes the service's Prometheus collectors and the Fiber glue around them.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nfm_http_requests_total",
		Help: "Total count of HTTP requests processed by route and status.",
	}, []string{"route", "status"})

	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nfm_http_request_duration_seconds",
		Help:    "Histogram of HTTP request durations by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// ReportsGenerated counts successful report builds by report name.
	ReportsGenerated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nfm_reports_generated_total",
		Help: "Total reports generated, by report.",
	}, []string{"report"})

	// StoreErrors counts failed database operations by operation.
	StoreErrors = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nfm_store_errors_total",
		Help: "Total database errors, by operation.",
	}, []string{"op"})

	// EventsPublished counts invoice events by outcome (ok, error, skipped).
	EventsPublished = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nfm_events_published_total",
		Help: "Total invoice events handed to the broker, by outcome.",
	}, []string{"outcome"})
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpDuration,
		ReportsGenerated,
		StoreErrors,
		EventsPublished,
	)
}

// Middleware records request count and latency under the matched route pattern.
func Middleware(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		} else {
			status = fiber.StatusInternalServerError
		}
	}

	route := c.Route().Path
	if route == "" || route == "/" && c.Path() != "/" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	return err
}

// Handler serves the Prometheus exposition format.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
