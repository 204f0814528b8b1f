package handler

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// Metrics holds all Prometheus collectors for the StreamHub moderation API.
var Metrics = struct {
	ModerationActions *prometheus.CounterVec
	ReportsFiled      prometheus.Counter
	BulkItems         *prometheus.CounterVec
	RequestDuration   *prometheus.HistogramVec
	RequestsInFlight  prometheus.Gauge
	DBPoolActive      prometheus.GaugeFunc
	DBPoolIdle        prometheus.GaugeFunc
}{}

// InitMetrics registers all Prometheus metrics. Call once at startup.
func InitMetrics(pool *pgxpool.Pool) {
	Metrics.ModerationActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamhub_moderation_actions_total",
			Help: "Administrative moderation actions applied, by kind.",
		},
		[]string{"action"},
	)

	Metrics.ReportsFiled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "streamhub_reports_filed_total",
			Help: "User reports filed against content.",
		},
	)

	Metrics.BulkItems = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "streamhub_bulk_items_total",
			Help: "Per-item outcomes of bulk moderation actions.",
		},
		[]string{"action", "outcome"},
	)

	Metrics.RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "streamhub_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	Metrics.RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "streamhub_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	// DB pool gauges — read live stats from pgxpool
	if pool != nil {
		Metrics.DBPoolActive = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "streamhub_db_connection_pool_active",
				Help: "Number of active database connections.",
			},
			func() float64 {
				return float64(pool.Stat().AcquiredConns())
			},
		)

		Metrics.DBPoolIdle = prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{
				Name: "streamhub_db_connection_pool_idle",
				Help: "Number of idle database connections.",
			},
			func() float64 {
				return float64(pool.Stat().IdleConns())
			},
		)

		prometheus.MustRegister(Metrics.DBPoolActive)
		prometheus.MustRegister(Metrics.DBPoolIdle)
	}

	prometheus.MustRegister(
		Metrics.ModerationActions,
		Metrics.ReportsFiled,
		Metrics.BulkItems,
		Metrics.RequestDuration,
		Metrics.RequestsInFlight,
	)
}

// MetricsMiddleware records request duration and in-flight count for Prometheus.
func MetricsMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		// Don't instrument the /metrics endpoint itself
		if c.Path() == "/metrics" {
			return c.Next()
		}

		// Copy path and method into owned strings BEFORE c.Next() — Fiber
		// returns slices backed by the fasthttp buffer which can be reused
		// or overwritten by handlers (especially fasthttpadaptor).
		path := string([]byte(c.Path()))
		method := string([]byte(c.Method()))
		endpoint := sanitizeEndpoint(path)

		Metrics.RequestsInFlight.Inc()
		start := time.Now()

		err := c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Response().StatusCode())

		Metrics.RequestDuration.WithLabelValues(endpoint, method, status).Observe(duration)
		Metrics.RequestsInFlight.Dec()

		return err
	}
}

// sanitizeEndpoint normalizes paths to avoid cardinality explosion.
func sanitizeEndpoint(path string) string {
	switch {
	case strings.HasPrefix(path, "/api/admin/users/"):
		rest := path[len("/api/admin/users/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/admin/users/:userId" + rest[i:]
		}
		return "/api/admin/users/:userId"
	case strings.HasPrefix(path, "/api/admin/videos/") && !strings.HasPrefix(path, "/api/admin/videos/bulk-"):
		return "/api/admin/videos/:videoId"
	case strings.HasPrefix(path, "/api/users/"):
		rest := path[len("/api/users/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/users/:userId" + rest[i:]
		}
		return "/api/users/:userId"
	case strings.HasPrefix(path, "/api/videos/") && path != "/api/videos/featured":
		rest := path[len("/api/videos/"):]
		if i := strings.IndexByte(rest, '/'); i >= 0 {
			return "/api/videos/:videoId" + rest[i:]
		}
		return "/api/videos/:videoId"
	default:
		return path
	}
}

// MetricsHandler serves the Prometheus /metrics endpoint via Fiber.
func MetricsHandler() fiber.Handler {
	httpHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	return func(c fiber.Ctx) error {
		httpHandler(c.RequestCtx())
		return nil
	}
}
