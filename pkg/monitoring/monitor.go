package monitoring

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	// AuthRequests 认证网关调用结果，outcome: success | validation | rejected | conflict | unavailable
	AuthRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillup_auth_requests_total",
			Help: "Auth gateway operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	FilterCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillup_filter_cache_total",
			Help: "Course filter cache lookups",
		},
		[]string{"result"},
	)

	PlanMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillup_plan_mutations_total",
			Help: "Learning plan add/remove operations",
		},
		[]string{"operation", "result"},
	)

	CatalogReloads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skillup_catalog_reloads_total",
			Help: "Catalog loads by source and result",
		},
		[]string{"source", "result"},
	)
)

func Init() {
	prometheus.MustRegister(RequestCounter)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(AuthRequests)
	prometheus.MustRegister(FilterCache)
	prometheus.MustRegister(PlanMutations)
	prometheus.MustRegister(CatalogReloads)
}

// ObserveFilterCache 用作 FilterCache 的命中回调
func ObserveFilterCache(hit bool) {
	if hit {
		FilterCache.WithLabelValues("hit").Inc()
		return
	}
	FilterCache.WithLabelValues("miss").Inc()
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}

		RequestCounter.WithLabelValues(
			c.Request.Method,
			endpoint,
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			endpoint,
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
