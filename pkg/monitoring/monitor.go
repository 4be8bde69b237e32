package monitoring

import (
	"strconv"
	"sync"
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

	// LLMRequests outcome: ok / unavailable / malformed
	LLMRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practice_llm_requests_total",
			Help: "Chat completion calls by purpose and outcome",
		},
		[]string{"purpose", "outcome"},
	)

	LLMDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "practice_llm_request_duration_seconds",
			Help:    "Duration of chat completion calls including the strict-JSON re-prompt",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 45},
		},
		[]string{"purpose"},
	)

	// Fallbacks kind: generate / grade
	Fallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "practice_fallback_total",
			Help: "Deterministic fallbacks taken instead of model output",
		},
		[]string{"kind", "reason"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(LLMRequests)
		prometheus.MustRegister(LLMDuration)
		prometheus.MustRegister(Fallbacks)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}
