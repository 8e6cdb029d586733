package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	// HTTPRequestsTotal counts handled requests by method, route pattern and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests handled",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "http_rate_limited_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

// Cache Metrics
var (
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Cache lookups served from Redis",
		},
		[]string{"entity"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Cache lookups that fell through to the database",
		},
		[]string{"entity"},
	)

	CacheErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cache_errors_total",
			Help: "Redis errors ignored by the cache layer",
		},
	)
)

// Push Metrics
var (
	PushSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "push_messages_total",
			Help: "Push messages by delivery result",
		},
		[]string{"result"},
	)

	// PushBreakerState is 0 closed, 1 half-open, 2 open
	PushBreakerState = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "push_circuit_breaker_state",
			Help: "Current FCM circuit breaker state",
		},
	)
)

// Job Metrics
var (
	CleanupRowsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cleanup_rows_total",
			Help: "Rows touched by scheduled cleanup jobs",
		},
		[]string{"job"},
	)

	WebSocketClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "admin_websocket_clients",
			Help: "Connected admin WebSocket clients",
		},
	)
)
