package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of HTTP requests processed by the job-board service.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "jobboard_http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
	wsActiveConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "jobboard_ws_active_connections",
			Help: "Number of active conversation websocket connections.",
		},
	)
	wsEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_ws_events_total",
			Help: "Total number of websocket events.",
		},
		[]string{"event"},
	)
	messagesSentTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_messages_sent_total",
			Help: "Total number of messages persisted by the ingest endpoint.",
		},
	)
	sendDeniedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_send_denied_total",
			Help: "Total number of message sends rejected by the gate.",
		},
		[]string{"reason"},
	)
	amqpPublishErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "jobboard_amqp_publish_errors_total",
			Help: "Total number of AMQP publish errors.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		httpRequestsTotal,
		httpRequestDuration,
		wsActiveConnections,
		wsEventsTotal,
		messagesSentTotal,
		sendDeniedTotal,
		amqpPublishErrorsTotal,
	)
}

// HTTPMetricsMiddleware records request counters and latencies per route.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()

		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

func IncWSActive() {
	wsActiveConnections.Inc()
}

func DecWSActive() {
	wsActiveConnections.Dec()
}

func IncWSEvent(event string) {
	wsEventsTotal.WithLabelValues(event).Inc()
}

func IncMessageSent() {
	messagesSentTotal.Inc()
}

func IncSendDenied(reason string) {
	sendDeniedTotal.WithLabelValues(reason).Inc()
}

func IncAMQPPublishError() {
	amqpPublishErrorsTotal.Inc()
}
