package metrics

import (
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPMetrics tracks request counts and latency per route.
type HTTPMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewHTTPMetrics registers HTTP metrics on the default registry.
func NewHTTPMetrics() *HTTPMetrics {
	return &HTTPMetrics{
		requests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "meterbill_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "meterbill_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
}

// BillMetrics tracks billing domain events.
type BillMetrics struct {
	billsCreated    *prometheus.CounterVec
	paymentsCreated prometheus.Counter
	paymentsSettled *prometheus.CounterVec
}

// NewBillMetrics registers billing metrics on the default registry.
func NewBillMetrics() *BillMetrics {
	return &BillMetrics{
		billsCreated: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "meterbill_bills_created_total",
			Help: "Generated bills by utility type.",
		}, []string{"utility_type"}),
		paymentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "meterbill_payments_created_total",
			Help: "Payments recorded.",
		}),
		paymentsSettled: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "meterbill_payments_settled_total",
			Help: "Payments settled by terminal status.",
		}, []string{"status"}),
	}
}

// RecordBillCreated increments the bill counter for a utility type.
func (m *BillMetrics) RecordBillCreated(utilityType string) {
	if m == nil {
		return
	}
	m.billsCreated.WithLabelValues(strings.ToLower(strings.TrimSpace(utilityType))).Inc()
}

// RecordPaymentCreated increments the recorded-payment counter.
func (m *BillMetrics) RecordPaymentCreated() {
	if m == nil {
		return
	}
	m.paymentsCreated.Inc()
}

// RecordPaymentSettled increments the settled counter for a terminal status.
func (m *BillMetrics) RecordPaymentSettled(status string) {
	if m == nil {
		return
	}
	m.paymentsSettled.WithLabelValues(strings.ToLower(strings.TrimSpace(status))).Inc()
}

// GinMiddleware observes every request on the HTTP metrics.
func GinMiddleware(m *HTTPMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if strings.TrimSpace(route) == "" {
			route = "unknown"
		}
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
