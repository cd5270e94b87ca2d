package observer

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricsEnabled = true // Flag to control metric collection

	// Labels for HTTP request metrics
	httpRequestLabels = []string{"method", "route", "status"}
	// Labels for database operations
	dbOperationLabels = []string{"operation", "status"}
	// Labels for mail dispatch outcomes
	mailSendLabels = []string{"kind", "outcome"}

	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_service_http_requests_total",
			Help: "Total number of HTTP requests handled, labeled by method, route and status code.",
		},
		httpRequestLabels,
	)
	httpRequestDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enquiry_service_http_request_duration_seconds",
			Help:    "Histogram of HTTP request handling durations.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 12), // 5ms to ~10s
		},
		httpRequestLabels,
	)

	enquiriesSubmittedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enquiry_service_enquiries_submitted_total",
			Help: "Total number of enquiries accepted and persisted.",
		},
	)

	databaseOperationDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "enquiry_service_db_operation_duration_seconds",
			Help:    "Histogram of database operation durations, labeled by operation and status.",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		},
		dbOperationLabels,
	)

	mailSendsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enquiry_service_mail_sends_total",
			Help: "Total number of mail dispatch attempts, labeled by kind and outcome.",
		},
		mailSendLabels,
	)
	mailQueueLength = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "enquiry_service_mail_queue_length",
		Help: "Approximate number of tasks waiting in the mail worker pool queue.",
	})

	rateLimitRejectionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "enquiry_service_rate_limit_rejections_total",
			Help: "Total number of requests rejected by the per-IP rate limiter.",
		},
	)
)

// InitMetrics enables or disables metric collection. Call during startup.
// Collectors are auto-registered via promauto; this only gates the helpers.
func InitMetrics(enabled bool) {
	metricsEnabled = enabled
}

// RecordHTTPRequest increments the request counter and observes duration.
func RecordHTTPRequest(method, route, status string, duration time.Duration) {
	if !metricsEnabled {
		return
	}
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// IncEnquiriesSubmitted increments the accepted-enquiry counter.
func IncEnquiriesSubmitted() {
	if !metricsEnabled {
		return
	}
	enquiriesSubmittedTotal.Inc()
}

// ObserveDbOperationDuration records the duration for a database operation.
func ObserveDbOperationDuration(operation string, duration time.Duration, err error) {
	if !metricsEnabled {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	databaseOperationDurationSeconds.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// IncMailSend increments the mail dispatch counter for a kind and outcome.
// Kind is "confirmation" or "admin_notification"; outcome is "success",
// "error" or "skipped".
func IncMailSend(kind, outcome string) {
	if !metricsEnabled {
		return
	}
	mailSendsTotal.WithLabelValues(kind, outcome).Inc()
}

// SetMailQueueLength sets the current mail worker pool queue length.
func SetMailQueueLength(length int) {
	if !metricsEnabled {
		return
	}
	mailQueueLength.Set(float64(length))
}

// IncRateLimitRejection increments the rate limiter rejection counter.
func IncRateLimitRejection() {
	if !metricsEnabled {
		return
	}
	rateLimitRejectionsTotal.Inc()
}
