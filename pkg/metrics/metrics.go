// Package metrics holds the Prometheus collectors used across the service.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles all collectors for the service.
type Metrics struct {
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	dbQueriesTotal       *prometheus.CounterVec
	dbQueryDuration      *prometheus.HistogramVec
	dbPoolOpen           prometheus.Gauge
	dbPoolIdle           prometheus.Gauge
	dbPoolInUse          prometheus.Gauge
	bookingOutcomesTotal *prometheus.CounterVec
	notificationRetries  *prometheus.CounterVec
	notificationFailures *prometheus.CounterVec
	cacheRequestsTotal   *prometheus.CounterVec
}

// Booking outcome labels reported by the create-booking flow.
const (
	OutcomeConfirmed           = "confirmed"
	OutcomeValidationFailed    = "validation_failed"
	OutcomeCapacityFull        = "capacity_full"
	OutcomeConcurrencyConflict = "concurrency_conflict"
	OutcomeDayClosed           = "day_closed"
	OutcomeSlotUnavailable     = "slot_unavailable"
	OutcomeTimeout             = "timeout"
	OutcomeInternalError       = "internal_error"
)

// New creates and registers all collectors with the default registry.
func New(serviceName string) *Metrics {
	labels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests.",
			ConstLabels: labels,
		}, []string{"method", "path", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request duration in seconds.",
			ConstLabels: labels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "path"}),
		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_queries_total",
			Help:        "Total number of database queries.",
			ConstLabels: labels,
		}, []string{"operation", "status"}),
		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query duration in seconds.",
			ConstLabels: labels,
			Buckets:     []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}, []string{"operation"}),
		dbPoolOpen: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_open_connections",
			Help:        "Number of open database connections.",
			ConstLabels: labels,
		}),
		dbPoolIdle: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_idle_connections",
			Help:        "Number of idle database connections.",
			ConstLabels: labels,
		}),
		dbPoolInUse: promauto.NewGauge(prometheus.GaugeOpts{
			Name:        "db_pool_in_use_connections",
			Help:        "Number of database connections in use.",
			ConstLabels: labels,
		}),
		bookingOutcomesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_attempts_total",
			Help:        "Booking creation attempts by outcome.",
			ConstLabels: labels,
		}, []string{"outcome"}),
		notificationRetries: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_retries_total",
			Help:        "Notification delivery retries by channel.",
			ConstLabels: labels,
		}, []string{"channel"}),
		notificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "notification_failures_total",
			Help:        "Notification deliveries abandoned after all retries, by channel.",
			ConstLabels: labels,
		}, []string{"channel"}),
		cacheRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name:        "cache_requests_total",
			Help:        "Cache lookups by key class and result (hit/miss/error).",
			ConstLabels: labels,
		}, []string{"key", "result"}),
	}
}

// ObserveHTTPRequest records one served HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveDBQuery records one database query execution.
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.dbQueriesTotal.WithLabelValues(operation, status).Inc()
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// SetDBPoolStats updates the connection pool gauges.
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.dbPoolOpen.Set(float64(open))
	m.dbPoolIdle.Set(float64(idle))
	m.dbPoolInUse.Set(float64(inUse))
}

// IncBookingOutcome counts one booking attempt with the given outcome label.
func (m *Metrics) IncBookingOutcome(outcome string) {
	m.bookingOutcomesTotal.WithLabelValues(outcome).Inc()
}

// IncNotificationRetry counts one retry of a notification channel.
func (m *Metrics) IncNotificationRetry(channel string) {
	m.notificationRetries.WithLabelValues(channel).Inc()
}

// IncNotificationFailure counts one notification given up after all retries.
func (m *Metrics) IncNotificationFailure(channel string) {
	m.notificationFailures.WithLabelValues(channel).Inc()
}

// IncCacheRequest counts one cache lookup result ("hit", "miss" or "error").
func (m *Metrics) IncCacheRequest(key, result string) {
	m.cacheRequestsTotal.WithLabelValues(key, result).Inc()
}
