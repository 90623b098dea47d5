package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	SubmissionsStored    *prometheus.CounterVec
	PersistenceRetries   prometheus.Counter
	PersistenceFailures  prometheus.Counter
	NotificationFailures prometheus.Counter
	RequestDuration      *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		SubmissionsStored: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ptz_submissions_stored_total",
			Help: "Submissions persisted, labelled by eligibility verdict",
		}, []string{"verdict"}),
		PersistenceRetries: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ptz_persistence_retries_total",
			Help: "Store append attempts that had to be retried",
		}),
		PersistenceFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ptz_persistence_failures_total",
			Help: "Submissions that could not be persisted after all retries",
		}),
		NotificationFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ptz_notification_failures_total",
			Help: "Confirmation emails that failed to send",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ptz_http_request_duration_seconds",
			Help:    "HTTP request latency by route and status",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "status"}),
	}
}

// RecordSubmission counts a stored submission under its verdict. All
// recorders tolerate a zero-value Metrics so tests can pass an empty
// struct.
func (m *Metrics) RecordSubmission(eligible bool) {
	if m == nil || m.SubmissionsStored == nil {
		return
	}
	verdict := "ineligible"
	if eligible {
		verdict = "eligible"
	}
	m.SubmissionsStored.WithLabelValues(verdict).Inc()
}

func (m *Metrics) RecordPersistenceRetry() {
	if m == nil || m.PersistenceRetries == nil {
		return
	}
	m.PersistenceRetries.Inc()
}

func (m *Metrics) RecordPersistenceFailure() {
	if m == nil || m.PersistenceFailures == nil {
		return
	}
	m.PersistenceFailures.Inc()
}

func (m *Metrics) RecordNotificationFailure() {
	if m == nil || m.NotificationFailures == nil {
		return
	}
	m.NotificationFailures.Inc()
}

func (m *Metrics) ObserveRequest(route, status string, seconds float64) {
	if m == nil || m.RequestDuration == nil {
		return
	}
	m.RequestDuration.WithLabelValues(route, status).Observe(seconds)
}
