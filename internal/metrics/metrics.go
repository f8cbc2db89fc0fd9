// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	Requests        *prometheus.CounterVec   // resource, action, status
	RequestDuration *prometheus.HistogramVec // resource
	DBQueryDuration *prometheus.HistogramVec // op: select, get, find, insert, update, delete
	OTPEvents       *prometheus.CounterVec   // event: issue|verify, result: ok|fail
}

// New registers every collector on reg.
func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		Requests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "docdesk_requests_total",
			Help: "Handled requests by resource, action and response status.",
		}, []string{"resource", "action", "status"}),
		RequestDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docdesk_request_duration_seconds",
			Help:    "Time spent handling a request.",
			Buckets: prometheus.DefBuckets,
		}, []string{"resource"}),
		DBQueryDuration: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "docdesk_db_query_duration_seconds",
			Help:    "Duration of database statements.",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),
		OTPEvents: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "docdesk_otp_events_total",
			Help: "OTP issue and verify outcomes.",
		}, []string{"event", "result"}),
	}
}

// ObserveRequest records one handled request.
func (m *Metrics) ObserveRequest(resource, action string, status int, d time.Duration) {
	if m == nil {
		return
	}
	if action == "" {
		action = "none"
	}
	m.Requests.WithLabelValues(resource, action, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(resource).Observe(d.Seconds())
}

// ObserveQuery matches database.Observer.
func (m *Metrics) ObserveQuery(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(op).Observe(d.Seconds())
}

// OTP counts an OTP outcome.
func (m *Metrics) OTP(event string, ok bool) {
	if m == nil {
		return
	}
	result := "fail"
	if ok {
		result = "ok"
	}
	m.OTPEvents.WithLabelValues(event, result).Inc()
}
