package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess  = "success"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "leave_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	leaveSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_submissions_total",
		Help: "Count of leave submissions by result",
	}, []string{"result"})

	leaveTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "leave_transitions_total",
		Help: "Count of approve/reject attempts by transition and result",
	}, []string{"transition", "result"})

	employeeDeletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "employee_deletions_total",
		Help: "Count of employee deletions by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric
func ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	httpRequestDuration.WithLabelValues(method, route, status).Observe(duration.Seconds())
}

// ObserveLeaveSubmission counts a submission attempt.
func ObserveLeaveSubmission(result string) {
	leaveSubmissions.WithLabelValues(result).Inc()
}

// ObserveLeaveTransition counts an approve or reject attempt.
func ObserveLeaveTransition(transition, result string) {
	leaveTransitions.WithLabelValues(transition, result).Inc()
}

func ObserveEmployeeDeletion(result string) {
	employeeDeletions.WithLabelValues(result).Inc()
}
