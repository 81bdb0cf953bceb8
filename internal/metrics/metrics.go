package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barangay"

// Metrics holds the registration and HTTP collectors.
type Metrics struct {
	SessionsStarted  *prometheus.CounterVec
	OTPDispatched    *prometheus.CounterVec
	OTPVerifications *prometheus.CounterVec
	Captures         *prometheus.CounterVec
	Submissions      *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		SessionsStarted: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_sessions_started_total",
			Help:      "Total number of registration sessions started",
		}, []string{"kind"}),
		OTPDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_dispatched_total",
			Help:      "Total number of OTP dispatch attempts",
		}, []string{"channel", "result"}),
		OTPVerifications: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "otp_verifications_total",
			Help:      "Total number of completed OTP entries by outcome",
		}, []string{"channel", "outcome"}),
		Captures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "identity_captures_total",
			Help:      "Total number of identity capture attempts",
		}, []string{"phase", "result"}),
		Submissions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registration_submissions_total",
			Help:      "Total number of registration submissions",
		}, []string{"kind", "result"}),
		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route", "status"}),
	}
}

func (m *Metrics) IncrementSessionsStarted(kind string) {
	m.SessionsStarted.WithLabelValues(kind).Inc()
}

func (m *Metrics) ObserveOTPDispatch(channel string, err error) {
	m.OTPDispatched.WithLabelValues(channel, result(err)).Inc()
}

func (m *Metrics) ObserveOTPOutcome(channel string, outcome string) {
	m.OTPVerifications.WithLabelValues(channel, outcome).Inc()
}

func (m *Metrics) ObserveCapture(phase string, success bool, err error) {
	label := "mismatch"
	switch {
	case err != nil:
		label = "error"
	case success:
		label = "success"
	}
	m.Captures.WithLabelValues(phase, label).Inc()
}

func (m *Metrics) ObserveSubmission(kind string, err error) {
	m.Submissions.WithLabelValues(kind, result(err)).Inc()
}

// Middleware records request latency per matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.HTTPDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
