package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveOTPDispatch("phone", nil)
	m.ObserveOTPDispatch("phone", errors.New("gateway down"))
	m.ObserveCapture("face", false, nil)
	m.ObserveCapture("face", true, nil)
	m.ObserveSubmission("family", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.OTPDispatched.WithLabelValues("phone", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.OTPDispatched.WithLabelValues("phone", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Captures.WithLabelValues("face", "mismatch")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Captures.WithLabelValues("face", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("family", "success")))
}

func TestMetrics_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New(prometheus.NewRegistry())
	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, 2, testutil.CollectAndCount(m.HTTPDuration))
}
