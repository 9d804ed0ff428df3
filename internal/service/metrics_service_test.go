package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/course-enrollment-api/internal/models"
)

func TestMetricsServiceCounters(t *testing.T) {
	metrics := NewMetricsService()

	metrics.RecordEnrollment(models.PaymentStatusPaid)
	metrics.RecordEnrollment(models.PaymentStatusPaid)
	metrics.RecordEnrollment(models.PaymentStatusFailed)
	metrics.RecordPaymentAttempt(PaymentOutcomeDeclined)

	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.enrollments.WithLabelValues("Paid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.enrollments.WithLabelValues("Failed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.paymentAttempts.WithLabelValues(PaymentOutcomeDeclined)))
}

func TestMetricsServiceCacheHitRatio(t *testing.T) {
	metrics := NewMetricsService()

	metrics.RecordCacheOperation(true, time.Millisecond)
	metrics.RecordCacheOperation(false, time.Millisecond)
	metrics.RecordCacheOperation(true, time.Millisecond)
	metrics.RecordCacheOperation(true, time.Millisecond)

	assert.InDelta(t, 0.75, testutil.ToFloat64(metrics.cacheHitRatio), 0.0001)
}

func TestMetricsServiceHandler(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodGet, "/health", http.StatusOK, time.Millisecond)

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")

	var nilMetrics *MetricsService
	rec = httptest.NewRecorder()
	nilMetrics.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	nilMetrics.RecordEnrollment(models.PaymentStatusPaid)
}
