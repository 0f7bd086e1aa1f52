package metrics

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	m := New("test")
	require.NotNil(t, m)
	require.NotNil(t, m.Registry())
}

func TestNew_EmptyNamespaceDefaults(t *testing.T) {
	m := New("")

	m.RecordTaskPoll()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.taskPollsTotal))
}

func TestMetrics_RecordRequest(t *testing.T) {
	m := New("test")

	m.RecordRequest("GET", "/tasks", 200, 15*time.Millisecond)
	m.RecordRequest("GET", "/tasks", 200, 5*time.Millisecond)
	m.RecordRequest("PUT", "/settings", 409, time.Millisecond)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requestsTotal.WithLabelValues("GET", "/tasks", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.requestsTotal.WithLabelValues("PUT", "/settings", "409")))
}

func TestMetrics_RequestStarted(t *testing.T) {
	m := New("test")

	done := m.RequestStarted()
	assert.Equal(t, float64(1), testutil.ToFloat64(m.activeRequests))

	done()
	assert.Equal(t, float64(0), testutil.ToFloat64(m.activeRequests))
}

func TestMetrics_Counters(t *testing.T) {
	m := New("test")

	m.RecordCancellation()
	m.RecordTaskPoll()
	m.RecordTaskResult("success")
	m.RecordTaskResult("not_found")
	m.RecordWSReconnect()

	assert.Equal(t, float64(1), testutil.ToFloat64(m.cancellationsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.taskPollsTotal))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.taskResultsTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.taskResultsTotal.WithLabelValues("not_found")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.wsReconnectsTotal))
}

func TestMetrics_NilReceiverIsSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.RecordRequest("GET", "/tasks", 200, time.Millisecond)
		m.RequestStarted()()
		m.RecordCancellation()
		m.RecordTaskPoll()
		m.RecordTaskResult("success")
		m.RecordWSReconnect()
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New("test")
	m.RecordTaskPoll()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "test_task_polls_total")
}
