package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoutePath(t *testing.T) {
	assert.Equal(t, "/api/v1/fir/pdf", normalizeRoutePath("/api/v1/fir/pdf/"))
	assert.Equal(t, "/verify/{id}", normalizeRoutePath("/verify/123e4567-e89b-12d3-a456-426614174000"))
	assert.Equal(t, "/cases/{id}/pdf", normalizeRoutePath("/cases/20260102001/pdf"))
}

func TestMetricsMiddlewareRecordsTrace(t *testing.T) {
	mc := NewMetricsCollector(100, time.Hour)
	defer mc.Stop()

	h := mc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, RequestIDFromContext(r.Context()))
		RecordSpanFromContext(r.Context(), "render", "public", 15*time.Millisecond, nil)
		RecordSpanFromContext(r.Context(), "render", "draft", 5*time.Millisecond, errors.New("boom"))
		w.WriteHeader(http.StatusBadRequest)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/fir/pdf", nil))
	assert.NotEmpty(t, rr.Header().Get(RequestIDHeader))

	mc.Flush()
	traces := mc.GetTraces(10, time.Now().Add(-time.Minute))
	require.Len(t, traces, 1)
	assert.Equal(t, http.StatusBadRequest, traces[0].Status)
	assert.Equal(t, "Bad Request", traces[0].Error)
	require.Len(t, traces[0].Spans, 2)
	assert.Equal(t, "boom", traces[0].Spans[1].Error)
	assert.Equal(t, 20*time.Millisecond, traces[0].SpanTotalTime)

	summary := mc.GetSummary()
	assert.Equal(t, int64(1), summary.TotalRequests)
	assert.Equal(t, int64(1), summary.TotalErrors)
	assert.Equal(t, int64(2), summary.TotalSpans)
	assert.Equal(t, "10ms", summary.AvgSpanTime)

	routes := mc.GetRouteMetrics()
	require.Contains(t, routes, "POST /api/v1/fir/pdf")
	assert.Equal(t, int64(1), routes["POST /api/v1/fir/pdf"].ErrorCount)
}

func TestMetricsMiddlewareKeepsCallerRequestID(t *testing.T) {
	mc := NewMetricsCollector(100, time.Hour)
	defer mc.Stop()

	h := mc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/api/v1/fir/sample", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestMetricsMiddlewareSkipsHealth(t *testing.T) {
	mc := NewMetricsCollector(100, time.Hour)
	defer mc.Stop()

	h := mc.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/metrics", nil))

	mc.Flush()
	assert.Equal(t, int64(0), mc.GetSummary().TotalRequests)
}

func TestRouteOrdering(t *testing.T) {
	mc := NewMetricsCollector(100, time.Hour)
	defer mc.Stop()

	now := time.Now()
	for i := 0; i < 3; i++ {
		mc.RecordTrace(RequestTrace{Method: "GET", Path: "/a", StartTime: now, TotalDuration: time.Millisecond, Status: 200})
	}
	mc.RecordTrace(RequestTrace{Method: "POST", Path: "/b", StartTime: now, TotalDuration: time.Second, Status: 200})
	mc.Flush()

	slowest := mc.GetSlowestRoutes(10, 0)
	require.Len(t, slowest, 2)
	assert.Equal(t, "/b", slowest[0].Path)

	frequent := mc.GetMostFrequentRoutes(1, 0)
	require.Len(t, frequent, 1)
	assert.Equal(t, "/a", frequent[0].Path)
	assert.Equal(t, int64(3), frequent[0].Count)

	assert.Empty(t, mc.GetMostFrequentRoutes(10, 5))
	assert.Equal(t, 2, mc.GetRouteCount())
}

func TestRecordSpanWithoutTrace(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSpanFromContext(context.Background(), "render", "original", time.Millisecond, nil)
	})
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestPrune(t *testing.T) {
	mc := NewMetricsCollector(100, time.Hour)
	defer mc.Stop()

	now := time.Now()
	mc.RecordTrace(RequestTrace{Method: "GET", Path: "/old", StartTime: now.Add(-2 * time.Hour), Status: 200})
	mc.RecordTrace(RequestTrace{Method: "GET", Path: "/new", StartTime: now, Status: 200})
	mc.Flush()

	mc.Prune(now)
	traces := mc.GetTraces(10, time.Time{})
	require.Len(t, traces, 1)
	assert.Equal(t, "/new", traces[0].Path)

	mc.Prune(now.Add(2 * time.Hour))
	assert.Empty(t, mc.GetTraces(10, time.Time{}))
	assert.Equal(t, now.Add(2*time.Hour), mc.GetSummary().WindowStart)
}

func TestRecordAfterStopDoesNotBlockFlush(t *testing.T) {
	mc := NewMetricsCollector(100, time.Hour)
	mc.RecordTrace(RequestTrace{Method: "GET", Path: "/before", StartTime: time.Now(), Status: 200})
	mc.Stop()
	mc.Stop()
	mc.RecordTrace(RequestTrace{Method: "GET", Path: "/after", StartTime: time.Now(), Status: 200})

	done := make(chan struct{})
	go func() {
		mc.Flush()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Flush blocked after Stop")
	}

	traces := mc.GetTraces(10, time.Time{})
	require.Len(t, traces, 1)
	assert.Equal(t, "/before", traces[0].Path)
}
