package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RequestIDHeader carries the trace id back to the caller
const RequestIDHeader = "X-Request-Id"

// SlowRequestThreshold is the duration above which a request is logged
const SlowRequestThreshold = 5 * time.Second

// MetricsMiddleware tracks request timing on the process wide collector
func MetricsMiddleware(next http.Handler) http.Handler {
	return GetMetrics().Middleware(next)
}

// Middleware tracks request timing and metrics
func (mc *MetricsCollector) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		// the metrics endpoints would only measure themselves
		if path == "/health" || strings.HasPrefix(path, "/api/v1/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		startTime := time.Now()
		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, requestID)

		trace := &RequestTrace{
			RequestID: requestID,
			Method:    r.Method,
			Path:      path,
			StartTime: startTime,
			Spans:     make([]SpanTrace, 0),
		}
		r = r.WithContext(WithRequestTrace(r.Context(), trace))

		wrappedWriter := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}
		next.ServeHTTP(wrappedWriter, r)

		trace.EndTime = time.Now()
		trace.TotalDuration = trace.EndTime.Sub(startTime)
		trace.Status = wrappedWriter.statusCode
		if wrappedWriter.statusCode >= 400 {
			trace.Error = http.StatusText(wrappedWriter.statusCode)
		}
		mc.RecordTrace(*trace)

		if trace.TotalDuration > SlowRequestThreshold {
			zap.S().Warnw("slow request detected",
				"requestId", requestID,
				"method", r.Method,
				"path", path,
				"duration", trace.TotalDuration,
				"status", wrappedWriter.statusCode,
				"spans", len(trace.Spans),
				"spanTime", trace.SpanTotalTime,
			)
		}
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode  int
	wroteHeader bool
}

func (rw *responseWriter) WriteHeader(code int) {
	if !rw.wroteHeader {
		rw.statusCode = code
		rw.wroteHeader = true
	}
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	rw.wroteHeader = true
	return rw.ResponseWriter.Write(b)
}
