package api

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const timeoutBody = `{"Response":{"Message":"request timeout","Error":"the request took too long to process"}}`

// TimeoutMiddleware cancels the request context after timeout and answers
// 503 when the handler has not finished by then. Handler output is buffered
// until it returns, so a late handler can never write over the timeout
// response.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		th := http.TimeoutHandler(next, timeout, timeoutBody)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			th.ServeHTTP(rw, r)

			if rw.statusCode == http.StatusServiceUnavailable && time.Since(start) >= timeout {
				zap.S().Warnw("request timeout",
					"path", r.URL.Path,
					"method", r.Method,
					"timeout", timeout,
				)
			}
		})
	}
}
