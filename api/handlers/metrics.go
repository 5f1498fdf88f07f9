package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/linesmerrill/fir-document-api/api"
	"github.com/linesmerrill/fir-document-api/config"
)

// formatRouteMetrics converts duration fields to milliseconds for JSON serialization
func formatRouteMetrics(routes []*api.RouteMetrics) []map[string]interface{} {
	result := make([]map[string]interface{}, len(routes))
	for i, route := range routes {
		result[i] = map[string]interface{}{
			"method":      route.Method,
			"path":        route.Path,
			"count":       route.Count,
			"errorCount":  route.ErrorCount,
			"avgTime":     route.AvgTime.Milliseconds(),
			"minTime":     route.MinTime.Milliseconds(),
			"maxTime":     route.MaxTime.Milliseconds(),
			"p50Time":     route.P50Time.Milliseconds(),
			"p95Time":     route.P95Time.Milliseconds(),
			"p99Time":     route.P99Time.Milliseconds(),
			"lastRequest": route.LastRequest,
		}
	}
	return result
}

// formatTraces converts trace durations to milliseconds
func formatTraces(traces []api.RequestTrace) []map[string]interface{} {
	result := make([]map[string]interface{}, len(traces))
	for i, trace := range traces {
		spans := make([]map[string]interface{}, len(trace.Spans))
		for j, s := range trace.Spans {
			spans[j] = map[string]interface{}{
				"operation": s.Operation,
				"detail":    s.Detail,
				"duration":  s.Duration.Milliseconds(),
				"error":     s.Error,
				"timestamp": s.Timestamp,
			}
		}
		result[i] = map[string]interface{}{
			"requestId":     trace.RequestID,
			"method":        trace.Method,
			"path":          trace.Path,
			"status":        trace.Status,
			"startTime":     trace.StartTime,
			"endTime":       trace.EndTime,
			"totalDuration": trace.TotalDuration.Milliseconds(),
			"spans":         spans,
			"spanTotalTime": trace.SpanTotalTime.Milliseconds(),
			"error":         trace.Error,
		}
	}
	return result
}

// MetricsHandler handles metrics dashboard requests
type MetricsHandler struct {
	Metrics *api.MetricsCollector
}

// GetMetricsDashboard returns the metrics dashboard data
func (m MetricsHandler) GetMetricsDashboard(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsed, err := strconv.Atoi(limitStr); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsed, err := strconv.Atoi(offsetStr); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	since := time.Now().Add(-1 * time.Hour) // Default: last hour
	if sinceStr := r.URL.Query().Get("since"); sinceStr != "" {
		if parsed, err := time.ParseDuration(sinceStr); err == nil {
			since = time.Now().Add(-parsed)
		}
	}

	totalRoutes := m.Metrics.GetRouteCount()
	response := map[string]interface{}{
		"summary": m.Metrics.GetSummary(),
		"routes": map[string]interface{}{
			"slowest":      formatRouteMetrics(m.Metrics.GetSlowestRoutes(limit, offset)),
			"mostFrequent": formatRouteMetrics(m.Metrics.GetMostFrequentRoutes(limit, offset)),
			"totalCount":   totalRoutes,
		},
		"recentTraces": formatTraces(m.Metrics.GetTraces(limit, since)),
		"pagination": map[string]interface{}{
			"limit":   limit,
			"offset":  offset,
			"total":   totalRoutes,
			"hasMore": offset+limit < totalRoutes,
		},
		"filters": map[string]interface{}{
			"since": since,
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// GetMetricsSummary returns just the summary metrics (lighter endpoint)
func (m MetricsHandler) GetMetricsSummary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, m.Metrics.GetSummary())
}

// GetRouteMetrics returns metrics for a specific route, keyed as "METHOD /path"
func (m MetricsHandler) GetRouteMetrics(w http.ResponseWriter, r *http.Request) {
	route := r.URL.Query().Get("route")
	if route == "" {
		config.ErrorStatus("route parameter required", http.StatusBadRequest, w, nil)
		return
	}

	routeData, exists := m.Metrics.GetRouteMetrics()[route]
	if !exists {
		config.ErrorStatus("route not found", http.StatusNotFound, w, nil)
		return
	}

	writeJSON(w, http.StatusOK, routeData)
}
