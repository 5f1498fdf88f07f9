package api

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"
)

// RequestTrace tracks timing for a single request
type RequestTrace struct {
	RequestID     string        `json:"requestId"`
	Method        string        `json:"method"`
	Path          string        `json:"path"`
	Status        int           `json:"status"`
	StartTime     time.Time     `json:"startTime"`
	EndTime       time.Time     `json:"endTime"`
	TotalDuration time.Duration `json:"totalDuration"`
	Spans         []SpanTrace   `json:"spans"`
	SpanTotalTime time.Duration `json:"spanTotalTime"`
	Error         string        `json:"error,omitempty"`
}

// SpanTrace is one timed step inside a request, such as rendering a single
// copy of a document
type SpanTrace struct {
	Operation string        `json:"operation"`
	Detail    string        `json:"detail"`
	Duration  time.Duration `json:"duration"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// RouteMetrics aggregates metrics for a specific route
type RouteMetrics struct {
	Method      string        `json:"method"`
	Path        string        `json:"path"`
	Count       int64         `json:"count"`
	ErrorCount  int64         `json:"errorCount"`
	TotalTime   time.Duration `json:"totalTime"`
	AvgTime     time.Duration `json:"avgTime"`
	MinTime     time.Duration `json:"minTime"`
	MaxTime     time.Duration `json:"maxTime"`
	P50Time     time.Duration `json:"p50Time"`
	P95Time     time.Duration `json:"p95Time"`
	P99Time     time.Duration `json:"p99Time"`
	LastRequest time.Time     `json:"lastRequest"`
}

// Summary is the overall view of the collected window
type Summary struct {
	TotalRequests int64     `json:"totalRequests"`
	TotalErrors   int64     `json:"totalErrors"`
	ErrorRate     float64   `json:"errorRate"`
	TPS           float64   `json:"tps"`
	TotalSpans    int64     `json:"totalSpans"`
	AvgSpanTime   string    `json:"avgSpanTime"`
	WindowStart   time.Time `json:"windowStart"`
	WindowEnd     time.Time `json:"windowEnd"`
	RouteCount    int       `json:"routeCount"`
	TraceCount    int       `json:"traceCount"`
}

// MetricsCollector collects and aggregates request metrics. Recording never
// blocks a request: traces go through a buffered channel and are dropped
// when it is full.
type MetricsCollector struct {
	mu             sync.RWMutex
	traces         []RequestTrace
	maxTraces      int
	routeMetrics   map[string]*RouteMetrics
	windowStart    time.Time
	windowDuration time.Duration
	totalRequests  int64
	totalErrors    int64
	totalSpans     int64
	totalSpanTime  time.Duration
	traceChan      chan RequestTrace
	stopChan       chan struct{}
	stopMu         sync.RWMutex
	stopped        bool
	pending        sync.WaitGroup
}

var (
	globalMetrics     *MetricsCollector
	globalMetricsOnce sync.Once
)

// NewMetricsCollector starts a collector keeping at most maxTraces traces
// from the last windowDuration
func NewMetricsCollector(maxTraces int, windowDuration time.Duration) *MetricsCollector {
	mc := &MetricsCollector{
		traces:         make([]RequestTrace, 0, maxTraces),
		maxTraces:      maxTraces,
		routeMetrics:   make(map[string]*RouteMetrics),
		windowStart:    time.Now(),
		windowDuration: windowDuration,
		traceChan:      make(chan RequestTrace, 1000),
		stopChan:       make(chan struct{}),
	}
	go mc.processTraces()
	return mc
}

// GetMetrics returns the process wide collector
func GetMetrics() *MetricsCollector {
	globalMetricsOnce.Do(func() {
		globalMetrics = NewMetricsCollector(10000, time.Hour)
	})
	return globalMetrics
}

// Stop ends trace aggregation. Traces already queued are still aggregated,
// later ones are dropped.
func (mc *MetricsCollector) Stop() {
	mc.stopMu.Lock()
	defer mc.stopMu.Unlock()
	if !mc.stopped {
		mc.stopped = true
		close(mc.stopChan)
	}
}

// RecordTrace queues a trace without blocking
func (mc *MetricsCollector) RecordTrace(trace RequestTrace) {
	mc.stopMu.RLock()
	defer mc.stopMu.RUnlock()
	if mc.stopped {
		return
	}
	mc.pending.Add(1)
	select {
	case mc.traceChan <- trace:
	default:
		mc.pending.Done()
	}
}

// Flush waits until every queued trace has been aggregated
func (mc *MetricsCollector) Flush() {
	mc.pending.Wait()
}

func (mc *MetricsCollector) processTraces() {
	for {
		select {
		case trace := <-mc.traceChan:
			mc.processTrace(trace)
			mc.pending.Done()
		case <-mc.stopChan:
			mc.drain()
			return
		}
	}
}

// drain aggregates what was queued before Stop. No sends happen once
// stopped is set, so the queue only shrinks.
func (mc *MetricsCollector) drain() {
	for {
		select {
		case trace := <-mc.traceChan:
			mc.processTrace(trace)
			mc.pending.Done()
		default:
			return
		}
	}
}

func (mc *MetricsCollector) processTrace(trace RequestTrace) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	if len(mc.traces) >= mc.maxTraces {
		mc.traces = mc.traces[1:]
	}
	mc.traces = append(mc.traces, trace)

	routeKey := trace.Method + " " + normalizeRoutePath(trace.Path)
	metrics, exists := mc.routeMetrics[routeKey]
	if !exists {
		metrics = &RouteMetrics{
			Method:  trace.Method,
			Path:    normalizeRoutePath(trace.Path),
			MinTime: trace.TotalDuration,
		}
		mc.routeMetrics[routeKey] = metrics
	}

	metrics.Count++
	metrics.TotalTime += trace.TotalDuration
	metrics.AvgTime = metrics.TotalTime / time.Duration(metrics.Count)
	metrics.LastRequest = trace.StartTime
	if trace.TotalDuration < metrics.MinTime {
		metrics.MinTime = trace.TotalDuration
	}
	if trace.TotalDuration > metrics.MaxTime {
		metrics.MaxTime = trace.TotalDuration
	}
	if trace.Status >= 400 {
		metrics.ErrorCount++
		mc.totalErrors++
	}

	mc.totalRequests++
	mc.totalSpans += int64(len(trace.Spans))
	mc.totalSpanTime += trace.SpanTotalTime

	// percentiles are refreshed every 100 requests of a route
	if metrics.Count == 1 || metrics.Count%100 == 0 {
		mc.calculatePercentiles(routeKey)
	}
}

// GetTraces returns up to limit of the most recent traces started after since
func (mc *MetricsCollector) GetTraces(limit int, since time.Time) []RequestTrace {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	var filtered []RequestTrace
	for i := len(mc.traces) - 1; i >= 0 && len(filtered) < limit; i-- {
		if mc.traces[i].StartTime.After(since) {
			filtered = append(filtered, mc.traces[i])
		}
	}
	// oldest first
	for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
		filtered[i], filtered[j] = filtered[j], filtered[i]
	}
	return filtered
}

// GetRouteMetrics returns a copy of the aggregated metrics of every route
func (mc *MetricsCollector) GetRouteMetrics() map[string]*RouteMetrics {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	result := make(map[string]*RouteMetrics, len(mc.routeMetrics))
	for k, v := range mc.routeMetrics {
		metrics := *v
		result[k] = &metrics
	}
	return result
}

// GetSummary returns overall summary metrics
func (mc *MetricsCollector) GetSummary() Summary {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	elapsed := time.Since(mc.windowStart)
	if elapsed > mc.windowDuration {
		elapsed = mc.windowDuration
	}

	s := Summary{
		TotalRequests: mc.totalRequests,
		TotalErrors:   mc.totalErrors,
		TotalSpans:    mc.totalSpans,
		AvgSpanTime:   time.Duration(0).String(),
		WindowStart:   mc.windowStart,
		WindowEnd:     mc.windowStart.Add(mc.windowDuration),
		RouteCount:    len(mc.routeMetrics),
		TraceCount:    len(mc.traces),
	}
	if elapsed.Seconds() > 0 {
		s.TPS = float64(mc.totalRequests) / elapsed.Seconds()
	}
	if mc.totalRequests > 0 {
		s.ErrorRate = float64(mc.totalErrors) / float64(mc.totalRequests)
	}
	if mc.totalSpans > 0 {
		s.AvgSpanTime = (mc.totalSpanTime / time.Duration(mc.totalSpans)).String()
	}
	return s
}

var (
	uuidSegment    = regexp.MustCompile(`/[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}(/|$)`)
	numericSegment = regexp.MustCompile(`/\d{6,}(/|$)`)
)

// normalizeRoutePath replaces id-like path segments with {id} so requests
// for different documents share a route
func normalizeRoutePath(path string) string {
	path = uuidSegment.ReplaceAllString(path, "/{id}$1")
	path = numericSegment.ReplaceAllString(path, "/{id}$1")
	path = strings.ReplaceAll(path, "//", "/")
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		path = path[:len(path)-1]
	}
	return path
}

// GetSlowestRoutes returns routes by descending average time
func (mc *MetricsCollector) GetSlowestRoutes(limit, offset int) []*RouteMetrics {
	return mc.sortedRoutes(limit, offset, func(a, b *RouteMetrics) bool { return a.AvgTime > b.AvgTime })
}

// GetMostFrequentRoutes returns routes by descending request count
func (mc *MetricsCollector) GetMostFrequentRoutes(limit, offset int) []*RouteMetrics {
	return mc.sortedRoutes(limit, offset, func(a, b *RouteMetrics) bool { return a.Count > b.Count })
}

// GetRouteCount returns the number of distinct routes seen
func (mc *MetricsCollector) GetRouteCount() int {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return len(mc.routeMetrics)
}

func (mc *MetricsCollector) sortedRoutes(limit, offset int, less func(a, b *RouteMetrics) bool) []*RouteMetrics {
	mc.mu.RLock()
	routes := make([]*RouteMetrics, 0, len(mc.routeMetrics))
	for _, metrics := range mc.routeMetrics {
		m := *metrics
		routes = append(routes, &m)
	}
	mc.mu.RUnlock()

	sort.SliceStable(routes, func(i, j int) bool {
		if less(routes[i], routes[j]) {
			return true
		}
		if less(routes[j], routes[i]) {
			return false
		}
		return routes[i].Method+routes[i].Path < routes[j].Method+routes[j].Path
	})

	if offset >= len(routes) {
		return []*RouteMetrics{}
	}
	end := offset + limit
	if end > len(routes) {
		end = len(routes)
	}
	return routes[offset:end]
}

// calculatePercentiles sets P50, P95 and P99 of a route from the kept traces
func (mc *MetricsCollector) calculatePercentiles(routeKey string) {
	metrics := mc.routeMetrics[routeKey]
	if metrics == nil {
		return
	}

	var durations []time.Duration
	for _, trace := range mc.traces {
		if trace.Method+" "+normalizeRoutePath(trace.Path) == routeKey {
			durations = append(durations, trace.TotalDuration)
		}
	}
	if len(durations) == 0 {
		return
	}
	sort.Slice(durations, func(i, j int) bool { return durations[i] < durations[j] })

	at := func(p float64) time.Duration {
		i := int(float64(len(durations)) * p)
		if i >= len(durations) {
			i = len(durations) - 1
		}
		return durations[i]
	}
	metrics.P50Time = at(0.50)
	metrics.P95Time = at(0.95)
	metrics.P99Time = at(0.99)
}

// Prune drops traces older than the window and restarts an expired window
func (mc *MetricsCollector) Prune(now time.Time) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	cutoff := now.Add(-mc.windowDuration)
	var valid []RequestTrace
	for _, trace := range mc.traces {
		if trace.StartTime.After(cutoff) {
			valid = append(valid, trace)
		}
	}
	mc.traces = valid
	if now.Sub(mc.windowStart) > mc.windowDuration {
		mc.windowStart = now
	}
}

type requestTraceContextKey struct{}

// requestTraceContext holds a trace being built during request processing
type requestTraceContext struct {
	trace *RequestTrace
	mu    sync.Mutex
}

// WithRequestTrace adds a request trace to ctx
func WithRequestTrace(ctx context.Context, trace *RequestTrace) context.Context {
	return context.WithValue(ctx, requestTraceContextKey{}, &requestTraceContext{trace: trace})
}

// RequestIDFromContext returns the id of the traced request, or ""
func RequestIDFromContext(ctx context.Context) string {
	if rt, ok := ctx.Value(requestTraceContextKey{}).(*requestTraceContext); ok && rt.trace != nil {
		return rt.trace.RequestID
	}
	return ""
}

// RecordSpanFromContext adds a timed step to the request trace in ctx. It is
// a no-op for untraced contexts and safe for concurrent use.
func RecordSpanFromContext(ctx context.Context, operation, detail string, duration time.Duration, err error) {
	rt, ok := ctx.Value(requestTraceContextKey{}).(*requestTraceContext)
	if !ok || rt.trace == nil {
		return
	}

	span := SpanTrace{
		Operation: operation,
		Detail:    detail,
		Duration:  duration,
		Timestamp: time.Now(),
	}
	if err != nil {
		span.Error = err.Error()
	}
	rt.mu.Lock()
	rt.trace.Spans = append(rt.trace.Spans, span)
	rt.trace.SpanTotalTime += duration
	rt.mu.Unlock()
}
