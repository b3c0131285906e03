package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/planforge/pkg/observability"
)

// Metrics holds all Prometheus metrics. It implements the observability
// hooks, so registering it instruments the pipeline and the cache.
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	InFlight        prometheus.Gauge

	// Pipeline metrics
	StageTotal    *prometheus.CounterVec
	StageDuration *prometheus.HistogramVec
	Warnings      prometheus.Histogram
	RoomsTotal    prometheus.Counter

	// Cache metrics
	CacheEvents   *prometheus.CounterVec
	CacheSetBytes *prometheus.HistogramVec
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

// NewMetrics creates a metrics collector on its own registry, together
// with the Go and process collectors.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		registry: reg,

		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planforge_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planforge_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "route"},
		),
		InFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "planforge_http_requests_in_flight",
				Help: "Number of HTTP requests being served",
			},
		),

		StageTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planforge_pipeline_stage_total",
				Help: "Total number of pipeline stage runs",
			},
			[]string{"stage", "status"},
		),
		StageDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planforge_pipeline_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
			},
			[]string{"stage"},
		),
		Warnings: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "planforge_layout_warnings",
				Help:    "Validation warnings per layout",
				Buckets: []float64{0, 1, 2, 5, 10, 20},
			},
		),
		RoomsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "planforge_generated_rooms_total",
				Help: "Total number of rooms generated",
			},
		),

		CacheEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "planforge_cache_events_total",
				Help: "Cache hits, misses and writes",
			},
			[]string{"kind", "event"},
		),
		CacheSetBytes: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "planforge_cache_set_bytes",
				Help:    "Size of cached values in bytes",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			},
			[]string{"kind"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Register installs m as the global pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// =============================================================================
// Pipeline Hooks
// =============================================================================

func (m *Metrics) OnGenerateStart(context.Context, string, string) {}

func (m *Metrics) OnGenerateComplete(_ context.Context, _, _ string, rooms int, d time.Duration, err error) {
	m.stage("generate", d, err)
	m.RoomsTotal.Add(float64(rooms))
}

func (m *Metrics) OnLayoutStart(context.Context, string, int) {}

func (m *Metrics) OnLayoutComplete(_ context.Context, _ string, warnings int, d time.Duration, err error) {
	m.stage("layout", d, err)
	m.Warnings.Observe(float64(warnings))
}

func (m *Metrics) OnRenderStart(context.Context, []string) {}

func (m *Metrics) OnRenderComplete(_ context.Context, _ []string, d time.Duration, err error) {
	m.stage("render", d, err)
}

func (m *Metrics) stage(name string, d time.Duration, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.StageTotal.WithLabelValues(name, status).Inc()
	m.StageDuration.WithLabelValues(name).Observe(d.Seconds())
}

// =============================================================================
// Cache Hooks
// =============================================================================

func (m *Metrics) OnCacheHit(_ context.Context, kind string) {
	m.CacheEvents.WithLabelValues(kind, "hit").Inc()
}

func (m *Metrics) OnCacheMiss(_ context.Context, kind string) {
	m.CacheEvents.WithLabelValues(kind, "miss").Inc()
}

func (m *Metrics) OnCacheSet(_ context.Context, kind string, size int) {
	m.CacheEvents.WithLabelValues(kind, "set").Inc()
	m.CacheSetBytes.WithLabelValues(kind).Observe(float64(size))
}

// =============================================================================
// HTTP Hooks
// =============================================================================

func (m *Metrics) OnRequest(context.Context, string, string) {
	m.InFlight.Inc()
}

func (m *Metrics) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	m.InFlight.Dec()
	m.RequestsTotal.WithLabelValues(strings.ToUpper(method), route, strconv.Itoa(status)).Inc()
	m.RequestDuration.WithLabelValues(strings.ToUpper(method), route).Observe(d.Seconds())
}

// instrument reports each request to the HTTP hooks. It must run inside
// a routed group so that the route pattern is resolved.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if p := rctx.RoutePattern(); p != "" {
				route = p
			}
		}
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, route)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, route, status, time.Since(start))
		s.logger.Debug("request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", time.Since(start),
			"id", middleware.GetReqID(r.Context()))
	})
}
