package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnknownScope labels composite scores for scopes with no records.
const UnknownScope = "unknown"

// Metrics owns a private registry so several servers (or tests) can coexist
// in one process.
type Metrics struct {
	registry          *prometheus.Registry
	httpRequestsTotal *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
	computations      *prometheus.CounterVec
	computeDuration   *prometheus.HistogramVec
	compositeScore    *prometheus.GaugeVec
	escalations       *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total count of HTTP requests processed by route and status.",
		}, []string{"route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of HTTP request durations by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		computations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lci_computations_total",
			Help: "Total LCI computations by granularity.",
		}, []string{"granularity"}),
		computeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "lci_compute_duration_seconds",
			Help:    "Histogram of LCI computation durations by granularity.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"granularity"}),
		compositeScore: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lci_composite_score",
			Help: "Most recent composite LCI score by granularity and scope.",
		}, []string{"granularity", "scope"}),
		escalations: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "lci_escalations",
			Help: "Escalation items in the most recent derivation by level.",
		}, []string{"level"}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpDuration,
		m.computations,
		m.computeDuration,
		m.compositeScore,
		m.escalations,
	)
	return m
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (m *Metrics) WrapHandler(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Seconds()
		if m != nil {
			m.httpRequestsTotal.WithLabelValues(route, strconv.Itoa(recorder.status)).Inc()
			m.httpDuration.WithLabelValues(route).Observe(duration)
		}
	})
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry exposes the underlying registry for tests and extra collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Computed records one scoring run.
func (m *Metrics) Computed(granularity, scope string, score float64, took time.Duration) {
	if m == nil {
		return
	}
	m.computations.WithLabelValues(granularity).Inc()
	m.computeDuration.WithLabelValues(granularity).Observe(took.Seconds())
	m.compositeScore.WithLabelValues(granularity, scope).Set(score)
}

// Escalated replaces the per-level escalation gauges.
func (m *Metrics) Escalated(byLevel map[string]int) {
	if m == nil {
		return
	}
	m.escalations.Reset()
	for level, n := range byLevel {
		m.escalations.WithLabelValues(level).Set(float64(n))
	}
}
