// Package metrics exposes Prometheus instrumentation for snapshot aggregation.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns every collector of the service. A nil *Manager is a valid no-op.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	upstreamRetries  *prometheus.CounterVec
	dedupShared      prometheus.Counter
	circuitState     *prometheus.GaugeVec

	aggregationDuration prometheus.Histogram
	participantFailures *prometheus.CounterVec
	liveOverrides       *prometheus.CounterVec
	liveFallbacks       prometheus.Counter

	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
}

func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "fpl",
		subsystem:        "snapshot",
		histogramBuckets: prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}

	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.upstreamRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_requests_total",
		Help:      "Upstream HTTP attempts by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	m.upstreamDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_request_duration_seconds",
		Help:      "Upstream HTTP attempt latency",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint"})

	m.upstreamRetries = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_retries_total",
		Help:      "Upstream retries scheduled after a failed attempt",
	}, []string{"endpoint"})

	m.dedupShared = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "upstream_dedup_shared_total",
		Help:      "Requests served by an identical in-flight request",
	})

	m.circuitState = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "circuit_open",
		Help:      "1 when the named upstream circuit breaker is not closed",
	}, []string{"name"})

	m.aggregationDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aggregation_duration_seconds",
		Help:      "Wall time of one snapshot build",
		Buckets:   m.histogramBuckets,
	})

	m.participantFailures = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "participant_failures_total",
		Help:      "History collections that failed per participant",
	}, []string{"participant"})

	m.liveOverrides = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_override_total",
		Help:      "Live override outcomes",
	}, []string{"result"})

	m.liveFallbacks = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "live_positional_fallback_total",
		Help:      "Player points resolved by array position because the id lookup missed",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method and status code",
	}, []string{"route", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})
}

// Registry returns the registry backing this manager.
func (m *Manager) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) ObserveUpstream(endpoint, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.upstreamRequests.WithLabelValues(endpoint, outcome).Inc()
	m.upstreamDuration.WithLabelValues(endpoint).Observe(d.Seconds())
}

func (m *Manager) IncUpstreamRetry(endpoint string) {
	if m == nil {
		return
	}
	m.upstreamRetries.WithLabelValues(endpoint).Inc()
}

func (m *Manager) IncDedupShared() {
	if m == nil {
		return
	}
	m.dedupShared.Inc()
}

func (m *Manager) SetCircuitOpen(name string, open bool) {
	if m == nil {
		return
	}
	value := 0.0
	if open {
		value = 1
	}
	m.circuitState.WithLabelValues(name).Set(value)
}

func (m *Manager) ObserveAggregation(d time.Duration) {
	if m == nil {
		return
	}
	m.aggregationDuration.Observe(d.Seconds())
}

func (m *Manager) IncParticipantFailure(participant string) {
	if m == nil {
		return
	}
	m.participantFailures.WithLabelValues(participant).Inc()
}

func (m *Manager) IncLiveOverride(result string) {
	if m == nil {
		return
	}
	m.liveOverrides.WithLabelValues(result).Inc()
}

func (m *Manager) AddLiveFallbacks(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.liveFallbacks.Add(float64(n))
}

func (m *Manager) ObserveHTTP(route, method string, status int, d time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(d.Seconds())
}
