package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ── HTTP request metrics (RED method) ──────────────────────────────────

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yield_radar",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"method", "path", "status_code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "yield_radar",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	HTTPRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "yield_radar",
		Subsystem: "http",
		Name:      "requests_in_flight",
		Help:      "Number of HTTP requests currently being processed.",
	})
)

// ── Provider fetch metrics ─────────────────────────────────────────────

var (
	ProviderFetchTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yield_radar",
		Subsystem: "provider",
		Name:      "fetch_total",
		Help:      "Total pool fetch attempts per provider.",
	}, []string{"provider", "status"})

	ProviderFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "yield_radar",
		Subsystem: "provider",
		Name:      "fetch_duration_seconds",
		Help:      "Duration of pool fetch per provider in seconds.",
		Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
	}, []string{"provider"})

	ProviderPoolCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "yield_radar",
		Subsystem: "provider",
		Name:      "pool_count",
		Help:      "Number of pools returned by the last fetch per provider.",
	}, []string{"provider"})

	AggregationFallbackTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "yield_radar",
		Subsystem: "provider",
		Name:      "aggregation_fallback_total",
		Help:      "Times the static fallback dataset was served because every provider failed.",
	})
)

// ── Price resolver metrics ─────────────────────────────────────────────

var (
	PriceResolveTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yield_radar",
		Subsystem: "price",
		Name:      "resolve_total",
		Help:      "Price resolutions by winning source (override, cascade source, cache, fallback).",
	}, []string{"source"})

	PriceSourceErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yield_radar",
		Subsystem: "price",
		Name:      "source_errors_total",
		Help:      "Failed or implausible responses per price source.",
	}, []string{"source"})
)

// ── LLM metrics ────────────────────────────────────────────────────────

var (
	LLMRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "yield_radar",
		Subsystem: "llm",
		Name:      "requests_total",
		Help:      "Total LLM completion calls by model and status.",
	}, []string{"model", "status"})
)
