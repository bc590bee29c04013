package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AnalyticsMetrics tracks cache effectiveness and store latency per endpoint.
type AnalyticsMetrics struct {
	cacheHits      *prometheus.CounterVec
	cacheMisses    *prometheus.CounterVec
	cacheErrors    *prometheus.CounterVec
	cacheEvictions prometheus.Counter
	queryDuration  *prometheus.HistogramVec
}

func NewAnalyticsMetrics(reg prometheus.Registerer) *AnalyticsMetrics {
	if reg == nil {
		return &AnalyticsMetrics{}
	}
	hits := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_cache_hits_total",
		Help: "Analytics responses served from cache.",
	}, []string{"endpoint"})
	misses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_cache_misses_total",
		Help: "Analytics responses computed from the store.",
	}, []string{"endpoint"})
	errs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "analytics_cache_errors_total",
		Help: "Cache operations that failed and fell back to the store.",
	}, []string{"endpoint"})
	evictions := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "analytics_cache_evictions_total",
		Help: "Entries evicted to keep the cache under its size bound.",
	})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "analytics_query_duration_seconds",
		Help:    "Store query latency per endpoint and outcome.",
		Buckets: []float64{.005, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
	}, []string{"endpoint", "outcome"})
	reg.MustRegister(hits, misses, errs, evictions, duration)
	return &AnalyticsMetrics{
		cacheHits:      hits,
		cacheMisses:    misses,
		cacheErrors:    errs,
		cacheEvictions: evictions,
		queryDuration:  duration,
	}
}

func (m *AnalyticsMetrics) CacheHit(endpoint string) {
	if m == nil || m.cacheHits == nil {
		return
	}
	m.cacheHits.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func (m *AnalyticsMetrics) CacheMiss(endpoint string) {
	if m == nil || m.cacheMisses == nil {
		return
	}
	m.cacheMisses.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func (m *AnalyticsMetrics) CacheError(endpoint string) {
	if m == nil || m.cacheErrors == nil {
		return
	}
	m.cacheErrors.WithLabelValues(normalizeLabel(endpoint)).Inc()
}

func (m *AnalyticsMetrics) CacheEvicted(n int) {
	if m == nil || m.cacheEvictions == nil || n <= 0 {
		return
	}
	m.cacheEvictions.Add(float64(n))
}

// ObserveQuery records how long a store query took; outcome is "ok" or "error".
func (m *AnalyticsMetrics) ObserveQuery(endpoint string, d time.Duration, err error) {
	if m == nil || m.queryDuration == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.queryDuration.WithLabelValues(normalizeLabel(endpoint), outcome).Observe(d.Seconds())
}

func normalizeLabel(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
