// Package metrics collects and exposes Prometheus metrics for the career
// intelligence engine: cache effectiveness, shortlist rate, and per-stage
// latency. Exposed on /metrics in the Prometheus text format.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector holds the engine's Prometheus metrics. All methods are safe on a
// nil receiver so components can run unmetered in tests.
type Collector struct {
	cacheHits     *prometheus.CounterVec
	cacheMisses   *prometheus.CounterVec
	shortlisted   *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	analyses      prometheus.Counter
}

// NewCollector creates and registers the metric set on the default registerer.
func NewCollector() *Collector {
	c := &Collector{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total cache hits, labelled by key prefix",
		}, []string{"prefix"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total cache misses, labelled by key prefix",
		}, []string{"prefix"}),
		shortlisted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "ats_shortlisted_total",
			Help: "Total job matches that scored at or above the shortlist threshold",
		}, []string{"job_title"}),
		stageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stage_duration_seconds",
			Help:    "Pipeline stage execution latency",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"stage"}),
		analyses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "analyses_total",
			Help: "Total career analysis workflows executed",
		}),
	}

	prometheus.MustRegister(c.cacheHits, c.cacheMisses, c.shortlisted, c.stageDuration, c.analyses)
	return c
}

// CacheHit records a cache hit for the given key prefix.
func (c *Collector) CacheHit(prefix string) {
	if c == nil {
		return
	}
	c.cacheHits.WithLabelValues(prefix).Inc()
}

// CacheMiss records a cache miss for the given key prefix.
func (c *Collector) CacheMiss(prefix string) {
	if c == nil {
		return
	}
	c.cacheMisses.WithLabelValues(prefix).Inc()
}

// Shortlisted records a match score at or above the shortlist threshold.
func (c *Collector) Shortlisted(jobTitle string) {
	if c == nil {
		return
	}
	c.shortlisted.WithLabelValues(jobTitle).Inc()
}

// ObserveStage records the latency of one pipeline stage execution.
func (c *Collector) ObserveStage(stage string, d time.Duration) {
	if c == nil {
		return
	}
	c.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// AnalysisStarted counts one workflow execution.
func (c *Collector) AnalysisStarted() {
	if c == nil {
		return
	}
	c.analyses.Inc()
}

// Handler returns the Prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}
