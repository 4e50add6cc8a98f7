package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects stage-latency, encoder-cache, and corpus-ingest
// counters/histograms. Registered against a caller-supplied registry so
// multiple Pipeline values (e.g. in tests) don't collide on the default
// global registry.
type Metrics struct {
	StageLatency  *prometheus.HistogramVec
	CacheHits     prometheus.Counter
	CacheMisses   prometheus.Counter
	CorpusIngests prometheus.Counter
	AnalysesTotal *prometheus.CounterVec
}

// NewMetrics builds and registers a Metrics set against reg. reg may be a
// fresh prometheus.NewRegistry() in tests, or prometheus.DefaultRegisterer
// in production.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		StageLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "legalrisk_stage_latency_seconds",
			Help:    "Latency of each pipeline stage.",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		CacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "legalrisk_encoder_cache_hits_total",
			Help: "Encoder cache hits.",
		}),
		CacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "legalrisk_encoder_cache_misses_total",
			Help: "Encoder cache misses.",
		}),
		CorpusIngests: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "legalrisk_corpus_ingests_total",
			Help: "Contracts ingested into the corpus profile.",
		}),
		AnalysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "legalrisk_analyses_total",
			Help: "Analyze calls by contract_type and outcome.",
		}, []string{"contract_type", "outcome"}),
	}
	reg.MustRegister(m.StageLatency, m.CacheHits, m.CacheMisses, m.CorpusIngests, m.AnalysesTotal)
	return m
}

// ObserveStage records the wall-clock duration of one pipeline stage.
func (m *Metrics) ObserveStage(stage string, start time.Time) {
	if m == nil {
		return
	}
	m.StageLatency.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}
