package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the service counters exposed at /metrics.
type Metrics struct {
	CacheHits      prometheus.Counter
	CacheMisses    prometheus.Counter
	DemoFallbacks  prometheus.Counter
	SourceFailures *prometheus.CounterVec
	RowsDropped    prometheus.Counter
}

// NewMetrics registers the counters on reg. Tests pass a fresh registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "report_cache_hits_total",
			Help: "Report requests served from the TTL cache.",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "report_cache_misses_total",
			Help: "Report requests that recomputed from live sources.",
		}),
		DemoFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "report_demo_fallbacks_total",
			Help: "Live computations that fell back to synthetic data.",
		}),
		SourceFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "report_source_failures_total",
			Help: "Whole-source fetch or normalization failures.",
		}, []string{"source"}),
		RowsDropped: factory.NewCounter(prometheus.CounterOpts{
			Name: "report_rows_dropped_total",
			Help: "Raw rows dropped during normalization.",
		}),
	}
}
