package rx

import "github.com/prometheus/client_golang/prometheus"

/*prometheus*/
var (
	PatternCacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rx_pattern_cache_hits_total",
			Help: "Free-function calls served by a cached compiled pattern.",
		},
	)

	PatternCacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rx_pattern_cache_misses_total",
			Help: "Free-function calls that had to compile their pattern.",
		},
	)

	PatternCompiles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rx_pattern_compiles_total",
			Help: "Patterns compiled successfully, per engine.",
		},
		[]string{"engine"},
	)

	PatternCacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rx_pattern_cache_size",
			Help: "Entries in the compiled pattern cache.",
		},
	)
)

// Collectors returns every rx metric, for registration with a
// prometheus.Registerer.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{PatternCacheHits, PatternCacheMisses, PatternCompiles, PatternCacheSize}
}

// UpdateCacheMetrics refreshes PatternCacheSize. It is meant to be called by
// the metrics handler before serving.
func UpdateCacheMetrics() {
	PatternCacheSize.Set(float64(CacheLen()))
}
