package telemetry

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	// MatchesFound counts applicable records reported, by strategy
	MatchesFound = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cpematch",
			Name:      "matches_found_total",
			Help:      "Total number of applicable vulnerable software records reported",
		},
		[]string{"strategy"},
	)

	// RecordsSkipped counts knowledge base records that could not be evaluated
	RecordsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cpematch",
			Name:      "records_skipped_total",
			Help:      "Total number of vulnerable software records skipped during matching",
		},
		[]string{"reason"},
	)

	// ComponentsSkipped counts components that a match tier could not evaluate
	ComponentsSkipped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cpematch",
			Name:      "components_skipped_total",
			Help:      "Total number of components a match tier could not evaluate",
		},
		[]string{"strategy", "reason"},
	)

	// ComponentsMatched counts components run through the pipeline
	ComponentsMatched = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "cpematch",
			Name:      "components_matched_total",
			Help:      "Total number of components run through the matching pipeline",
		},
	)

	once sync.Once
)

// InitMetrics registers all metrics with the given registerer (the global registry when nil).
// Only the first call has any effect.
func InitMetrics(reg prometheus.Registerer) {
	once.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		for _, c := range []prometheus.Collector{MatchesFound, RecordsSkipped, ComponentsSkipped, ComponentsMatched} {
			// already registered collectors are fine, the counters are still usable
			_ = reg.Register(c)
		}
	})
}
