package decision

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "decision_cache_hits_total",
			Help: "Count of recommendation requests answered from the result cache.",
		},
	)

	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "decision_recommendations_total",
			Help: "Count of computed recommendations by top action.",
		},
		[]string{"action"},
	)
)

func init() {
	prometheus.MustRegister(CacheHitsTotal, RecommendationsTotal)
}
