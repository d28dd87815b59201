package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Total number of decision requests served (single + bulk items)
	DecisionRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "decision_requests_total",
		Help: "Total decision requests",
	})

	// Latency of a decision request, end to end
	DecisionLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "decision_request_latency_seconds",
		Help:    "Latency of decision requests",
		Buckets: []float64{0.01, 0.02, 0.05, 0.1, 0.2, 0.5, 1},
	})

	// Items processed through the bulk endpoint
	BulkItems = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "decision_bulk_items_total",
		Help: "Total items served through the bulk endpoint",
	})
)

func Init() {
	prometheus.MustRegister(
		DecisionRequests,
		DecisionLatency,
		BulkItems,
	)
}
