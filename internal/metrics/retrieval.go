package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval Prometheus metrics.
var (
	RetrievalSearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rolodex",
			Name:      "retrieval_searches_total",
			Help:      "Total number of contact searches",
		},
		[]string{"status"}, // "ok" / "empty" / "degraded"
	)

	RetrievalVariantsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rolodex",
			Name:      "retrieval_variants_total",
			Help:      "Per-variant search outcomes",
		},
		[]string{"provenance", "status"},
	)

	RetrievalResults = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "rolodex",
			Name:      "retrieval_results",
			Help:      "Number of contacts returned per search",
			Buckets:   []float64{0, 1, 2, 3, 5, 8, 13, 21},
		},
	)
)

var retrievalMetricsRegistered bool

// RegisterRetrievalMetrics registers Prometheus retrieval metrics. Must be called once from main.
func RegisterRetrievalMetrics() {
	if retrievalMetricsRegistered {
		return
	}
	prometheus.MustRegister(RetrievalSearchesTotal)
	prometheus.MustRegister(RetrievalVariantsTotal)
	prometheus.MustRegister(RetrievalResults)
	retrievalMetricsRegistered = true
}
