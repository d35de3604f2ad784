// Package metrics defines the Prometheus metric collectors exposed by the
// search engine and a handler for scraping them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds every Prometheus collector the engine updates.
type Metrics struct {
	DocumentsIndexedTotal  prometheus.Counter
	DocumentsRemovedTotal  prometheus.Counter
	DuplicatesRemovedTotal prometheus.Counter
	QueriesTotal           *prometheus.CounterVec
	QueryLatency           *prometheus.HistogramVec
	RankedResultsCount     prometheus.Histogram
	AccumulatorShardSize   *prometheus.GaugeVec
}

// New creates and registers all collectors against reg. Pass
// prometheus.NewRegistry() for an isolated registry (useful in tests), or
// prometheus.DefaultRegisterer to expose them process-wide.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		DocumentsIndexedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tfidx_documents_indexed_total",
				Help: "Total documents successfully added to the index.",
			},
		),
		DocumentsRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tfidx_documents_removed_total",
				Help: "Total documents removed from the index.",
			},
		),
		DuplicatesRemovedTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tfidx_duplicates_removed_total",
				Help: "Total documents removed by the deduplicator.",
			},
		),
		QueriesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tfidx_queries_total",
				Help: "Total queries run, by result (ok, error, empty).",
			},
			[]string{"result"},
		),
		QueryLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tfidx_query_latency_seconds",
				Help:    "Query latency in seconds, by execution mode (sequential, parallel).",
				Buckets: []float64{0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
			},
			[]string{"mode"},
		),
		RankedResultsCount: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "tfidx_ranked_results_count",
				Help:    "Number of documents returned per query.",
				Buckets: []float64{0, 1, 2, 3, 4, 5},
			},
		),
		AccumulatorShardSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tfidx_accumulator_shard_size",
				Help: "Number of entries held in each accumulator shard after a drain.",
			},
			[]string{"shard"},
		),
	}

	reg.MustRegister(
		m.DocumentsIndexedTotal,
		m.DocumentsRemovedTotal,
		m.DuplicatesRemovedTotal,
		m.QueriesTotal,
		m.QueryLatency,
		m.RankedResultsCount,
		m.AccumulatorShardSize,
	)

	return m
}

// NewDefault is New(prometheus.DefaultRegisterer), for callers that want
// their collectors exposed on the process-wide registry scraped by Handler.
func NewDefault() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// Handler returns the Prometheus scrape HTTP handler. The caller decides
// whether and where to mount it — the engine itself never starts a server.
func Handler() http.Handler {
	return promhttp.Handler()
}
