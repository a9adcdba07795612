package metrics

import (
	"runtime"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// System metrics
	SystemMemoryUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_memory_bytes",
		Help: "Current system memory usage",
	})

	SystemGoroutines = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "system_goroutines",
		Help: "Number of goroutines",
	})

	// Article source metrics
	ArticleFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "article_fetches_total",
			Help: "Article fetch attempts by outcome",
		},
		[]string{"outcome"},
	)

	DisambiguationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "disambiguations_total",
			Help: "Ambiguous titles resolved, by resolution strategy",
		},
		[]string{"strategy"},
	)

	// Extraction metrics
	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "entity_extraction_duration_seconds",
			Help: "Time spent extracting entities from article text",
		},
		[]string{"extractor"},
	)

	EntitiesExtracted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "entities_extracted_total",
			Help: "Number of entity mentions extracted",
		},
		[]string{"entity_type"},
	)

	// Selection metrics
	CandidatesPromoted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "candidates_promoted_total",
		Help: "Single-word candidates replaced by a containing multi-word candidate",
	})

	CandidatesDiscarded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "candidates_discarded_total",
			Help: "Expansion candidates discarded during selection",
		},
		[]string{"reason"},
	)

	// Graph metrics
	GraphNodeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_nodes_total",
			Help: "Total number of nodes registered in the graph",
		},
		[]string{"node_type"},
	)

	GraphEdgeCount = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "graph_edges_total",
			Help: "Total number of edges recorded in the graph",
		},
		[]string{"edge_type"},
	)
)

// UpdateSystemMetrics updates system-level metrics.
func UpdateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	SystemMemoryUsage.Set(float64(m.Alloc))
	SystemGoroutines.Set(float64(runtime.NumGoroutine()))
}
