package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Define global variables for metrics.
// We use 'promauto' which automatically registers metrics without complex initialization.

var (
	// Elements Total (Gauge)
	// Tracks how many elements each built collection holds, labeled by
	// collection kind ("nodes" or "edges").
	ElementsTotal = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "hetgraph_elements_total",
			Help: "Total number of elements in built collections",
		},
		[]string{"kind"},
	)

	// Adjacency Builds (Counter)
	// Counts lazy adjacency-view constructions, labeled by view. Each view
	// is built at most once per collection, so this effectively counts how
	// many collections actually paid for each view.
	AdjacencyBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hetgraph_adjacency_builds_total",
			Help: "Total number of adjacency view constructions",
		},
		[]string{"view"},
	)

	// Adjacency Build Duration (Histogram)
	// Build time is dominated by one global stable sort over the edge list,
	// so buckets span sub-millisecond (small graphs) to seconds.
	AdjacencyBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hetgraph_adjacency_build_duration_seconds",
			Help:    "Duration of adjacency view constructions in seconds",
			Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"view"},
	)
)
