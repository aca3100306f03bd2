// Package metrics instruments the analytics engine with Prometheus
// collectors. The Registry is injected into the engine; callers that do not
// scrape can pass a registry and simply never gather it.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Bottleneck request outcomes.
const (
	OutcomeOK           = "ok"
	OutcomeNodeNotFound = "node_not_found"
	OutcomeSameNode     = "same_node"
	OutcomeNoPath       = "no_path"
)

// Registry bundles all engine collectors behind a private Prometheus
// registry.
type Registry struct {
	registry *prometheus.Registry

	GraphNodes prometheus.Gauge
	GraphEdges prometheus.Gauge

	AnalysisDuration   *prometheus.HistogramVec
	BatchRunsTotal     prometheus.Counter
	BottleneckRequests *prometheus.CounterVec
	BottleneckDuration prometheus.Histogram
}

// NewRegistry creates a Registry with all collectors registered.
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}

	r.GraphNodes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridres_graph_nodes",
			Help: "Number of nodes in the working graph (largest component)",
		},
	)

	r.GraphEdges = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "gridres_graph_edges",
			Help: "Number of edges in the working graph",
		},
	)

	r.AnalysisDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gridres_analysis_duration_seconds",
			Help:    "Duration of one batch analysis",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30, 120, 600},
		},
		[]string{"analysis"},
	)

	r.BatchRunsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "gridres_batch_runs_total",
			Help: "Total number of completed batch analysis runs",
		},
	)

	r.BottleneckRequests = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "gridres_bottleneck_requests_total",
			Help: "Total on-demand bottleneck requests by outcome",
		},
		[]string{"outcome"},
	)

	r.BottleneckDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "gridres_bottleneck_duration_seconds",
			Help:    "Duration of on-demand bottleneck computations",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 30},
		},
	)

	return r
}

// Gatherer exposes the underlying registry for scraping or inspection.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.registry
}

// SetGraphSize records the working graph dimensions.
func (r *Registry) SetGraphSize(nodes, edges int) {
	r.GraphNodes.Set(float64(nodes))
	r.GraphEdges.Set(float64(edges))
}

// ObserveAnalysis records the duration of one named batch analysis.
func (r *Registry) ObserveAnalysis(analysis string, d time.Duration) {
	r.AnalysisDuration.WithLabelValues(analysis).Observe(d.Seconds())
}

// ObserveBottleneck records one on-demand bottleneck request.
func (r *Registry) ObserveBottleneck(outcome string, d time.Duration) {
	r.BottleneckRequests.WithLabelValues(outcome).Inc()
	r.BottleneckDuration.Observe(d.Seconds())
}
