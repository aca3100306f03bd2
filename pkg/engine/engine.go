// Package engine wires the analyses together. It owns the canonical working
// graph (the largest connected component of the loaded snapshot, immutable
// after construction), runs the batch analyses concurrently, and serves the
// one on-demand computation: the source/sink bottleneck.
package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/dd0wney/cluso-gridres/pkg/algorithms"
	"github.com/dd0wney/cluso-gridres/pkg/attrs"
	"github.com/dd0wney/cluso-gridres/pkg/config"
	"github.com/dd0wney/cluso-gridres/pkg/grid"
	"github.com/dd0wney/cluso-gridres/pkg/logging"
	"github.com/dd0wney/cluso-gridres/pkg/metrics"
)

// Engine runs analyses over an immutable working graph. All batch analyses
// read the canonical graph only; the two destructive ones (robustness,
// min-cut) clone it internally, so an Engine is safe for concurrent use.
type Engine struct {
	graph  *grid.Graph
	cfg    *config.Config
	log    logging.Logger
	reg    *metrics.Registry
	flight singleflight.Group
}

// New extracts the largest connected component of raw as the working graph
// and returns an engine over it. Returns grid.ErrEmptyGraph when raw has no
// nodes. nil cfg, log or reg fall back to defaults.
func New(raw *grid.Graph, cfg *config.Config, log logging.Logger, reg *metrics.Registry) (*Engine, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if log == nil {
		log = logging.NewNopLogger()
	}
	if reg == nil {
		reg = metrics.NewRegistry()
	}

	working, err := algorithms.LargestComponent(raw)
	if err != nil {
		return nil, fmt.Errorf("extract working graph: %w", err)
	}

	log = log.With(logging.Component("engine"))
	log.Info("working graph extracted",
		logging.Int("nodes", working.NodeCount()),
		logging.Int("edges", working.EdgeCount()),
		logging.Int("dropped_nodes", raw.NodeCount()-working.NodeCount()),
	)
	reg.SetGraphSize(working.NodeCount(), working.EdgeCount())

	return &Engine{graph: working, cfg: cfg, log: log, reg: reg}, nil
}

// Graph returns the working graph. Callers must treat it as read-only.
func (e *Engine) Graph() *grid.Graph { return e.graph }

// RunBatch computes every batch analysis and assembles the presentation
// report. The analyses are independent and run concurrently; each one that
// needs a mutable view clones the graph privately. Batch analyses recover
// from attribute defects internally and do not fail.
func (e *Engine) RunBatch(ctx context.Context) (*BatchReport, error) {
	// The degree ranking is cheap and feeds both the targeted attack order
	// and the hub composition, so it runs up front.
	degree := algorithms.DegreeRanking(e.graph)

	hubs := degree
	if len(hubs) > e.cfg.TopHubs {
		hubs = hubs[:e.cfg.TopHubs]
	}

	report := &BatchReport{
		DegreeRanking: degree,
		Leaves:        algorithms.Leaves(e.graph),
		Histogram:     algorithms.DegreeHistogram(e.graph),
	}

	group, _ := errgroup.WithContext(ctx)

	group.Go(e.timed("betweenness", func() {
		scores := algorithms.Betweenness(e.graph, algorithms.CentralityOptions{
			Pivots: e.cfg.Centrality.Pivots,
			Seed:   e.cfg.Centrality.Seed,
		})
		report.Centrality = algorithms.CentralityRanking(scores)
	}))

	group.Go(e.timed("weighted_betweenness", func() {
		scores := algorithms.Betweenness(e.graph, algorithms.CentralityOptions{
			Pivots:   e.cfg.Centrality.Pivots,
			Seed:     e.cfg.Centrality.Seed,
			Weighted: true,
		})
		report.WeightedCentrality = algorithms.CentralityRanking(scores)
	}))

	group.Go(e.timed("robustness_targeted", func() {
		order := algorithms.TargetedAttackOrder(e.graph, e.cfg.Robustness.Targets)
		report.TargetedRobustness = algorithms.SimulateAttack(e.graph, order)
	}))

	group.Go(e.timed("robustness_random", func() {
		order := algorithms.RandomAttackOrder(e.graph, e.cfg.Robustness.Targets, e.cfg.Robustness.Seed)
		report.RandomRobustness = algorithms.SimulateAttack(e.graph, order)
	}))

	group.Go(e.timed("communities", func() {
		report.Communities = algorithms.LouvainCommunities(e.graph, e.cfg.Communities.Seed)
	}))

	group.Go(e.timed("voltage", func() {
		voltages := algorithms.NodeVoltages(e.graph)
		report.GeoRows = algorithms.GeoRows(e.graph, voltages)
		report.HubComposition = algorithms.HubCompositions(e.graph, hubs)
	}))

	if err := group.Wait(); err != nil {
		return nil, err
	}

	e.reg.BatchRunsTotal.Inc()
	return report, nil
}

// timed wraps a batch analysis with duration logging and metrics.
func (e *Engine) timed(name string, fn func()) func() error {
	return func() error {
		timer := logging.StartTimer(e.log, "analysis complete", logging.Analysis(name))
		start := time.Now()
		fn()
		e.reg.ObserveAnalysis(name, time.Since(start))
		timer.End()
		return nil
	}
}

// Bottleneck computes the minimum cut between two substations chosen at
// runtime. Both ids are validated against the working graph before any flow
// computation runs. Each request builds its own capacity view, so concurrent
// requests never share state; identical concurrent requests are coalesced.
//
// Recoverable failures are wrapped grid.ErrNodeNotFound, grid.ErrSameNode or
// grid.ErrNoPath; engine state is unaffected either way.
func (e *Engine) Bottleneck(source, sink string) (*algorithms.CutResult, error) {
	requestID := uuid.NewString()
	log := e.log.With(logging.RequestID(requestID))
	start := time.Now()

	key := source + "\x00" + sink
	result, err, shared := e.flight.Do(key, func() (any, error) {
		model := attrs.CapacityModel(e.cfg.Capacity.Model)
		return algorithms.MinCut(e.graph, source, sink, model.Capacity)
	})

	elapsed := time.Since(start)
	e.reg.ObserveBottleneck(bottleneckOutcome(err), elapsed)

	if err != nil {
		log.Warn("bottleneck request failed",
			logging.String("source_id", source),
			logging.String("sink_id", sink),
			logging.Error(err),
		)
		return nil, err
	}

	cut := result.(*algorithms.CutResult)
	log.Info("bottleneck computed",
		logging.String("source_id", source),
		logging.String("sink_id", sink),
		logging.Float64("cut_value", cut.CutValue),
		logging.Count(len(cut.BoundaryEdges)),
		logging.Latency(elapsed),
		logging.Field{Key: "coalesced", Value: shared},
	)
	return cut, nil
}

// bottleneckOutcome maps a bottleneck error onto its metrics label.
func bottleneckOutcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, grid.ErrNodeNotFound):
		return metrics.OutcomeNodeNotFound
	case errors.Is(err, grid.ErrSameNode):
		return metrics.OutcomeSameNode
	case errors.Is(err, grid.ErrNoPath):
		return metrics.OutcomeNoPath
	default:
		return "error"
	}
}
