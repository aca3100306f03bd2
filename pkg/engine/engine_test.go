package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-gridres/pkg/config"
	"github.com/dd0wney/cluso-gridres/pkg/grid"
	"github.com/dd0wney/cluso-gridres/pkg/metrics"
)

// snapshotGraph builds a small transmission snapshot: two four-station
// clusters joined by one 380kV bridge, plus a two-station minor component
// that the engine must drop.
func snapshotGraph(t *testing.T) *grid.Graph {
	t.Helper()
	g := grid.NewGraph()

	cluster := func(prefix string) []string {
		ids := make([]string, 4)
		for i := range ids {
			ids[i] = prefix + string(rune('1'+i))
			g.AddNode(grid.Node{ID: ids[i], Lat: float64(50 + i), Lon: 10, HasCoords: true})
		}
		for i := 0; i < len(ids); i++ {
			for j := i + 1; j < len(ids); j++ {
				err := g.AddEdge(grid.Edge{From: ids[i], To: ids[j], Voltage: "110000", LengthM: "500"})
				require.NoError(t, err)
			}
		}
		return ids
	}
	a := cluster("a")
	b := cluster("b")

	err := g.AddEdge(grid.Edge{From: a[0], To: b[0], Voltage: "380000", LengthM: "1000"})
	require.NoError(t, err)

	// Minor component, dropped at engine construction.
	g.AddNode(grid.Node{ID: "m1"})
	g.AddNode(grid.Node{ID: "m2"})
	require.NoError(t, g.AddEdge(grid.Edge{From: "m1", To: "m2"}))

	return g
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	eng, err := New(snapshotGraph(t), nil, nil, metrics.NewRegistry())
	require.NoError(t, err)
	return eng
}

func TestNew_ExtractsWorkingGraph(t *testing.T) {
	eng := newTestEngine(t)

	require.Equal(t, 8, eng.Graph().NodeCount(), "minor component must be dropped")
	require.False(t, eng.Graph().HasNode("m1"))
	require.Equal(t, 13, eng.Graph().EdgeCount())
}

func TestNew_EmptyGraph(t *testing.T) {
	_, err := New(grid.NewGraph(), nil, nil, nil)
	require.ErrorIs(t, err, grid.ErrEmptyGraph)
}

func TestRunBatch_PopulatesReport(t *testing.T) {
	eng := newTestEngine(t)

	report, err := eng.RunBatch(context.Background())
	require.NoError(t, err)

	require.Len(t, report.DegreeRanking, 8)
	require.Empty(t, report.Leaves, "clusters have no dead ends")
	require.NotEmpty(t, report.Histogram)

	require.Len(t, report.Centrality, 8)
	require.Len(t, report.WeightedCentrality, 8)

	// The bridge endpoints carry all inter-cluster paths.
	top := report.TopCentrality(2)
	require.ElementsMatch(t, []string{"a1", "b1"}, []string{top[0].ID, top[1].ID})

	// Attack length clamps to the 8 working nodes: 8 removals plus step 0.
	require.Len(t, report.TargetedRobustness, 9)
	require.Len(t, report.RandomRobustness, 9)
	require.Equal(t, 1.0, report.TargetedRobustness[0].Alive)
	require.Equal(t, 0.0, report.TargetedRobustness[8].Alive)

	require.NotNil(t, report.Communities)
	require.Len(t, report.Communities.Communities, 2, "expected one community per cluster")

	require.Len(t, report.GeoRows, 8)
	require.Len(t, report.HubComposition, 8)
}

func TestRunBatch_Deterministic(t *testing.T) {
	eng := newTestEngine(t)

	first, err := eng.RunBatch(context.Background())
	require.NoError(t, err)
	second, err := eng.RunBatch(context.Background())
	require.NoError(t, err)

	require.Equal(t, first.Centrality, second.Centrality)
	require.Equal(t, first.WeightedCentrality, second.WeightedCentrality)
	require.Equal(t, first.TargetedRobustness, second.TargetedRobustness)
	require.Equal(t, first.RandomRobustness, second.RandomRobustness)
	require.Equal(t, first.Communities, second.Communities)
}

func TestRunBatch_HonorsTopHubs(t *testing.T) {
	cfg := config.Default()
	cfg.TopHubs = 3

	eng, err := New(snapshotGraph(t), cfg, nil, nil)
	require.NoError(t, err)

	report, err := eng.RunBatch(context.Background())
	require.NoError(t, err)
	require.Len(t, report.HubComposition, 3)
	require.Len(t, report.DegreeRanking, 8, "full ranking is not truncated")
}

func TestBottleneck_AcrossBridge(t *testing.T) {
	eng := newTestEngine(t)

	cut, err := eng.Bottleneck("a3", "b3")
	require.NoError(t, err)

	// Only the bridge connects the clusters: 1/length capacity.
	require.InDelta(t, 1.0/1000, cut.CutValue, 1e-12)
	require.Len(t, cut.BoundaryEdges, 1)
	require.Equal(t, uint64(380000), cut.MinVoltageOnCut)
	require.Contains(t, cut.SourceSide, "a3")
	require.NotContains(t, cut.SourceSide, "b3")
}

func TestBottleneck_Repeatable(t *testing.T) {
	eng := newTestEngine(t)

	first, err := eng.Bottleneck("a1", "b2")
	require.NoError(t, err)
	second, err := eng.Bottleneck("a1", "b2")
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestBottleneck_UnknownNode(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Bottleneck("a1", "ghost")
	require.ErrorIs(t, err, grid.ErrNodeNotFound)

	// Nodes from the dropped minor component are unknown to the engine.
	_, err = eng.Bottleneck("m1", "a1")
	require.ErrorIs(t, err, grid.ErrNodeNotFound)
}

func TestBottleneck_SameNode(t *testing.T) {
	eng := newTestEngine(t)

	_, err := eng.Bottleneck("a1", "a1")
	require.ErrorIs(t, err, grid.ErrSameNode)
}

func TestBottleneck_UnitCapacityModel(t *testing.T) {
	cfg := config.Default()
	cfg.Capacity.Model = "unit"

	eng, err := New(snapshotGraph(t), cfg, nil, nil)
	require.NoError(t, err)

	cut, err := eng.Bottleneck("a3", "b3")
	require.NoError(t, err)
	require.InDelta(t, 1.0, cut.CutValue, 1e-12, "the single bridge counts as one line")
}

func TestTopCommunities(t *testing.T) {
	eng := newTestEngine(t)

	report, err := eng.RunBatch(context.Background())
	require.NoError(t, err)

	require.Len(t, report.TopCommunities(1), 1)
	require.Len(t, report.TopCommunities(100), 2, "n beyond the count clamps")
}
