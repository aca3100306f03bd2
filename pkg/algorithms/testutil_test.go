package algorithms

import (
	"fmt"
	"testing"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// link adds an attribute-free edge, failing the test on error.
func link(t *testing.T, g *grid.Graph, from, to string) {
	t.Helper()
	if err := g.AddEdge(grid.Edge{From: from, To: to}); err != nil {
		t.Fatalf("AddEdge(%s-%s) failed: %v", from, to, err)
	}
}

// cycleGraph builds a ring n0-n1-...-n(k-1)-n0.
func cycleGraph(t *testing.T, k int) *grid.Graph {
	t.Helper()
	g := grid.NewGraph()
	for i := 0; i < k; i++ {
		g.AddNode(grid.Node{ID: fmt.Sprintf("n%d", i)})
	}
	for i := 0; i < k; i++ {
		link(t, g, fmt.Sprintf("n%d", i), fmt.Sprintf("n%d", (i+1)%k))
	}
	return g
}

// pathGraph builds a chain over the given ids.
func pathGraph(t *testing.T, ids ...string) *grid.Graph {
	t.Helper()
	g := grid.NewGraph()
	for _, id := range ids {
		g.AddNode(grid.Node{ID: id})
	}
	for i := 0; i+1 < len(ids); i++ {
		link(t, g, ids[i], ids[i+1])
	}
	return g
}

// starGraph builds a hub with k spokes s1..sk.
func starGraph(t *testing.T, k int) *grid.Graph {
	t.Helper()
	g := grid.NewGraph()
	g.AddNode(grid.Node{ID: "hub"})
	for i := 1; i <= k; i++ {
		id := fmt.Sprintf("s%d", i)
		g.AddNode(grid.Node{ID: id})
		link(t, g, "hub", id)
	}
	return g
}

// twoCliquesGraph builds two complete graphs over the prefixed ids joined by
// a single bridge between the first member of each.
func twoCliquesGraph(t *testing.T, size int) *grid.Graph {
	t.Helper()
	g := grid.NewGraph()
	clique := func(prefix string) []string {
		ids := make([]string, size)
		for i := range ids {
			ids[i] = fmt.Sprintf("%s%d", prefix, i)
			g.AddNode(grid.Node{ID: ids[i]})
		}
		for i := 0; i < size; i++ {
			for j := i + 1; j < size; j++ {
				link(t, g, ids[i], ids[j])
			}
		}
		return ids
	}
	left := clique("a")
	right := clique("b")
	link(t, g, left[0], right[0])
	return g
}
