// Package algorithms implements the structural analyses that run over the
// grid graph: component extraction, degree and hub analysis, betweenness
// centrality, removal-based robustness simulation, max-flow/min-cut
// bottleneck detection, community detection and voltage classification.
//
// Every function takes the graph read-only. Analyses that need to mutate the
// topology clone it first; the caller's graph is never touched.
package algorithms

import (
	"container/list"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// ConnectedComponents finds all connected components via BFS. Components are
// returned in discovery order, which follows node insertion order, and each
// component lists its members in BFS visit order.
func ConnectedComponents(g *grid.Graph) [][]string {
	visited := make(map[string]bool, g.NodeCount())
	var components [][]string

	for _, start := range g.Nodes() {
		if visited[start] {
			continue
		}

		component := make([]string, 0)
		queue := list.New()
		queue.PushBack(start)
		visited[start] = true

		for queue.Len() > 0 {
			id := queue.Remove(queue.Front()).(string)
			component = append(component, id)

			for _, neighbor := range g.Neighbors(id) {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue.PushBack(neighbor)
				}
			}
		}

		components = append(components, component)
	}

	return components
}

// LargestComponent extracts the induced subgraph of the largest connected
// component. Ties in size break by discovery order. Returns
// grid.ErrEmptyGraph when the input has no nodes.
//
// The result is the canonical working graph for every downstream analysis;
// extraction is idempotent.
func LargestComponent(g *grid.Graph) (*grid.Graph, error) {
	if g.NodeCount() == 0 {
		return nil, grid.ErrEmptyGraph
	}

	components := ConnectedComponents(g)
	largest := components[0]
	for _, c := range components[1:] {
		if len(c) > len(largest) {
			largest = c
		}
	}

	return g.Subgraph(largest), nil
}
