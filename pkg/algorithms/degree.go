package algorithms

import (
	"sort"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// NodeDegree pairs a node with its degree for ranked output.
type NodeDegree struct {
	ID     string
	Degree int
}

// DegreeRanking returns all nodes sorted by degree descending. Ties keep the
// graph's insertion order, so the ranking is stable across runs.
func DegreeRanking(g *grid.Graph) []NodeDegree {
	ranking := make([]NodeDegree, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		ranking = append(ranking, NodeDegree{ID: id, Degree: g.Degree(id)})
	}
	sort.SliceStable(ranking, func(i, j int) bool {
		return ranking[i].Degree > ranking[j].Degree
	})
	return ranking
}

// Leaves returns all degree-1 nodes in insertion order. These are the
// dead-end substations: a single line failure isolates them.
func Leaves(g *grid.Graph) []string {
	leaves := make([]string, 0)
	for _, id := range g.Nodes() {
		if g.Degree(id) == 1 {
			leaves = append(leaves, id)
		}
	}
	return leaves
}

// DegreeHistogram returns degree -> node count. Degree 0 is excluded: the
// working graph is a connected component, so isolated nodes cannot occur.
func DegreeHistogram(g *grid.Graph) map[int]int {
	hist := make(map[int]int)
	for _, id := range g.Nodes() {
		if d := g.Degree(id); d > 0 {
			hist[d]++
		}
	}
	return hist
}
