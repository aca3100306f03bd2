package algorithms

import (
	"math/rand"
	"sort"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// CommunityResult holds a detected partition of the working graph.
type CommunityResult struct {
	// Communities lists every community as a set of original node ids,
	// sorted descending by size (ties by first member id). Members keep
	// the graph's insertion order.
	Communities [][]string
	// Modularity of the final partition on the original graph.
	Modularity float64
	// NodeCommunity maps each node id to its index in Communities.
	NodeCommunity map[string]int
}

// levelGraph is the coarsened weighted graph one Louvain level works on.
// Nodes are dense indices; weights aggregate parallel edges and, after the
// first collapse, whole communities.
type levelGraph struct {
	adjacency []map[int]float64 // neighbor -> summed edge weight, excl. self
	selfLoops []float64         // summed self-loop weight per node
	totalW    float64           // m: sum of all edge weights
}

// LouvainCommunities detects communities by multilevel modularity
// optimization: greedy local moves until no move improves modularity, then
// collapse communities into super-nodes and repeat on the coarsened graph.
//
// Node visitation order is a seeded shuffle and equal-gain moves resolve to
// the lowest community id, so identical seed means identical partition.
func LouvainCommunities(g *grid.Graph, seed int64) *CommunityResult {
	ids := g.Nodes()
	n := len(ids)
	if n == 0 {
		return &CommunityResult{NodeCommunity: map[string]int{}}
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	level := buildLevelGraph(g, index)
	rng := rand.New(rand.NewSource(seed))

	// membership[i] is the original node's community in the current level's
	// index space.
	membership := make([]int, n)
	for i := range membership {
		membership[i] = i
	}

	for {
		assignment, moved := oneLevel(level, rng)
		if !moved {
			break
		}

		compact := renumber(assignment)
		for i := range membership {
			membership[i] = compact[assignment[membership[i]]]
		}

		next := collapse(level, assignment, compact)
		if len(next.adjacency) == len(level.adjacency) {
			break
		}
		level = next
	}

	// Group original nodes by final community, preserving insertion order.
	groups := make(map[int][]string)
	for i, id := range ids {
		groups[membership[i]] = append(groups[membership[i]], id)
	}
	communities := make([][]string, 0, len(groups))
	for _, members := range groups {
		communities = append(communities, members)
	}
	sort.Slice(communities, func(i, j int) bool {
		if len(communities[i]) != len(communities[j]) {
			return len(communities[i]) > len(communities[j])
		}
		return communities[i][0] < communities[j][0]
	})

	nodeCommunity := make(map[string]int, n)
	for ci, members := range communities {
		for _, id := range members {
			nodeCommunity[id] = ci
		}
	}

	return &CommunityResult{
		Communities:   communities,
		Modularity:    modularity(g, index, nodeCommunity, ids),
		NodeCommunity: nodeCommunity,
	}
}

// buildLevelGraph projects the grid graph onto dense indices with unit edge
// weights; parallel edges accumulate.
func buildLevelGraph(g *grid.Graph, index map[string]int) *levelGraph {
	level := &levelGraph{
		adjacency: make([]map[int]float64, len(index)),
		selfLoops: make([]float64, len(index)),
	}
	for i := range level.adjacency {
		level.adjacency[i] = make(map[int]float64)
	}
	for _, e := range g.Edges() {
		u, v := index[e.From], index[e.To]
		if u == v {
			level.selfLoops[u] += 1.0
		} else {
			level.adjacency[u][v] += 1.0
			level.adjacency[v][u] += 1.0
		}
		level.totalW += 1.0
	}
	return level
}

// degreeOf returns the weighted degree of node i; self-loops count twice.
func (l *levelGraph) degreeOf(i int) float64 {
	d := 2 * l.selfLoops[i]
	for _, w := range l.adjacency[i] {
		d += w
	}
	return d
}

// oneLevel runs the greedy move phase on one coarsened graph. Returns the
// community assignment and whether any node changed community.
func oneLevel(level *levelGraph, rng *rand.Rand) (assignment []int, moved bool) {
	n := len(level.adjacency)
	assignment = make([]int, n)
	degree := make([]float64, n)
	communityTotal := make([]float64, n) // sum of degrees per community
	for i := 0; i < n; i++ {
		assignment[i] = i
		degree[i] = level.degreeOf(i)
		communityTotal[i] = degree[i]
	}

	if level.totalW == 0 {
		return assignment, false
	}
	m2 := 2 * level.totalW

	order := rng.Perm(n)

	for improved := true; improved; {
		improved = false
		for _, i := range order {
			current := assignment[i]

			// Weight from i into each neighboring community.
			neighborWeight := make(map[int]float64)
			for j, w := range level.adjacency[i] {
				neighborWeight[assignment[j]] += w
			}

			// Detach i; gains are evaluated against the remainder.
			communityTotal[current] -= degree[i]

			bestCommunity := current
			bestGain := neighborWeight[current] - communityTotal[current]*degree[i]/m2
			for c, w := range neighborWeight {
				if c == current {
					continue
				}
				gain := w - communityTotal[c]*degree[i]/m2
				if gain > bestGain || (gain == bestGain && c < bestCommunity) {
					bestGain = gain
					bestCommunity = c
				}
			}

			communityTotal[bestCommunity] += degree[i]
			assignment[i] = bestCommunity
			if bestCommunity != current {
				improved = true
				moved = true
			}
		}
	}

	return assignment, moved
}

// renumber maps sparse community labels to dense indices in order of first
// appearance, keeping collapse deterministic.
func renumber(assignment []int) map[int]int {
	compact := make(map[int]int)
	for _, c := range assignment {
		if _, seen := compact[c]; !seen {
			compact[c] = len(compact)
		}
	}
	return compact
}

// collapse merges each community into a super-node, summing edge weights
// between and within communities.
func collapse(level *levelGraph, assignment []int, compact map[int]int) *levelGraph {
	next := &levelGraph{
		adjacency: make([]map[int]float64, len(compact)),
		selfLoops: make([]float64, len(compact)),
		totalW:    level.totalW,
	}
	for i := range next.adjacency {
		next.adjacency[i] = make(map[int]float64)
	}

	for i := range level.adjacency {
		ci := compact[assignment[i]]
		next.selfLoops[ci] += level.selfLoops[i]
		for j, w := range level.adjacency[i] {
			cj := compact[assignment[j]]
			if ci == cj {
				// Each intra-community edge is seen from both ends.
				next.selfLoops[ci] += w / 2
			} else {
				next.adjacency[ci][cj] += w
			}
		}
	}
	return next
}

// modularity evaluates Q for a partition of the original unit-weight graph.
func modularity(g *grid.Graph, index map[string]int, nodeCommunity map[string]int, ids []string) float64 {
	m := float64(g.EdgeCount())
	if m == 0 {
		return 0
	}

	communityCount := 0
	for _, c := range nodeCommunity {
		if c+1 > communityCount {
			communityCount = c + 1
		}
	}
	internal := make([]float64, communityCount)
	total := make([]float64, communityCount)

	for _, e := range g.Edges() {
		cu, cv := nodeCommunity[e.From], nodeCommunity[e.To]
		if cu == cv {
			internal[cu] += 1.0
		}
	}
	for _, id := range ids {
		total[nodeCommunity[id]] += float64(g.Degree(id))
	}

	q := 0.0
	for c := 0; c < communityCount; c++ {
		q += internal[c]/m - (total[c]/(2*m))*(total[c]/(2*m))
	}
	return q
}
