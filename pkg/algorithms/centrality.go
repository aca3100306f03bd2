package algorithms

import (
	"container/heap"
	"container/list"
	"math"
	"math/rand"
	"sort"

	"github.com/dd0wney/cluso-gridres/pkg/attrs"
	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// weightEps is the tolerance for comparing accumulated float path lengths in
// the weighted Brandes pass.
const weightEps = 1e-9

// CentralityOptions controls a betweenness computation.
type CentralityOptions struct {
	// Pivots is the number of sampled source nodes k. Zero, negative, or
	// >= node count disables sampling and computes the exact result.
	Pivots int
	// Seed drives pivot selection. Identical seed and Pivots reproduce the
	// exact same pivot set, and therefore the exact same scores.
	Seed int64
	// Weighted selects Dijkstra shortest paths using Weight instead of
	// hop-count BFS.
	Weighted bool
	// Weight derives an edge weight; nil defaults to the physical line
	// length (attrs.EdgeWeight). Ignored unless Weighted is set.
	Weight func(*grid.Edge) float64
}

// NodeScore pairs a node with a centrality score for ranked output.
type NodeScore struct {
	ID    string
	Score float64
}

// arc is one direction of an undirected edge in the index-based adjacency
// view the traversals run on.
type arc struct {
	to     int
	weight float64
}

// Betweenness computes betweenness centrality for every node using Brandes'
// algorithm. With sampling enabled (Pivots < n), raw accumulations are
// rescaled by n/k so the result stays an unbiased estimator of the exact
// computation. Scores are normalised by (n-1)(n-2) into [0, 1].
func Betweenness(g *grid.Graph, opts CentralityOptions) map[string]float64 {
	ids := g.Nodes()
	n := len(ids)

	scores := make(map[string]float64, n)
	for _, id := range ids {
		scores[id] = 0.0
	}
	if n < 3 {
		return scores
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}

	weightFn := opts.Weight
	if weightFn == nil {
		weightFn = attrs.EdgeWeight
	}

	// Self-loops never lie on a shortest path between distinct nodes.
	adjacency := make([][]arc, n)
	for _, e := range g.Edges() {
		u, v := index[e.From], index[e.To]
		if u == v {
			continue
		}
		w := 1.0
		if opts.Weighted {
			w = weightFn(e)
		}
		adjacency[u] = append(adjacency[u], arc{to: v, weight: w})
		adjacency[v] = append(adjacency[v], arc{to: u, weight: w})
	}

	pivots := make([]int, n)
	for i := range pivots {
		pivots[i] = i
	}
	sampled := opts.Pivots > 0 && opts.Pivots < n
	if sampled {
		rng := rand.New(rand.NewSource(opts.Seed))
		pivots = rng.Perm(n)[:opts.Pivots]
	}

	raw := make([]float64, n)
	for _, source := range pivots {
		if opts.Weighted {
			brandesDijkstra(adjacency, source, raw)
		} else {
			brandesBFS(adjacency, source, raw)
		}
	}

	scale := 1.0
	if sampled {
		scale = float64(n) / float64(opts.Pivots)
	}
	scale /= float64(n-1) * float64(n-2)

	for i, id := range ids {
		scores[id] = raw[i] * scale
	}
	return scores
}

// brandesBFS runs one unweighted Brandes pass from source, accumulating
// dependencies into raw.
func brandesBFS(adjacency [][]arc, source int, raw []float64) {
	n := len(adjacency)
	stack := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	distance := make([]int, n)
	for i := range distance {
		distance[i] = -1
	}

	sigma[source] = 1.0
	distance[source] = 0

	queue := list.New()
	queue.PushBack(source)

	for queue.Len() > 0 {
		v := queue.Remove(queue.Front()).(int)
		stack = append(stack, v)

		for _, a := range adjacency[v] {
			w := a.to
			if distance[w] < 0 {
				queue.PushBack(w)
				distance[w] = distance[v] + 1
			}
			if distance[w] == distance[v]+1 {
				sigma[w] += sigma[v]
				predecessors[w] = append(predecessors[w], v)
			}
		}
	}

	accumulate(stack, predecessors, sigma, source, raw)
}

// pqItem is a pending node in the Dijkstra frontier.
type pqItem struct {
	node     int
	distance float64
}

type nodeQueue []pqItem

func (q nodeQueue) Len() int           { return len(q) }
func (q nodeQueue) Less(i, j int) bool { return q[i].distance < q[j].distance }
func (q nodeQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *nodeQueue) Push(x any) {
	*q = append(*q, x.(pqItem))
}

func (q *nodeQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// brandesDijkstra runs one weighted Brandes pass from source, accumulating
// dependencies into raw. Nodes enter the stack in settle order, which is
// non-decreasing by distance as back-propagation requires.
func brandesDijkstra(adjacency [][]arc, source int, raw []float64) {
	n := len(adjacency)
	stack := make([]int, 0, n)
	predecessors := make([][]int, n)
	sigma := make([]float64, n)
	settled := make([]bool, n)
	distance := make([]float64, n)
	for i := range distance {
		distance[i] = math.Inf(1)
	}

	sigma[source] = 1.0
	distance[source] = 0

	pq := nodeQueue{{node: source, distance: 0}}
	heap.Init(&pq)

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(pqItem)
		v := item.node
		if settled[v] {
			continue
		}
		settled[v] = true
		stack = append(stack, v)

		for _, a := range adjacency[v] {
			w := a.to
			if settled[w] {
				continue
			}
			candidate := distance[v] + a.weight
			switch {
			case candidate < distance[w]-weightEps:
				distance[w] = candidate
				sigma[w] = sigma[v]
				predecessors[w] = append(predecessors[w][:0], v)
				heap.Push(&pq, pqItem{node: w, distance: candidate})
			case math.Abs(candidate-distance[w]) <= weightEps:
				sigma[w] += sigma[v]
				predecessors[w] = append(predecessors[w], v)
			}
		}
	}

	accumulate(stack, predecessors, sigma, source, raw)
}

// accumulate back-propagates path dependencies from the traversal stack onto
// the raw betweenness totals.
func accumulate(stack []int, predecessors [][]int, sigma []float64, source int, raw []float64) {
	delta := make([]float64, len(raw))
	for i := len(stack) - 1; i >= 0; i-- {
		w := stack[i]
		for _, v := range predecessors[w] {
			delta[v] += (sigma[v] / sigma[w]) * (1.0 + delta[w])
		}
		if w != source {
			raw[w] += delta[w]
		}
	}
}

// CentralityRanking converts a score map into a ranking sorted descending by
// score, ties broken by node id. Two runs with identical scores produce
// byte-identical output.
func CentralityRanking(scores map[string]float64) []NodeScore {
	ranking := make([]NodeScore, 0, len(scores))
	for id, score := range scores {
		ranking = append(ranking, NodeScore{ID: id, Score: score})
	}
	sort.Slice(ranking, func(i, j int) bool {
		if ranking[i].Score != ranking[j].Score {
			return ranking[i].Score > ranking[j].Score
		}
		return ranking[i].ID < ranking[j].ID
	})
	return ranking
}
