package algorithms

import (
	"container/list"
	"fmt"

	"github.com/dd0wney/cluso-gridres/pkg/attrs"
	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// capacityEps is the residual threshold below which an arc counts as
// saturated. Capacities derived from 1/length are small floats; exact-zero
// comparisons would loop on rounding noise.
const capacityEps = 1e-12

// CutEdge is one line crossing the minimum cut.
type CutEdge struct {
	From     string
	To       string
	Voltage  string  // raw attribute, as loaded
	LengthM  float64 // normalised, 0 when unknown
	Capacity float64
}

// CutResult is the outcome of a bottleneck computation between a source and
// sink substation.
type CutResult struct {
	Source string
	Sink   string
	// CutValue is the maximum flow, equal by duality to the summed
	// capacity of the boundary edges.
	CutValue float64
	// SourceSide lists the nodes still reachable from the source in the
	// residual graph, in insertion order.
	SourceSide []string
	// BoundaryEdges are the lines with one endpoint on each side of the
	// cut: removing exactly these disconnects source from sink.
	BoundaryEdges []CutEdge
	// MinVoltageOnCut is the lowest positive voltage found on the cut (the
	// weakest link), 0 when no boundary edge carries a determinable
	// positive voltage.
	MinVoltageOnCut uint64
}

// flowArc is one direction of an undirected edge in the residual network.
// Arcs come in pairs: arc 2i and 2i+1 are the two directions of edge i, each
// acting as the other's reverse.
type flowArc struct {
	to       int
	residual float64
}

// MinCut computes the minimum cut between source and sink over a disposable
// capacity view of g. Capacities come from capacity (nil defaults to the
// inverse-length model). The flow algorithm is Edmonds-Karp; its augmentation
// bound depends only on the topology, so float capacities terminate.
//
// Returns grid.ErrNodeNotFound when either endpoint is absent,
// grid.ErrSameNode when they are equal, and grid.ErrNoPath when the two nodes
// sit in different components - distinguished from a genuine zero-capacity
// cut, which cannot occur under the supported capacity models.
func MinCut(g *grid.Graph, source, sink string, capacity func(*grid.Edge) float64) (*CutResult, error) {
	if !g.HasNode(source) {
		return nil, fmt.Errorf("min-cut source %q: %w", source, grid.ErrNodeNotFound)
	}
	if !g.HasNode(sink) {
		return nil, fmt.Errorf("min-cut sink %q: %w", sink, grid.ErrNodeNotFound)
	}
	if source == sink {
		return nil, fmt.Errorf("min-cut %q: %w", source, grid.ErrSameNode)
	}
	if capacity == nil {
		capacity = attrs.CapacityInverseLength.Capacity
	}

	ids := g.Nodes()
	index := make(map[string]int, len(ids))
	for i, id := range ids {
		index[id] = i
	}
	s, t := index[source], index[sink]

	// Build the residual network. Self-loops carry no s-t flow.
	edges := make([]*grid.Edge, 0, g.EdgeCount())
	arcs := make([]flowArc, 0, 2*g.EdgeCount())
	adjacency := make([][]int, len(ids))
	for _, e := range g.Edges() {
		u, v := index[e.From], index[e.To]
		if u == v {
			continue
		}
		c := capacity(e)
		edges = append(edges, e)
		arcs = append(arcs, flowArc{to: v, residual: c}, flowArc{to: u, residual: c})
		adjacency[u] = append(adjacency[u], len(arcs)-2)
		adjacency[v] = append(adjacency[v], len(arcs)-1)
	}

	if !connected(adjacency, arcs, s, t) {
		return nil, fmt.Errorf("min-cut %s -> %s: %w", source, sink, grid.ErrNoPath)
	}

	flow := 0.0
	parentArc := make([]int, len(ids))
	for {
		if !augmentingPath(adjacency, arcs, s, t, parentArc) {
			break
		}

		bottleneck := -1.0
		for v := t; v != s; v = arcs[parentArc[v]^1].to {
			if r := arcs[parentArc[v]].residual; bottleneck < 0 || r < bottleneck {
				bottleneck = r
			}
		}
		for v := t; v != s; v = arcs[parentArc[v]^1].to {
			arcs[parentArc[v]].residual -= bottleneck
			arcs[parentArc[v]^1].residual += bottleneck
		}
		flow += bottleneck
	}

	// Min-cut partition: residual reachability from the source.
	reachable := residualReachable(adjacency, arcs, s)

	result := &CutResult{
		Source:   source,
		Sink:     sink,
		CutValue: flow,
	}
	for i, id := range ids {
		if reachable[i] {
			result.SourceSide = append(result.SourceSide, id)
		}
	}

	for i, e := range edges {
		u, v := arcs[2*i+1].to, arcs[2*i].to
		if reachable[u] == reachable[v] {
			continue
		}
		result.BoundaryEdges = append(result.BoundaryEdges, CutEdge{
			From:     e.From,
			To:       e.To,
			Voltage:  e.Voltage,
			LengthM:  attrs.ParseLength(e.LengthM, 0),
			Capacity: capacity(e),
		})
		if voltage := attrs.ParseVoltage(e.Voltage); voltage > 0 {
			if result.MinVoltageOnCut == 0 || voltage < result.MinVoltageOnCut {
				result.MinVoltageOnCut = voltage
			}
		}
	}

	return result, nil
}

// augmentingPath finds a shortest residual path from s to t via BFS, writing
// the arc used to enter each node into parentArc. Reports whether t was
// reached.
func augmentingPath(adjacency [][]int, arcs []flowArc, s, t int, parentArc []int) bool {
	for i := range parentArc {
		parentArc[i] = -1
	}
	parentArc[s] = -2

	queue := list.New()
	queue.PushBack(s)

	for queue.Len() > 0 {
		v := queue.Remove(queue.Front()).(int)
		for _, ai := range adjacency[v] {
			a := arcs[ai]
			if a.residual <= capacityEps || parentArc[a.to] != -1 {
				continue
			}
			parentArc[a.to] = ai
			if a.to == t {
				return true
			}
			queue.PushBack(a.to)
		}
	}
	return false
}

// connected reports whether t is reachable from s ignoring capacities. Used
// to tell a disconnected pair apart from a saturated cut.
func connected(adjacency [][]int, arcs []flowArc, s, t int) bool {
	visited := make([]bool, len(adjacency))
	visited[s] = true
	queue := list.New()
	queue.PushBack(s)

	for queue.Len() > 0 {
		v := queue.Remove(queue.Front()).(int)
		if v == t {
			return true
		}
		for _, ai := range adjacency[v] {
			if w := arcs[ai].to; !visited[w] {
				visited[w] = true
				queue.PushBack(w)
			}
		}
	}
	return false
}

// residualReachable returns the set of nodes reachable from s through arcs
// with remaining residual capacity.
func residualReachable(adjacency [][]int, arcs []flowArc, s int) []bool {
	reachable := make([]bool, len(adjacency))
	reachable[s] = true
	queue := list.New()
	queue.PushBack(s)

	for queue.Len() > 0 {
		v := queue.Remove(queue.Front()).(int)
		for _, ai := range adjacency[v] {
			a := arcs[ai]
			if a.residual > capacityEps && !reachable[a.to] {
				reachable[a.to] = true
				queue.PushBack(a.to)
			}
		}
	}
	return reachable
}
