// Package grid holds the in-memory model of a transmission network: an
// undirected multigraph of substations connected by lines carrying raw
// voltage and length attributes.
//
// The canonical graph is built once at startup and never mutated afterwards.
// Analyses that need to delete nodes (robustness percolation, min-cut capacity
// overlays) work on a Clone.
package grid

import "fmt"

// Node is a substation. Coordinates are optional; HasCoords reports whether
// both lat and lon were present and parseable at load time.
type Node struct {
	ID        string
	Lat       float64
	Lon       float64
	HasCoords bool
}

// Edge is a single transmission line between two substations. Parallel lines
// between the same pair are kept as independent records. Voltage and LengthM
// are the raw attribute strings from the snapshot; numeric views are derived
// by the attrs package, never stored here.
type Edge struct {
	From    string
	To      string
	Voltage string // possibly ";"-separated multi-value
	LengthM string // metres, possibly absent or malformed
}

// Graph is an undirected multigraph keyed by string node ids. Node and edge
// iteration follows insertion order so that every analysis downstream is
// deterministic without sorting map keys.
type Graph struct {
	nodes    map[string]*Node
	order    []string
	edges    []*Edge
	incident map[string][]int // node id -> indices into edges
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{
		nodes:    make(map[string]*Node),
		incident: make(map[string][]int),
	}
}

// AddNode registers a node. Adding an id that already exists is a no-op;
// the first record wins.
func (g *Graph) AddNode(n Node) {
	if _, exists := g.nodes[n.ID]; exists {
		return
	}
	node := n
	g.nodes[n.ID] = &node
	g.order = append(g.order, n.ID)
}

// AddEdge registers an undirected edge. Both endpoints must already exist.
// Self-loops are accepted; they contribute 2 to the node's degree so that the
// degree-sum invariant (sum of degrees == 2 * edge count) always holds.
func (g *Graph) AddEdge(e Edge) error {
	if _, ok := g.nodes[e.From]; !ok {
		return fmt.Errorf("add edge %s-%s: %q: %w", e.From, e.To, e.From, ErrNodeNotFound)
	}
	if _, ok := g.nodes[e.To]; !ok {
		return fmt.Errorf("add edge %s-%s: %q: %w", e.From, e.To, e.To, ErrNodeNotFound)
	}
	edge := e
	idx := len(g.edges)
	g.edges = append(g.edges, &edge)
	g.incident[e.From] = append(g.incident[e.From], idx)
	g.incident[e.To] = append(g.incident[e.To], idx)
	return nil
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return len(g.order) }

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node record for id.
func (g *Graph) Node(id string) (*Node, bool) {
	n, ok := g.nodes[id]
	return n, ok
}

// Nodes returns all node ids in insertion order. The slice is a copy.
func (g *Graph) Nodes() []string {
	out := make([]string, len(g.order))
	copy(out, g.order)
	return out
}

// Edges returns all edges in insertion order. The slice is a copy; the edge
// records are shared and must be treated as read-only.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// IncidentEdges returns the edges incident to id in insertion order.
// A self-loop appears twice, matching its degree contribution.
func (g *Graph) IncidentEdges(id string) []*Edge {
	indices := g.incident[id]
	out := make([]*Edge, len(indices))
	for i, idx := range indices {
		out[i] = g.edges[idx]
	}
	return out
}

// Neighbors returns the node ids adjacent to id, in incident-edge order.
// Parallel edges repeat the neighbor; a self-loop yields the node itself.
func (g *Graph) Neighbors(id string) []string {
	indices := g.incident[id]
	out := make([]string, 0, len(indices))
	for _, idx := range indices {
		e := g.edges[idx]
		if e.From == id {
			out = append(out, e.To)
		} else {
			out = append(out, e.From)
		}
	}
	return out
}

// Degree returns the number of edge endpoints attached to id.
func (g *Graph) Degree(id string) int {
	return len(g.incident[id])
}

// Clone creates a deep copy. The copy iterates in the same order as the
// original, so analyses on a clone stay deterministic.
func (g *Graph) Clone() *Graph {
	clone := &Graph{
		nodes:    make(map[string]*Node, len(g.nodes)),
		order:    make([]string, len(g.order)),
		edges:    make([]*Edge, len(g.edges)),
		incident: make(map[string][]int, len(g.incident)),
	}
	copy(clone.order, g.order)
	for id, n := range g.nodes {
		node := *n
		clone.nodes[id] = &node
	}
	for i, e := range g.edges {
		edge := *e
		clone.edges[i] = &edge
	}
	for id, indices := range g.incident {
		cp := make([]int, len(indices))
		copy(cp, indices)
		clone.incident[id] = cp
	}
	return clone
}

// RemoveNode deletes a node and every edge incident to it. Removing an
// unknown id is a no-op. Insertion order of the remaining nodes and edges is
// preserved.
func (g *Graph) RemoveNode(id string) {
	if _, ok := g.nodes[id]; !ok {
		return
	}
	delete(g.nodes, id)
	delete(g.incident, id)

	for i, nid := range g.order {
		if nid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	kept := make([]*Edge, 0, len(g.edges))
	for _, e := range g.edges {
		if e.From == id || e.To == id {
			continue
		}
		kept = append(kept, e)
	}
	g.edges = kept
	g.reindex()
}

// Subgraph returns the subgraph induced by keep: the listed nodes plus every
// edge whose endpoints are both kept. Order follows the original graph, not
// the keep argument.
func (g *Graph) Subgraph(keep []string) *Graph {
	keepSet := make(map[string]bool, len(keep))
	for _, id := range keep {
		keepSet[id] = true
	}

	sub := NewGraph()
	for _, id := range g.order {
		if !keepSet[id] {
			continue
		}
		sub.AddNode(*g.nodes[id])
	}
	for _, e := range g.edges {
		if keepSet[e.From] && keepSet[e.To] {
			// Endpoints verified present; AddEdge cannot fail here.
			sub.AddEdge(*e) //nolint:errcheck
		}
	}
	return sub
}

// reindex rebuilds the incident map after edge deletion.
func (g *Graph) reindex() {
	g.incident = make(map[string][]int, len(g.nodes))
	for idx, e := range g.edges {
		g.incident[e.From] = append(g.incident[e.From], idx)
		g.incident[e.To] = append(g.incident[e.To], idx)
	}
}
