package grid

import "errors"

var (
	// ErrEmptyGraph is returned when an operation needs at least one node.
	ErrEmptyGraph = errors.New("graph has no nodes")
	// ErrNodeNotFound is returned when a node id is not present in the graph.
	ErrNodeNotFound = errors.New("node not found")
	// ErrSameNode is returned when an operation needs two distinct nodes.
	ErrSameNode = errors.New("source and sink are the same node")
	// ErrNoPath is returned when two nodes are not connected.
	ErrNoPath = errors.New("no path between nodes")
)
