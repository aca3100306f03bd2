package algorithms

import (
	"errors"
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

func TestConnectedComponents_SingleComponent(t *testing.T) {
	g := cycleGraph(t, 5)

	components := ConnectedComponents(g)
	if len(components) != 1 {
		t.Fatalf("Expected 1 component, got %d", len(components))
	}
	if len(components[0]) != 5 {
		t.Errorf("Expected 5 members, got %d", len(components[0]))
	}
}

func TestConnectedComponents_Split(t *testing.T) {
	g := grid.NewGraph()
	for _, id := range []string{"a", "b", "c", "x", "y", "lonely"} {
		g.AddNode(grid.Node{ID: id})
	}
	link(t, g, "a", "b")
	link(t, g, "b", "c")
	link(t, g, "x", "y")

	components := ConnectedComponents(g)
	if len(components) != 3 {
		t.Fatalf("Expected 3 components, got %d", len(components))
	}
	if !reflect.DeepEqual(components[0], []string{"a", "b", "c"}) {
		t.Errorf("Unexpected first component: %v", components[0])
	}
	if !reflect.DeepEqual(components[1], []string{"x", "y"}) {
		t.Errorf("Unexpected second component: %v", components[1])
	}
	if !reflect.DeepEqual(components[2], []string{"lonely"}) {
		t.Errorf("Isolated node must form its own component, got %v", components[2])
	}
}

func TestLargestComponent_Extracts(t *testing.T) {
	g := grid.NewGraph()
	for _, id := range []string{"a", "b", "c", "d", "x", "y"} {
		g.AddNode(grid.Node{ID: id})
	}
	link(t, g, "a", "b")
	link(t, g, "b", "c")
	link(t, g, "c", "d")
	link(t, g, "x", "y")

	working, err := LargestComponent(g)
	if err != nil {
		t.Fatalf("LargestComponent failed: %v", err)
	}
	if working.NodeCount() != 4 {
		t.Errorf("Expected 4 nodes, got %d", working.NodeCount())
	}
	if working.HasNode("x") || working.HasNode("y") {
		t.Error("Minor component leaked into the working graph")
	}
	if working.EdgeCount() != 3 {
		t.Errorf("Expected 3 edges, got %d", working.EdgeCount())
	}

	// The input graph is untouched.
	if g.NodeCount() != 6 || g.EdgeCount() != 4 {
		t.Error("LargestComponent mutated its input")
	}
}

func TestLargestComponent_TieBreaksByDiscoveryOrder(t *testing.T) {
	g := grid.NewGraph()
	for _, id := range []string{"a", "b", "x", "y"} {
		g.AddNode(grid.Node{ID: id})
	}
	link(t, g, "a", "b")
	link(t, g, "x", "y")

	working, err := LargestComponent(g)
	if err != nil {
		t.Fatalf("LargestComponent failed: %v", err)
	}
	if !working.HasNode("a") || !working.HasNode("b") {
		t.Errorf("Tie must resolve to the first-discovered component, got %v", working.Nodes())
	}
}

func TestLargestComponent_Idempotent(t *testing.T) {
	g := grid.NewGraph()
	for _, id := range []string{"a", "b", "c", "x"} {
		g.AddNode(grid.Node{ID: id})
	}
	link(t, g, "a", "b")
	link(t, g, "b", "c")

	once, err := LargestComponent(g)
	if err != nil {
		t.Fatalf("First extraction failed: %v", err)
	}
	twice, err := LargestComponent(once)
	if err != nil {
		t.Fatalf("Second extraction failed: %v", err)
	}
	if !reflect.DeepEqual(once.Nodes(), twice.Nodes()) {
		t.Errorf("Extraction not idempotent: %v vs %v", once.Nodes(), twice.Nodes())
	}
	if once.EdgeCount() != twice.EdgeCount() {
		t.Errorf("Edge count changed on re-extraction: %d vs %d",
			once.EdgeCount(), twice.EdgeCount())
	}
}

func TestLargestComponent_EmptyGraph(t *testing.T) {
	_, err := LargestComponent(grid.NewGraph())
	if !errors.Is(err, grid.ErrEmptyGraph) {
		t.Errorf("Expected ErrEmptyGraph, got %v", err)
	}
}
