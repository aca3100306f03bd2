package algorithms

import (
	"reflect"
	"testing"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

func TestDegreeRanking_SortsDescending(t *testing.T) {
	g := starGraph(t, 4)
	link(t, g, "s1", "s2")

	ranking := DegreeRanking(g)
	if ranking[0].ID != "hub" || ranking[0].Degree != 4 {
		t.Errorf("Expected hub with degree 4 on top, got %+v", ranking[0])
	}
	for i := 1; i < len(ranking); i++ {
		if ranking[i].Degree > ranking[i-1].Degree {
			t.Fatalf("Ranking not descending at %d: %+v", i, ranking)
		}
	}
}

func TestDegreeRanking_TiesKeepInsertionOrder(t *testing.T) {
	g := pathGraph(t, "a", "b", "c", "d")

	ranking := DegreeRanking(g)
	// b and c tie at degree 2, a and d at degree 1.
	want := []NodeDegree{
		{ID: "b", Degree: 2},
		{ID: "c", Degree: 2},
		{ID: "a", Degree: 1},
		{ID: "d", Degree: 1},
	}
	if !reflect.DeepEqual(ranking, want) {
		t.Errorf("Expected %v, got %v", want, ranking)
	}
}

func TestLeaves(t *testing.T) {
	g := starGraph(t, 3)

	leaves := Leaves(g)
	if !reflect.DeepEqual(leaves, []string{"s1", "s2", "s3"}) {
		t.Errorf("Expected all spokes as leaves, got %v", leaves)
	}
}

func TestLeaves_NoneOnCycle(t *testing.T) {
	g := cycleGraph(t, 4)
	if leaves := Leaves(g); len(leaves) != 0 {
		t.Errorf("A cycle has no leaves, got %v", leaves)
	}
}

func TestDegreeHistogram(t *testing.T) {
	g := starGraph(t, 3)

	hist := DegreeHistogram(g)
	want := map[int]int{3: 1, 1: 3}
	if !reflect.DeepEqual(hist, want) {
		t.Errorf("Expected %v, got %v", want, hist)
	}
}

func TestDegreeHistogram_ExcludesIsolated(t *testing.T) {
	g := grid.NewGraph()
	g.AddNode(grid.Node{ID: "a"})
	g.AddNode(grid.Node{ID: "b"})
	g.AddNode(grid.Node{ID: "alone"})
	link(t, g, "a", "b")

	hist := DegreeHistogram(g)
	if _, ok := hist[0]; ok {
		t.Error("Degree 0 must not appear in the histogram")
	}
	if hist[1] != 2 {
		t.Errorf("Expected two degree-1 nodes, got %d", hist[1])
	}
}
