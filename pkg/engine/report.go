package engine

import "github.com/dd0wney/cluso-gridres/pkg/algorithms"

// BatchReport carries every batch analysis output in the plain tabular form
// the presentation layer consumes. A report is immutable once returned.
type BatchReport struct {
	// DegreeRanking lists all nodes by degree descending.
	DegreeRanking []algorithms.NodeDegree
	// Leaves are the degree-1 dead-end substations.
	Leaves []string
	// Histogram maps degree to node count (degree 0 excluded).
	Histogram map[int]int

	// Centrality and WeightedCentrality are betweenness rankings, by hop
	// count and by physical line length respectively.
	Centrality         []algorithms.NodeScore
	WeightedCentrality []algorithms.NodeScore

	// TargetedRobustness is the hub-first percolation curve;
	// RandomRobustness the same-length uniform baseline.
	TargetedRobustness []algorithms.RobustnessPoint
	RandomRobustness   []algorithms.RobustnessPoint

	// Communities is the modularity partition, size-descending.
	Communities *algorithms.CommunityResult

	// GeoRows classifies every located node for the map layer.
	GeoRows []algorithms.GeoRow
	// HubComposition breaks the top hubs' lines down by voltage tier.
	HubComposition []algorithms.HubComposition
}

// TopCentrality returns the first n entries of the unweighted ranking.
func (r *BatchReport) TopCentrality(n int) []algorithms.NodeScore {
	if n > len(r.Centrality) {
		n = len(r.Centrality)
	}
	return r.Centrality[:n]
}

// TopCommunities returns the n largest communities.
func (r *BatchReport) TopCommunities(n int) [][]string {
	if r.Communities == nil {
		return nil
	}
	if n > len(r.Communities.Communities) {
		n = len(r.Communities.Communities)
	}
	return r.Communities.Communities[:n]
}
