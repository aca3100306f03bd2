package algorithms

import (
	"github.com/dd0wney/cluso-gridres/pkg/attrs"
	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// GeoRow is one map marker: a substation with coordinates, its maximum
// incident voltage and the tier it classifies into.
type GeoRow struct {
	ID         string
	Lat        float64
	Lon        float64
	MaxVoltage uint64
	Tier       attrs.Tier
}

// HubComposition breaks down one hub's incident lines by voltage tier.
type HubComposition struct {
	ID     string
	Degree int
	Lines  map[attrs.Tier]int
}

// NodeVoltages folds the raw voltage attribute over every edge and returns
// each node's maximum incident voltage. Nodes whose edges carry no parseable
// voltage data map to 0.
func NodeVoltages(g *grid.Graph) map[string]uint64 {
	voltages := make(map[string]uint64, g.NodeCount())
	for _, id := range g.Nodes() {
		voltages[id] = 0
	}
	for _, e := range g.Edges() {
		v := attrs.ParseVoltage(e.Voltage)
		if v > voltages[e.From] {
			voltages[e.From] = v
		}
		if v > voltages[e.To] {
			voltages[e.To] = v
		}
	}
	return voltages
}

// GeoRows classifies every node with valid coordinates for the map layer.
// Nodes without coordinates are skipped here but still contribute to (and
// receive) voltage aggregation. Rows follow node insertion order.
func GeoRows(g *grid.Graph, voltages map[string]uint64) []GeoRow {
	rows := make([]GeoRow, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		node, _ := g.Node(id)
		if !node.HasCoords {
			continue
		}
		v := voltages[id]
		rows = append(rows, GeoRow{
			ID:         id,
			Lat:        node.Lat,
			Lon:        node.Lon,
			MaxVoltage: v,
			Tier:       attrs.ClassifyVoltage(v),
		})
	}
	return rows
}

// HubCompositions counts, for each given hub, its incident lines per voltage
// tier. Feeds the stacked per-hub breakdown in the presentation layer.
func HubCompositions(g *grid.Graph, hubs []NodeDegree) []HubComposition {
	out := make([]HubComposition, 0, len(hubs))
	for _, hub := range hubs {
		lines := make(map[attrs.Tier]int)
		for _, e := range g.IncidentEdges(hub.ID) {
			lines[attrs.ClassifyVoltage(attrs.ParseVoltage(e.Voltage))]++
		}
		out = append(out, HubComposition{
			ID:     hub.ID,
			Degree: hub.Degree,
			Lines:  lines,
		})
	}
	return out
}
