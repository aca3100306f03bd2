// Package graphml decodes a GraphML topology snapshot into a grid.Graph.
// This is the loader side of the engine contract: produce an attributed
// undirected multigraph; all numeric interpretation of the attributes stays
// in the attrs package.
package graphml

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// Attribute names recognised on nodes and edges.
const (
	attrLat     = "lat"
	attrLon     = "lon"
	attrVoltage = "voltage"
	attrLength  = "lengthm"
)

type document struct {
	XMLName xml.Name  `xml:"graphml"`
	Keys    []key     `xml:"key"`
	Graphs  []graphEl `xml:"graph"`
}

type key struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
}

type graphEl struct {
	Nodes []nodeEl `xml:"node"`
	Edges []edgeEl `xml:"edge"`
}

type nodeEl struct {
	ID   string   `xml:"id,attr"`
	Data []dataEl `xml:"data"`
}

type edgeEl struct {
	Source string   `xml:"source,attr"`
	Target string   `xml:"target,attr"`
	Data   []dataEl `xml:"data"`
}

type dataEl struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// Parse decodes a GraphML document into a graph. Document order is
// preserved, so repeated loads of the same file build identical graphs.
// Attribute defects (missing coordinates, malformed values) never fail the
// load; they surface later as the attrs package's documented fallbacks.
func Parse(r io.Reader) (*grid.Graph, error) {
	var doc document
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode graphml: %w", err)
	}
	if len(doc.Graphs) == 0 {
		return nil, fmt.Errorf("graphml: no <graph> element")
	}

	// key id -> declared attribute name, per target kind
	names := make(map[string]string, len(doc.Keys))
	for _, k := range doc.Keys {
		names[k.For+"\x00"+k.ID] = k.AttrName
	}

	g := grid.NewGraph()
	// Multiple <graph> elements are rare but legal; treat them as one
	// disconnected snapshot and let component extraction sort it out.
	for _, ge := range doc.Graphs {
		for _, n := range ge.Nodes {
			node := grid.Node{ID: n.ID}
			var latRaw, lonRaw string
			for _, d := range n.Data {
				switch names["node\x00"+d.Key] {
				case attrLat:
					latRaw = d.Value
				case attrLon:
					lonRaw = d.Value
				}
			}
			if latRaw != "" && lonRaw != "" {
				lat, errLat := strconv.ParseFloat(latRaw, 64)
				lon, errLon := strconv.ParseFloat(lonRaw, 64)
				if errLat == nil && errLon == nil {
					node.Lat, node.Lon, node.HasCoords = lat, lon, true
				}
			}
			g.AddNode(node)
		}

		for _, e := range ge.Edges {
			edge := grid.Edge{From: e.Source, To: e.Target}
			for _, d := range e.Data {
				switch names["edge\x00"+d.Key] {
				case attrVoltage:
					edge.Voltage = d.Value
				case attrLength:
					edge.LengthM = d.Value
				}
			}
			if err := g.AddEdge(edge); err != nil {
				return nil, fmt.Errorf("graphml: %w", err)
			}
		}
	}

	return g, nil
}

// ParseFile opens and decodes a GraphML file.
func ParseFile(path string) (*grid.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open graphml: %w", err)
	}
	defer f.Close()
	return Parse(f)
}
