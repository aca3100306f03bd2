// Package attrs is the single normalization boundary between the raw string
// attributes carried on the snapshot ("voltage", "lengthm") and the numeric
// values the analyses consume. Every fallback for absent or malformed data is
// decided here; downstream code never parses attribute strings itself.
package attrs

import (
	"strconv"
	"strings"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// DefaultLength is the edge weight substituted when "lengthm" is absent or
// malformed.
const DefaultLength = 1.0

// ParseVoltage parses a raw voltage attribute. Multi-circuit lines encode
// several values joined by ";"; the maximum parseable value wins. Returns 0
// when the string is empty or contains no parseable token.
func ParseVoltage(raw string) uint64 {
	if raw == "" {
		return 0
	}
	var max uint64
	for _, token := range strings.Split(raw, ";") {
		v, err := strconv.ParseUint(strings.TrimSpace(token), 10, 64)
		if err != nil {
			continue
		}
		if v > max {
			max = v
		}
	}
	return max
}

// ParseLength parses a raw length attribute in metres, falling back to def
// when the string is absent or malformed.
func ParseLength(raw string, def float64) float64 {
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return def
	}
	return v
}

// EdgeWeight returns the shortest-path weight of an edge: its physical length
// in metres, or DefaultLength when unknown.
func EdgeWeight(e *grid.Edge) float64 {
	return ParseLength(e.LengthM, DefaultLength)
}

// CapacityFromLength models line capacity as the reciprocal of length:
// shorter lines are cheaper to traverse. This is a domain heuristic for the
// min-cut analysis, not a measured electrical rating. A zero length maps to
// capacity 1.0.
func CapacityFromLength(length float64) float64 {
	if length == 0 {
		return 1.0
	}
	return 1.0 / length
}
