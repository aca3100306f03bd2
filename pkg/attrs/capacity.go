package attrs

import "github.com/dd0wney/cluso-gridres/pkg/grid"

// CapacityModel selects how edge capacities are derived for the min-cut
// analysis. The inverse-length heuristic is the production default; the unit
// model gives every line capacity 1.0, which turns the min-cut value into a
// plain line count.
type CapacityModel string

const (
	// CapacityInverseLength assigns capacity = 1/lengthm (1.0 when the
	// length is zero or unknown).
	CapacityInverseLength CapacityModel = "inverse-length"
	// CapacityUnit assigns capacity 1.0 to every edge.
	CapacityUnit CapacityModel = "unit"
)

// Valid reports whether the model is one of the known strategies.
func (m CapacityModel) Valid() bool {
	return m == CapacityInverseLength || m == CapacityUnit
}

// Capacity returns the capacity of an edge under the model. Unknown models
// fall back to the inverse-length default.
func (m CapacityModel) Capacity(e *grid.Edge) float64 {
	if m == CapacityUnit {
		return 1.0
	}
	return CapacityFromLength(ParseLength(e.LengthM, 0))
}
