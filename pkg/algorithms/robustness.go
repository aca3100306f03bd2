package algorithms

import (
	"math/rand"

	"github.com/dd0wney/cluso-gridres/pkg/grid"
)

// RobustnessPoint is one step of a percolation run: after Step removals the
// giant component still holds Alive (0..1) of the initial node count.
type RobustnessPoint struct {
	Step  int
	Alive float64
}

// SimulateAttack removes the attack nodes from a disposable copy of g one at
// a time and records the giant-component fraction after each removal.
//
// Step 0 is always 1.0. Ids already gone from the copy (or never present)
// repeat the previous fraction: they carry no new information. The resulting
// curve is non-increasing and bounded in [0, 1]; once the copy is empty the
// value is exactly 0.
//
// Components are recomputed from scratch after every removal. That is the
// simple correct baseline at O(removals * (V+E)); an incremental connectivity
// structure could replace it without changing the curve.
func SimulateAttack(g *grid.Graph, attack []string) []RobustnessPoint {
	work := g.Clone()
	initial := float64(work.NodeCount())

	curve := make([]RobustnessPoint, 0, len(attack)+1)
	curve = append(curve, RobustnessPoint{Step: 0, Alive: 1.0})
	if initial == 0 {
		curve[0].Alive = 0.0
		return curve
	}

	for _, id := range attack {
		step := len(curve)
		if !work.HasNode(id) {
			curve = append(curve, RobustnessPoint{Step: step, Alive: curve[step-1].Alive})
			continue
		}

		work.RemoveNode(id)

		if work.NodeCount() == 0 {
			curve = append(curve, RobustnessPoint{Step: step, Alive: 0.0})
			continue
		}

		largest := 0
		for _, component := range ConnectedComponents(work) {
			if len(component) > largest {
				largest = len(component)
			}
		}

		alive := float64(largest) / initial
		if alive < 0 {
			alive = 0
		}
		if alive > 1 {
			alive = 1
		}
		curve = append(curve, RobustnessPoint{Step: step, Alive: alive})
	}

	return curve
}

// TargetedAttackOrder returns the top n nodes by degree, the hub-first order
// used for the targeted percolation run. n <= 0 or n > node count means all
// nodes.
func TargetedAttackOrder(g *grid.Graph, n int) []string {
	ranking := DegreeRanking(g)
	if n <= 0 || n > len(ranking) {
		n = len(ranking)
	}
	order := make([]string, n)
	for i := 0; i < n; i++ {
		order[i] = ranking[i].ID
	}
	return order
}

// RandomAttackOrder draws n distinct nodes uniformly without replacement,
// the baseline order the targeted run is compared against. Identical seed
// reproduces the same order.
func RandomAttackOrder(g *grid.Graph, n int, seed int64) []string {
	ids := g.Nodes()
	if n <= 0 || n > len(ids) {
		n = len(ids)
	}
	rng := rand.New(rand.NewSource(seed))
	perm := rng.Perm(len(ids))

	order := make([]string, n)
	for i := 0; i < n; i++ {
		order[i] = ids[perm[i]]
	}
	return order
}
