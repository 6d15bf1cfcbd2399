package pathfind

import (
	"math"

	"github.com/justmytwospence/firsttracks-terrain/runout"
	"github.com/justmytwospence/firsttracks-terrain/terrain"
)

// world bundles the read-only inputs a search is run against. Borrowed by
// reference for the whole call, never mutated.
type world struct {
	bands   *terrain.Bands
	runouts *runout.Band // nil when AvoidRunouts is false or unset
	cons    Constraints
}

// feasible applies the cell-entry predicate: gradient ceiling, excluded
// aspect on steep terrain, and runout avoidance. The non-NaN elevation
// check is done by idxFeasible in snap.go, which wraps this, since world
// doesn't carry the raw grid (only bands derived from it).
func (w *world) feasible(idx int) bool {
	grad := w.bands.Gradient(idx)
	if grad > w.cons.MaxGradient {
		return false
	}
	if len(w.cons.ExcludedAspects) > 0 &&
		w.cons.ExcludedAspects[w.bands.Aspect(idx)] &&
		grad >= w.cons.AspectGradientThreshold {
		return false
	}
	if w.cons.AvoidRunouts && w.runouts != nil && w.runouts.Values[idx] > w.cons.RunoutThreshold {
		return false
	}
	return true
}

// stepCost is the penalized step cost:
//
//	c(m->n) = step_meters(m,n) * (1 + alpha*max(0, |gradient[n]| - gentle_ratio))
func (w *world) stepCost(stepMeters float64, toIdx int) float64 {
	grad := float64(w.bands.Gradient(toIdx))
	over := grad - gentleRatio
	if over < 0 {
		over = 0
	}
	return stepMeters * (1 + alpha*over)
}

func isNaN32(f float32) bool { return math.IsNaN(float64(f)) }
