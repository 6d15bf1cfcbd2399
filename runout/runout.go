// Package runout computes, for every cell of a grid, a scalar intensity
// in [0,1] reflecting how exposed that cell is to avalanche release on
// steep, excluded-aspect terrain upslope of it. It is a multi-source
// bounded breadth-first search seeded at dangerous cells and propagated
// downslope with exponential decay.
package runout

import (
	"math"
	"sort"

	"github.com/arl/math32"

	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
	"github.com/justmytwospence/firsttracks-terrain/terrain"
)

const (
	DefaultSteepThreshold  = 0.30
	DefaultRunoutCutoff    = 0.05
	DefaultMaxRunoutMeters = 1500.0
)

// epsilon guards the "proposed_intensity > runout[n] + epsilon" strict
// improvement test against floating-point noise.
const epsilon = 1e-6

// Config parameterizes the BFS. Zero values are replaced by the package
// defaults in Analyze.
type Config struct {
	ExcludedAspects map[geo.Aspect]bool
	SteepThreshold  float32
	RunoutCutoff    float32
	MaxRunoutMeters float64
}

func (c Config) withDefaults() Config {
	if c.SteepThreshold == 0 {
		c.SteepThreshold = DefaultSteepThreshold
	}
	if c.RunoutCutoff == 0 {
		c.RunoutCutoff = DefaultRunoutCutoff
	}
	if c.MaxRunoutMeters == 0 {
		c.MaxRunoutMeters = DefaultMaxRunoutMeters
	}
	return c
}

// Band holds the dense runout_intensity raster, in [0,1], index-aligned
// with the source grid.
type Band struct {
	Values        []float32
	Width, Height int
}

type queueEntry struct {
	idx       int
	distance  float64
	intensity float32
}

// Analyze runs the bounded BFS and returns the resulting runout_intensity
// band.
//
// If cfg.ExcludedAspects is empty, the seed set is empty and Analyze
// returns an all-zero band without walking the grid — callers are free to
// skip calling Analyze entirely in that case and treat runouts as absent,
// but a defensive empty-input call still returns a well-formed, all-zero
// result rather than an error.
func Analyze(g *grid.Grid, bands *terrain.Bands, cfg Config) *Band {
	cfg = cfg.withDefaults()

	n := g.Width * g.Height
	out := &Band{Values: make([]float32, n), Width: g.Width, Height: g.Height}
	if len(cfg.ExcludedAspects) == 0 {
		return out
	}

	var seeds []int
	for idx := 0; idx < n; idx++ {
		if bands.Gradient(idx) >= cfg.SteepThreshold && cfg.ExcludedAspects[bands.Aspect(idx)] {
			seeds = append(seeds, idx)
		}
	}
	if len(seeds) == 0 {
		return out
	}
	sort.Ints(seeds) // already ascending by construction; explicit for clarity

	queue := make([]queueEntry, 0, len(seeds))
	for _, s := range seeds {
		out.Values[s] = 1.0
		queue = append(queue, queueEntry{idx: s, distance: 0, intensity: 1.0})
	}

	var neighborBuf []grid.Neighbor
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		slopeAtIdx := bands.Gradient(cur.idx)

		neighborBuf = g.Neighbors8(cur.idx, neighborBuf[:0])
		// Deterministic tie-break: neighbor index ascending.
		sort.Slice(neighborBuf, func(i, j int) bool { return neighborBuf[i].Idx < neighborBuf[j].Idx })

		curElev := g.Elevation(cur.idx)
		if isNaN32(curElev) {
			continue
		}

		for _, nb := range neighborBuf {
			nElev := g.Elevation(nb.Idx)
			if isNaN32(nElev) || !(nElev < curElev) {
				continue // only propagate strictly downslope
			}

			proposed := cur.intensity * decay(float32(nb.StepMeters), slopeAtIdx)
			if proposed <= out.Values[nb.Idx]+epsilon {
				continue
			}
			if proposed > out.Values[nb.Idx] {
				out.Values[nb.Idx] = proposed
			}

			nextDist := cur.distance + nb.StepMeters
			if proposed < cfg.RunoutCutoff || nextDist > cfg.MaxRunoutMeters {
				continue // branch terminates here
			}
			queue = append(queue, queueEntry{idx: nb.Idx, distance: nextDist, intensity: proposed})
		}
	}

	return out
}

// decay returns the propagation decay factor for a step of the given
// length leaving a source cell of the given (unsigned) slope.
func decay(stepMeters, slope float32) float32 {
	return math32.Exp(-stepMeters / runoutLength(slope))
}

// runoutLength is L(slope) = 200m * (1 + clamp(slope, 0, 1)).
func runoutLength(slope float32) float32 {
	c := slope
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}
	return 200 * (1 + c)
}

func isNaN32(f float32) bool { return math.IsNaN(float64(f)) }
