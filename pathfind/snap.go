package pathfind

import (
	"math"

	"github.com/justmytwospence/firsttracks-terrain/errs"
	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
)

// snap maps a geographic waypoint to the nearest feasible cell. If the
// cell the waypoint lands in directly is infeasible, it searches outward
// ring by ring (Chebyshev distance, up to cons.SnapRadius) and returns the
// feasible cell in the first non-empty ring with the smallest
// great-circle distance to pt.
func snap(g *grid.Grid, w *world, pt geo.Point) (int, *errs.Error) {
	col, row, err := g.CellAt(pt.Lon, pt.Lat)
	if err != nil {
		return 0, errs.Newf(errs.OutOfBounds, "waypoint (%.6f, %.6f) is outside the elevation grid", pt.Lon, pt.Lat).WithDetail(err.Error())
	}

	center := g.Index(col, row)
	if idxFeasible(g, w, center) {
		return center, nil
	}

	for radius := 1; radius <= w.cons.SnapRadius; radius++ {
		best := -1
		bestDist := math.Inf(1)
		for _, cand := range ring(g, col, row, radius) {
			if !idxFeasible(g, w, cand) {
				continue
			}
			lon, lat := g.CenterOfIdx(cand)
			d := geo.HaversineMeters(pt, geo.Point{Lon: lon, Lat: lat})
			if d < bestDist {
				bestDist = d
				best = cand
			}
		}
		if best >= 0 {
			return best, nil
		}
	}

	return 0, errs.Newf(errs.NoFeasibleEndpoint,
		"no feasible cell within snap radius of (%.6f, %.6f)", pt.Lon, pt.Lat)
}

func idxFeasible(g *grid.Grid, w *world, idx int) bool {
	if isNaN32(g.Elevation(idx)) {
		return false
	}
	return w.feasible(idx)
}

// ring enumerates the cell indices at exactly Chebyshev distance radius
// from (col,row), skipping out-of-bounds cells: the top and bottom edges
// column by column, then the left and right edges row by row.
func ring(g *grid.Grid, col, row, radius int) []int {
	var out []int
	top, bottom := row-radius, row+radius
	left, right := col-radius, col+radius

	for c := left; c <= right; c++ {
		if idx := g.Index(c, top); idx >= 0 {
			out = append(out, idx)
		}
		if bottom != top {
			if idx := g.Index(c, bottom); idx >= 0 {
				out = append(out, idx)
			}
		}
	}
	for r := top + 1; r < bottom; r++ {
		if idx := g.Index(left, r); idx >= 0 {
			out = append(out, idx)
		}
		if right != left {
			if idx := g.Index(right, r); idx >= 0 {
				out = append(out, idx)
			}
		}
	}
	return out
}
