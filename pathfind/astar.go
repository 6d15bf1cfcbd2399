// Package pathfind is the A* search core: priority queue over grid
// cells, geodesic step cost with slope penalty, a feasibility filter,
// start/goal snapping, exploration-frontier reporting and path
// reconstruction.
package pathfind

import (
	"github.com/justmytwospence/firsttracks-terrain/errs"
	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
	"github.com/justmytwospence/firsttracks-terrain/runout"
	"github.com/justmytwospence/firsttracks-terrain/terrain"
)

// FindSegment runs one A* search from start to end over g, subject to
// cons. runoutBand may be nil when cons.AvoidRunouts is false.
//
// progress, if non-nil, is invoked synchronously at each exploration
// batch boundary (default 125 pops) and once more with any final partial
// batch when the search concludes. cancel, if non-nil, is polled at the
// same boundaries; if set, the search returns a Cancelled error within
// one batch of pops.
func FindSegment(
	g *grid.Grid,
	bands *terrain.Bands,
	runoutBand *runout.Band,
	start, end geo.Point,
	cons Constraints,
	progress ProgressFunc,
	cancel *CancelToken,
) ([]PathPoint, *errs.Error) {
	cons = cons.withDefaults()
	if cons.AvoidRunouts {
		if runoutBand == nil {
			return nil, errs.New(errs.InvalidInput, "avoid_runouts is set but no runout band was supplied")
		}
	} else {
		runoutBand = nil
	}

	w := &world{bands: bands, runouts: runoutBand, cons: cons}

	startIdx, ferr := snap(g, w, start)
	if ferr != nil {
		return nil, ferr
	}
	endIdx, ferr := snap(g, w, end)
	if ferr != nil {
		return nil, ferr
	}

	if startIdx == endIdx {
		lon, lat := g.CenterOfIdx(startIdx)
		return []PathPoint{{
			Lon: lon, Lat: lat,
			Elevation: g.Elevation(startIdx),
			Aspect:    bands.Aspect(startIdx),
			Gradient:  bands.GradientSigned[startIdx],
		}}, nil
	}

	n := g.Width * g.Height
	a := newArena(n)
	open := newOpenQueue()

	goalLon, goalLat := g.CenterOfIdx(endIdx)
	goalPt := geo.Point{Lon: goalLon, Lat: goalLat}

	startLon, startLat := g.CenterOfIdx(startIdx)
	a.g[startIdx] = 0
	a.f[startIdx] = heuristic(geo.Point{Lon: startLon, Lat: startLat}, goalPt)
	a.state[startIdx] = stateOpen
	a.opened++
	open.push(int32(startIdx), a.f[startIdx], a.g[startIdx])

	batch := make([]Point, 0, cons.ExplorationBatchSize)
	flush := func() ControlFlow {
		if len(batch) == 0 || progress == nil {
			batch = batch[:0]
			return Continue
		}
		cf := progress(batch)
		batch = batch[:0]
		return cf
	}

	var neighborBuf []grid.Neighbor
	pops := 0

	for !open.empty() {
		popped := open.pop()
		idx := popped.idx
		if a.state[idx] == stateClosed {
			continue // stale duplicate entry, see openqueue.go
		}
		if popped.g > a.g[idx] {
			continue // superseded by a cheaper push since this entry was queued
		}
		a.state[idx] = stateClosed

		lon, lat := g.CenterOfIdx(int(idx))
		batch = append(batch, Point{Lon: lon, Lat: lat})
		pops++

		if int(idx) == endIdx {
			if cf := flush(); cf == Cancel {
				return nil, errs.New(errs.Cancelled, "search cancelled by host at final batch boundary")
			}
			return reconstruct(g, bands, a, idx), nil
		}

		if pops%cons.ExplorationBatchSize == 0 {
			if cf := flush(); cf == Cancel {
				return nil, errs.New(errs.Cancelled, "search cancelled by host")
			}
			if cancel.Cancelled() {
				return nil, errs.New(errs.Cancelled, "search cancelled by host")
			}
		}

		if cons.MaxNodes > 0 && a.opened > cons.MaxNodes {
			flush()
			return nil, errs.Newf(errs.SearchBudgetExceeded, "exceeded max_nodes=%d", cons.MaxNodes)
		}

		neighborBuf = g.Neighbors8(int(idx), neighborBuf[:0])
		for _, nb := range neighborBuf {
			if a.state[nb.Idx] == stateClosed {
				continue
			}
			if !idxFeasible(g, w, nb.Idx) {
				continue
			}
			cost := w.stepCost(nb.StepMeters, nb.Idx)
			tentativeG := a.g[idx] + cost
			if tentativeG >= a.g[nb.Idx] {
				continue
			}

			nbLon, nbLat := g.CenterOfIdx(nb.Idx)
			a.g[nb.Idx] = tentativeG
			a.f[nb.Idx] = tentativeG + heuristic(geo.Point{Lon: nbLon, Lat: nbLat}, goalPt)
			a.parent[nb.Idx] = idx
			if a.state[nb.Idx] != stateOpen {
				a.opened++
			}
			a.state[nb.Idx] = stateOpen
			open.push(int32(nb.Idx), a.f[nb.Idx], a.g[nb.Idx])
		}
	}

	flush()
	return nil, errs.New(errs.NoPathFound, "open set exhausted before reaching the goal")
}

// heuristic is h(n) = great_circle_meters(center(n), center(goal)),
// scaled by heuristicScale to preserve admissibility.
func heuristic(from, to geo.Point) float64 {
	return geo.HaversineMeters(from, to) * heuristicScale
}
