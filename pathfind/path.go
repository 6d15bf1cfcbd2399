package pathfind

import (
	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
	"github.com/justmytwospence/firsttracks-terrain/terrain"
)

// PathPoint is one reconstructed cell along a returned path.
type PathPoint struct {
	Lon, Lat  float64
	Elevation float32
	Aspect    geo.Aspect
	Gradient  float32 // signed
}

// reconstruct walks parent pointers from goalIdx back to the start,
// producing path points in start-to-goal order. No smoothing is applied
// here — these are raw cell centers; a host wanting a smoother line draws
// one itself.
func reconstruct(g *grid.Grid, bands *terrain.Bands, a *arena, goalIdx int32) []PathPoint {
	var rev []int32
	for idx := goalIdx; idx != noParent; idx = a.parent[idx] {
		rev = append(rev, idx)
	}

	points := make([]PathPoint, len(rev))
	for i, idx := range rev {
		lon, lat := g.CenterOfIdx(int(idx))
		points[len(rev)-1-i] = PathPoint{
			Lon:       lon,
			Lat:       lat,
			Elevation: g.Elevation(int(idx)),
			Aspect:    bands.Aspect(int(idx)),
			Gradient:  bands.GradientSigned[idx],
		}
	}
	return points
}
