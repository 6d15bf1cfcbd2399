// Package terrain derives per-cell slope magnitude and orientation from an
// elevation grid using the Horn 3x3 finite-difference operator, and bins
// the orientation into the nine-way Aspect enumeration.
package terrain

import (
	"fmt"
	"math"

	"github.com/arl/gogeo/f32/d3"
	"github.com/arl/math32"

	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
)

// Bands holds the two dense float32 rasters an Analyze call produces, plus
// a read-only convenience accessor for the classified Aspect at a cell.
type Bands struct {
	// AzimuthDeg holds the downslope azimuth in degrees [0,360), oriented
	// 0=North, 90=East (atan2 of the downhill east and north components,
	// clockwise from North). Flat
	// cells carry FlatAzimuth as a sentinel.
	AzimuthDeg []float32

	// GradientSigned holds rise/run with the sign of the slope projected
	// on the downhill direction. Callers needing magnitude use Abs.
	GradientSigned []float32

	Width, Height int
}

// FlatAzimuth is the sentinel azimuth recorded for Flat cells.
const FlatAzimuth float32 = -1

// Aspect returns the classified aspect at idx.
func (b *Bands) Aspect(idx int) geo.Aspect {
	return geo.Classify(b.AzimuthDeg[idx], math32.Abs(b.GradientSigned[idx]))
}

// Gradient returns the unsigned gradient magnitude (rise/run) at idx.
func (b *Bands) Gradient(idx int) float32 {
	return math32.Abs(b.GradientSigned[idx])
}

// Normal reconstructs the unit surface normal at idx from its stored
// azimuth and signed gradient, by way of the two ground tangent vectors
// the Horn stencil implies: (1,0,dz/dx) and (0,1,dz/dy). Flat cells return
// the vertical (0,0,1).
//
// Exposed for hosts doing 3D visualization of a route; unused by the
// pathfinding core itself, which only needs the scalar magnitude.
func (b *Bands) Normal(idx int) d3.Vec3 {
	if b.AzimuthDeg[idx] == FlatAzimuth {
		return d3.NewVec3XYZ(0, 0, 1)
	}
	mag := b.GradientSigned[idx]
	azRad := b.AzimuthDeg[idx] * (math32.Pi / 180)
	dzdx := -mag * math32.Sin(azRad)
	dzdy := mag * math32.Cos(azRad)

	tangentX := d3.NewVec3XYZ(1, 0, dzdx)
	tangentY := d3.NewVec3XYZ(0, 1, dzdy)
	n := tangentX.Cross(tangentY)
	n.Normalize()
	return n
}

// Analyze computes azimuth and signed-gradient bands for g.
//
// Fails if the elevation data is entirely NaN, or if either grid dimension
// has fewer than 3 cells: the Horn operator needs a 3x3 neighborhood to be
// meaningful anywhere in the grid.
func Analyze(g *grid.Grid) (*Bands, error) {
	if g.Width < 3 || g.Height < 3 {
		return nil, fmt.Errorf("terrain: grid must be at least 3x3, got %dx%d", g.Width, g.Height)
	}
	if allNaN(g.Data) {
		return nil, fmt.Errorf("terrain: elevation data is entirely NaN")
	}

	n := g.Width * g.Height
	b := &Bands{
		AzimuthDeg:     make([]float32, n),
		GradientSigned: make([]float32, n),
		Width:          g.Width,
		Height:         g.Height,
	}

	// Ground distance per pixel depends only on latitude (row), not
	// longitude, so precompute one (sx, sy) pair per row rather than
	// per cell.
	sx := make([]float32, g.Height)
	sy := make([]float32, g.Height)
	for row := 0; row < g.Height; row++ {
		lon0, lat0 := g.CenterOf(0, row)
		sxm := geo.HaversineMeters(geo.Point{Lon: lon0, Lat: lat0}, geo.Point{Lon: lon0 + g.PixelWidth(), Lat: lat0})
		sym := geo.HaversineMeters(geo.Point{Lon: lon0, Lat: lat0}, geo.Point{Lon: lon0, Lat: lat0 + g.PixelHeight()})
		sx[row] = float32(sxm)
		sy[row] = float32(sym)
	}

	// sampleElev reports the raw value and grid membership at (col,row),
	// leaving NaN detection to the caller: off-grid and NaN-missing data
	// are different conditions (one-sided differences handle the former,
	// the latter forces the cell and its neighbors to Flat).
	sampleElev := func(col, row int) (z float32, inGrid bool) {
		idx := g.Index(col, row)
		if idx < 0 {
			return 0, false
		}
		return g.Data[idx], true
	}

	for row := 0; row < g.Height; row++ {
		for col := 0; col < g.Width; col++ {
			idx := g.Index(col, row)
			if isNaN32(g.Data[idx]) || neighborhoodHasNaN(sampleElev, col, row) {
				b.AzimuthDeg[idx] = FlatAzimuth
				b.GradientSigned[idx] = 0
				continue
			}

			dzdx, dzdy, ok := hornGradient(sampleElev, col, row, sx[row], sy[row])
			if !ok {
				b.AzimuthDeg[idx] = FlatAzimuth
				b.GradientSigned[idx] = 0
				continue
			}

			mag := math32.Sqrt(dzdx*dzdx + dzdy*dzdy)
			if mag < geo.FlatEpsilon {
				b.AzimuthDeg[idx] = FlatAzimuth
				b.GradientSigned[idx] = 0
				continue
			}

			// dzdx grows eastward and dzdy southward, so the downhill
			// vector's east and north components are -dzdx and dzdy.
			az := math32.Atan2(-dzdx, dzdy) * (180 / math32.Pi)
			if az < 0 {
				az += 360
			}
			b.AzimuthDeg[idx] = az
			// Downhill-signed gradient: positive when the surface slopes
			// down in the computed azimuth's direction, which by
			// construction of dzdx/dzdy it already does; the "sign" is
			// simply that this is a signed slope, not |slope|.
			b.GradientSigned[idx] = mag
		}
	}

	return b, nil
}

// neighborhoodHasNaN reports whether any in-grid cell of the 3x3
// neighborhood centered on (col,row), excluding the center itself, is
// NaN. Off-grid neighbors don't count — those are handled by
// hornGradient's one-sided fallback, not by flattening the cell.
func neighborhoodHasNaN(sampleElev func(c, r int) (float32, bool), col, row int) bool {
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dc == 0 && dr == 0 {
				continue
			}
			z, inGrid := sampleElev(col+dc, row+dr)
			if inGrid && isNaN32(z) {
				return true
			}
		}
	}
	return false
}

// hornGradient evaluates the Horn 3x3 operator at (col,row). By the time
// this is called the caller has already ruled out NaN anywhere in the
// neighborhood, so elevAt's bool here means only "in grid" — any missing
// sample is a true grid-edge border, and the one-sided fallback applies.
// Interior cells use the full stencil; border cells fall back to
// one-sided differences. Returns ok=false only if even the one-sided
// stencil can't find two in-grid samples on some axis.
func hornGradient(elevAt func(c, r int) (float32, bool), col, row int, sx, sy float32) (dzdx, dzdy float32, ok bool) {
	z := func(dc, dr int) (float32, bool) { return elevAt(col+dc, row+dr) }

	zNW, okNW := z(-1, -1)
	zN, okN := z(0, -1)
	zNE, okNE := z(1, -1)
	zW, okW := z(-1, 0)
	zE, okE := z(1, 0)
	zSW, okSW := z(-1, 1)
	zS, okS := z(0, 1)
	zSE, okSE := z(1, 1)

	haveFullStencil := okNW && okN && okNE && okW && okE && okSW && okS && okSE
	if haveFullStencil {
		dzdx = ((zNE + 2*zE + zSE) - (zNW + 2*zW + zSW)) / (8 * sx)
		dzdy = ((zSW + 2*zS + zSE) - (zNW + 2*zN + zNE)) / (8 * sy)
		return dzdx, dzdy, true
	}

	// One-sided fallback: central difference where both samples exist,
	// else forward/backward difference, else the cell reports Flat.
	dx, okx := onesidedX(col, row, elevAt, sx)
	dy, oky := onesidedY(col, row, elevAt, sy)
	if !okx || !oky {
		return 0, 0, false
	}
	return dx, dy, true
}

func onesidedX(col, row int, elevAt func(c, r int) (float32, bool), sx float32) (float32, bool) {
	zE, okE := elevAt(col+1, row)
	zW, okW := elevAt(col-1, row)
	z0, ok0 := elevAt(col, row)
	switch {
	case okE && okW:
		return (zE - zW) / (2 * sx), true
	case okE && ok0:
		return (zE - z0) / sx, true
	case okW && ok0:
		return (z0 - zW) / sx, true
	default:
		return 0, false
	}
}

func onesidedY(col, row int, elevAt func(c, r int) (float32, bool), sy float32) (float32, bool) {
	// row increases southward; north is -row, south is +row.
	zS, okS := elevAt(col, row+1)
	zN, okN := elevAt(col, row-1)
	z0, ok0 := elevAt(col, row)
	switch {
	case okS && okN:
		return (zS - zN) / (2 * sy), true
	case okS && ok0:
		return (zS - z0) / sy, true
	case okN && ok0:
		return (z0 - zN) / sy, true
	default:
		return 0, false
	}
}

func allNaN(data []float32) bool {
	for _, v := range data {
		if !isNaN32(v) {
			return false
		}
	}
	return true
}

func isNaN32(f float32) bool { return math.IsNaN(float64(f)) }
