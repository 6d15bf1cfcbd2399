// Package grid owns the row-major elevation raster and its georeferencing:
// lat/lon <-> (row, col) mapping and 8-connected neighbor enumeration. It
// is the read-only spatial substrate every other package queries against.
package grid

import (
	"fmt"
	"math"

	"github.com/arl/assertgo"

	"github.com/justmytwospence/firsttracks-terrain/geo"
)

// Grid is an immutable, row-major Float32 elevation raster plus
// georeferencing. idx = row*Width + col, 0 <= idx < Width*Height.
type Grid struct {
	Width, Height int
	Data          []float32 // elevations in meters; NaN means missing
	Bounds        geo.Bounds

	pixelW, pixelH float64 // degrees per pixel
}

// New validates and constructs a Grid. It returns an error (not a panic)
// because width/height/bounds originate from caller input: construction
// is rejected if width*height != len(data) or bounds are ill-formed.
func New(data []float32, width, height int, bounds geo.Bounds) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid: width and height must be positive, got %dx%d", width, height)
	}
	if width*height != len(data) {
		return nil, fmt.Errorf("grid: width*height=%d does not match len(data)=%d", width*height, len(data))
	}
	if !bounds.Valid() {
		return nil, fmt.Errorf("grid: bounds are ill-formed: %+v", bounds)
	}

	pw, ph := bounds.PixelSize(width, height)
	assert.True(pw > 0 && ph > 0, "grid: derived pixel size must be positive, got %v %v", pw, ph)

	return &Grid{
		Width:  width,
		Height: height,
		Data:   data,
		Bounds: bounds,
		pixelW: pw,
		pixelH: ph,
	}, nil
}

// PixelWidth returns the pixel size in decimal degrees along longitude.
func (g *Grid) PixelWidth() float64 { return g.pixelW }

// PixelHeight returns the pixel size in decimal degrees along latitude.
func (g *Grid) PixelHeight() float64 { return g.pixelH }

// PixelDiagonalMeters returns the ground length of a pixel's diagonal,
// evaluated at the grid's vertical center latitude. Snapping does not use
// it; its radius is counted in cells.
func (g *Grid) PixelDiagonalMeters() float64 {
	midLat := (g.Bounds.North + g.Bounds.South) / 2
	c0 := geo.Point{Lon: g.Bounds.West, Lat: midLat}
	c1 := geo.Point{Lon: g.Bounds.West + g.pixelW, Lat: midLat + g.pixelH}
	return geo.HaversineMeters(c0, c1)
}

// Index returns the flat index of (col, row), or -1 if out of range.
func (g *Grid) Index(col, row int) int {
	if col < 0 || col >= g.Width || row < 0 || row >= g.Height {
		return -1
	}
	return row*g.Width + col
}

// RowCol returns the (row, col) of a flat index.
func (g *Grid) RowCol(idx int) (row, col int) {
	return idx / g.Width, idx % g.Width
}

// Elevation returns the elevation, possibly NaN, at idx.
func (g *Grid) Elevation(idx int) float32 { return g.Data[idx] }

// CellAt maps a geographic point to its containing (col, row). Returns an
// error if the point lies outside the grid's bounds.
//
// Pixel (col,row) covers
// [west+col*pw, west+(col+1)*pw) x [north-(row+1)*ph, north-row*ph).
func (g *Grid) CellAt(lon, lat float64) (col, row int, err error) {
	if lon < g.Bounds.West || lon > g.Bounds.East ||
		lat < g.Bounds.South || lat > g.Bounds.North {
		return 0, 0, fmt.Errorf("grid: point (%.6f, %.6f) is outside bounds %+v", lon, lat, g.Bounds)
	}
	col = int(math.Floor((lon - g.Bounds.West) / g.pixelW))
	row = int(math.Floor((g.Bounds.North - lat) / g.pixelH))
	// The east/north edges, and any point landing exactly on a pixel
	// boundary due to floating point, clamp into the last valid row/col
	// rather than spilling into the next (non-existent) one.
	if col >= g.Width {
		col = g.Width - 1
	}
	if row >= g.Height {
		row = g.Height - 1
	}
	if col < 0 {
		col = 0
	}
	if row < 0 {
		row = 0
	}
	return col, row, nil
}

// CenterOf returns the (lon, lat) of the center of cell (col, row).
func (g *Grid) CenterOf(col, row int) (lon, lat float64) {
	lon = g.Bounds.West + (float64(col)+0.5)*g.pixelW
	lat = g.Bounds.North - (float64(row)+0.5)*g.pixelH
	return lon, lat
}

// CenterOfIdx returns the (lon, lat) of the center of cell idx.
func (g *Grid) CenterOfIdx(idx int) (lon, lat float64) {
	row, col := g.RowCol(idx)
	return g.CenterOf(col, row)
}

// Neighbor is one 8-connected neighbor of a cell: its flat index and the
// great-circle ground distance from the source cell's center to its own.
type Neighbor struct {
	Idx        int
	StepMeters float64
	Diagonal   bool
}

// offsets8 lists the 8-connected neighbor deltas in fixed tie-break
// order: N, NE, E, SE, S, SW, W, NW.
var offsets8 = [8]struct{ dc, dr int }{
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
	{-1, 0},  // W
	{-1, -1}, // NW
}

// Neighbors8 appends the in-bounds 8-connected neighbors of idx to dst and
// returns the extended slice, in the fixed N/NE/E/SE/S/SW/W/NW order.
func (g *Grid) Neighbors8(idx int, dst []Neighbor) []Neighbor {
	row, col := g.RowCol(idx)
	lon0, lat0 := g.CenterOf(col, row)
	p0 := geo.Point{Lon: lon0, Lat: lat0}

	for i, off := range offsets8 {
		nc, nr := col+off.dc, row+off.dr
		nidx := g.Index(nc, nr)
		if nidx < 0 {
			continue
		}
		lon1, lat1 := g.CenterOf(nc, nr)
		dst = append(dst, Neighbor{
			Idx:        nidx,
			StepMeters: geo.HaversineMeters(p0, geo.Point{Lon: lon1, Lat: lat1}),
			Diagonal:   i%2 == 1,
		})
	}
	return dst
}
