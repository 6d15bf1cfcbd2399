package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
)

func flat3x3() *grid.Grid {
	data := make([]float32, 9)
	g, err := grid.New(data, 3, 3, geo.Bounds{North: 1, South: 0, East: 1, West: 0})
	if err != nil {
		panic(err)
	}
	return g
}

func TestNewRejectsMismatchedLength(t *testing.T) {
	_, err := grid.New(make([]float32, 8), 3, 3, geo.Bounds{North: 1, South: 0, East: 1, West: 0})
	require.Error(t, err)
}

func TestNewRejectsIllFormedBounds(t *testing.T) {
	_, err := grid.New(make([]float32, 9), 3, 3, geo.Bounds{North: 0, South: 1, East: 1, West: 0})
	require.Error(t, err)
}

func TestCellAtCorners(t *testing.T) {
	g := flat3x3()

	col, row, err := g.CellAt(0.1, 0.1)
	require.NoError(t, err)
	assert.Equal(t, 0, col)
	assert.Equal(t, 2, row) // south-west corner is the bottom-left cell

	col, row, err = g.CellAt(0.9, 0.9)
	require.NoError(t, err)
	assert.Equal(t, 2, col)
	assert.Equal(t, 0, row)
}

func TestCellAtOutOfBounds(t *testing.T) {
	g := flat3x3()
	_, _, err := g.CellAt(-0.1, 0.5)
	require.Error(t, err)
}

func TestCenterOfRoundTrip(t *testing.T) {
	g := flat3x3()
	lon, lat := g.CenterOf(1, 1)
	assert.InDelta(t, 0.5, lon, 1e-9)
	assert.InDelta(t, 0.5, lat, 1e-9)
}

func TestNeighbors8Order(t *testing.T) {
	g := flat3x3()
	center := g.Index(1, 1)
	neighbors := g.Neighbors8(center, nil)
	require.Len(t, neighbors, 8)

	// N, NE, E, SE, S, SW, W, NW
	want := []int{
		g.Index(1, 0), g.Index(2, 0), g.Index(2, 1), g.Index(2, 2),
		g.Index(1, 2), g.Index(0, 2), g.Index(0, 1), g.Index(0, 0),
	}
	for i, nb := range neighbors {
		assert.Equal(t, want[i], nb.Idx)
	}

	// center cell has all eight neighbors; corner cells have exactly 3.
	corner := g.Index(0, 0)
	cornerNeighbors := g.Neighbors8(corner, nil)
	assert.Len(t, cornerNeighbors, 3)
}

func TestPixelDiagonalMeters(t *testing.T) {
	g := flat3x3()
	d := g.PixelDiagonalMeters()
	assert.Greater(t, d, 0.0)
}
