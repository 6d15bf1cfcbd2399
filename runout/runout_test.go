package runout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
	"github.com/justmytwospence/firsttracks-terrain/runout"
	"github.com/justmytwospence/firsttracks-terrain/terrain"
)

// northSouthSlope builds a w x h grid sloping uniformly from north (high)
// to south (low), with a flat plateau appended below it. Every row from 0
// through h/2 faces South; the rows below h/2 are Flat.
func northSouthSlope(t *testing.T, w, h int) (*grid.Grid, *terrain.Bands) {
	t.Helper()
	data := make([]float32, w*h)
	for row := 0; row < h; row++ {
		for col := 0; col < w; col++ {
			z := float32(0)
			if row < h/2 {
				z = float32(h/2-row) * 20
			}
			data[row*w+col] = z
		}
	}
	g, err := grid.New(data, w, h, geo.Bounds{North: 0.012, South: 0, East: 0.012, West: 0})
	require.NoError(t, err)
	bands, err := terrain.Analyze(g)
	require.NoError(t, err)
	return g, bands
}

func TestAnalyzeEmptyExcludedAspectsIsAllZero(t *testing.T) {
	g, bands := northSouthSlope(t, 7, 7)
	band := runout.Analyze(g, bands, runout.Config{})
	for _, v := range band.Values {
		assert.Zero(t, v)
	}
}

func TestAnalyzeSeedsAndDecaysDownslope(t *testing.T) {
	g, bands := northSouthSlope(t, 9, 9)
	cfg := runout.Config{
		ExcludedAspects: map[geo.Aspect]bool{geo.South: true},
		SteepThreshold:  0.1,
	}
	band := runout.Analyze(g, bands, cfg)

	// The plateau directly below the slope should show non-zero runout.
	plateauIdx := g.Index(4, 4)
	assert.Greater(t, band.Values[plateauIdx], float32(0))

	// Intensity should not increase moving further downslope.
	nearIdx := g.Index(4, 5)
	farIdx := g.Index(4, 8)
	assert.GreaterOrEqual(t, band.Values[nearIdx], band.Values[farIdx])
}

func TestAnalyzeDeterministic(t *testing.T) {
	g, bands := northSouthSlope(t, 9, 9)
	cfg := runout.Config{ExcludedAspects: map[geo.Aspect]bool{geo.South: true}, SteepThreshold: 0.1}

	a := runout.Analyze(g, bands, cfg)
	b := runout.Analyze(g, bands, cfg)
	assert.Equal(t, a.Values, b.Values)
}
