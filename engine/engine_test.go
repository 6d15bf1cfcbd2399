package engine_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justmytwospence/firsttracks-terrain/engine"
	"github.com/justmytwospence/firsttracks-terrain/errs"
	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/pathfind"
	"github.com/justmytwospence/firsttracks-terrain/raster"
)

func flatElevationBlob(t *testing.T, w, h int) []byte {
	t.Helper()
	data := make([]float32, w*h)
	for i := range data {
		data[i] = 1000
	}
	blob, err := raster.Encode(raster.Band{
		Kind: raster.KindElevation, Width: w, Height: h,
		Bounds: geo.Bounds{North: 1, South: 0, East: 1, West: 0},
		Values: data,
	})
	require.NoError(t, err)
	return blob
}

func TestAnalyzeProducesFourBands(t *testing.T) {
	blob := flatElevationBlob(t, 10, 10)
	result, ferr := engine.Analyze(blob, nil)
	require.Nil(t, ferr)

	azimuth, err := raster.Decode(result.AzimuthBlob)
	require.NoError(t, err)
	assert.Equal(t, raster.KindAzimuth, azimuth.Kind)

	gradient, err := raster.Decode(result.GradientBlob)
	require.NoError(t, err)
	assert.Equal(t, raster.KindGradient, gradient.Kind)

	runoutBand, err := raster.Decode(result.RunoutBlob)
	require.NoError(t, err)
	assert.Equal(t, raster.KindRunout, runoutBand.Kind)
	for _, v := range runoutBand.Values {
		assert.Equal(t, float32(0), v) // no excluded aspects => all-zero band
	}
}

func TestAnalyzeRejectsWrongBandKind(t *testing.T) {
	blob, err := raster.Encode(raster.Band{
		Kind: raster.KindGradient, Width: 3, Height: 3,
		Bounds: geo.Bounds{North: 1, South: 0, East: 1, West: 0},
		Values: make([]float32, 9),
	})
	require.NoError(t, err)

	_, ferr := engine.Analyze(blob, nil)
	require.NotNil(t, ferr)
	assert.Equal(t, errs.InvalidInput, ferr.Kind)
}

func TestFindPathEndToEnd(t *testing.T) {
	elevBlob := flatElevationBlob(t, 10, 10)
	result, ferr := engine.Analyze(elevBlob, nil)
	require.Nil(t, ferr)

	waypoints := []engine.Waypoint{
		{Lon: 0.05, Lat: 0.95},
		{Lon: 0.95, Lat: 0.05},
	}

	out, ferr := engine.FindPath(
		result.ElevationBlob, result.AzimuthBlob, result.GradientBlob, nil,
		waypoints, pathfind.Constraints{}, nil, nil,
	)
	require.Nil(t, ferr)

	var fc map[string]any
	require.NoError(t, json.Unmarshal(out, &fc))
	assert.Equal(t, "FeatureCollection", fc["type"])
	features, ok := fc["features"].([]any)
	require.True(t, ok)
	assert.True(t, len(features) >= 2) // at least one Point plus the LineString
}

func TestFindPathRequiresTwoWaypoints(t *testing.T) {
	elevBlob := flatElevationBlob(t, 5, 5)
	result, ferr := engine.Analyze(elevBlob, nil)
	require.Nil(t, ferr)

	_, ferr = engine.FindPath(
		result.ElevationBlob, result.AzimuthBlob, result.GradientBlob, nil,
		[]engine.Waypoint{{Lon: 0.5, Lat: 0.5}}, pathfind.Constraints{}, nil, nil,
	)
	require.NotNil(t, ferr)
	assert.Equal(t, errs.InvalidInput, ferr.Kind)
}

func TestFindPathMultiWaypointDropsJoinCell(t *testing.T) {
	elevBlob := flatElevationBlob(t, 10, 10)
	result, ferr := engine.Analyze(elevBlob, nil)
	require.Nil(t, ferr)

	waypoints := []engine.Waypoint{
		{Lon: 0.05, Lat: 0.95},
		{Lon: 0.5, Lat: 0.5},
		{Lon: 0.95, Lat: 0.05},
	}

	out, ferr := engine.FindPath(
		result.ElevationBlob, result.AzimuthBlob, result.GradientBlob, nil,
		waypoints, pathfind.Constraints{}, nil, nil,
	)
	require.Nil(t, ferr)
	assert.NotEmpty(t, out)

	first, ferr := engine.FindPath(
		result.ElevationBlob, result.AzimuthBlob, result.GradientBlob, nil,
		waypoints[:2], pathfind.Constraints{}, nil, nil,
	)
	require.Nil(t, ferr)
	second, ferr := engine.FindPath(
		result.ElevationBlob, result.AzimuthBlob, result.GradientBlob, nil,
		waypoints[1:], pathfind.Constraints{}, nil, nil,
	)
	require.Nil(t, ferr)

	pointCount := func(b []byte) int {
		var fc struct {
			Features []struct {
				Geometry struct {
					Type string `json:"type"`
				} `json:"geometry"`
			} `json:"features"`
		}
		require.NoError(t, json.Unmarshal(b, &fc))
		n := 0
		for _, f := range fc.Features {
			if f.Geometry.Type == "Point" {
				n++
			}
		}
		return n
	}
	// The middle waypoint's cell ends the first segment and starts the
	// second; it appears once in the combined path.
	assert.Equal(t, pointCount(first)+pointCount(second)-1, pointCount(out))
}
