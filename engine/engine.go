// Package engine is the facade a host calls through: it owns blob
// validation, wires ElevationGrid -> TerrainAnalyzer -> RunoutAnalyzer ->
// Pathfinder together, and maps every internal failure onto the closed
// error taxonomy in package errs. No other package-level entry point is
// meant for direct host use.
package engine

import (
	"log"

	"github.com/justmytwospence/firsttracks-terrain/errs"
	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/grid"
	"github.com/justmytwospence/firsttracks-terrain/pathfind"
	"github.com/justmytwospence/firsttracks-terrain/raster"
	"github.com/justmytwospence/firsttracks-terrain/runout"
	"github.com/justmytwospence/firsttracks-terrain/terrain"
)

// AnalysisResult bundles the four RasterCodec blobs an analyze call
// produces.
type AnalysisResult struct {
	ElevationBlob []byte
	AzimuthBlob   []byte
	GradientBlob  []byte
	RunoutBlob    []byte
}

// Analyze decodes elevationBlob, runs the TerrainAnalyzer and, if
// excludedAspects is non-empty, the RunoutAnalyzer, then re-encodes all
// four bands. excludedAspects may be nil or empty, in which case
// RunoutBlob carries an all-zero band (runout.Analyze's defensive
// empty-input behavior, see runout.go).
func Analyze(elevationBlob []byte, excludedAspects map[geo.Aspect]bool) (*AnalysisResult, *errs.Error) {
	elevBand, ferr := decodeBand(elevationBlob, raster.KindElevation)
	if ferr != nil {
		return nil, ferr
	}

	g, err := grid.New(elevBand.Values, elevBand.Width, elevBand.Height, elevBand.Bounds)
	if err != nil {
		return nil, errs.New(errs.InvalidInput, err.Error())
	}

	bands, err := terrain.Analyze(g)
	if err != nil {
		return nil, errs.New(errs.InvalidInput, err.Error())
	}

	runoutBand := runout.Analyze(g, bands, runout.Config{ExcludedAspects: excludedAspects})

	azimuthBlob, err := raster.Encode(raster.Band{
		Kind: raster.KindAzimuth, Width: g.Width, Height: g.Height, Bounds: g.Bounds, Values: bands.AzimuthDeg,
	})
	if err != nil {
		return nil, errs.New(errs.InternalInvariant, err.Error())
	}
	gradientBlob, err := raster.Encode(raster.Band{
		Kind: raster.KindGradient, Width: g.Width, Height: g.Height, Bounds: g.Bounds, Values: bands.GradientSigned,
	})
	if err != nil {
		return nil, errs.New(errs.InternalInvariant, err.Error())
	}
	runoutBlob, err := raster.Encode(raster.Band{
		Kind: raster.KindRunout, Width: g.Width, Height: g.Height, Bounds: g.Bounds, Values: runoutBand.Values,
	})
	if err != nil {
		return nil, errs.New(errs.InternalInvariant, err.Error())
	}

	log.Printf("engine: analyzed %dx%d grid, %d cells with nonzero runout, excluded-aspect set size %d",
		g.Width, g.Height, countNonzero(runoutBand.Values), len(excludedAspects))

	return &AnalysisResult{
		ElevationBlob: elevationBlob,
		AzimuthBlob:   azimuthBlob,
		GradientBlob:  gradientBlob,
		RunoutBlob:    runoutBlob,
	}, nil
}

// Waypoint is a single GeoJSON Point, decimal-degree WGS84.
type Waypoint struct {
	Lon, Lat float64
}

// FindPath decodes elevation/azimuth/gradient/runout blobs (runoutBlob
// may be nil when cons.AvoidRunouts is false), runs the Pathfinder across
// every consecutive waypoint pair in order, and assembles the concatenated
// result as a GeoJSON FeatureCollection.
//
// progress and cancel are threaded through unchanged to every segment
// search; a cancellation or failure on segment i stops the orchestration
// immediately and returns an error of that segment's Kind, its message
// prefixed with the segment number (the segment error's Detail is not
// carried over), rather than an aggregate.
func FindPath(
	elevationBlob, azimuthBlob, gradientBlob, runoutBlob []byte,
	waypoints []Waypoint,
	cons pathfind.Constraints,
	progress pathfind.ProgressFunc,
	cancel *pathfind.CancelToken,
) ([]byte, *errs.Error) {
	if len(waypoints) < 2 {
		return nil, errs.New(errs.InvalidInput, "find_path requires at least two waypoints")
	}

	elevBand, ferr := decodeBand(elevationBlob, raster.KindElevation)
	if ferr != nil {
		return nil, ferr
	}
	azimuthBand, ferr := decodeBand(azimuthBlob, raster.KindAzimuth)
	if ferr != nil {
		return nil, ferr
	}
	gradientBand, ferr := decodeBand(gradientBlob, raster.KindGradient)
	if ferr != nil {
		return nil, ferr
	}

	g, err := grid.New(elevBand.Values, elevBand.Width, elevBand.Height, elevBand.Bounds)
	if err != nil {
		return nil, errs.New(errs.InvalidInput, err.Error())
	}
	if len(azimuthBand.Values) != len(g.Data) || len(gradientBand.Values) != len(g.Data) {
		return nil, errs.New(errs.InvalidInput, "azimuth/gradient band size does not match the elevation grid")
	}
	bands := &terrain.Bands{
		AzimuthDeg:     azimuthBand.Values,
		GradientSigned: gradientBand.Values,
		Width:          g.Width,
		Height:         g.Height,
	}

	var runoutBand *runout.Band
	if cons.AvoidRunouts {
		if runoutBlob == nil {
			return nil, errs.New(errs.InvalidInput, "avoid_runouts is set but no runout blob was supplied")
		}
		rb, ferr := decodeBand(runoutBlob, raster.KindRunout)
		if ferr != nil {
			return nil, ferr
		}
		if len(rb.Values) != len(g.Data) {
			return nil, errs.New(errs.InvalidInput, "runout band size does not match the elevation grid")
		}
		runoutBand = &runout.Band{Values: rb.Values, Width: g.Width, Height: g.Height}
	}

	var all []pathfind.PathPoint
	for i := 0; i < len(waypoints)-1; i++ {
		start := geo.Point{Lon: waypoints[i].Lon, Lat: waypoints[i].Lat}
		end := geo.Point{Lon: waypoints[i+1].Lon, Lat: waypoints[i+1].Lat}

		segment, ferr := pathfind.FindSegment(g, bands, runoutBand, start, end, cons, progress, cancel)
		if ferr != nil {
			return nil, errs.Newf(ferr.Kind, "segment %d of %d: %s", i+1, len(waypoints)-1, ferr.Message)
		}

		if i > 0 && len(segment) > 0 {
			segment = segment[1:] // drop the cell shared with the previous segment's end
		}
		all = append(all, segment...)
	}

	return marshalGeoJSON(all), nil
}

func decodeBand(blob []byte, want raster.Kind) (raster.Band, *errs.Error) {
	b, err := raster.Decode(blob)
	if err != nil {
		return raster.Band{}, errs.New(errs.InvalidInput, err.Error())
	}
	if b.Kind != want {
		return raster.Band{}, errs.Newf(errs.InvalidInput, "expected a %s band, got %s", want, b.Kind)
	}
	return b, nil
}

func countNonzero(values []float32) int {
	n := 0
	for _, v := range values {
		if v != 0 {
			n++
		}
	}
	return n
}
