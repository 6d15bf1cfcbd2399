package engine

import (
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/justmytwospence/firsttracks-terrain/pathfind"
)

// marshalGeoJSON assembles a path as a GeoJSON FeatureCollection of
// Points, one per PathPoint in path order, plus a trailing LineString
// feature for hosts that want the path as a single geometry. Encoding
// failures are not possible here — every geometry is built from finite
// float64 coordinates already validated upstream — so this never returns
// an error.
func marshalGeoJSON(points []pathfind.PathPoint) []byte {
	features := make([]*geojson.Feature, 0, len(points)+1)

	coords := make([][]float64, len(points))
	for i, p := range points {
		coords[i] = []float64{p.Lon, p.Lat}

		features = append(features, &geojson.Feature{
			Geometry: geom.NewPointFlat(geom.XY, []float64{p.Lon, p.Lat}),
			Properties: map[string]interface{}{
				"aspect":      p.Aspect.String(),
				"gradient":    p.Gradient,
				"elevation_m": p.Elevation,
				"index":       i,
			},
		})
	}

	if len(coords) >= 2 {
		line, err := geom.NewLineString(geom.XY).SetCoords(coords)
		if err == nil {
			features = append(features, &geojson.Feature{Geometry: line})
		}
	}

	fc := &geojson.FeatureCollection{Features: features}
	data, err := fc.MarshalJSON()
	if err != nil {
		// Every geometry above is built from coordinates already
		// validated by the grid/pathfind layers; a marshal failure here
		// would indicate a library-level bug, not bad input.
		panic("engine: unexpected GeoJSON marshal failure: " + err.Error())
	}
	return data
}
