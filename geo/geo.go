// Package geo holds the small geometric vocabulary shared by grid, terrain,
// runout and pathfind: geographic bounds, the nine-way aspect enumeration,
// and great-circle distance. Keeping it separate avoids an import cycle
// between grid (which needs Bounds) and terrain (which needs Aspect).
package geo

import (
	"math"

	"github.com/arl/math32"
)

// EarthRadiusM is the mean Earth radius used for Haversine distance. DEM
// resolutions in the tens of meters don't warrant a full ellipsoidal model.
const EarthRadiusM = 6371008.8

// Bounds is a geographic bounding box in decimal degrees, WGS84.
//
// North must be strictly greater than South and East strictly greater than
// West; the package does not support antimeridian-crossing boxes.
type Bounds struct {
	North, South, East, West float64
}

// Valid reports whether b is well-formed.
func (b Bounds) Valid() bool {
	return b.North > b.South && b.East > b.West &&
		!isNaN(b.North) && !isNaN(b.South) && !isNaN(b.East) && !isNaN(b.West)
}

func isNaN(f float64) bool { return f != f }

// PixelSize returns the width and height, in decimal degrees, of one pixel
// of a width x height grid covering b.
func (b Bounds) PixelSize(width, height int) (pw, ph float64) {
	return (b.East - b.West) / float64(width), (b.North - b.South) / float64(height)
}

// Point is a (longitude, latitude) pair in decimal degrees.
type Point struct {
	Lon, Lat float64
}

// HaversineMeters returns the great-circle distance between a and b.
func HaversineMeters(a, b Point) float64 {
	const deg2rad = math.Pi / 180
	lat1 := a.Lat * deg2rad
	lat2 := b.Lat * deg2rad
	dLat := (b.Lat - a.Lat) * deg2rad
	dLon := (b.Lon - a.Lon) * deg2rad

	sinDLat := math.Sin(dLat / 2)
	sinDLon := math.Sin(dLon / 2)
	h := sinDLat*sinDLat + math.Cos(lat1)*math.Cos(lat2)*sinDLon*sinDLon
	if h < 0 {
		h = 0
	}
	if h > 1 {
		h = 1
	}
	return 2 * EarthRadiusM * math.Asin(math.Sqrt(h))
}

// Aspect is the compass direction a slope faces, binned into the eight
// cardinal/intercardinal directions plus Flat for negligible slopes.
type Aspect uint8

// Aspect values. Flat is the zero value so a zeroed TerrainBand reads as
// "no slope" rather than "facing north".
const (
	Flat Aspect = iota
	North
	Northeast
	East
	Southeast
	South
	Southwest
	West
	Northwest
)

var aspectNames = [...]string{
	Flat:      "Flat",
	North:     "North",
	Northeast: "Northeast",
	East:      "East",
	Southeast: "Southeast",
	South:     "South",
	Southwest: "Southwest",
	West:      "West",
	Northwest: "Northwest",
}

func (a Aspect) String() string {
	if int(a) < len(aspectNames) {
		return aspectNames[a]
	}
	return "Unknown"
}

// binCenters holds the azimuth, in degrees, that each non-Flat aspect is
// centered on. Bin width is 45 degrees; boundary azimuths round to the
// lower-angle bin.
var binCenters = [8]float32{0, 45, 90, 135, 180, 225, 270, 315}

// binAspects lists the aspects in ascending bin-center order, index-aligned
// with binCenters.
var binAspects = [8]Aspect{North, Northeast, East, Southeast, South, Southwest, West, Northwest}

// FlatEpsilon is the gradient magnitude below which a cell is Flat.
const FlatEpsilon = 0.01

// Classify bins an azimuth (degrees, [0,360)) and gradient magnitude into
// an Aspect. Ties round to the lower-angle bin.
func Classify(azimuthDeg float32, gradientMagnitude float32) Aspect {
	if gradientMagnitude < FlatEpsilon {
		return Flat
	}
	az := azimuthDeg - math32.Floor(azimuthDeg/360)*360
	if az < 0 {
		az += 360
	}
	best := 0
	bestDelta := float32(1e9)
	for i, c := range binCenters {
		d := angularDelta(az, c)
		// strictly-less keeps ties (exactly 22.5 from both neighbors) on
		// the lower-angle bin, since bins are visited in ascending order.
		if d < bestDelta {
			bestDelta = d
			best = i
		}
	}
	return binAspects[best]
}

// angularDelta returns the absolute angular distance between two azimuths
// in [0, 180].
func angularDelta(a, b float32) float32 {
	d := math32.Abs(a - b)
	if d > 180 {
		d = 360 - d
	}
	return d
}
