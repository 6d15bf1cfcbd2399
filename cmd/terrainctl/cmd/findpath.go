package cmd

import (
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justmytwospence/firsttracks-terrain/engine"
	"github.com/justmytwospence/firsttracks-terrain/pathfind"
)

var (
	findPathElevation string
	findPathAzimuth   string
	findPathGradient  string
	findPathRunout    string
	findPathWaypoints string
	findPathConfig    string
	findPathOut       string
)

// findPathCmd runs the Pathfinder across a waypoint list and writes the
// resulting GeoJSON FeatureCollection to a file (or stdout).
var findPathCmd = &cobra.Command{
	Use:   "find-path",
	Short: "find a slope- and avalanche-aware route between waypoints",
	Long: `Find a route across an elevation grid subject to a gradient
ceiling, excluded aspects and avalanche runout avoidance, and emit it as a
GeoJSON FeatureCollection.`,
	Run: doFindPath,
}

func init() {
	RootCmd.AddCommand(findPathCmd)

	findPathCmd.Flags().StringVar(&findPathElevation, "elevation", "", "elevation RasterCodec blob (required)")
	findPathCmd.Flags().StringVar(&findPathAzimuth, "azimuth", "", "azimuth RasterCodec blob (required)")
	findPathCmd.Flags().StringVar(&findPathGradient, "gradient", "", "gradient RasterCodec blob (required)")
	findPathCmd.Flags().StringVar(&findPathRunout, "runout", "", "runout RasterCodec blob (required if the --config file sets avoid_runouts)")
	findPathCmd.Flags().StringVar(&findPathWaypoints, "waypoints", "",
		"semicolon-separated lon,lat pairs, e.g. '-106.1,39.6;-106.05,39.58' (required, at least 2)")
	findPathCmd.Flags().StringVar(&findPathConfig, "config", "", "constraints file written by 'terrainctl config'")
	findPathCmd.Flags().StringVar(&findPathOut, "out", "", "output GeoJSON file (default: stdout)")
}

func doFindPath(cmd *cobra.Command, args []string) {
	if findPathElevation == "" || findPathAzimuth == "" || findPathGradient == "" {
		check(fmt.Errorf("--elevation, --azimuth and --gradient are all required"))
	}

	check(fileExists(findPathElevation))
	check(fileExists(findPathAzimuth))
	check(fileExists(findPathGradient))

	elevBlob, err := ioutil.ReadFile(findPathElevation)
	check(err)
	azimuthBlob, err := ioutil.ReadFile(findPathAzimuth)
	check(err)
	gradientBlob, err := ioutil.ReadFile(findPathGradient)
	check(err)

	var runoutBlob []byte
	if findPathRunout != "" {
		check(fileExists(findPathRunout))
		runoutBlob, err = ioutil.ReadFile(findPathRunout)
		check(err)
	}

	cons := pathfind.Constraints{}
	if findPathConfig != "" {
		cons, err = readConstraintsFile(findPathConfig)
		check(err)
	}

	waypoints, err := parseWaypoints(findPathWaypoints)
	check(err)

	geojsonBytes, ferr := engine.FindPath(elevBlob, azimuthBlob, gradientBlob, runoutBlob, waypoints, cons, nil, nil)
	if ferr != nil {
		check(ferr)
	}

	if findPathOut == "" {
		fmt.Println(string(geojsonBytes))
		return
	}
	check(ioutil.WriteFile(findPathOut, geojsonBytes, 0644))
	fmt.Printf("wrote %s\n", findPathOut)
}

func parseWaypoints(spec string) ([]engine.Waypoint, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return nil, fmt.Errorf("--waypoints is required")
	}
	pairs := strings.Split(spec, ";")
	if len(pairs) < 2 {
		return nil, fmt.Errorf("--waypoints must list at least two lon,lat pairs")
	}
	out := make([]engine.Waypoint, 0, len(pairs))
	for _, pair := range pairs {
		parts := strings.Split(strings.TrimSpace(pair), ",")
		if len(parts) != 2 {
			return nil, fmt.Errorf("malformed waypoint %q, expected lon,lat", pair)
		}
		lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed longitude in %q: %w", pair, err)
		}
		lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("malformed latitude in %q: %w", pair, err)
		}
		out = append(out, engine.Waypoint{Lon: lon, Lat: lat})
	}
	return out, nil
}
