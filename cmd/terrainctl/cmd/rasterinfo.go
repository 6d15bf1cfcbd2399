package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"

	"github.com/justmytwospence/firsttracks-terrain/raster"
)

// rasterInfoCmd parses a RasterCodec blob and reports its band kind,
// dimensions, bounds and value range, the way `recast infos` reports on a
// navmesh binary.
var rasterInfoCmd = &cobra.Command{
	Use:   "raster-info BLOB",
	Short: "show info about a RasterCodec blob",
	Long: `Read a terrain band from a RasterCodec binary file, check it
for consistency, then print its kind, dimensions, bounds and value range
on standard output.`,
	Args: cobra.ExactArgs(1),
	Run:  doRasterInfo,
}

func init() {
	RootCmd.AddCommand(rasterInfoCmd)
}

func doRasterInfo(cmd *cobra.Command, args []string) {
	check(fileExists(args[0]))

	buf, err := ioutil.ReadFile(args[0])
	check(err)

	band, err := raster.Decode(buf)
	check(err)

	min, max := valueRange(band.Values)
	fmt.Printf("kind:       %s\n", band.Kind)
	fmt.Printf("dimensions: %d x %d (%d cells)\n", band.Width, band.Height, band.Width*band.Height)
	fmt.Printf("bounds:     N=%.6f S=%.6f E=%.6f W=%.6f\n",
		band.Bounds.North, band.Bounds.South, band.Bounds.East, band.Bounds.West)
	fmt.Printf("values:     min=%.4f max=%.4f\n", min, max)
}

func valueRange(values []float32) (min, max float32) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max = values[0], values[0]
	for _, v := range values[1:] {
		if v != v { // NaN
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}
