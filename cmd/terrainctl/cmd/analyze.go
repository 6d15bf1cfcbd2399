package cmd

import (
	"fmt"
	"io/ioutil"
	"strings"

	"github.com/spf13/cobra"

	"github.com/justmytwospence/firsttracks-terrain/engine"
	"github.com/justmytwospence/firsttracks-terrain/geo"
)

var (
	analyzeExcludedAspects string
	analyzeOutPrefix       string
)

// analyzeCmd runs the TerrainAnalyzer (and, if excluded aspects are
// given, the RunoutAnalyzer) over an elevation blob and writes the
// resulting bands back out as RasterCodec files.
var analyzeCmd = &cobra.Command{
	Use:   "analyze ELEVATION_BLOB",
	Short: "derive azimuth, gradient and runout bands from an elevation raster",
	Long: `Read an elevation raster in RasterCodec format, compute its
azimuth, gradient and (if --excluded-aspects is set) runout_intensity
bands, and write each out as its own RasterCodec file.`,
	Args: cobra.ExactArgs(1),
	Run:  doAnalyze,
}

func init() {
	RootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeExcludedAspects, "excluded-aspects", "",
		"comma-separated aspect names the runout seed set is steep on (e.g. North,Northeast)")
	analyzeCmd.Flags().StringVar(&analyzeOutPrefix, "out-prefix", "terrain",
		"output files are written to PREFIX.azimuth, PREFIX.gradient, PREFIX.runout")
}

func doAnalyze(cmd *cobra.Command, args []string) {
	check(fileExists(args[0]))

	blob, err := ioutil.ReadFile(args[0])
	check(err)

	excluded, err := parseAspectList(analyzeExcludedAspects)
	check(err)

	result, ferr := engine.Analyze(blob, excluded)
	if ferr != nil {
		check(ferr)
	}

	check(ioutil.WriteFile(analyzeOutPrefix+".azimuth", result.AzimuthBlob, 0644))
	check(ioutil.WriteFile(analyzeOutPrefix+".gradient", result.GradientBlob, 0644))
	check(ioutil.WriteFile(analyzeOutPrefix+".runout", result.RunoutBlob, 0644))

	fmt.Printf("wrote %s.azimuth, %s.gradient, %s.runout\n", analyzeOutPrefix, analyzeOutPrefix, analyzeOutPrefix)
}

func parseAspectList(csv string) (map[geo.Aspect]bool, error) {
	csv = strings.TrimSpace(csv)
	if csv == "" {
		return nil, nil
	}
	out := make(map[geo.Aspect]bool)
	for _, name := range strings.Split(csv, ",") {
		name = strings.TrimSpace(name)
		a, ok := aspectByName[name]
		if !ok {
			return nil, fmt.Errorf("unknown aspect %q", name)
		}
		out[a] = true
	}
	return out, nil
}
