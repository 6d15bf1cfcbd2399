package cmd

import (
	"fmt"
	"io/ioutil"

	"github.com/spf13/cobra"
	yaml "gopkg.in/yaml.v2"

	"github.com/justmytwospence/firsttracks-terrain/geo"
	"github.com/justmytwospence/firsttracks-terrain/pathfind"
)

// fileConstraints mirrors pathfind.Constraints in a form that round-trips
// through YAML: aspects are spelled out by name rather than as map keys
// on an enum, since yaml.v2 doesn't know how to marshal a geo.Aspect key.
type fileConstraints struct {
	MaxGradient             float32  `yaml:"max_gradient"`
	ExcludedAspects         []string `yaml:"excluded_aspects"`
	AspectGradientThreshold float32  `yaml:"aspect_gradient_threshold"`
	AvoidRunouts            bool     `yaml:"avoid_runouts"`
	RunoutThreshold         float32  `yaml:"runout_threshold"`
	ExplorationBatchSize    int      `yaml:"exploration_batch_size"`
	SnapRadius              int      `yaml:"snap_radius"`
	MaxNodes                int      `yaml:"max_nodes"`
}

func defaultFileConstraints() fileConstraints {
	return fileConstraints{
		MaxGradient:             1.0,
		AspectGradientThreshold: pathfind.DefaultAspectGradientThreshold,
		RunoutThreshold:         pathfind.DefaultRunoutThreshold,
		ExplorationBatchSize:    pathfind.DefaultExplorationBatchSize,
		SnapRadius:              pathfind.DefaultSnapRadius,
	}
}

// toConstraints converts a parsed file into pathfind.Constraints,
// resolving aspect names against the fixed nine-way enumeration.
func (f fileConstraints) toConstraints() (pathfind.Constraints, error) {
	var excluded map[geo.Aspect]bool
	if len(f.ExcludedAspects) > 0 {
		excluded = make(map[geo.Aspect]bool, len(f.ExcludedAspects))
		for _, name := range f.ExcludedAspects {
			a, ok := aspectByName[name]
			if !ok {
				return pathfind.Constraints{}, fmt.Errorf("config: unknown aspect %q", name)
			}
			excluded[a] = true
		}
	}
	return pathfind.Constraints{
		MaxGradient:             f.MaxGradient,
		ExcludedAspects:         excluded,
		AspectGradientThreshold: f.AspectGradientThreshold,
		AvoidRunouts:            f.AvoidRunouts,
		RunoutThreshold:         f.RunoutThreshold,
		ExplorationBatchSize:    f.ExplorationBatchSize,
		SnapRadius:              f.SnapRadius,
		MaxNodes:                f.MaxNodes,
	}, nil
}

var aspectByName = map[string]geo.Aspect{
	"North": geo.North, "Northeast": geo.Northeast, "East": geo.East,
	"Southeast": geo.Southeast, "South": geo.South, "Southwest": geo.Southwest,
	"West": geo.West, "Northwest": geo.Northwest, "Flat": geo.Flat,
}

// configCmd emits a terrainctl.yml constraints file prefilled with
// default values, for a find-path invocation to read with --config.
var configCmd = &cobra.Command{
	Use:   "config FILE",
	Short: "create a constraints file prefilled with default values",
	Long: `Create a constraints file in YAML format, prefilled with the
engine's default values, plus max_gradient: 1.0 (the engine itself has
no default for max_gradient).

If FILE is not provided, 'terrainctl.yml' is used.`,
	Run: func(cmd *cobra.Command, args []string) {
		path := "terrainctl.yml"
		if len(args) >= 1 {
			path = args[0]
		}
		ok, err := confirmIfExists(path, fmt.Sprintf("file %q already exists, overwrite? [y/N]", path))
		if !ok {
			if err == nil {
				fmt.Println("aborted by user")
			} else {
				fmt.Println("aborted,", err)
			}
			return
		}

		out, err := yaml.Marshal(defaultFileConstraints())
		check(err)
		check(ioutil.WriteFile(path, out, 0644))
		fmt.Printf("constraints written to %q\n", path)
	},
}

func init() {
	RootCmd.AddCommand(configCmd)
}

func readConstraintsFile(path string) (pathfind.Constraints, error) {
	if err := fileExists(path); err != nil {
		return pathfind.Constraints{}, err
	}
	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return pathfind.Constraints{}, err
	}
	var fc fileConstraints
	if err := yaml.Unmarshal(buf, &fc); err != nil {
		return pathfind.Constraints{}, err
	}
	return fc.toConstraints()
}
