package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:   "terrainctl",
	Short: "analyze terrain and find slope-aware routes",
	Long: `terrainctl is the command-line front end for the terrain engine:
	- analyze an elevation raster into azimuth/gradient/runout bands,
	- find a slope- and avalanche-aware route between waypoints,
	- inspect a RasterCodec blob,
	- emit a constraints file prefilled with default values.`,
}

// Execute adds all child commands to the root command and runs it. It is
// called by main.main and only needs to happen once.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
