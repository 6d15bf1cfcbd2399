package main

import "github.com/justmytwospence/firsttracks-terrain/cmd/terrainctl/cmd"

func main() {
	cmd.Execute()
}
