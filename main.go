package main

import (
	"os"

	"muster/cmd"
	"muster/pkg/logging"
)

// version can be set during build with -ldflags.
var version = "dev"

func main() {
	logging.InitForCLI(logging.LevelInfo, os.Stdout)
	cmd.SetVersion(version)
	cmd.Execute()
}
