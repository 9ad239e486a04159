package main

import (
	"github.com/abdul-hamid-achik/wirecheck/apps/cli/cmd"
)

// Set at build time via -ldflags.
var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	cmd.Execute(version, buildTime)
}
