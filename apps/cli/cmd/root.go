package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "wirecheck",
	Short: "Poke HTTP servers with raw bytes.",
	Long: `wirecheck is a black-box probing harness for HTTP servers. It builds
raw request bytes by hand, including deliberately malformed ones, sends
them over plain TCP and prints whatever comes back for you to inspect.
It never judges the server's answers; that is your job.`,
}

func Execute(v, bt string) {
	version = v
	buildTime = bt
	if err := rootCmd.Execute(); err != nil {
		os.Exit(ExitUsageError)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}
