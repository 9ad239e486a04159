package cmd

// Exit codes for the wirecheck CLI. A completed run always exits with
// ExitSuccess, even when scenarios could not reach the server; results
// are observational.
const (
	// ExitSuccess indicates the run completed
	ExitSuccess = 0

	// ExitConfigError indicates a configuration or catalogue error
	ExitConfigError = 2

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
