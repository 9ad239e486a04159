package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

var validateCmd = &cobra.Command{
	Use:   "validate <catalogue.yaml>...",
	Short: "Validate YAML scenario catalogues",
	Long: `Validate catalogue files against the scenario schema without
running them.

Examples:
  wirecheck validate probes.yaml
  wirecheck validate probes.yaml more-probes.yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: validateCommand,
}

func validateCommand(cmd *cobra.Command, args []string) error {
	hasErrors := false
	for _, file := range args {
		violations, err := scenario.ValidateFile(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error in %s: %v\n", file, err)
			hasErrors = true
			continue
		}
		if len(violations) > 0 {
			hasErrors = true
			fmt.Fprintf(cmd.OutOrStderr(), "Invalid: %s\n", file)
			for _, v := range violations {
				fmt.Fprintf(cmd.OutOrStderr(), "  - %s\n", v)
			}
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
	}

	if hasErrors {
		return fmt.Errorf("validation failed")
	}

	return nil
}
