package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wirecheck/packages/core/config"
	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

var listFileFlag string

var listCmd = &cobra.Command{
	Use:   "list [parser|upload|all]",
	Short: "List the scenarios in a suite or catalogue",
	Long: `List scenario names without running anything.

Examples:
  wirecheck list
  wirecheck list parser
  wirecheck list --file probes.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: listCommand,
}

func init() {
	listCmd.Flags().StringVarP(&listFileFlag, "file", "f", "", "List scenarios from a YAML catalogue")
}

func listCommand(cmd *cobra.Command, args []string) error {
	var scenarios []*scenario.Scenario
	var err error

	if listFileFlag != "" {
		scenarios, err = scenario.Load(listFileFlag)
	} else {
		suite := scenario.SuiteAll
		if len(args) == 1 {
			suite = args[0]
		}
		cfg := config.DefaultConfig()
		scenarios, err = scenario.Suite(suite, fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))
	}
	if err != nil {
		return err
	}

	for _, sc := range scenarios {
		fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", sc.Name)
		if sc.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s\n", sc.Description)
		}
	}

	return nil
}
