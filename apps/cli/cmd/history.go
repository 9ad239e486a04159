package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wirecheck/packages/history"
	"github.com/abdul-hamid-achik/wirecheck/packages/output"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect recorded exchanges",
	Long: `List exchanges previously recorded with 'run --record'.

Examples:
  wirecheck history --db runs.db
  wirecheck history --db runs.db --run 6e1f... --show`,
	RunE: historyCommand,
}

var (
	historyDBFlag    string
	historyRunFlag   string
	historyLimitFlag int
	historyShowFlag  bool
)

func init() {
	historyCmd.Flags().StringVar(&historyDBFlag, "db", "", "Path to the history database (required)")
	historyCmd.Flags().StringVar(&historyRunFlag, "run", "", "Restrict to one run id")
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 20, "Maximum entries to list")
	historyCmd.Flags().BoolVar(&historyShowFlag, "show", false, "Print full request and response bytes")
	_ = historyCmd.MarkFlagRequired("db")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDBFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.Recent(historyRunFlag, historyLimitFlag)
	if err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No recorded exchanges\n")
		return nil
	}

	red := color.New(color.FgRed).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()

	for _, e := range entries {
		status := "-"
		if e.StatusCode != 0 {
			status = fmt.Sprintf("%d", e.StatusCode)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  %-24s status=%-4s %4dms  run=%s\n",
			e.StartedAt.Format(time.RFC3339), e.Scenario, status,
			e.Duration.Milliseconds(), cyan(shortID(e.RunID)))

		if e.Error != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "    %s %s\n", red("error:"), e.Error)
		}

		if historyShowFlag {
			fmt.Fprintf(cmd.OutOrStdout(), "\n--- request ---\n%s\n", output.DecodeLossy(e.Request))
			fmt.Fprintf(cmd.OutOrStdout(), "--- response ---\n%s\n\n", output.DecodeLossy(e.Response))
		}
	}

	return nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
