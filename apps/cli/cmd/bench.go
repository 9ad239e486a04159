package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wirecheck/packages/bench"
	"github.com/abdul-hamid-achik/wirecheck/packages/core/config"
	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
	"github.com/abdul-hamid-achik/wirecheck/packages/transport"
)

var benchCmd = &cobra.Command{
	Use:   "bench <scenario-name>",
	Short: "Measure latency of one scenario",
	Long: `Repeat a single built-in scenario sequentially and report the latency
distribution. Exchanges still use one fresh connection each; the rate
flag spaces them out.

Examples:
  wirecheck bench get-static-file
  wirecheck bench post-json -n 100 -r 20 --port 8081`,
	Args: cobra.ExactArgs(1),
	RunE: benchCommand,
}

var (
	benchHostFlag    string
	benchPortFlag    int
	benchTimeoutFlag string
	benchCountFlag   int
	benchRateFlag    float64
	benchConfigFlag  string
)

func init() {
	benchCmd.Flags().StringVar(&benchHostFlag, "host", "", "Target host")
	benchCmd.Flags().IntVar(&benchPortFlag, "port", 0, "Target port")
	benchCmd.Flags().StringVar(&benchTimeoutFlag, "timeout", "", "Connect/read timeout (e.g. 5s)")
	benchCmd.Flags().IntVarP(&benchCountFlag, "count", "n", bench.DefaultCount, "Number of exchanges")
	benchCmd.Flags().Float64VarP(&benchRateFlag, "rate", "r", bench.DefaultRate, "Target exchanges per second")
	benchCmd.Flags().StringVar(&benchConfigFlag, "config", "", "Path to config file")
}

func benchCommand(cmd *cobra.Command, args []string) error {
	fileConfig, err := config.LoadConfig(benchConfigFlag)
	if err != nil {
		os.Exit(ExitConfigError)
	}
	if benchHostFlag != "" {
		fileConfig.Host = benchHostFlag
	}
	if benchPortFlag != 0 {
		fileConfig.Port = benchPortFlag
	}

	timeout := fileConfig.GetTimeout()
	if benchTimeoutFlag != "" {
		timeout, err = time.ParseDuration(benchTimeoutFlag)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", benchTimeoutFlag, err)
		}
	}

	addr := fmt.Sprintf("%s:%d", fileConfig.Host, fileConfig.Port)

	scenarios, err := scenario.Suite(scenario.SuiteAll, addr)
	if err != nil {
		return err
	}

	var target *scenario.Scenario
	for _, sc := range scenarios {
		if sc.Name == args[0] {
			target = sc
			break
		}
	}
	if target == nil {
		return fmt.Errorf("unknown scenario %q (see 'wirecheck list')", args[0])
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nReceived interrupt, stopping...")
		cancel()
	}()

	runner := bench.NewRunner(
		&bench.Config{Count: benchCountFlag, Rate: benchRateFlag},
		transport.New(transport.WithTimeout(timeout)),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "Benching %s against %s (%d exchanges at %.1f/s)...\n",
		target.Name, addr, benchCountFlag, benchRateFlag)

	summary, err := runner.Run(ctx, target, addr)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nExchanges: %d (%d failed, %d empty)\n",
		summary.Count, summary.Errors, summary.Empty)
	fmt.Fprintf(cmd.OutOrStdout(), "Time:      %s\n", summary.Duration.Round(time.Millisecond))
	if summary.Count > summary.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "Latency:   min=%s mean=%s p50=%s p95=%s p99=%s max=%s\n",
			summary.Min, summary.Mean, summary.P50, summary.P95, summary.P99, summary.Max)
	}

	return nil
}
