package cmd

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/wirecheck/packages/core/config"
	"github.com/abdul-hamid-achik/wirecheck/packages/history"
	"github.com/abdul-hamid-achik/wirecheck/packages/output"
	"github.com/abdul-hamid-achik/wirecheck/packages/scenario"
)

var runCmd = &cobra.Command{
	Use:   "run [parser|upload|all]",
	Short: "Run probe scenarios against a server",
	Long: `Run a catalogue of raw HTTP scenarios against a server and print each
request and raw response for inspection.

Examples:
  wirecheck run                      # built-in "all" suite against localhost:8080
  wirecheck run parser --port 8081
  wirecheck run upload --host 10.0.0.5 --yes
  wirecheck run --file probes.yaml --watch
  wirecheck run all --record runs.db`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCommand,
}

const (
	// WatchDebounceDelay is the debounce delay for file watch events
	WatchDebounceDelay = 300 * time.Millisecond
)

var (
	hostFlag    string
	portFlag    int
	timeoutFlag string
	pauseFlag   string
	yesFlag     bool
	verboseFlag bool
	noColorFlag bool
	configFlag  string
	outputFlag  string
	fileFlag    string
	watchFlag   bool
	recordFlag  string
)

// Formatter renders run progress; implemented by the console and JSON
// formatters.
type Formatter interface {
	FormatHeader(version, addr string)
	FormatResult(r *scenario.Result)
	FormatSummary(run *scenario.RunResult)
	FormatError(err error)
}

// Flushable is implemented by formatters that accumulate results and
// write once at the end.
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

func init() {
	runCmd.Flags().StringVar(&hostFlag, "host", "", "Target host (default from config, else localhost)")
	runCmd.Flags().IntVar(&portFlag, "port", 0, "Target port (default from config, else 8080)")
	runCmd.Flags().StringVar(&timeoutFlag, "timeout", "", "Connect/read timeout (e.g. 5s, 500ms)")
	runCmd.Flags().StringVar(&pauseFlag, "pause", "", "Pause between scenarios (e.g. 500ms)")
	runCmd.Flags().BoolVarP(&yesFlag, "yes", "y", false, "Start immediately without waiting for Enter")
	runCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "Verbose output (status line, body notes)")
	runCmd.Flags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")
	runCmd.Flags().StringVar(&configFlag, "config", "", "Path to config file")
	runCmd.Flags().StringVarP(&outputFlag, "output", "o", "console", "Output format: console, json")
	runCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Run scenarios from a YAML catalogue instead of a built-in suite")
	runCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Re-run when the catalogue file changes (requires --file)")
	runCmd.Flags().StringVar(&recordFlag, "record", "", "Record exchanges to a SQLite database at this path")
}

func runCommand(cmd *cobra.Command, args []string) error {
	cfg, err := buildRunConfig()
	if err != nil {
		os.Exit(ExitConfigError)
	}

	if watchFlag && fileFlag == "" {
		return fmt.Errorf("--watch requires --file")
	}

	suite := scenario.SuiteAll
	if len(args) == 1 {
		suite = args[0]
	}

	loadScenarios := func() ([]*scenario.Scenario, error) {
		if fileFlag != "" {
			return scenario.Load(fileFlag)
		}
		return scenario.Suite(suite, cfg.Addr())
	}

	scenarios, err := loadScenarios()
	if err != nil {
		return err
	}

	var formatter Formatter
	switch outputFlag {
	case "json":
		formatter = output.NewJSONFormatter()
	default: // "console"
		formatter = output.NewConsoleFormatter(
			output.WithVerbose(verboseFlag),
			output.WithNoColor(noColorFlag),
		)
	}
	formatter.FormatHeader(version, cfg.Addr())

	var store *history.Store
	if recordFlag != "" {
		store, err = history.Open(recordFlag)
		if err != nil {
			formatter.FormatError(err)
			os.Exit(ExitConfigError)
		}
		defer store.Close()
	}

	if !yesFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "Make sure the server is running at %s.\n", cfg.Addr())
		fmt.Fprintf(cmd.OutOrStdout(), "Press Enter to start...")
		_, _ = bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	}

	runner := scenario.NewRunner(cfg)

	runOnce := func(scenarios []*scenario.Scenario) {
		runID := history.NewRunID()
		run := runner.Run(scenarios, func(r *scenario.Result) {
			formatter.FormatResult(r)
			if store != nil {
				if err := store.Record(runID, r); err != nil {
					formatter.FormatError(err)
				}
			}
		})
		formatter.FormatSummary(run)

		if flushable, ok := formatter.(Flushable); ok {
			if err := flushable.Flush(run.Duration); err != nil {
				formatter.FormatError(fmt.Errorf("writing output: %w", err))
			}
		}
	}

	runOnce(scenarios)

	if !watchFlag {
		return nil
	}

	return watchCatalogue(cmd, fileFlag, formatter, func() {
		// Accumulating formatters need fresh state per pass.
		if outputFlag == "json" {
			formatter = output.NewJSONFormatter()
		}
		scenarios, err := loadScenarios()
		if err != nil {
			formatter.FormatError(err)
			return
		}
		runOnce(scenarios)
	})
}

// buildRunConfig merges the config file with CLI flag overrides.
func buildRunConfig() (*scenario.Config, error) {
	fileConfig, err := config.LoadConfig(configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, err
	}

	if hostFlag != "" {
		fileConfig.Host = hostFlag
	}
	if portFlag != 0 {
		fileConfig.Port = portFlag
	}
	if fileConfig.GetVerbose() {
		verboseFlag = true
	}
	if fileConfig.GetNoColor() {
		noColorFlag = true
	}

	timeout := fileConfig.GetTimeout()
	if timeoutFlag != "" {
		timeout, err = time.ParseDuration(timeoutFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid timeout %q: %v\n", timeoutFlag, err)
			return nil, err
		}
	}

	pause := fileConfig.GetPause()
	if pauseFlag != "" {
		pause, err = time.ParseDuration(pauseFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid pause %q: %v\n", pauseFlag, err)
			return nil, err
		}
	}

	if recordFlag == "" && fileConfig.HistoryPath != "" {
		recordFlag = fileConfig.HistoryPath
	}

	return &scenario.Config{
		Host:    fileConfig.Host,
		Port:    fileConfig.Port,
		Timeout: timeout,
		Pause:   pause,
	}, nil
}

// watchCatalogue blocks, re-running the catalogue whenever its file is
// written. Rapid editor save events are debounced.
func watchCatalogue(cmd *cobra.Command, path string, formatter Formatter, rerun func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory; editors replace files on save, which drops
	// a watch placed on the file itself.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("watching %s: %w", path, err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", path)

	var debounceTimer *time.Timer
	absPath, _ := filepath.Abs(path)

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			eventPath, _ := filepath.Abs(event.Name)
			if eventPath != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(WatchDebounceDelay, func() {
				fmt.Fprintf(cmd.OutOrStdout(), "\nCatalogue changed, re-running...\n")
				rerun()
				fmt.Fprintf(cmd.OutOrStdout(), "\nWatching %s for changes... (press Ctrl+C to stop)\n", path)
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			formatter.FormatError(fmt.Errorf("watcher error: %w", err))
		}
	}
}
