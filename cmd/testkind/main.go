package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"testkind/pkg/logging"
)

var (
	configFile  string
	logLevel    string
	metricsFile string
	nowFlag     string
	inputFile   string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "testkind",
		Short:         "Validate and explain test kind attributes",
		Long:          "testkind checks declarative test attributes and shows whether each test would run, be skipped or be ignored under the current TEST_KIND_* configuration.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to a YAML config file (default $TEST_KIND_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default $TEST_KIND_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write decision metrics in Prometheus text format to this file")

	rootCmd.AddCommand(checkCmd())
	rootCmd.AddCommand(decideCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

func newAppFromFlags() (*App, error) {
	now, err := parseNow(nowFlag)
	if err != nil {
		return nil, err
	}
	return NewApp(Options{
		ConfigFile:  configFile,
		LogLevel:    logLevel,
		MetricsFile: metricsFile,
		Now:         now,
	})
}

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [ATTRIBUTE...]",
		Short: "Validate test attributes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, false)
		},
	}
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read attributes from a file, one per line ('-' for stdin)")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}

func decideCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "decide [ATTRIBUTE...]",
		Short: "Show whether each test would run, be skipped or be ignored",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, args, true)
		},
	}
	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Read attributes from a file, one per line ('-' for stdin)")
	cmd.Flags().StringVar(&nowFlag, "now", "", "Evaluate as of this date (YYYY-MM-DD)")
	return cmd
}

func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppFromFlags()
			if err != nil {
				logging.NewEarlyLogTo(cmd.ErrOrStderr()).Error("%v", err)
				return err
			}
			defer app.Close()
			return app.PrintConfig(cmd.OutOrStdout())
		},
	}
}

func runBatch(cmd *cobra.Command, args []string, explain bool) error {
	earlyLog := logging.NewEarlyLogTo(cmd.ErrOrStderr())

	attrs, err := collectAttributes(cmd.InOrStdin(), args, inputFile)
	if err != nil {
		earlyLog.Error("%v", err)
		return err
	}
	if len(attrs) == 0 {
		err := fmt.Errorf("no attributes given")
		earlyLog.Error("%v, pass them as arguments or with --file", err)
		return err
	}

	app, err := newAppFromFlags()
	if err != nil {
		earlyLog.Error("%v", err)
		return err
	}

	results, err := app.Evaluate(cmd.Context(), attrs)
	if err != nil {
		app.Close()
		return err
	}

	failed := WriteResults(cmd.OutOrStdout(), results, explain)
	if err := app.Close(); err != nil {
		earlyLog.Error("failed to write metrics: %v", err)
		return err
	}
	if failed > 0 {
		return fmt.Errorf("%d invalid attribute(s)", failed)
	}
	return nil
}
