package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/vsinha/hatchery/pkg/infrastructure/config"
	"github.com/vsinha/hatchery/pkg/interfaces/cli/commands"
	"github.com/vsinha/hatchery/pkg/interfaces/cli/output"
)

var (
	// Global flags
	verbose     bool
	configFile  string
	format      string
	outputDir   string
	metricsFile string

	// Input flags
	scenarioDir  string
	trolleysFile string
	preHatchFile string

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "hatchery",
	Short: "Derived inventory for a poultry hatchery",
	Long: `hatchery classifies hatcher trolleys by fertility, binds them to the
18-slot hatcher rack (most recent transfer first) and packs their fertile
eggs into chick box-trolleys.

Inputs are CSV files, either given one by one or found in a scenario
directory containing trolleys.csv and prehatch.csv.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logLevel()
		if err != nil {
			return err
		}
		zapConfig := zap.NewProductionConfig()
		zapConfig.Level = zap.NewAtomicLevelAt(level)
		logger, err = zapConfig.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

var slotsCmd = &cobra.Command{
	Use:   "slots",
	Short: "Print the hatcher rack slot assignments",
	Example: `  hatchery slots --trolleys data/trolleys.csv
  hatchery slots --scenario examples/demo --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd.Context(), output.ViewSlots)
	},
}

var packCmd = &cobra.Command{
	Use:   "pack",
	Short: "Print the chick box-trolleys packed from occupied pre-hatch trolleys",
	Example: `  hatchery pack --trolleys data/trolleys.csv --prehatch data/prehatch.csv
  hatchery pack --scenario examples/demo --format csv --output results/`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd.Context(), output.ViewPack)
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Run classification, slot assignment and packing as one snapshot",
	Example: `  hatchery snapshot --scenario examples/demo -v
  hatchery snapshot --scenario examples/demo --config engine.yaml --metrics-file metrics.prom`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(cmd.Context(), output.ViewSnapshot)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Path to engine YAML config (default: built-in constants)")
	rootCmd.PersistentFlags().StringVar(&format, "format", "text", "Output format: text, json, csv")
	rootCmd.PersistentFlags().StringVar(&outputDir, "output", "", "Output directory for results (optional, required for csv)")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "", "Write Prometheus metrics of the run to this file")

	rootCmd.PersistentFlags().StringVar(&scenarioDir, "scenario", "", "Path to scenario directory containing CSV files")
	rootCmd.PersistentFlags().StringVar(&trolleysFile, "trolleys", "", "Path to trolleys CSV file")
	packCmd.Flags().StringVar(&preHatchFile, "prehatch", "", "Path to pre-hatch positions CSV file")
	snapshotCmd.Flags().StringVar(&preHatchFile, "prehatch", "", "Path to pre-hatch positions CSV file")

	rootCmd.AddCommand(slotsCmd)
	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(snapshotCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// logLevel resolves the level from --verbose, then the engine config file
func logLevel() (zapcore.Level, error) {
	if verbose {
		return zapcore.DebugLevel, nil
	}
	engineConfig, err := config.Load(configFile)
	if err != nil {
		return zapcore.InfoLevel, err
	}
	return zapcore.ParseLevel(engineConfig.Logging.Level)
}

func runView(ctx context.Context, view output.View) error {
	cmd := commands.NewHatcheryCommand(commands.Config{
		View:         view,
		ScenarioDir:  scenarioDir,
		TrolleysFile: trolleysFile,
		PreHatchFile: preHatchFile,
		ConfigFile:   configFile,
		OutputDir:    outputDir,
		Format:       format,
		MetricsFile:  metricsFile,
		Verbose:      verbose,
	}, logger)

	return cmd.Execute(ctx)
}
