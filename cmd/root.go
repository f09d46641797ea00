package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/weektrack/internal/chart"
	"github.com/huangsam/weektrack/internal/contract"
	"github.com/huangsam/weektrack/internal/extract"
	"github.com/huangsam/weektrack/schema"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// errNoSemesters is returned when neither arguments nor config name a semester.
var errNoSemesters = errors.New("no semester given: pass a path or set 'semesters' in .weektrack.yaml")

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
// Without a subcommand it behaves like scan.
var rootCmd = &cobra.Command{
	Use:   "weektrack [semester-path...]",
	Short: "Track weekly exercise sheets and solutions per course.",
	Long: `Weektrack keeps one folder per week in every course of a semester,
counts assigned exercises against solved ones and draws a progress chart.

Running weektrack without a subcommand is the same as 'weektrack scan'.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	Args:               cobra.ArbitraryArgs,
	PreRunE:            semesterSetupWrapper,
	Run:                runScan,
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// A .env file is optional; real environment variables take precedence
	_ = godotenv.Load()

	// Check if a specific config file is provided
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName(".weektrack")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
	}

	viper.SetEnvPrefix("WEEKTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("semesters", []string{})
	viper.SetDefault("week", schema.LastWeekAnchor)
	viper.SetDefault("all-weeks", false)
	viper.SetDefault("task-identifiers", schema.DefaultTaskIdentifiers)
	viper.SetDefault("solution-identifiers", schema.DefaultSolutionIdentifiers)
	viper.SetDefault("task-markers", schema.DefaultTaskMarkers)
	viper.SetDefault("solution-marker", schema.DefaultSolutionMarker)
	viper.SetDefault("ambiguity", schema.LastWinsPolicy)
	viper.SetDefault("chart-file", schema.DefaultChartFile)
	viper.SetDefault("chart-width", contract.DefaultChartWidth)
	viper.SetDefault("chart-height", contract.DefaultChartHeight)
	viper.SetDefault("workers", contract.DefaultWorkers)
	viper.SetDefault("extract-timeout", contract.DefaultExtractTimeout.String())
	viper.SetDefault("cache-size", contract.DefaultCacheSize)
	viper.SetDefault("debounce", contract.DefaultDebounce.String())
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("output-file", "")
	viper.SetDefault("width", 0)
	viper.SetDefault("emoji", "no")
	viper.SetDefault("color", "yes")
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Read config file. This merges defaults, file, env, and flags.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, which is fine; we'll use defaults/env/flags.
	}

	// 2. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 3. Handle positional arguments (which Viper doesn't do).
	input.SemesterArgs = args

	// 4. Run all validation and complex parsing.
	return contract.ProcessAndValidate(cfg, input)
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// semesterSetupWrapper is sharedSetupWrapper for commands that need at least one semester.
func semesterSetupWrapper(cmd *cobra.Command, args []string) error {
	if err := sharedSetup(rootCtx, cmd, args); err != nil {
		return err
	}
	if len(cfg.SemesterRoots) == 0 {
		return errNoSemesters
	}
	return nil
}

// newExtractor builds the document extractor from the validated config.
func newExtractor() contract.Extractor {
	extractor, err := extract.New(cfg.ExtractTimeout, cfg.CacheSize)
	if err != nil {
		contract.LogFatal("Cannot create text extractor", err)
	}
	return extractor
}

// newReporter builds the chart reporter from the validated config.
func newReporter() contract.Reporter {
	return chart.NewPNGReporter(cfg.ChartWidth, cfg.ChartHeight)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
