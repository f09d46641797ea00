package contract

import (
	"fmt"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/weektrack/schema"
)

// Default values for configuration.
const (
	DefaultChartWidth     = 640
	DefaultChartHeight    = 480
	DefaultExtractTimeout = 30 * time.Second
	DefaultCacheSize      = 256
	DefaultDebounce       = 500 * time.Millisecond
	MaxChartDimension     = 4096
)

// DefaultWorkers is the default number of concurrent week scans.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// Config holds the runtime configuration for a scan.
// This struct is the "final, validated" config.
type Config struct {
	SemesterRoots []string

	// WeekSpec is "last", "next" or a YYYY-MM-DD date; see core.ResolveAnchor.
	WeekSpec string
	AllWeeks bool

	Classify  ClassifyRules
	Count     CountRules
	Ambiguity schema.AmbiguityPolicy

	ChartFile   string
	ChartWidth  int
	ChartHeight int

	Workers        int
	ExtractTimeout time.Duration // 0 disables the per-document timeout
	CacheSize      int           // 0 disables the extraction cache
	Debounce       time.Duration

	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)

	UseEmojis bool
	UseColors bool
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	SemesterArgs []string

	Semesters           []string `mapstructure:"semesters"`
	Week                string   `mapstructure:"week"`
	AllWeeks            bool     `mapstructure:"all-weeks"`
	TaskIdentifiers     []string `mapstructure:"task-identifiers"`
	SolutionIdentifiers []string `mapstructure:"solution-identifiers"`
	TaskMarkers         []string `mapstructure:"task-markers"`
	SolutionMarker      string   `mapstructure:"solution-marker"`
	Ambiguity           string   `mapstructure:"ambiguity"`
	ChartFile           string   `mapstructure:"chart-file"`
	ChartWidth          int      `mapstructure:"chart-width"`
	ChartHeight         int      `mapstructure:"chart-height"`
	Workers             int      `mapstructure:"workers"`
	ExtractTimeout      string   `mapstructure:"extract-timeout"`
	CacheSize           int      `mapstructure:"cache-size"`
	Debounce            string   `mapstructure:"debounce"`
	Output              string   `mapstructure:"output"`
	OutputFile          string   `mapstructure:"output-file"`
	Width               int      `mapstructure:"width"`
	Emoji               string   `mapstructure:"emoji"`
	Color               string   `mapstructure:"color"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.SemesterRoots = slices.Clone(c.SemesterRoots)
	clone.Classify.TaskIdentifiers = slices.Clone(c.Classify.TaskIdentifiers)
	clone.Classify.SolutionIdentifiers = slices.Clone(c.Classify.SolutionIdentifiers)
	clone.Count.TaskMarkers = slices.Clone(c.Count.TaskMarkers)
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processTokenSets(cfg, input); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := processChart(cfg, input); err != nil {
		return err
	}
	return resolveSemesterRoots(cfg, input)
}

// validateSimpleInputs processes and validates the scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.AllWeeks = input.AllWeeks

	emojis, err := ParseBoolString(defaultString(input.Emoji, "no"))
	if err != nil {
		return fmt.Errorf("invalid emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	if input.CacheSize < 0 {
		return fmt.Errorf("cache-size cannot be negative (received %d)", input.CacheSize)
	}
	cfg.CacheSize = input.CacheSize

	cfg.Output = schema.OutputMode(strings.ToLower(defaultString(input.Output, string(schema.TextOut))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires output-file to be set")
	}

	cfg.Ambiguity = schema.AmbiguityPolicy(strings.ToLower(defaultString(input.Ambiguity, string(schema.LastWinsPolicy))))
	if _, ok := schema.ValidAmbiguityPolicies[cfg.Ambiguity]; !ok {
		return fmt.Errorf("invalid ambiguity policy '%s'. must be last or strict", input.Ambiguity)
	}

	week := strings.ToLower(defaultString(input.Week, schema.LastWeekAnchor))
	switch week {
	case schema.LastWeekAnchor, schema.NextWeekAnchor:
	default:
		if _, err := time.ParseInLocation(schema.AnchorLayout, week, time.Local); err != nil {
			return fmt.Errorf("invalid week '%s'. must be last, next or a YYYY-MM-DD date", input.Week)
		}
	}
	cfg.WeekSpec = week

	return nil
}

// processTokenSets copies the identifier and marker sets. An empty task marker
// set is allowed: it means "no counting rule", which the scanner reports as unknown.
func processTokenSets(cfg *Config, input *ConfigRawInput) error {
	cfg.Classify.TaskIdentifiers = lowerTokens(input.TaskIdentifiers)
	if len(cfg.Classify.TaskIdentifiers) == 0 {
		return fmt.Errorf("task-identifiers must contain at least one non-empty token")
	}
	cfg.Classify.SolutionIdentifiers = lowerTokens(input.SolutionIdentifiers)
	if len(cfg.Classify.SolutionIdentifiers) == 0 {
		return fmt.Errorf("solution-identifiers must contain at least one non-empty token")
	}

	cfg.Count.TaskMarkers = lowerTokens(input.TaskMarkers)
	cfg.Count.SolutionMarker = input.SolutionMarker
	if strings.TrimSpace(cfg.Count.SolutionMarker) == "" {
		return fmt.Errorf("solution-marker cannot be empty")
	}
	return nil
}

// processDurations parses the duration settings.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	cfg.ExtractTimeout = DefaultExtractTimeout
	if input.ExtractTimeout != "" {
		d, err := time.ParseDuration(input.ExtractTimeout)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid extract-timeout '%s'. expected a duration like 30s", input.ExtractTimeout)
		}
		cfg.ExtractTimeout = d
	}

	cfg.Debounce = DefaultDebounce
	if input.Debounce != "" {
		d, err := time.ParseDuration(input.Debounce)
		if err != nil || d <= 0 {
			return fmt.Errorf("invalid debounce '%s'. expected a positive duration like 500ms", input.Debounce)
		}
		cfg.Debounce = d
	}
	return nil
}

// processChart validates the chart file name and size.
func processChart(cfg *Config, input *ConfigRawInput) error {
	name := strings.TrimSpace(defaultString(input.ChartFile, schema.DefaultChartFile))
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("chart-file must be a plain file name, got '%s'", input.ChartFile)
	}
	cfg.ChartFile = name

	// 0 means "use the default"; anything else must be a real pixel size
	cfg.ChartWidth = defaultInt(input.ChartWidth, DefaultChartWidth)
	cfg.ChartHeight = defaultInt(input.ChartHeight, DefaultChartHeight)
	if cfg.ChartWidth <= 0 || cfg.ChartWidth > MaxChartDimension || cfg.ChartHeight <= 0 || cfg.ChartHeight > MaxChartDimension {
		return fmt.Errorf("chart size must be between 1 and %d pixels (received %dx%d)", MaxChartDimension, cfg.ChartWidth, cfg.ChartHeight)
	}
	return nil
}

// resolveSemesterRoots prefers positional arguments over configured semesters.
func resolveSemesterRoots(cfg *Config, input *ConfigRawInput) error {
	roots := input.SemesterArgs
	if len(roots) == 0 {
		roots = input.Semesters
	}

	cfg.SemesterRoots = cfg.SemesterRoots[:0]
	for _, root := range roots {
		root = strings.TrimSpace(root)
		if root == "" {
			continue
		}
		abs, err := filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("cannot resolve semester path %q: %w", root, err)
		}
		cfg.SemesterRoots = append(cfg.SemesterRoots, abs)
	}
	return nil
}

// lowerTokens trims, lower-cases and de-duplicates tokens, keeping their order.
func lowerTokens(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		tok = strings.ToLower(strings.TrimSpace(tok))
		if tok == "" || slices.Contains(out, tok) {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func defaultString(v, fallback string) string {
	if strings.TrimSpace(v) == "" {
		return fallback
	}
	return v
}

func defaultInt(v, fallback int) int {
	if v == 0 {
		return fallback
	}
	return v
}
