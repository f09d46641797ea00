package contract

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/weektrack/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput returns the raw input produced by the viper defaults.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		SemesterArgs:        []string{"WiSE23"},
		Week:                schema.LastWeekAnchor,
		TaskIdentifiers:     schema.DefaultTaskIdentifiers,
		SolutionIdentifiers: schema.DefaultSolutionIdentifiers,
		TaskMarkers:         schema.DefaultTaskMarkers,
		SolutionMarker:      schema.DefaultSolutionMarker,
		Ambiguity:           string(schema.LastWinsPolicy),
		ChartFile:           schema.DefaultChartFile,
		Workers:             2,
		ExtractTimeout:      "30s",
		CacheSize:           DefaultCacheSize,
		Output:              string(schema.TextOut),
		Color:               "yes",
		Emoji:               "no",
	}
}

func TestProcessAndValidate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*ConfigRawInput)
		expectError bool
	}{
		{name: "valid minimal config", mutate: func(*ConfigRawInput) {}},
		{name: "next week", mutate: func(in *ConfigRawInput) { in.Week = "NEXT" }},
		{name: "explicit date", mutate: func(in *ConfigRawInput) { in.Week = "2023-10-16" }},
		{name: "invalid week", mutate: func(in *ConfigRawInput) { in.Week = "yesterday" }, expectError: true},
		{name: "invalid output", mutate: func(in *ConfigRawInput) { in.Output = "xml" }, expectError: true},
		{name: "parquet without file", mutate: func(in *ConfigRawInput) { in.Output = "parquet" }, expectError: true},
		{name: "parquet with file", mutate: func(in *ConfigRawInput) {
			in.Output = "parquet"
			in.OutputFile = "weeks.parquet"
		}},
		{name: "strict ambiguity", mutate: func(in *ConfigRawInput) { in.Ambiguity = "Strict" }},
		{name: "invalid ambiguity", mutate: func(in *ConfigRawInput) { in.Ambiguity = "first" }, expectError: true},
		{name: "zero workers", mutate: func(in *ConfigRawInput) { in.Workers = 0 }, expectError: true},
		{name: "negative cache", mutate: func(in *ConfigRawInput) { in.CacheSize = -1 }, expectError: true},
		{name: "no task identifiers", mutate: func(in *ConfigRawInput) { in.TaskIdentifiers = []string{" "} }, expectError: true},
		{name: "no solution identifiers", mutate: func(in *ConfigRawInput) { in.SolutionIdentifiers = nil }, expectError: true},
		{name: "empty task markers allowed", mutate: func(in *ConfigRawInput) { in.TaskMarkers = nil }},
		{name: "empty solution marker", mutate: func(in *ConfigRawInput) { in.SolutionMarker = "  " }, expectError: true},
		{name: "bad timeout", mutate: func(in *ConfigRawInput) { in.ExtractTimeout = "soon" }, expectError: true},
		{name: "zero timeout disables", mutate: func(in *ConfigRawInput) { in.ExtractTimeout = "0s" }},
		{name: "bad debounce", mutate: func(in *ConfigRawInput) { in.Debounce = "0s" }, expectError: true},
		{name: "chart file with directory", mutate: func(in *ConfigRawInput) { in.ChartFile = "out/todo.png" }, expectError: true},
		{name: "huge chart", mutate: func(in *ConfigRawInput) { in.ChartWidth = MaxChartDimension + 1 }, expectError: true},
		{name: "invalid color", mutate: func(in *ConfigRawInput) { in.Color = "sometimes" }, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			tt.mutate(input)
			cfg := &Config{}
			err := ProcessAndValidate(cfg, input)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestProcessAndValidateValues(t *testing.T) {
	input := validInput()
	input.TaskIdentifiers = []string{"UB", " ub ", "Blatt"}
	input.TaskMarkers = []string{"Aufgabe1(", ""}
	input.Week = "2023-10-18"
	input.ExtractTimeout = ""
	input.ChartWidth = 800

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))

	assert.Equal(t, []string{"ub", "blatt"}, cfg.Classify.TaskIdentifiers)
	assert.Equal(t, []string{"aufgabe1("}, cfg.Count.TaskMarkers)
	assert.Equal(t, schema.DefaultSolutionMarker, cfg.Count.SolutionMarker)
	assert.Equal(t, "2023-10-18", cfg.WeekSpec)
	assert.Equal(t, DefaultExtractTimeout, cfg.ExtractTimeout)
	assert.Equal(t, DefaultDebounce, cfg.Debounce)
	assert.Equal(t, 800, cfg.ChartWidth)
	assert.Equal(t, DefaultChartHeight, cfg.ChartHeight)
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.True(t, cfg.UseColors)
	assert.False(t, cfg.UseEmojis)

	require.Len(t, cfg.SemesterRoots, 1)
	assert.True(t, filepath.IsAbs(cfg.SemesterRoots[0]))
	assert.Equal(t, "WiSE23", filepath.Base(cfg.SemesterRoots[0]))
}

func TestProcessChartSize(t *testing.T) {
	tests := []struct {
		name           string
		width, height  int
		expectedWidth  int
		expectedHeight int
		expectError    bool
	}{
		{name: "defaults", expectedWidth: DefaultChartWidth, expectedHeight: DefaultChartHeight},
		{name: "custom", width: 320, height: 200, expectedWidth: 320, expectedHeight: 200},
		{name: "largest", width: MaxChartDimension, height: 1, expectedWidth: MaxChartDimension, expectedHeight: 1},
		{name: "negative width", width: -1, expectError: true},
		{name: "negative height", height: -480, expectError: true},
		{name: "too tall", height: MaxChartDimension + 1, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validInput()
			input.ChartWidth = tt.width
			input.ChartHeight = tt.height
			cfg := &Config{}
			err := processChart(cfg, input)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "between 1 and")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expectedWidth, cfg.ChartWidth)
			assert.Equal(t, tt.expectedHeight, cfg.ChartHeight)
		})
	}
}

func TestResolveSemesterRootsFallsBackToConfig(t *testing.T) {
	input := validInput()
	input.SemesterArgs = nil
	input.Semesters = []string{"/srv/lmu/WiSE23", "", "/srv/lmu/SoSe24"}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, input))
	assert.Equal(t, []string{"/srv/lmu/WiSE23", "/srv/lmu/SoSe24"}, cfg.SemesterRoots)
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{
		SemesterRoots:  []string{"/a"},
		Classify:       ClassifyRules{TaskIdentifiers: []string{"ub"}, SolutionIdentifiers: []string{".tex"}},
		Count:          CountRules{TaskMarkers: []string{"aufgabe1("}, SolutionMarker: "x"},
		ExtractTimeout: time.Second,
	}
	clone := cfg.Clone()
	clone.SemesterRoots[0] = "/b"
	clone.Classify.TaskIdentifiers[0] = "blatt"
	clone.Count.TaskMarkers[0] = "task1"

	assert.Equal(t, "/a", cfg.SemesterRoots[0])
	assert.Equal(t, "ub", cfg.Classify.TaskIdentifiers[0])
	assert.Equal(t, "aufgabe1(", cfg.Count.TaskMarkers[0])
	assert.Equal(t, time.Second, clone.ExtractTimeout)
}
