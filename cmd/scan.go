package cmd

import (
	"github.com/huangsam/weektrack/core"
	"github.com/huangsam/weektrack/internal/contract"
	"github.com/spf13/cobra"
)

// scanCmd counts the progress of the anchor week in every course.
var scanCmd = &cobra.Command{
	Use:   "scan [semester-path...]",
	Short: "Count tasks and solutions of the current week per course.",
	Long: `Ensure that every course of each semester has a folder for the anchor
week, then count the exercises of its sheet against the solved ones and
draw a progress chart into the folder.

The anchor week is last Monday unless 'week' is set to next or to a
YYYY-MM-DD date. With 'all-weeks' every dated folder is scanned.

Examples:
  # Scan one semester
  weektrack scan ~/uni/ws2324

  # Scan the semesters listed in .weektrack.yaml
  weektrack scan

  # Scan every week and export the results to CSV
  WEEKTRACK_ALL_WEEKS=true WEEKTRACK_OUTPUT=csv WEEKTRACK_OUTPUT_FILE=weeks.csv weektrack scan ~/uni/ws2324

  # Use a project-specific config file
  weektrack scan --config ./semester.yaml`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: semesterSetupWrapper,
	Run:     runScan,
}

// runScan is shared by scan and the root command.
func runScan(_ *cobra.Command, _ []string) {
	if err := core.ExecuteScan(rootCtx, cfg, newExtractor(), newReporter()); err != nil {
		contract.LogFatal("Cannot scan semesters", err)
	}
}
