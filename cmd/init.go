package cmd

import (
	"github.com/huangsam/weektrack/core"
	"github.com/huangsam/weektrack/internal/contract"
	"github.com/spf13/cobra"
)

// initCmd only creates the week folders.
var initCmd = &cobra.Command{
	Use:   "init [semester-path...]",
	Short: "Create the folder of the anchor week in every course.",
	Long: `Create the folder of the anchor week in every course without counting
anything. Existing folders are left untouched, so running it twice is safe.

Examples:
  # Prepare last week's folders
  weektrack init ~/uni/ws2324

  # Prepare next week's folders ahead of time
  WEEKTRACK_WEEK=next weektrack init ~/uni/ws2324`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: semesterSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInit(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot create week folders", err)
		}
	},
}
