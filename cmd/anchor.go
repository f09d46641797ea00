package cmd

import (
	"github.com/huangsam/weektrack/core"
	"github.com/huangsam/weektrack/internal/contract"
	"github.com/spf13/cobra"
)

// anchorCmd prints the Mondays that week folders are named after.
var anchorCmd = &cobra.Command{
	Use:   "anchor",
	Short: "Print last and next Monday.",
	Long: `Print the dates of last Monday and next Monday as used for week folder
names. On a Monday, last Monday is today.

Examples:
  weektrack anchor
  WEEKTRACK_OUTPUT=json weektrack anchor`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnchor(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot print anchors", err)
		}
	},
}
