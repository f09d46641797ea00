package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/weektrack/core"
	"github.com/huangsam/weektrack/internal/contract"
	"github.com/spf13/cobra"
)

// watchCmd keeps the progress charts up to date.
var watchCmd = &cobra.Command{
	Use:   "watch [semester-path...]",
	Short: "Scan once, then re-scan a week whenever its files change.",
	Long: `Run a scan, then keep watching the scanned week folders. Whenever a
sheet or solution changes, that week is counted again and its chart redrawn.

Bursts of changes are collapsed using the 'debounce' setting (default 500ms).
The chart file and hidden files never trigger a re-scan.

Examples:
  # Watch last week's folders until Ctrl-C
  weektrack watch ~/uni/ws2324

  # Watch every week folder
  WEEKTRACK_ALL_WEEKS=true weektrack watch ~/uni/ws2324`,
	Args:    cobra.ArbitraryArgs,
	PreRunE: semesterSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		if err := core.ExecuteWatch(ctx, cfg, newExtractor(), newReporter()); err != nil {
			contract.LogFatal("Cannot watch week folders", err)
		}
	},
}
