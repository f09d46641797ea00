package cmd

import (
	"github.com/huangsam/weektrack/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the weektrack MCP server",
	Long:  `Launch an MCP server on stdio that allows AI agents to scan semesters and weeks via standard tools.`,
	Args:  cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		// Semesters are passed per tool call, so none are required here.
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, newExtractor(), newReporter())
	},
}
