// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the weektrack MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, extractor contract.Extractor, reporter contract.Reporter) *server.MCPServer {
	s := server.NewMCPServer(
		"Weektrack Progress Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:   baseCfg,
		extractor: extractor,
		reporter:  reporter,
	}

	// --- 1. Tool: scan_semester ---
	s.AddTool(mcp.NewTool("scan_semester",
		mcp.WithDescription("Scan the week folders of a semester and report task and solution counts per course."),
		mcp.WithString("semester_path", mcp.Description("Path to the semester root containing one directory per course."), mcp.Required()),
		mcp.WithString("week", mcp.Description("Week to scan: 'last', 'next' or a YYYY-MM-DD date. Defaults to the configured week.")),
		mcp.WithBoolean("all_weeks", mcp.Description("Scan every dated week folder instead of a single week.")),
	), h.handleScanSemester)

	// --- 2. Tool: scan_week ---
	s.AddTool(mcp.NewTool("scan_week",
		mcp.WithDescription("Scan a single week folder and report its progress."),
		mcp.WithString("week_path", mcp.Description("Path to the week folder (semester/course/YYYY-MM-DD)."), mcp.Required()),
	), h.handleScanWeek)

	// --- 3. Tool: week_anchors ---
	s.AddTool(mcp.NewTool("week_anchors",
		mcp.WithDescription("Return the last and next Monday used to name week folders."),
	), h.handleWeekAnchors)

	return s
}

// StartMCPServer starts the weektrack MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, extractor contract.Extractor, reporter contract.Reporter) error {
	s := NewMCPServer(baseCfg, extractor, reporter)
	return server.ServeStdio(s)
}
