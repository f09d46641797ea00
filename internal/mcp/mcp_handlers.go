package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/weektrack/core"
	"github.com/huangsam/weektrack/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg   *contract.Config
	extractor contract.Extractor
	reporter  contract.Reporter
}

func (h *toolHandler) handleScanSemester(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	semester := request.GetString("semester_path", "")
	if semester == "" {
		return mcp.NewToolResultError("semester_path is required"), nil
	}
	abs, err := filepath.Abs(semester)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid semester_path: %v", err)), nil
	}
	cfg.SemesterRoots = []string{abs}
	if w := request.GetString("week", ""); w != "" {
		cfg.WeekSpec = w
	}
	cfg.AllWeeks = request.GetBool("all_weeks", cfg.AllWeeks)

	if _, err := core.ResolveAnchor(cfg.WeekSpec, time.Now()); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid week: %v", err)), nil
	}

	results, err := core.GetWeekResults(core.WithSuppressHeader(ctx), cfg, h.extractor, h.reporter)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scan failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleScanWeek(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weekPath := request.GetString("week_path", "")
	if weekPath == "" {
		return mcp.NewToolResultError("week_path is required"), nil
	}
	abs, err := filepath.Abs(weekPath)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid week_path: %v", err)), nil
	}
	info, err := os.Stat(abs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot read week folder: %v", err)), nil
	}
	if !info.IsDir() {
		return mcp.NewToolResultError(fmt.Sprintf("%s is not a directory", weekPath)), nil
	}

	opts := core.NewScanOptions(h.baseCfg, h.extractor, h.reporter)
	result := core.ScanFolder(core.WithSuppressHeader(ctx), core.WeekFolderFromPath(abs), opts)

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleWeekAnchors(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(core.GetAnchors(time.Now()), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
