package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/weektrack/internal/contract"
	mcp_internal "github.com/huangsam/weektrack/internal/mcp"
	"github.com/huangsam/weektrack/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testWeek = "2023-10-16"

func baseConfig() *contract.Config {
	return &contract.Config{
		WeekSpec: "2023-10-18",
		Classify: contract.ClassifyRules{
			TaskIdentifiers:     []string{"ub"},
			SolutionIdentifiers: []string{".tex"},
		},
		Count: contract.CountRules{
			TaskMarkers:    schema.DefaultTaskMarkers,
			SolutionMarker: schema.DefaultSolutionMarker,
		},
		Ambiguity: schema.LastWinsPolicy,
		ChartFile: schema.DefaultChartFile,
		Workers:   1,
	}
}

// semester lays out semester/analysis/<testWeek> with one sheet and one solution.
func semester(t *testing.T) (root, week string) {
	t.Helper()
	root = t.TempDir()
	week = filepath.Join(root, "analysis", testWeek)
	require.NoError(t, os.MkdirAll(week, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(week, "ub1.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(week, "solution.tex"), []byte("\\begin{exercise}\n"), 0o644))
	return root, week
}

func newServer(t *testing.T) *server.MCPServer {
	t.Helper()
	ext := &contract.MockExtractor{}
	ext.On("Extract", mock.Anything, mock.Anything).Return("Aufgabe 1. Aufgabe 2.", nil)
	return mcp_internal.NewMCPServer(baseConfig(), ext, nil)
}

func call(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	require.NotEmpty(t, res.Content)
	return res
}

func text(res *mcp.CallToolResult) string {
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	s := newServer(t)

	t.Run("scan_semester missing semester_path", func(t *testing.T) {
		res := call(t, s, "scan_semester", map[string]any{"semester_path": ""})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "semester_path is required")
	})

	t.Run("scan_semester invalid week", func(t *testing.T) {
		res := call(t, s, "scan_semester", map[string]any{
			"semester_path": t.TempDir(),
			"week":          "someday",
		})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "invalid week")
	})

	t.Run("scan_semester missing semester", func(t *testing.T) {
		res := call(t, s, "scan_semester", map[string]any{
			"semester_path": filepath.Join(t.TempDir(), "missing"),
		})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "scan failed")
	})

	t.Run("scan_week missing week_path", func(t *testing.T) {
		res := call(t, s, "scan_week", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "week_path is required")
	})

	t.Run("scan_week nonexistent path", func(t *testing.T) {
		res := call(t, s, "scan_week", map[string]any{
			"week_path": filepath.Join(t.TempDir(), "missing"),
		})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "cannot read week folder")
	})

	t.Run("scan_week file instead of folder", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))
		res := call(t, s, "scan_week", map[string]any{"week_path": file})
		assert.True(t, res.IsError)
		assert.Contains(t, text(res), "is not a directory")
	})
}

func TestMCPServerHandlers_ScanSemester(t *testing.T) {
	s := newServer(t)
	root, week := semester(t)

	res := call(t, s, "scan_semester", map[string]any{"semester_path": root})
	require.False(t, res.IsError, text(res))

	var results []schema.WeekResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "analysis", results[0].Course)
	assert.Equal(t, testWeek, results[0].Week)
	assert.Equal(t, week, results[0].Path)
	assert.Equal(t, 2, results[0].Summary.TasksAssigned)
	assert.Equal(t, 1, results[0].Summary.SolutionsCompleted)
	assert.Equal(t, 1, results[0].Summary.Todo)
	assert.Equal(t, schema.OpenLabel, results[0].Label)
}

func TestMCPServerHandlers_ScanWeek(t *testing.T) {
	s := newServer(t)
	_, week := semester(t)

	res := call(t, s, "scan_week", map[string]any{"week_path": week})
	require.False(t, res.IsError, text(res))

	var result schema.WeekResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &result))
	assert.Equal(t, "analysis", result.Course)
	assert.Equal(t, 1, result.Summary.Todo)
	assert.Empty(t, result.Error)
}

func TestMCPServerHandlers_WeekAnchors(t *testing.T) {
	s := newServer(t)

	res := call(t, s, "week_anchors", nil)
	require.False(t, res.IsError)

	var anchors schema.Anchors
	require.NoError(t, json.Unmarshal([]byte(text(res)), &anchors))
	assert.Len(t, anchors.LastMonday, len(schema.AnchorLayout))
	assert.Len(t, anchors.NextMonday, len(schema.AnchorLayout))
}

func TestMCPServerHandlers_ScanSemesterAllWeeks(t *testing.T) {
	s := newServer(t)
	root, _ := semester(t)
	earlier := filepath.Join(root, "analysis", "2023-10-09")
	require.NoError(t, os.MkdirAll(earlier, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(earlier, "ub0.pdf"), []byte("%PDF-1.4"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(root, "analysis", "notes"), 0o755))

	res := call(t, s, "scan_semester", map[string]any{"semester_path": root, "all_weeks": true})
	require.False(t, res.IsError, text(res))

	var results []schema.WeekResult
	require.NoError(t, json.Unmarshal([]byte(text(res)), &results))
	weeks := make([]string, 0, len(results))
	for _, r := range results {
		weeks = append(weeks, r.Week)
	}
	assert.ElementsMatch(t, []string{"2023-10-09", testWeek}, weeks)
}
