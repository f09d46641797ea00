// Package parquet provides data structures and functions for exporting weektrack
// scan results to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/weektrack/schema"
	"github.com/parquet-go/parquet-go"
)

// WeekRow represents the progress of a single week folder in a scan run.
type WeekRow struct {
	// ScanTime is when the run finished (stored as TIMESTAMP with nanosecond precision)
	ScanTime time.Time `parquet:"scan_time,snappy"`

	// Semester is the base name of the semester root
	Semester string `parquet:"semester,snappy"`

	// Course is the course directory name
	Course string `parquet:"course,snappy"`

	// Week is the YYYY-MM-DD folder name
	Week string `parquet:"week,snappy"`

	// Path is the full path of the week folder
	Path string `parquet:"path,snappy"`

	// TaskFile is the task document relative to the week folder (nullable)
	TaskFile *string `parquet:"task_file,optional,snappy"`

	// SolutionFile is the solution document relative to the week folder (nullable)
	SolutionFile *string `parquet:"solution_file,optional,snappy"`

	TasksAssigned      int32  `parquet:"tasks_assigned,snappy"`
	SolutionsCompleted int32  `parquet:"solutions_completed,snappy"`
	Todo               int32  `parquet:"todo,snappy"`
	TaskStatus         string `parquet:"task_status,snappy"`
	SolutionStatus     string `parquet:"solution_status,snappy"`
	Label              string `parquet:"label,snappy"`

	// Error is the per-week failure, if any (nullable)
	Error *string `parquet:"error,optional,snappy"`
}

// WriteWeekRowsParquet writes a slice of WeekRow structs to a Parquet file.
func WriteWeekRowsParquet(data []WeekRow, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is derived from the WeekRow struct tags
	writer := parquet.NewGenericWriter[WeekRow](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	// Close writes the footer, so its error matters
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// ConvertWeekResults converts schema.WeekResult to WeekRow for Parquet export.
func ConvertWeekResults(results []schema.WeekResult, scanTime time.Time) []WeekRow {
	rows := make([]WeekRow, len(results))
	for i, r := range results {
		rows[i] = WeekRow{
			ScanTime:           scanTime,
			Semester:           r.Semester,
			Course:             r.Course,
			Week:               r.Week,
			Path:               r.Path,
			TaskFile:           optional(r.TaskFile),
			SolutionFile:       optional(r.SolutionFile),
			TasksAssigned:      int32(r.Summary.TasksAssigned),
			SolutionsCompleted: int32(r.Summary.SolutionsCompleted),
			Todo:               int32(r.Summary.Todo),
			TaskStatus:         string(r.Summary.TaskStatus),
			SolutionStatus:     string(r.Summary.SolutionStatus),
			Label:              r.Label,
			Error:              optional(r.Error),
		}
	}
	return rows
}

// optional maps the empty string to a null column value.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
