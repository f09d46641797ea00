// Package outwriter has output and writer logic.
package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/huangsam/weektrack/internal/parquet"
	"github.com/huangsam/weektrack/schema"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"golang.org/x/term"
)

// WriteWeekResults outputs the scan results, dispatching based on the output format configured.
func WriteWeekResults(results []schema.WeekResult, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, results)
		}, "Wrote JSON"); err != nil {
			return fmt.Errorf("error writing JSON output: %w", err)
		}
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeekCSV(w, results)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
	case schema.ParquetOut:
		rows := parquet.ConvertWeekResults(results, time.Now())
		if err := parquet.WriteWeekRowsParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote Parquet to %s\n", cfg.OutputFile)
	default:
		// Default to human-readable table
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeWeekTable(w, results, cfg, duration)
		}, "Wrote table")
	}
	return nil
}

// writeWeekTable generates and writes the human-readable table.
func writeWeekTable(w io.Writer, results []schema.WeekResult, cfg *contract.Config, duration time.Duration) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Semester", "Course", "Week", "Tasks", "Done", "Todo", "Label", "Note"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	maxWidth := GetMaxTablePathWidth(cfg)
	var data [][]string
	for _, r := range results {
		label := r.Label
		if cfg.UseColors {
			label = contract.GetColorLabel(r.Summary)
			if r.Error != "" {
				label = contract.UnknownColor.Sprint(schema.UnknownLabel)
			}
		}
		data = append(data, []string{
			r.Semester,
			r.Course,
			r.Week,
			formatTasks(r),
			strconv.Itoa(r.Summary.SolutionsCompleted),
			formatTodo(r),
			label,
			contract.TruncatePath(weekNote(r), maxWidth),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Showing %d weeks (total todo: %d)\n", len(results), schema.TotalTodo(results)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scan completed in %v with %d workers.\n", duration.Round(time.Millisecond), cfg.Workers); err != nil {
		return err
	}
	return nil
}

// formatTasks renders the task count, or "?" when it cannot be trusted.
func formatTasks(r schema.WeekResult) string {
	if r.Error != "" || !r.Summary.Known() {
		return "?"
	}
	return strconv.Itoa(r.Summary.TasksAssigned)
}

func formatTodo(r schema.WeekResult) string {
	if r.Error != "" || !r.Summary.Known() {
		return "?"
	}
	return strconv.Itoa(r.Summary.Todo)
}

// weekNote explains a row: the error, a count status worth noting, or the task file.
func weekNote(r schema.WeekResult) string {
	switch {
	case r.Error != "":
		return r.Error
	case r.Summary.TaskStatus != schema.CountedStatus:
		return "task " + string(r.Summary.TaskStatus)
	case r.Summary.SolutionStatus == schema.FailedStatus:
		return "solution failed"
	default:
		return r.TaskFile
	}
}

// writeWeekCSV writes the scan results in CSV format.
func writeWeekCSV(w io.Writer, results []schema.WeekResult) error {
	header := []string{
		"semester",
		"course",
		"week",
		"path",
		"task_file",
		"solution_file",
		"chart_file",
		"tasks_assigned",
		"solutions_completed",
		"todo",
		"task_status",
		"solution_status",
		"label",
		"error",
	}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, r := range results {
			rec := []string{
				r.Semester,
				r.Course,
				r.Week,
				r.Path,
				r.TaskFile,
				r.SolutionFile,
				r.ChartFile,
				strconv.Itoa(r.Summary.TasksAssigned),
				strconv.Itoa(r.Summary.SolutionsCompleted),
				strconv.Itoa(r.Summary.Todo),
				string(r.Summary.TaskStatus),
				string(r.Summary.SolutionStatus),
				r.Label,
				r.Error,
			}
			if err := csvWriter.Write(rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// WriteAnchors prints the week anchors using the configured output format.
func WriteAnchors(anchors schema.Anchors, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, anchors)
		}, "Wrote JSON")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVWithHeader(w, []string{"last_monday", "next_monday"}, func(csvWriter *csv.Writer) error {
				return csvWriter.Write([]string{anchors.LastMonday, anchors.NextMonday})
			})
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			_, err := fmt.Fprintf(w, "Last Monday: %s\nNext Monday: %s\n", anchors.LastMonday, anchors.NextMonday)
			return err
		}, "Wrote anchors")
	}
}

// GetMaxTablePathWidth calculates the maximum width for the note column in
// table output based on terminal width.
func GetMaxTablePathWidth(cfg *contract.Config) int {
	termWidth := cfg.Width
	if termWidth <= 0 {
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Semester + Course + Week + three counts + Label, with borders/padding
	baseWidth := 70

	available := termWidth - baseWidth
	if available < 15 {
		return 15
	}
	if available > 70 {
		return 70
	}
	return available
}
