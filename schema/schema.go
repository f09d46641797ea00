// Package schema has models and constants shared by all parts of weektrack.
package schema

import "time"

// WeekFolder identifies one week of one course.
type WeekFolder struct {
	Semester string    // Semester root the course lives in
	Course   string    // Course directory name
	Date     time.Time // Monday anchoring the week
	Path     string    // Absolute or root-relative path of the folder
}

// ClassifiedEntry is one regular file seen while walking a week folder.
// Task and Solution are decided independently, so both can be true.
type ClassifiedEntry struct {
	Path     string
	Task     bool
	Solution bool
}

// Role returns the primary role of the entry. A file matching both rules
// reports TaskRole.
func (e ClassifiedEntry) Role() Role {
	switch {
	case e.Task:
		return TaskRole
	case e.Solution:
		return SolutionRole
	default:
		return UnclassifiedRole
	}
}

// Classification is the resolved pair of artifacts for a week folder.
// An empty path means no file matched that role.
type Classification struct {
	TaskPath           string   `json:"task_path,omitempty"`
	SolutionPath       string   `json:"solution_path,omitempty"`
	TaskCandidates     []string `json:"task_candidates,omitempty"`
	SolutionCandidates []string `json:"solution_candidates,omitempty"`
}

// ProgressSummary is the numeric outcome of scanning one week.
// Todo is TasksAssigned - SolutionsCompleted and is never clamped.
type ProgressSummary struct {
	TasksAssigned      int         `json:"tasks_assigned"`
	SolutionsCompleted int         `json:"solutions_completed"`
	Todo               int         `json:"todo"`
	TaskStatus         CountStatus `json:"task_status"`
	SolutionStatus     CountStatus `json:"solution_status"`
}

// WeekScan holds everything ScanWeek learned about a week folder.
type WeekScan struct {
	Classification Classification
	Summary        ProgressSummary
}

// WeekResult is one row of a scan run.
type WeekResult struct {
	Semester     string          `json:"semester"`
	Course       string          `json:"course"`
	Week         string          `json:"week"`
	Path         string          `json:"path"`
	TaskFile     string          `json:"task_file,omitempty"`
	SolutionFile string          `json:"solution_file,omitempty"`
	ChartFile    string          `json:"chart_file,omitempty"`
	Label        string          `json:"label"`
	Summary      ProgressSummary `json:"summary"`
	Error        string          `json:"error,omitempty"`
}

// Anchors reports the week anchors around a point in time.
type Anchors struct {
	Now        time.Time `json:"now"`
	LastMonday string    `json:"last_monday"`
	NextMonday string    `json:"next_monday"`
}
