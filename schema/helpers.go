package schema

import (
	"cmp"
	"slices"
)

// NewProgressSummary builds a summary and derives Todo.
func NewProgressSummary(tasks int, taskStatus CountStatus, solutions int, solutionStatus CountStatus) ProgressSummary {
	return ProgressSummary{
		TasksAssigned:      tasks,
		SolutionsCompleted: solutions,
		Todo:               tasks - solutions,
		TaskStatus:         taskStatus,
		SolutionStatus:     solutionStatus,
	}
}

// Known reports whether TasksAssigned can be trusted. A failed extraction or
// an empty marker set leaves the number of assigned tasks unknown.
func (s ProgressSummary) Known() bool {
	return s.TaskStatus == CountedStatus || s.TaskStatus == MissingStatus
}

// GetPlainLabel returns the progress label for a summary.
func GetPlainLabel(s ProgressSummary) string {
	switch {
	case !s.Known():
		return UnknownLabel
	case s.Todo < 0:
		return OverLabel
	case s.Todo == 0 && s.TasksAssigned > 0:
		return DoneLabel
	case s.Todo == 0:
		return EmptyLabel
	default:
		return OpenLabel
	}
}

// SortWeekResults orders results by semester, course and week.
func SortWeekResults(results []WeekResult) {
	slices.SortStableFunc(results, func(a, b WeekResult) int {
		return cmp.Or(
			cmp.Compare(a.Semester, b.Semester),
			cmp.Compare(a.Course, b.Course),
			cmp.Compare(a.Week, b.Week),
		)
	})
}

// TotalTodo sums todo over results whose task count is known.
func TotalTodo(results []WeekResult) int {
	total := 0
	for _, r := range results {
		if r.Summary.Known() {
			total += r.Summary.Todo
		}
	}
	return total
}
