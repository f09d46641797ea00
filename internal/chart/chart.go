// Package chart renders the weekly progress image.
package chart

import (
	"errors"
	"fmt"
	"os"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNegativeTasks rejects summaries that cannot come from a real count.
var ErrNegativeTasks = errors.New("tasks assigned cannot be negative")

// Colors of the two bars.
var (
	todoColor = drawing.ColorRed.WithAlpha(128)
	doneColor = drawing.ColorGreen.WithAlpha(128)
)

// PNGReporter draws a two-bar chart (todo vs. done) into a PNG file.
type PNGReporter struct {
	Width  int
	Height int
}

var _ contract.Reporter = &PNGReporter{} // Compile-time check

// NewPNGReporter creates a reporter producing images of the given size.
func NewPNGReporter(width, height int) *PNGReporter {
	return &PNGReporter{Width: width, Height: height}
}

// Report implements the contract.Reporter interface.
// A negative todo (more solutions than tasks) is drawn as an empty bar.
func (r *PNGReporter) Report(outputPath string, tasksAssigned, solutionsCompleted int) error {
	if tasksAssigned < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeTasks, tasksAssigned)
	}
	graph := r.build(tasksAssigned, solutionsCompleted)

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("cannot create chart %s: %w", outputPath, err)
	}
	if err := graph.Render(chart.PNG, file); err != nil {
		_ = file.Close()
		return fmt.Errorf("cannot render chart %s: %w", outputPath, err)
	}
	return file.Close()
}

// build lays out the chart. The y range always covers both bars plus one.
func (r *PNGReporter) build(tasksAssigned, solutionsCompleted int) chart.BarChart {
	todo := max(tasksAssigned-solutionsCompleted, 0)
	done := max(solutionsCompleted, 0)
	top := max(tasksAssigned, done, todo) + 1

	return chart.BarChart{
		Title:  "Progress",
		Width:  r.Width,
		Height: r.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 60, Left: 20, Right: 20, Bottom: 20},
		},
		BarWidth:   r.Width / 5,
		BarSpacing: r.Width / 10,
		YAxis: chart.YAxis{
			Name:  "Number of exercises",
			Range: &chart.ContinuousRange{Min: 0, Max: float64(top)},
			ValueFormatter: func(v any) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Bars: []chart.Value{
			{Value: float64(todo), Label: "todo", Style: chart.Style{FillColor: todoColor, StrokeColor: todoColor}},
			{Value: float64(done), Label: "done", Style: chart.Style{FillColor: doneColor, StrokeColor: doneColor}},
		},
	}
}
