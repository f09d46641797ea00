// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"context"
)

// Extractor turns a task document into its visible text.
// This allows the scanner to be tested without real PDF files.
type Extractor interface {
	// Extract returns the text of every page in document order, with no page-break markers.
	// Unsupported or corrupt documents return an error; callers decide how soft to be.
	Extract(ctx context.Context, path string) (string, error)
}

// Reporter renders the progress of one week.
type Reporter interface {
	// Report writes a two-bar chart (todo vs. done) to outputPath.
	// It fails when tasksAssigned is negative or outputPath is not writable.
	Report(outputPath string, tasksAssigned, solutionsCompleted int) error
}

// ClassifyRules holds the file name fragments that decide artifact roles.
type ClassifyRules struct {
	TaskIdentifiers     []string
	SolutionIdentifiers []string
}

// CountRules holds the markers counted inside artifacts.
type CountRules struct {
	TaskMarkers    []string
	SolutionMarker string
}
