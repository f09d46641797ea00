package core

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/huangsam/weektrack/schema"
)

// WeekMatcher decides which week folder names are scanned.
type WeekMatcher func(name string) bool

// ExactWeek matches the folder named exactly like the anchor.
func ExactWeek(anchor string) WeekMatcher {
	return func(name string) bool {
		return name == anchor
	}
}

// AllWeeks matches every folder whose name is a YYYY-MM-DD date.
func AllWeeks() WeekMatcher {
	return func(name string) bool {
		_, err := time.Parse(schema.AnchorLayout, name)
		return err == nil
	}
}

// ScanOptions carries the collaborators and rules of a scan.
type ScanOptions struct {
	Classify  contract.ClassifyRules
	Count     contract.CountRules
	Ambiguity schema.AmbiguityPolicy
	Extractor contract.Extractor
	Reporter  contract.Reporter // nil skips chart rendering
	ChartFile string
	Workers   int
	UseEmojis bool
}

// NewScanOptions builds scan options from a validated config.
func NewScanOptions(cfg *contract.Config, extractor contract.Extractor, reporter contract.Reporter) ScanOptions {
	return ScanOptions{
		Classify:  cfg.Classify,
		Count:     cfg.Count,
		Ambiguity: cfg.Ambiguity,
		Extractor: extractor,
		Reporter:  reporter,
		ChartFile: cfg.ChartFile,
		Workers:   cfg.Workers,
		UseEmojis: cfg.UseEmojis,
	}
}

// logEvent prints one progress line unless the context suppresses headers.
func logEvent(ctx context.Context, useEmojis bool, emoji, format string, args ...any) {
	if shouldSuppressHeader(ctx) {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if useEmojis {
		msg = emoji + " " + msg
	}
	fmt.Println(msg)
}

// isDir reports whether the entry is a directory, following symlinks.
func isDir(parent string, entry fs.DirEntry) bool {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(filepath.Join(parent, entry.Name()))
		return err == nil && info.IsDir()
	}
	return entry.IsDir()
}

// listDirs returns the names of the visible subdirectories of root, sorted.
func listDirs(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if contract.IsHidden(entry.Name()) || !isDir(root, entry) {
			continue
		}
		names = append(names, entry.Name())
	}
	return names, nil
}

// EnsureWeekDirectories creates <course>/<anchor> for every course directory
// directly under semesterRoot and returns the folders it created. Existing
// folders are left alone, so repeated calls are harmless.
func EnsureWeekDirectories(semesterRoot, anchor string) ([]string, error) {
	courses, err := listDirs(semesterRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read semester %s: %w", semesterRoot, err)
	}

	var created []string
	for _, course := range courses {
		weekDir := filepath.Join(semesterRoot, course, anchor)
		if _, err := os.Stat(weekDir); err == nil {
			continue
		} else if !errors.Is(err, fs.ErrNotExist) {
			return created, fmt.Errorf("cannot stat %s: %w", weekDir, err)
		}
		if err := os.MkdirAll(weekDir, 0o755); err != nil {
			return created, fmt.Errorf("cannot create %s: %w", weekDir, err)
		}
		created = append(created, weekDir)
	}
	return created, nil
}

// ScanWeek classifies the artifacts of a week folder and counts them.
// Extraction and read failures are absorbed into the summary statuses;
// classification errors are returned.
func ScanWeek(ctx context.Context, weekDir string, opts ScanOptions) (schema.WeekScan, error) {
	classification, err := Classify(weekDir, opts.Classify, opts.Ambiguity)
	if err != nil {
		return schema.WeekScan{Classification: classification}, err
	}

	tasks, taskStatus := countTasks(ctx, classification.TaskPath, opts)
	solutions, solutionStatus := countSolutions(classification.SolutionPath, opts)
	summary := schema.NewProgressSummary(tasks, taskStatus, solutions, solutionStatus)

	logEvent(ctx, opts.UseEmojis, "📊", "%s: %d tasks (%s), %d solutions (%s), %d todo",
		weekDir, tasks, taskStatus, solutions, solutionStatus, summary.Todo)
	return schema.WeekScan{Classification: classification, Summary: summary}, nil
}

// countTasks extracts the task document and counts its markers. Without a
// usable marker the count is unknown, so the document is not even read.
func countTasks(ctx context.Context, path string, opts ScanOptions) (int, schema.CountStatus) {
	if _, ok := CountTaskMarkers("", opts.Count.TaskMarkers); !ok {
		return 0, schema.UnconfiguredStatus
	}
	if path == "" {
		return 0, schema.MissingStatus
	}
	logEvent(ctx, opts.UseEmojis, "📄", "Found task file %s", path)

	text, err := opts.Extractor.Extract(ctx, path)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("cannot extract %s", path), err)
		return 0, schema.FailedStatus
	}
	count, _ := CountTaskMarkers(text, opts.Count.TaskMarkers)
	return count, schema.CountedStatus
}

// countSolutions counts the marker lines of the solution document.
func countSolutions(path string, opts ScanOptions) (int, schema.CountStatus) {
	if path == "" {
		return 0, schema.MissingStatus
	}
	f, err := os.Open(path)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("cannot open %s", path), err)
		return 0, schema.FailedStatus
	}
	defer func() { _ = f.Close() }()

	count, err := CountSolutionMarkers(f, opts.Count.SolutionMarker)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("cannot read %s", path), err)
		return 0, schema.FailedStatus
	}
	return count, schema.CountedStatus
}

// FindWeekFolders lists the week folders of a semester accepted by matcher.
// A missing or unreadable semester or course directory is an error.
func FindWeekFolders(semesterRoot string, matcher WeekMatcher) ([]schema.WeekFolder, error) {
	courses, err := listDirs(semesterRoot)
	if err != nil {
		return nil, fmt.Errorf("cannot read semester %s: %w", semesterRoot, err)
	}

	var folders []schema.WeekFolder
	for _, course := range courses {
		coursePath := filepath.Join(semesterRoot, course)
		weeks, err := listDirs(coursePath)
		if err != nil {
			return nil, fmt.Errorf("cannot read course %s: %w", coursePath, err)
		}
		for _, week := range weeks {
			if !matcher(week) {
				continue
			}
			// both matchers only accept YYYY-MM-DD names
			date, _ := time.ParseInLocation(schema.AnchorLayout, week, time.Local)
			folders = append(folders, schema.WeekFolder{
				Semester: semesterRoot,
				Course:   course,
				Date:     date,
				Path:     filepath.Join(coursePath, week),
			})
		}
	}
	return folders, nil
}

// ScanSemester scans every matching week of a semester with a worker pool and
// hands each summary to the reporter. Per-week failures are recorded on the
// result; only semester-level failures are returned.
func ScanSemester(ctx context.Context, semesterRoot string, matcher WeekMatcher, opts ScanOptions) ([]schema.WeekResult, error) {
	folders, err := FindWeekFolders(semesterRoot, matcher)
	if err != nil {
		return nil, err
	}
	results := scanFolders(ctx, folders, opts)
	schema.SortWeekResults(results)
	return results, nil
}

// scanFolders fans the folders out over the configured number of workers.
// Each folder is scanned by exactly one worker.
func scanFolders(ctx context.Context, folders []schema.WeekFolder, opts ScanOptions) []schema.WeekResult {
	results := make([]schema.WeekResult, len(folders))
	if len(folders) == 0 {
		return results
	}

	jobs := make(chan int, len(folders))
	for i := range folders {
		jobs <- i
	}
	close(jobs)

	var wg sync.WaitGroup
	for range min(max(opts.Workers, 1), len(folders)) {
		wg.Go(func() {
			for i := range jobs {
				results[i] = ScanFolder(ctx, folders[i], opts)
			}
		})
	}
	wg.Wait()
	return results
}

// ScanFolder scans one week folder and renders its chart.
func ScanFolder(ctx context.Context, folder schema.WeekFolder, opts ScanOptions) schema.WeekResult {
	result := schema.WeekResult{
		Semester: filepath.Base(folder.Semester),
		Course:   folder.Course,
		Week:     filepath.Base(folder.Path),
		Path:     folder.Path,
		Label:    schema.UnknownLabel,
	}
	if trigger, ok := getScanTrigger(ctx); ok {
		logEvent(ctx, opts.UseEmojis, "🔁", "Rescanning %s (%s)", folder.Path, trigger)
	}
	if err := ctx.Err(); err != nil {
		result.Error = err.Error()
		return result
	}

	scan, err := ScanWeek(ctx, folder.Path, opts)
	result.TaskFile = relativeTo(folder.Path, scan.Classification.TaskPath)
	result.SolutionFile = relativeTo(folder.Path, scan.Classification.SolutionPath)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("cannot scan %s", folder.Path), err)
		result.Error = err.Error()
		return result
	}
	result.Summary = scan.Summary
	result.Label = schema.GetPlainLabel(scan.Summary)

	if opts.Reporter == nil {
		return result
	}
	chartPath := filepath.Join(folder.Path, opts.ChartFile)
	if err := opts.Reporter.Report(chartPath, scan.Summary.TasksAssigned, scan.Summary.SolutionsCompleted); err != nil {
		contract.LogWarn(fmt.Sprintf("cannot report %s", chartPath), err)
		result.Error = err.Error()
		return result
	}
	result.ChartFile = opts.ChartFile
	logEvent(ctx, opts.UseEmojis, "🖼️ ", "Wrote %s", chartPath)
	return result
}

// relativeTo shortens path to be relative to base when possible.
func relativeTo(base, path string) string {
	if path == "" {
		return ""
	}
	if rel, err := filepath.Rel(base, path); err == nil {
		return rel
	}
	return path
}
