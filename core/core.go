// Package core has core logic for locating, classifying and counting weekly exercises.
package core

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/huangsam/weektrack/internal/contract"
	"github.com/huangsam/weektrack/internal/outwriter"
	"github.com/huangsam/weektrack/internal/watch"
	"github.com/huangsam/weektrack/schema"
)

// ErrNothingToWatch is returned when a watch run finds no week folder.
var ErrNothingToWatch = errors.New("no week folders to watch")

// WeekFolderFromPath describes a week folder laid out as semester/course/week.
func WeekFolderFromPath(weekPath string) schema.WeekFolder {
	coursePath := filepath.Dir(weekPath)
	// a folder given directly need not be named by date; Date stays zero then
	date, _ := time.ParseInLocation(schema.AnchorLayout, filepath.Base(weekPath), time.Local)
	return schema.WeekFolder{
		Semester: filepath.Dir(coursePath),
		Course:   filepath.Base(coursePath),
		Date:     date,
		Path:     weekPath,
	}
}

// outputContext keeps stdout clean when machine-readable output goes there.
func outputContext(ctx context.Context, cfg *contract.Config) context.Context {
	if cfg.Output != schema.TextOut && cfg.OutputFile == "" {
		return WithSuppressHeader(ctx)
	}
	return ctx
}

// logScanHeader prints a concise header for each semester.
func logScanHeader(ctx context.Context, cfg *contract.Config, root, anchor string) {
	mode := "week " + anchor
	if cfg.AllWeeks {
		mode = "all weeks"
	}
	logEvent(ctx, cfg.UseEmojis, "🔎", "Semester: %s (%s)", filepath.Base(root), mode)
}

// GetWeekResults ensures the anchor week exists in every configured semester
// and scans the matching weeks. A failing semester does not stop the others;
// its error is joined into the returned error.
func GetWeekResults(ctx context.Context, cfg *contract.Config, extractor contract.Extractor, reporter contract.Reporter) ([]schema.WeekResult, error) {
	anchor, err := ResolveAnchor(cfg.WeekSpec, time.Now())
	if err != nil {
		return nil, err
	}
	anchorName := FormatAnchor(anchor)
	matcher := ExactWeek(anchorName)
	if cfg.AllWeeks {
		matcher = AllWeeks()
	}
	opts := NewScanOptions(cfg, extractor, reporter)

	var all []schema.WeekResult
	var errs []error
	for _, root := range cfg.SemesterRoots {
		logScanHeader(ctx, cfg, root, anchorName)
		created, err := EnsureWeekDirectories(root, anchorName)
		for _, dir := range created {
			logEvent(ctx, cfg.UseEmojis, "📁", "Created %s", dir)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		results, err := ScanSemester(ctx, root, matcher, opts)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		all = append(all, results...)
	}
	schema.SortWeekResults(all)
	return all, errors.Join(errs...)
}

// ExecuteScan scans every configured semester and writes the combined results.
// Results of healthy semesters are written even when another semester failed.
func ExecuteScan(ctx context.Context, cfg *contract.Config, extractor contract.Extractor, reporter contract.Reporter) error {
	start := time.Now()
	ctx = outputContext(ctx, cfg)
	results, scanErr := GetWeekResults(ctx, cfg, extractor, reporter)
	if err := outwriter.WriteWeekResults(results, cfg, time.Since(start)); err != nil {
		return errors.Join(scanErr, err)
	}
	return scanErr
}

// ExecuteInit only creates the anchor week folder in every course.
func ExecuteInit(ctx context.Context, cfg *contract.Config) error {
	anchor, err := ResolveAnchor(cfg.WeekSpec, time.Now())
	if err != nil {
		return err
	}
	anchorName := FormatAnchor(anchor)

	var errs []error
	for _, root := range cfg.SemesterRoots {
		created, err := EnsureWeekDirectories(root, anchorName)
		for _, dir := range created {
			logEvent(ctx, cfg.UseEmojis, "📁", "Created %s", dir)
		}
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(created) == 0 {
			logEvent(ctx, cfg.UseEmojis, "✅", "%s: week %s already present", filepath.Base(root), anchorName)
		}
	}
	return errors.Join(errs...)
}

// ExecuteAnchor prints the last and next Monday.
func ExecuteAnchor(_ context.Context, cfg *contract.Config) error {
	return outwriter.WriteAnchors(GetAnchors(time.Now()), cfg)
}

// ExecuteWatch scans once, then re-scans a week folder whenever its content
// changes, until ctx is cancelled.
func ExecuteWatch(ctx context.Context, cfg *contract.Config, extractor contract.Extractor, reporter contract.Reporter) error {
	start := time.Now()
	ctx = outputContext(ctx, cfg)
	results, err := GetWeekResults(ctx, cfg, extractor, reporter)
	if err != nil {
		return err
	}
	if err := outwriter.WriteWeekResults(results, cfg, time.Since(start)); err != nil {
		return err
	}

	folders := make(map[string]schema.WeekFolder, len(results))
	dirs := make([]string, 0, len(results))
	for _, r := range results {
		folders[r.Path] = WeekFolderFromPath(r.Path)
		dirs = append(dirs, r.Path)
	}
	if len(dirs) == 0 {
		return ErrNothingToWatch
	}

	w, err := watch.NewWatcher(dirs, cfg.ChartFile, cfg.Debounce)
	if err != nil {
		return fmt.Errorf("cannot watch week folders: %w", err)
	}
	defer w.Stop()
	logEvent(ctx, cfg.UseEmojis, "👀", "Watching %d week folders", len(dirs))

	opts := NewScanOptions(cfg, extractor, reporter)
	changeCtx := withScanTrigger(ctx, "change")
	for {
		select {
		case <-ctx.Done():
			return nil
		case dir := <-w.Events():
			start := time.Now()
			result := ScanFolder(changeCtx, folders[dir], opts)
			if err := outwriter.WriteWeekResults([]schema.WeekResult{result}, cfg, time.Since(start)); err != nil {
				contract.LogWarn("cannot write results", err)
			}
		}
	}
}
