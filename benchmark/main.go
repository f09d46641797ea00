// Package main provides a performance benchmarking tool for the weektrack CLI.
// It generates synthetic semesters of different sizes and measures how long a
// full scan of every week takes, running each test multiple times, treating the
// first successful run as cold and averaging the rest as warm,
// generating CSV output for performance analysis and documentation.
//
// Prerequisites:
// - weektrack binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where the synthetic semesters are generated
package main

import (
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (single worker average, cold run and average of warm runs).
type BenchmarkResult struct {
	Semester   string
	Weeks      int
	SerialTime string
	ColdTime   string
	WarmTime   string
}

// SemesterSize describes one synthetic semester.
type SemesterSize struct {
	Name    string
	Courses int
	Weeks   int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir    string
	Timeout    time.Duration
	Workers    int
	SerialRuns int
	Runs       int
	Sizes      []SemesterSize
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:    os.Args[1],
		Timeout:    5 * time.Minute,
		Workers:    14,
		SerialRuns: 3,
		Runs:       4,
		Sizes: []SemesterSize{
			{Name: "small", Courses: 4, Weeks: 14},
			{Name: "medium", Courses: 12, Weeks: 28},
			{Name: "large", Courses: 40, Weeks: 56},
		},
	}

	if err := checkPrerequisites(); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results, err := runBenchmarks(config)
	if err != nil {
		fmt.Printf("Benchmark failed: %v\n", err)
		os.Exit(1)
	}

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the weektrack binary exists
func checkPrerequisites() error {
	if _, err := exec.LookPath("weektrack"); err != nil {
		return fmt.Errorf("weektrack binary not found in PATH")
	}
	return nil
}

// generateSemester writes a semester with one sheet and one solution per week.
// Weeks are consecutive Mondays starting at 2023-10-16.
func generateSemester(root string, size SemesterSize) error {
	first := time.Date(2023, time.October, 16, 0, 0, 0, 0, time.Local)
	sheet := "Aufgabe 1. Aufgabe 2. Aufgabe 3. Aufgabe 4."
	solution := strings.Repeat("\\begin{exercise}\n", 3)

	for c := range size.Courses {
		course := filepath.Join(root, "course"+strconv.Itoa(c))
		for w := range size.Weeks {
			week := filepath.Join(course, first.AddDate(0, 0, 7*w).Format("2006-01-02"))
			if err := os.MkdirAll(week, 0o755); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(week, "ub"+strconv.Itoa(w+1)+".txt"), []byte(sheet), 0o644); err != nil {
				return err
			}
			if err := os.WriteFile(filepath.Join(week, "solution.tex"), []byte(solution), 0o644); err != nil {
				return err
			}
		}
	}
	return nil
}

// runBenchmarks generates every semester and times scans over it
func runBenchmarks(config BenchmarkConfig) ([]BenchmarkResult, error) {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d semesters, %v timeout, %d workers, serial: %d runs, parallel: %d runs\n",
		len(config.Sizes), config.Timeout, config.Workers, config.SerialRuns, config.Runs)

	for _, size := range config.Sizes {
		root := filepath.Join(config.WorkDir, "weektrack-bench-"+size.Name)
		_ = os.RemoveAll(root)
		fmt.Printf("Generating %s (%d courses x %d weeks)\n", size.Name, size.Courses, size.Weeks)
		if err := generateSemester(root, size); err != nil {
			return nil, fmt.Errorf("generate %s: %w", size.Name, err)
		}
		results = append(results, runBenchmarkSuite(config, size, root))
	}

	return results, nil
}

// runBenchmarkSuite runs both single-worker and parallel benchmarks for a semester
func runBenchmarkSuite(config BenchmarkConfig, size SemesterSize, root string) BenchmarkResult {
	fmt.Printf("Running scan on %s\n", size.Name)

	// Helper to run a benchmark phase
	runPhase := func(workers, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, root, workers, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: single worker
	_, serialAvg := runPhase(1, config.SerialRuns, "Serial")

	// Phase 2: worker pool
	coldTime, warmAvg := runPhase(config.Workers, config.Runs, "Parallel")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Serial average: %s, Cold time: %s, Warm average: %s\n", serialAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Semester:   size.Name,
		Weeks:      size.Courses * size.Weeks,
		SerialTime: serialAvg,
		ColdTime:   coldTimeStr,
		WarmTime:   warmAvg,
	}
}

// runBenchmark executes weektrack scan multiple times and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, root string, workers, numRuns int) (coldTime float64, warmTimes []float64) {
	var times []float64
	for run := 1; run <= numRuns; run++ {
		start := time.Now()

		cmd := exec.Command("weektrack", "scan", root)
		cmd.Env = append(os.Environ(),
			"WEEKTRACK_ALL_WEEKS=true",
			"WEEKTRACK_WEEK=2023-10-16",
			"WEEKTRACK_WORKERS="+strconv.Itoa(workers),
		)

		done := make(chan bool)
		var output []byte
		var cmdErr error

		go func() {
			output, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil && isSuccess(output) {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// isSuccess checks if command output indicates successful completion
func isSuccess(output []byte) bool {
	outputStr := string(output)
	return strings.Contains(outputStr, "Scan completed in") &&
		strings.Contains(outputStr, "workers")
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/weektrack_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"semester", "weeks", "serial_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		if err := writer.Write([]string{result.Semester, strconv.Itoa(result.Weeks), result.SerialTime, result.ColdTime, result.WarmTime}); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	fmt.Printf("Scan (all weeks):\n")
	for _, result := range results {
		fmt.Printf("  %-8s (%5d weeks): Serial: %s, Cold: %s, Warm: %s\n",
			result.Semester, result.Weeks, result.SerialTime, result.ColdTime, result.WarmTime)
	}
	fmt.Printf("Benchmark script completed successfully\n")
}
