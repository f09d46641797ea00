package contract

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/weektrack/schema"
)

// Color variables for console output.
var (
	OverColor    = color.New(color.FgMagenta, color.Bold) // OverColor flags more solutions than tasks.
	OpenColor    = color.New(color.FgRed, color.Bold)     // OpenColor is work still to do.
	DoneColor    = color.New(color.FgGreen)               // DoneColor is a finished week.
	UnknownColor = color.New(color.FgYellow)              // UnknownColor marks counts that cannot be trusted.
	EmptyColor   = color.New(color.FgCyan)                // EmptyColor is a week with nothing assigned.
)

// GetColorLabel returns a colored progress label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies the appropriate color.
func GetColorLabel(s schema.ProgressSummary) string {
	text := schema.GetPlainLabel(s)

	switch text {
	case schema.OverLabel:
		return OverColor.Sprint(text)
	case schema.OpenLabel:
		return OpenColor.Sprint(text)
	case schema.DoneLabel:
		return DoneColor.Sprint(text)
	case schema.UnknownLabel:
		return UnknownColor.Sprint(text)
	default: // "Empty"
		return EmptyColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// IsHidden reports whether a directory entry name is hidden.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to leave room for the "..." prefix and at least one character.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
