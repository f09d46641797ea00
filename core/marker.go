package core

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"unicode"
)

// normalizeMarkerText removes every whitespace rune and lower-cases the rest,
// so "Aufgabe 1 (" and "aufgabe1(" compare equal.
func normalizeMarkerText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// CountTaskMarkers sums the non-overlapping occurrences of every marker in text.
// Both text and markers are compared after whitespace removal and lower-casing.
// ok is false when no usable marker is configured: the count is then unknown, not zero.
func CountTaskMarkers(text string, markers []string) (count int, ok bool) {
	normalized := normalizeMarkerText(text)
	for _, m := range markers {
		m = normalizeMarkerText(m)
		if m == "" {
			continue
		}
		ok = true
		count += strings.Count(normalized, m)
	}
	return count, ok
}

// CountSolutionMarkers counts the lines of r that contain marker.
// The match is literal: no case folding and no whitespace normalization.
func CountSolutionMarkers(r io.Reader, marker string) (int, error) {
	if marker == "" {
		return 0, nil
	}
	br := bufio.NewReader(r)
	count := 0
	for {
		line, err := br.ReadString('\n')
		if strings.Contains(line, marker) {
			count++
		}
		if errors.Is(err, io.EOF) {
			return count, nil
		}
		if err != nil {
			return count, err
		}
	}
}
