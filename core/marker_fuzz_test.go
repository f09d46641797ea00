package core

import (
	"strings"
	"testing"
	"unicode"
)

// FuzzNormalizeMarkerText checks that normalization strips all whitespace and is idempotent.
func FuzzNormalizeMarkerText(f *testing.F) {
	seeds := []string{"Aufgabe 1 (", "EXERCISE   1", "", "\t\n\r ", "Übungsblatt 3."}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, s string) {
		n := normalizeMarkerText(s)
		if strings.IndexFunc(n, unicode.IsSpace) >= 0 {
			t.Fatalf("normalized text %q still contains whitespace", n)
		}
		if again := normalizeMarkerText(n); again != n {
			t.Fatalf("normalization is not idempotent: %q -> %q", n, again)
		}
	})
}
