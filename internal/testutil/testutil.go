// Package testutil provides shared fixtures and helpers for tests.
//
// Typical usage:
//
//	func TestLoad(t *testing.T) {
//	    path := testutil.WriteFile(t, "lexicon.yaml", testutil.MinimalLexiconYAML)
//	    ...
//	}
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/vntok/internal/text"
)

// SampleText is the paragraph the doctor command tokenizes as a smoke check.
const SampleText = text.Sample

// MinimalLexiconYAML is a small valid lexicon file with one entry per section.
const MinimalLexiconYAML = `abbreviations:
  - "TP."
exceptions:
  - "Wi-fi"
entities:
  - kind: EMAIL
    pattern: '[\w.+-]+@\w+\.\w+'
`

// WriteFile writes content to name inside a fresh temp dir and returns the
// full path. It fails the test on error.
func WriteFile(tb testing.TB, name, content string) string {
	tb.Helper()

	path := filepath.Join(tb.TempDir(), name)

	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		tb.Fatalf("write %s: %v", path, err)
	}

	return path
}

// RequireFile skips the test if path does not exist.
func RequireFile(tb testing.TB, path string) {
	tb.Helper()

	_, err := os.Stat(path)
	if err != nil {
		tb.Skipf("fixture %q not available: %v", path, err)
	}
}
