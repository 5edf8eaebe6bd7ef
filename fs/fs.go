// Package fs resolves command-line arguments to message files and reads
// them.
package fs

import "errors"

var (
	// ErrInvalidPattern indicates a malformed glob pattern.
	ErrInvalidPattern = errors.New("invalid glob pattern")

	// ErrNoMatches indicates a pattern matched no files.
	ErrNoMatches = errors.New("no matches")
)

// Source is one message read from disk.
type Source struct {
	Path    string
	Content string
}
