package search

import (
	"errors"
	"time"
)

const (
	// MaxLineLength is the largest chunk read as one line; longer lines are split.
	MaxLineLength = 20 * 1024

	// MaxContextLines caps the context window on either side of a match.
	MaxContextLines = 5
)

// ErrRootNotFound is returned by Engine.Run when the search root cannot be walked.
var ErrRootNotFound = errors.New("search root not found")

// ContextMode selects how context lines are gathered around matches.
type ContextMode int

const (
	// ContextClassic reads trailing context straight from the stream. Lines consumed as
	// trailing context are never evaluated, so a match inside them is not reported and the
	// line numbers after it lag behind by the number of lines consumed.
	ContextClassic ContextMode = iota

	// ContextSliding evaluates every line and keeps true line numbers. Context blocks of
	// nearby matches may overlap.
	ContextSliding
)

// String returns the mode name used in config files and flags.
func (m ContextMode) String() string {
	switch m {
	case ContextSliding:
		return "sliding"
	default:
		return "classic"
	}
}

// Line is a numbered line of text from a scanned file.
type Line struct {
	Number int
	Text   string
}

// MatchReport describes one matching line and the context shown around it.
type MatchReport struct {
	// Index is the 1-based position of this match among the file's reported matches
	Index int
	// Line is the matching line
	Line Line
	// Before holds leading context lines in ascending order
	Before []Line
	// After holds trailing context lines in ascending order
	After []Line
}

// ScanResult aggregates the matches found in a single file.
type ScanResult struct {
	Path string
	// MatchCount is the number of matching lines found by the count pass
	MatchCount int
	// Reports are the matches emitted by the report pass, in file order
	Reports []MatchReport
	// Err records why the file could not be read. It is informational only; an unreadable
	// file is treated as having no matches.
	Err error
}

// HasMatch returns true if the file contains at least one matching line.
func (r *ScanResult) HasMatch() bool {
	return r.MatchCount > 0
}

// Summary totals a whole search.
type Summary struct {
	// FilesScanned counts files that passed the name filter and could be opened
	FilesScanned int
	// FilesFiltered counts regular files rejected by the name filter
	FilesFiltered int
	// MatchedFiles counts files with at least one matching line
	MatchedFiles int
	// TotalMatches sums the matching lines over all matched files
	TotalMatches int
	// Duration is the wall time of the search
	Duration time.Duration
	// Errors holds non-fatal traversal errors
	Errors []error
}
