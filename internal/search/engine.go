package search

import (
	"fmt"
	"time"

	"github.com/harrison/searchtool/internal/expression"
	"github.com/harrison/searchtool/internal/fileutil"
)

// Reporter receives search output as it is produced.
type Reporter interface {
	// ReportMatch is called for every match report, in file order
	ReportMatch(path string, report MatchReport)
	// FileComplete is called once per matched file after its last report
	FileComplete(result *ScanResult)
}

// Logger is the subset of the logger package the engine writes to.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
}

// Request describes one search.
type Request struct {
	// Expression is the raw line filter ("a|b", "a&b" or plain text)
	Expression string
	// Root is the directory to walk
	Root string
	// Pattern is the filename filter (empty = all text and log files)
	Pattern string
	// ContextLines is the requested context size; it is clamped to 0-5
	ContextLines int
	// Mode selects the context algorithm
	Mode ContextMode
	// ExcludeDirs lists directory names that are never entered
	ExcludeDirs []string
	// SkipHidden skips dot-directories
	SkipHidden bool
}

// Engine walks a directory tree, filters names and scans the accepted files in order.
type Engine struct {
	reporter Reporter
	logger   Logger
}

// NewEngine creates an Engine. Both reporter and logger may be nil.
func NewEngine(reporter Reporter, logger Logger) *Engine {
	return &Engine{
		reporter: reporter,
		logger:   logger,
	}
}

// Run executes the search. A missing root is reported as ErrRootNotFound together with an
// empty summary; per-file problems never fail the run.
func (e *Engine) Run(req Request) (*Summary, error) {
	start := time.Now()
	summary := &Summary{}

	scanner := NewScanner(expression.Parse(req.Expression), ScanOptions{
		ContextLines: req.ContextLines,
		Mode:         req.Mode,
	})

	e.logInfo(fmt.Sprintf("searching %s for %q (pattern %q, context %d, %s)",
		req.Root, req.Expression, req.Pattern, scanner.ContextLines(), req.Mode))

	walkOpts := fileutil.WalkOptions{
		Pattern:     req.Pattern,
		ExcludeDirs: req.ExcludeDirs,
		SkipHidden:  req.SkipHidden,
	}

	walkResult, err := fileutil.Walk(req.Root, walkOpts, func(path, name string) {
		var onMatch func(MatchReport)
		if e.reporter != nil {
			onMatch = func(report MatchReport) {
				e.reporter.ReportMatch(path, report)
			}
		}

		result := scanner.ScanFile(path, onMatch)
		if result.Err != nil {
			e.logDebug(fmt.Sprintf("skipped unreadable file: %v", result.Err))
			return
		}
		summary.FilesScanned++
		if !result.HasMatch() {
			return
		}

		summary.MatchedFiles++
		summary.TotalMatches += result.MatchCount
		e.logDebug(fmt.Sprintf("%s: %d matching lines", path, result.MatchCount))

		if e.reporter != nil {
			e.reporter.FileComplete(result)
		}
	})

	summary.Duration = time.Since(start)

	if err != nil {
		return summary, fmt.Errorf("%w: %v", ErrRootNotFound, err)
	}

	summary.Errors = walkResult.Errors
	summary.FilesFiltered = walkResult.Skipped
	for _, walkErr := range walkResult.Errors {
		e.logDebug(fmt.Sprintf("skipped: %v", walkErr))
	}

	e.logInfo(fmt.Sprintf("search finished: %d files scanned, %d filtered out, %d matched, %d matching lines in %s",
		summary.FilesScanned, summary.FilesFiltered, summary.MatchedFiles, summary.TotalMatches,
		summary.Duration.Round(time.Millisecond)))

	return summary, nil
}

func (e *Engine) logDebug(message string) {
	if e.logger != nil {
		e.logger.LogDebug(message)
	}
}

func (e *Engine) logInfo(message string) {
	if e.logger != nil {
		e.logger.LogInfo(message)
	}
}
