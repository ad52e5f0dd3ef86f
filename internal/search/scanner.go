package search

import (
	"fmt"
	"io"
	"os"

	"github.com/emirpasic/gods/queues/circularbuffer"
	"github.com/harrison/searchtool/internal/expression"
)

// ClampContext limits a requested context size to [0, MaxContextLines].
func ClampContext(n int) int {
	if n < 0 {
		return 0
	}
	if n > MaxContextLines {
		return MaxContextLines
	}
	return n
}

// ScanOptions configures a Scanner
type ScanOptions struct {
	// ContextLines is the number of lines shown before and after each match (clamped to 0-5)
	ContextLines int
	// Mode selects the context algorithm (default ContextClassic)
	Mode ContextMode
}

// Scanner runs the two-pass scan of a file against one expression.
// A Scanner holds no per-file state, so it can be reused for every file of a search.
type Scanner struct {
	expr         expression.Expression
	contextLines int
	mode         ContextMode
}

// NewScanner creates a Scanner. The context size is clamped before use.
func NewScanner(expr expression.Expression, opts ScanOptions) *Scanner {
	return &Scanner{
		expr:         expr,
		contextLines: ClampContext(opts.ContextLines),
		mode:         opts.Mode,
	}
}

// ContextLines returns the clamped context size.
func (s *Scanner) ContextLines() int {
	return s.contextLines
}

// Scan scans a single file with a freshly parsed expression and the classic context mode.
func Scan(path, expr string, contextLines int) *ScanResult {
	return NewScanner(expression.Parse(expr), ScanOptions{ContextLines: contextLines}).ScanFile(path, nil)
}

// ScanFile counts the matching lines of path and, when there is at least one, reads the
// file again to build match reports. Each report is passed to onMatch (if non-nil) as soon
// as it is complete and is also kept on the result.
//
// A file that cannot be opened or rewound yields a result with no matches.
func (s *Scanner) ScanFile(path string, onMatch func(MatchReport)) *ScanResult {
	result := &ScanResult{Path: path}

	f, err := os.Open(path)
	if err != nil {
		result.Err = fmt.Errorf("failed to open %s: %w", path, err)
		return result
	}
	defer f.Close()

	result.MatchCount = s.countMatches(f)
	if result.MatchCount == 0 {
		return result
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		result.MatchCount = 0
		result.Err = fmt.Errorf("failed to rewind %s: %w", path, err)
		return result
	}

	emit := func(report MatchReport) {
		result.Reports = append(result.Reports, report)
		if onMatch != nil {
			onMatch(report)
		}
	}

	if s.mode == ContextSliding {
		s.reportSliding(newLineReader(f), emit)
	} else {
		s.reportClassic(newLineReader(f), emit)
	}

	return result
}

// countMatches is the first pass.
func (s *Scanner) countMatches(r io.Reader) int {
	lr := newLineReader(r)
	count := 0
	for {
		text, ok := lr.next()
		if !ok {
			return count
		}
		if s.expr.Match(text) {
			count++
		}
	}
}

// newLeadingBuffer returns the FIFO of recent lines, or nil when no context is wanted.
func (s *Scanner) newLeadingBuffer() *circularbuffer.Queue {
	if s.contextLines == 0 {
		return nil
	}
	return circularbuffer.New(s.contextLines)
}

// leadingContext returns the buffered lines numbered below current, oldest first.
func leadingContext(buf *circularbuffer.Queue, current int) []Line {
	if buf == nil {
		return nil
	}
	var lines []Line
	for _, v := range buf.Values() {
		line := v.(Line)
		if line.Number < current {
			lines = append(lines, line)
		}
	}
	return lines
}

// reportClassic is the second pass. Trailing context is pulled directly from the reader:
// those lines are not evaluated, not buffered as leading context and do not advance the
// line counter.
func (s *Scanner) reportClassic(lr *lineReader, emit func(MatchReport)) {
	leading := s.newLeadingBuffer()
	lineNumber := 0
	index := 0

	for {
		text, ok := lr.next()
		if !ok {
			return
		}
		lineNumber++

		if s.expr.Match(text) {
			index++
			report := MatchReport{
				Index:  index,
				Line:   Line{Number: lineNumber, Text: text},
				Before: leadingContext(leading, lineNumber),
			}
			for i := 1; i <= s.contextLines; i++ {
				next, ok := lr.next()
				if !ok {
					break
				}
				report.After = append(report.After, Line{Number: lineNumber + i, Text: next})
			}
			emit(report)
		}

		if leading != nil {
			leading.Enqueue(Line{Number: lineNumber, Text: text})
		}
	}
}

// reportSliding is the corrected second pass: every line is evaluated and numbered, and a
// report is emitted once its trailing context is complete or the file ends.
func (s *Scanner) reportSliding(lr *lineReader, emit func(MatchReport)) {
	leading := s.newLeadingBuffer()
	var pending []*MatchReport
	lineNumber := 0
	index := 0

	flush := func() {
		for len(pending) > 0 && len(pending[0].After) >= s.contextLines {
			emit(*pending[0])
			pending = pending[1:]
		}
	}

	for {
		text, ok := lr.next()
		if !ok {
			break
		}
		lineNumber++
		line := Line{Number: lineNumber, Text: text}

		for _, report := range pending {
			if len(report.After) < s.contextLines {
				report.After = append(report.After, line)
			}
		}
		flush()

		if s.expr.Match(text) {
			index++
			pending = append(pending, &MatchReport{
				Index:  index,
				Line:   line,
				Before: leadingContext(leading, lineNumber),
			})
			flush()
		}

		if leading != nil {
			leading.Enqueue(line)
		}
	}

	for _, report := range pending {
		emit(*report)
	}
}
