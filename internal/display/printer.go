package display

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harrison/searchtool/internal/fileutil"
	"github.com/harrison/searchtool/internal/search"
)

var (
	separatorLine = strings.Repeat("=", 40)
	dashLine      = strings.Repeat("-", 40)
)

// Banner describes a search before it starts
type Banner struct {
	Expression   string
	Root         string
	Pattern      string
	ContextLines int
	Mode         search.ContextMode
}

// Printer writes search output. It implements search.Reporter.
type Printer struct {
	out io.Writer

	header  *color.Color
	match   *color.Color
	context *color.Color
	rule    *color.Color
	success *color.Color
	muted   *color.Color
}

// NewPrinter creates a Printer writing to out. Colour is resolved once from mode.
func NewPrinter(out io.Writer, mode ColorMode) *Printer {
	enabled := UseColor(mode, out)
	return &Printer{
		out:     out,
		header:  newColor(enabled, color.FgCyan, color.Bold),
		match:   newColor(enabled, color.FgRed, color.Bold),
		context: newColor(enabled, color.FgHiBlack),
		rule:    newColor(enabled, color.FgCyan),
		success: newColor(enabled, color.FgGreen),
		muted:   newColor(enabled, color.FgHiBlack),
	}
}

// Banner prints the search parameters.
func (p *Printer) Banner(b Banner) {
	fmt.Fprintln(p.out, "Starting search...")
	fmt.Fprintf(p.out, "Expression: %q\n", b.Expression)
	fmt.Fprintf(p.out, "Directory: %s\n", b.Root)
	if b.Pattern == "" {
		fmt.Fprintln(p.out, "File pattern: (all text and log files)")
	} else {
		fmt.Fprintf(p.out, "File pattern: %s\n", b.Pattern)
		if fileutil.HasWildcard(b.Pattern) {
			fmt.Fprintln(p.out, "Match mode: wildcard")
		} else {
			fmt.Fprintln(p.out, "Match mode: name contains (case-insensitive)")
		}
	}
	fmt.Fprintf(p.out, "Context lines: %d\n", b.ContextLines)
	if b.Mode == search.ContextSliding {
		fmt.Fprintln(p.out, "Context mode: sliding")
	}
	p.rule.Fprintln(p.out, separatorLine)
	fmt.Fprintln(p.out)
}

// ReportMatch prints one match block.
func (p *Printer) ReportMatch(path string, report search.MatchReport) {
	p.header.Fprintf(p.out, "File: %s match %d (line %d):\n", path, report.Index, report.Line.Number)
	fmt.Fprintln(p.out, dashLine)

	for _, line := range report.Before {
		p.context.Fprintf(p.out, "  line %4d: %s\n", line.Number, line.Text)
	}
	p.match.Fprintf(p.out, "> line %4d: %s\n", report.Line.Number, report.Line.Text)
	for _, line := range report.After {
		p.context.Fprintf(p.out, "  line %4d: %s\n", line.Number, line.Text)
	}

	fmt.Fprintln(p.out)
}

// FileComplete closes the block of a matched file.
func (p *Printer) FileComplete(result *search.ScanResult) {
	p.rule.Fprintln(p.out, separatorLine)
	fmt.Fprintln(p.out)
}

// Summary prints the closing totals. A nil summary prints zero totals.
func (p *Printer) Summary(s *search.Summary) {
	if s == nil {
		s = &search.Summary{}
	}

	p.rule.Fprintln(p.out, separatorLine)
	p.success.Fprintf(p.out, "Search complete: %d matching files\n", s.MatchedFiles)
	p.muted.Fprintf(p.out, "%d files scanned, %d matching lines, %s\n",
		s.FilesScanned, s.TotalMatches, s.Duration.Round(time.Millisecond))
	if len(s.Errors) > 0 {
		p.muted.Fprintf(p.out, "%d entries could not be read\n", len(s.Errors))
	}
}
