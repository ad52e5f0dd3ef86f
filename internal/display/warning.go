package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the warning to out, in yellow when out is a terminal.
func (w Warning) Display(out io.Writer) {
	w.Render(out, UseColor(ColorAuto, out))
}

// Render writes the warning to out with colour forced on or off.
func (w Warning) Render(out io.Writer, useColor bool) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		b.WriteString("    ")
		if len(w.Files) == 1 {
			b.WriteString("Affected path:\n")
		} else {
			b.WriteString("Affected paths:\n")
		}

		for i, file := range w.Files {
			b.WriteString("      ")
			b.WriteString(fmt.Sprintf("%d. %s", i+1, file))
			b.WriteString("\n")
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	newColor(useColor, color.FgYellow).Fprint(out, b.String())
}

// WarnContextAdjusted creates the warning shown when the context argument was not usable
// as given.
func WarnContextAdjusted(raw string, used int) Warning {
	return Warning{
		Title:      "Context lines adjusted",
		Message:    fmt.Sprintf("requested %q, using %d", raw, used),
		Suggestion: "Pass a whole number between 0 and 5",
	}
}

// WarnMissingRoot creates the warning shown when the search directory cannot be walked.
func WarnMissingRoot(root string, err error) Warning {
	return Warning{
		Title:   "Cannot open directory",
		Message: err.Error(),
		Files:   []string{root},
	}
}
