package cmd

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/harrison/searchtool/internal/display"
	"github.com/harrison/searchtool/internal/search"
)

// ErrMissingExpression is returned when no search expression is given.
var ErrMissingExpression = errors.New("missing search expression")

// SearchArgs is the resolved form of the positional arguments
type SearchArgs struct {
	Expression   string
	Root         string
	Pattern      string
	ContextLines int
	// Warnings describes arguments that were adjusted rather than rejected
	Warnings []display.Warning
}

// ResolveArgs interprets the positional arguments
//
//	<expression> [directory] [pattern] [context]
//
// The second argument is the root when it names an existing directory and the filename
// pattern otherwise; in that case a third argument naming a directory becomes the root.
// The context count is always read from the fourth position. When it is absent
// defaultContext is used. Unusable or out-of-range context values are replaced and
// reported as warnings.
func ResolveArgs(args []string, defaultContext int) (*SearchArgs, error) {
	if len(args) == 0 {
		return nil, ErrMissingExpression
	}

	resolved := &SearchArgs{
		Expression: args[0],
		Root:       ".",
	}

	if len(args) >= 2 {
		if isDirectory(args[1]) {
			resolved.Root = args[1]
			if len(args) >= 3 {
				resolved.Pattern = args[2]
			}
		} else {
			resolved.Pattern = args[1]
			if len(args) >= 3 && isDirectory(args[2]) {
				resolved.Root = args[2]
			}
		}
	}

	raw := strconv.Itoa(defaultContext)
	requested := defaultContext
	if len(args) >= 4 {
		raw = args[3]
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			resolved.Warnings = append(resolved.Warnings, display.WarnContextAdjusted(raw, 0))
			n = 0
		}
		requested = n
	}

	resolved.ContextLines = search.ClampContext(requested)
	if resolved.ContextLines != requested {
		resolved.Warnings = append(resolved.Warnings, display.WarnContextAdjusted(raw, resolved.ContextLines))
	}

	return resolved, nil
}

func isDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// describeArgs is used for the debug log line of a run.
func describeArgs(a *SearchArgs) string {
	return fmt.Sprintf("expression=%q root=%q pattern=%q context=%d", a.Expression, a.Root, a.Pattern, a.ContextLines)
}
