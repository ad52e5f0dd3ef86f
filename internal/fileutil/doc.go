// Package fileutil decides which files a search looks at and walks the tree to find them.
//
// It holds three pieces that operate purely on names, never on file content:
//
//   - Classification: IsTextFile, IsLogFile and EndsWithDateSuffix apply fixed
//     extension, keyword and date-suffix heuristics to a basename.
//   - Name filtering: MatchesPattern combines the classifier with a user filter that is
//     either a wildcard pattern (`*`, `?`) or a case-insensitive substring.
//   - Traversal: Walk visits every regular file below a root, depth-first in lexical
//     order, and hands the accepted ones to a callback.
//
// # Usage
//
//	result, err := fileutil.Walk("logs", fileutil.WalkOptions{Pattern: "*.log"},
//	    func(path, name string) {
//	        fmt.Println(path)
//	    })
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, err := range result.Errors {
//	    log.Printf("skipped: %v", err)
//	}
//
// # Error Tolerance
//
// Unreadable directories and entries that vanish mid-walk are recorded in
// WalkResult.Errors and the walk continues. Only a missing or non-directory root is
// returned as an error.
//
// # Classification Rules
//
// A name with a recognised source, markup, config or script extension is text. Any other
// name is text only when it looks like a log: a log extension (.log, .out, .err, ...),
// a log keyword anywhere in the lower-cased name ("log", "error", "report", ...), or a
// trailing date such as app-2025-05-05.
package fileutil
