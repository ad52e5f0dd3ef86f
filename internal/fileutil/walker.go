package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// WalkOptions configures which files Walk hands to its callback
type WalkOptions struct {
	// Pattern is the user filename filter (wildcard or substring, empty = all text files)
	Pattern string
	// ExcludeDirs is a list of directory names never entered (e.g., ".git", "node_modules")
	ExcludeDirs []string
	// SkipHidden skips directories whose name starts with "."
	SkipHidden bool
}

// WalkResult contains the results of a directory walk
type WalkResult struct {
	// Skipped counts regular files rejected by the filter
	Skipped int
	// Errors contains non-fatal errors encountered during the walk
	Errors []error
}

// VisitFunc receives the full path and the basename of each accepted file.
type VisitFunc func(path, name string)

// Walk visits every regular file below root, depth-first in lexical order, and calls visit
// for each one MatchesPattern accepts. A symlink is visited when it resolves to a regular
// file; symlinked directories below root are not followed. A root that is itself a symlink
// is walked through its target, with paths still reported under root.
func Walk(root string, opts WalkOptions, visit VisitFunc) (*WalkResult, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to access directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", root)
	}

	result := &WalkResult{
		Errors: make([]error, 0),
	}

	excludeMap := make(map[string]bool)
	for _, dir := range opts.ExcludeDirs {
		excludeMap[dir] = true
	}

	walkRoot, err := resolveRoot(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}

	err = filepath.WalkDir(walkRoot, func(path string, d fs.DirEntry, err error) error {
		isRoot := path == walkRoot
		path = displayPath(root, walkRoot, path)

		if err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("error accessing %s: %w", path, err))
			if d != nil && d.IsDir() && !isRoot {
				return filepath.SkipDir
			}
			return nil
		}

		if isRoot {
			return nil
		}

		if d.IsDir() {
			if excludeMap[d.Name()] || (opts.SkipHidden && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !isRegular(path, d) {
			return nil
		}

		if !MatchesPattern(d.Name(), opts.Pattern) {
			result.Skipped++
			return nil
		}

		visit(path, d.Name())
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("failed to walk directory: %w", err)
	}

	return result, nil
}

// resolveRoot returns the directory to hand to WalkDir. WalkDir does not follow a symlinked
// root, so a root that is a link is replaced by its target.
func resolveRoot(root string) (string, error) {
	info, err := os.Lstat(root)
	if err != nil {
		return "", err
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return root, nil
	}
	return filepath.EvalSymlinks(root)
}

// displayPath rewrites a path below walkRoot so that it sits under the root the caller gave.
func displayPath(root, walkRoot, path string) string {
	if root == walkRoot {
		return path
	}
	rel, err := filepath.Rel(walkRoot, path)
	if err != nil {
		return path
	}
	return filepath.Join(root, rel)
}

// isRegular reports whether the entry is a regular file, resolving symlinks.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
