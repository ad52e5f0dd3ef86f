package fileutil

import (
	"strings"
)

// dateSuffixLen is the length of a YYYY-MM-DD style suffix.
const dateSuffixLen = 10

// textExtensions lists extensions (lower-case, with the dot) that are always scanned.
var textExtensions = map[string]bool{
	".txt": true, ".c": true, ".h": true, ".cpp": true, ".hpp": true, ".java": true,
	".py": true, ".js": true, ".html": true, ".css": true, ".xml": true, ".json": true,
	".md": true, ".csv": true, ".conf": true, ".config": true, ".ini": true, ".yml": true,
	".yaml": true, ".properties": true, ".sh": true, ".bat": true, ".ps1": true, ".sql": true,
	".php": true, ".rb": true, ".pl": true, ".lua": true, ".go": true, ".rs": true,
	".swift": true, ".kt": true, ".dart": true, ".ts": true, ".jsx": true, ".tsx": true,
	".vue": true, ".svelte": true, ".rst": true, ".tex": true, ".bib": true, ".asc": true,
	".text": true, ".cfg": true, ".toml": true,
}

// logExtensions lists extensions (lower-case, with the dot) that mark a log file.
var logExtensions = map[string]bool{
	".log": true, ".logs": true, ".out": true, ".err": true, ".debug": true,
	".trace": true, ".audit": true, ".event": true, ".history": true, ".journal": true,
}

// logKeywords are matched as substrings of the lower-cased basename.
var logKeywords = []string{
	"log", "logs", "debug", "error", "trace", "audit",
	"event", "history", "journal", "record", "report",
}

// BaseName strips any directory prefix, accepting both '/' and '\' separators.
func BaseName(path string) string {
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		return path[i+1:]
	}
	return path
}

// extension returns the part of name from its last '.', lower-cased, or "" when there is none.
func extension(name string) string {
	dot := strings.LastIndex(name, ".")
	if dot == -1 {
		return ""
	}
	return strings.ToLower(name[dot:])
}

// EndsWithDateSuffix reports whether the basename ends in DDDD?DD?DD where ? is one of
// '-', '.' or '_', the month is 01-12 and the day is 01-31. Month lengths are not checked.
func EndsWithDateSuffix(filename string) bool {
	name := BaseName(filename)
	if len(name) < dateSuffixLen {
		return false
	}

	end := name[len(name)-dateSuffixLen:]
	for i := 0; i < dateSuffixLen; i++ {
		ch := end[i]
		if i == 4 || i == 7 {
			if ch != '-' && ch != '.' && ch != '_' {
				return false
			}
			continue
		}
		if ch < '0' || ch > '9' {
			return false
		}
	}

	month := int(end[5]-'0')*10 + int(end[6]-'0')
	day := int(end[8]-'0')*10 + int(end[9]-'0')
	return month >= 1 && month <= 12 && day >= 1 && day <= 31
}

// IsLogFile reports whether the name looks like a log by extension, keyword or date suffix.
// Keywords match anywhere in the name, so "catalog.bin" counts.
func IsLogFile(filename string) bool {
	name := BaseName(filename)

	if logExtensions[extension(name)] {
		return true
	}

	lower := strings.ToLower(name)
	for _, keyword := range logKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}

	return EndsWithDateSuffix(name)
}

// IsTextFile reports whether a file should be scanned, judging only by its name.
// Names without an extension, or with an unrecognised one, fall back to IsLogFile.
func IsTextFile(filename string) bool {
	name := BaseName(filename)

	ext := extension(name)
	if ext != "" && textExtensions[ext] {
		return true
	}

	return IsLogFile(name)
}
