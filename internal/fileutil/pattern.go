package fileutil

import (
	"strings"
)

// HasWildcard reports whether the pattern uses '*' or '?' and is therefore matched as a glob.
func HasWildcard(pattern string) bool {
	return strings.ContainsAny(pattern, "*?")
}

// MatchesPattern reports whether filename passes the user's filter.
//
// An empty pattern accepts every file IsTextFile accepts. A non-empty pattern first
// requires IsTextFile, then either glob-matches the basename (case-sensitive) when it
// contains wildcards, or looks for the pattern as a case-insensitive substring.
func MatchesPattern(filename, pattern string) bool {
	if pattern == "" {
		return IsTextFile(filename)
	}

	if !IsTextFile(filename) {
		return false
	}

	name := BaseName(filename)
	if HasWildcard(pattern) {
		return WildcardMatch(pattern, name)
	}

	return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
}

// WildcardMatch matches text against a glob where '?' is exactly one byte and '*' is any
// run of bytes. There are no character classes and no escapes.
//
// The rules are evaluated in order at each (pattern, text) position:
//   - both exhausted: match
//   - a '*' that is not the final pattern byte facing exhausted text: no match
//   - '?' or an identical byte: advance both
//   - '*': skip the star, or consume one text byte and stay on the star
//
// Because identical bytes are tried before the star rule, a literal '*' in the text facing
// a '*' in the pattern is consumed as a plain byte.
func WildcardMatch(pattern, text string) bool {
	m := wildcardMatcher{
		pattern: pattern,
		text:    text,
		memo:    make(map[[2]int]bool),
	}
	return m.match(0, 0)
}

type wildcardMatcher struct {
	pattern string
	text    string
	memo    map[[2]int]bool
}

func (m *wildcardMatcher) match(p, t int) bool {
	key := [2]int{p, t}
	if v, ok := m.memo[key]; ok {
		return v
	}
	v := m.step(p, t)
	m.memo[key] = v
	return v
}

func (m *wildcardMatcher) step(p, t int) bool {
	patternDone := p == len(m.pattern)
	textDone := t == len(m.text)

	if patternDone && textDone {
		return true
	}
	if patternDone {
		return false
	}

	pc := m.pattern[p]
	if pc == '*' && p+1 < len(m.pattern) && textDone {
		return false
	}

	if !textDone && (pc == '?' || pc == m.text[t]) {
		return m.match(p+1, t+1)
	}

	if pc == '*' {
		if m.match(p+1, t) {
			return true
		}
		return !textDone && m.match(p, t+1)
	}

	return false
}
