// Package expression evaluates the boolean line filter used by a search.
//
// An expression is one of three shapes, decided by which delimiter it contains:
//
//	error|warning   any term must appear (OR)
//	user&login      every term must appear (AND)
//	timeout         the whole string must appear
//
// Only one delimiter is honoured per expression. When both appear, '|' wins and any '&'
// is ordinary text inside the OR terms. Matching is case-sensitive and there is no escape
// for a literal '|' or '&'.
package expression

import (
	"strings"
)

// Kind identifies the shape of an expression
type Kind string

const (
	KindPlain Kind = "plain"
	KindAny   Kind = "any"
	KindAll   Kind = "all"
)

const (
	orDelimiter  = "|"
	andDelimiter = "&"
)

// Expression decides whether a single line satisfies the search
type Expression interface {
	// Match reports whether line satisfies the expression
	Match(line string) bool

	// Kind returns the shape of the expression
	Kind() Kind

	// Terms returns the literal substrings the expression looks for
	Terms() []string

	// String returns the expression as the user wrote it
	String() string
}

// Parse classifies raw into a Plain, Any or All expression.
func Parse(raw string) Expression {
	if strings.Contains(raw, orDelimiter) {
		return &AnyExpression{raw: raw, terms: splitTerms(raw, orDelimiter)}
	}
	if strings.Contains(raw, andDelimiter) {
		return &AllExpression{raw: raw, terms: splitTerms(raw, andDelimiter)}
	}
	return &PlainExpression{raw: raw}
}

// Matches parses expr and evaluates it against line in one call.
func Matches(line, expr string) bool {
	return Parse(expr).Match(line)
}

// splitTerms splits on delim and drops empty terms.
func splitTerms(raw, delim string) []string {
	parts := strings.Split(raw, delim)
	terms := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			terms = append(terms, part)
		}
	}
	return terms
}

func copyTerms(terms []string) []string {
	out := make([]string, len(terms))
	copy(out, terms)
	return out
}

// PlainExpression matches lines containing the whole expression text.
// The empty expression matches every line.
type PlainExpression struct {
	raw string
}

func (e *PlainExpression) Match(line string) bool {
	return strings.Contains(line, e.raw)
}

func (e *PlainExpression) Kind() Kind { return KindPlain }
func (e *PlainExpression) Terms() []string { return []string{e.raw} }
func (e *PlainExpression) String() string { return e.raw }

// AnyExpression matches lines containing at least one term.
// With no terms (e.g. "|") nothing matches.
type AnyExpression struct {
	raw   string
	terms []string
}

func (e *AnyExpression) Match(line string) bool {
	for _, term := range e.terms {
		if strings.Contains(line, term) {
			return true
		}
	}
	return false
}

func (e *AnyExpression) Kind() Kind { return KindAny }
func (e *AnyExpression) Terms() []string { return copyTerms(e.terms) }
func (e *AnyExpression) String() string { return e.raw }

// AllExpression matches lines containing every term.
// With no terms (e.g. "&&") every line matches.
type AllExpression struct {
	raw   string
	terms []string
}

func (e *AllExpression) Match(line string) bool {
	for _, term := range e.terms {
		if !strings.Contains(line, term) {
			return false
		}
	}
	return true
}

func (e *AllExpression) Kind() Kind { return KindAll }
func (e *AllExpression) Terms() []string { return copyTerms(e.terms) }
func (e *AllExpression) String() string { return e.raw }
