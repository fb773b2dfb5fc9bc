// Package tokenizer normalizes code text into sub-tokens for term
// statistics. It is intentionally crude: the goal is a stable statistical
// signal, not linguistic correctness.
package tokenizer

import (
	"regexp"
	"strings"
)

const (
	stringSentinel = " strlit "
	numberSentinel = " numlit "
	minTokenLen    = 2
)

var (
	// Escape-aware single/double/backtick quoted literals.
	stringLit = regexp.MustCompile(
		`"(?:\\.|[^"\\])*"|'(?:\\.|[^'\\])*'|` + "`" + `(?:\\.|[^` + "`" + `\\])*` + "`",
	)
	numberLit   = regexp.MustCompile(`\b\d+(?:\.\d+)?\b`)
	camelEdge   = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	acronymEdge = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	nonAlnum    = regexp.MustCompile(`[^a-z0-9]+`)
)

// Tokenize returns the ordered normalized sub-tokens of text. String and
// numeric literals collapse to fixed sentinels, identifiers split at
// camelCase and acronym boundaries, everything is lowercased and split on
// non-alphanumeric runs, and tokens shorter than two characters are dropped.
// Pure and deterministic.
func Tokenize(text string) []string {
	s := stringLit.ReplaceAllString(text, stringSentinel)
	s = numberLit.ReplaceAllString(s, numberSentinel)
	s = camelEdge.ReplaceAllString(s, "$1 $2")
	s = acronymEdge.ReplaceAllString(s, "$1 $2")
	s = strings.ToLower(s)

	parts := nonAlnum.Split(s, -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) >= minTokenLen {
			tokens = append(tokens, p)
		}
	}
	return tokens
}
