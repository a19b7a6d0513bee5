package matching

import (
	"regexp"
	"strings"
)

// tokenPattern matches one SKU candidate: alphanumeric runs joined by
// interior hyphens or slashes ("CSD12126B", "ST201M-C5", "1/2-20UNF").
var tokenPattern = regexp.MustCompile(`[A-Z0-9]+(?:[-/][A-Z0-9]+)*`)

// minTokenLength filters out short fragments ("THE", "FOR", wire gauges)
// that are never real part numbers.
const minTokenLength = 4

// ExtractSKUTokens splits a free-text listing title into candidate
// identifier tokens.
//
// Contract: the title is uppercased, then every maximal run matching
// [A-Z0-9]+(?:[-/][A-Z0-9]+)* of total length >= 4 is kept, in order of
// appearance. Hyphens and slashes join adjacent runs into one compound
// token rather than splitting them, so "ST201M-C5" is a single token.
// All downstream comparison is case-insensitive over this uppercased
// stream.
func ExtractSKUTokens(title string) []string {
	matches := tokenPattern.FindAllString(strings.ToUpper(title), -1)

	tokens := matches[:0]
	for _, m := range matches {
		if len(m) >= minTokenLength {
			tokens = append(tokens, m)
		}
	}
	return tokens
}
