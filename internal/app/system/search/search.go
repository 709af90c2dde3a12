// internal/app/system/search/search.go
package search

import (
	"strings"
	"unicode/utf8"
)

// MaxQueryRunes caps how much of a visitor's query is sent upstream.
const MaxQueryRunes = 100

// NormalizeQuery prepares a search box value for the catalog search API.
//
// Leading and trailing space is trimmed, inner runs of whitespace collapse to
// a single space, and the result is cut to MaxQueryRunes runes. A query that
// is only whitespace normalizes to "".
//
//	q := search.NormalizeQuery(r.URL.Query().Get("q"))
//	if q == "" {
//	    // show the search prompt
//	}
func NormalizeQuery(q string) string {
	q = strings.Join(strings.Fields(q), " ")
	if utf8.RuneCountInString(q) <= MaxQueryRunes {
		return q
	}
	runes := []rune(q)
	return strings.TrimSpace(string(runes[:MaxQueryRunes]))
}
