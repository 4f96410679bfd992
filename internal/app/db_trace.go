package app

import (
	"strings"
	"unicode/utf8"
)

// traceStatementLimit caps db.statement on spans, in bytes.
const traceStatementLimit = 512

// compactStatement puts a SQL statement on one line for span attributes.
// Long statements are cut on a rune boundary and marked with "...".
func compactStatement(query string) string {
	query = strings.TrimSuffix(strings.Join(strings.Fields(query), " "), ";")
	if len(query) <= traceStatementLimit {
		return query
	}

	cut := traceStatementLimit
	for cut > 0 && !utf8.RuneStart(query[cut]) {
		cut--
	}
	return query[:cut] + "..."
}
