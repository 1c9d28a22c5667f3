package main

import "strings"

// Free-text query semantics:
//
//	""             no constraint
//	"hint:term"    exactly one colon: any field whose NAME contains hint
//	               (case-insensitive) must have a VALUE containing term
//	"a b c"        whitespace terms: every term must appear in at least one
//	               field value (AND across terms, OR across fields)
//
// Two or more colons fall through to the plain multi-term form.
func recordMatchesQuery(rec Record, query string) bool {
	q := strings.TrimSpace(query)
	if q == "" {
		return true
	}

	if strings.Count(q, ":") == 1 {
		parts := strings.SplitN(q, ":", 2)
		return matchColumnHint(rec, parts[0], parts[1])
	}

	for _, term := range strings.Fields(q) {
		if !anyFieldContains(rec, term) {
			return false
		}
	}
	return true
}

func matchColumnHint(rec Record, hint, term string) bool {
	hint = strings.ToLower(strings.TrimSpace(hint))
	term = strings.ToLower(strings.TrimSpace(term))
	for field, v := range rec {
		if !strings.Contains(strings.ToLower(field), hint) {
			continue
		}
		if strings.Contains(strings.ToLower(valueString(v)), term) {
			return true
		}
	}
	return false
}

func anyFieldContains(rec Record, term string) bool {
	term = strings.ToLower(term)
	for _, v := range rec {
		if strings.Contains(strings.ToLower(valueString(v)), term) {
			return true
		}
	}
	return false
}
