package main

import "testing"

func TestQueryColumnHint(t *testing.T) {
	withCode := Record{"Code": float64(287504), "Region": "East"}
	unrelated := Record{"Serial": "287504", "Region": "West"}

	if !recordMatchesQuery(withCode, "code:287504") {
		t.Error("hint should match a field whose name contains the hint")
	}
	if recordMatchesQuery(unrelated, "code:287504") {
		t.Error("hint must not match when only an unrelated field holds the term")
	}
}

func TestQueryMultiTermAndAcrossTerms(t *testing.T) {
	rec := Record{"Make": "Ford", "Body": "Sedan"}

	if !recordMatchesQuery(rec, "Ford Sedan") {
		t.Error("terms may match in different fields")
	}
	if recordMatchesQuery(rec, "Ford Coupe") {
		t.Error("every term must match somewhere")
	}
}

func TestQueryCaseInsensitive(t *testing.T) {
	rec := Record{"Make": "FORD"}
	if !recordMatchesQuery(rec, "ford") {
		t.Error("matching should ignore case")
	}
	if !recordMatchesQuery(rec, "MAKE:ford") {
		t.Error("hint matching should ignore case on both sides")
	}
}

func TestQueryEmptyMatchesEverything(t *testing.T) {
	if !recordMatchesQuery(Record{"A": "x"}, "") {
		t.Error("empty query is no constraint")
	}
	if !recordMatchesQuery(Record{"A": "x"}, "   ") {
		t.Error("whitespace-only query is no constraint")
	}
}

// More than one colon falls back to plain term matching.
func TestQueryMultipleColons(t *testing.T) {
	rec := Record{"Time": "12:30:45"}
	if !recordMatchesQuery(rec, "12:30:45") {
		t.Error("a multi-colon query should match as a plain substring term")
	}

	other := Record{"Note": "a:b c:d"}
	if !recordMatchesQuery(other, "a:b c:d") {
		t.Error("multi-colon query splits on whitespace into terms")
	}
}

func TestQueryMatchesNumericValues(t *testing.T) {
	rec := Record{"Volume": float64(500)}
	if !recordMatchesQuery(rec, "500") {
		t.Error("numeric values should match via their string form")
	}
}
