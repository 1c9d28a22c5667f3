package main

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

const (
	columnFilterFocusColumn = iota
	columnFilterFocusCandidates
	columnFilterFocusDraft
)

const (
	columnFilterDrawerHeight = 9
	candidateDisplayCap      = 200
)

// columnFilterUI is the transient per-column editing session: the column
// being edited, its candidate values, and the free-text draft. Nothing
// here touches the pipeline until commit or reset.
type columnFilterUI struct {
	open      bool
	focus     int
	columnIdx int

	candidates   []string
	candidateSel map[string]bool
	candidateCur int

	draft    textinput.Model
	errorMsg string
}

func initColumnFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "substring, substring, ..."
	ti.CharLimit = 156
	ti.Width = 40
	ti.Prompt = ""
	return ti
}

// candidateValues collects the distinct values of one field across
// dataset-visible records, in first-seen order, capped for display.
func candidateValues(store *recordStore, on map[string]bool, field string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, ds := range store.datasets {
		if !datasetVisible(on, ds.Source) {
			continue
		}
		for _, rec := range ds.Records {
			v := rec.Str(field)
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			out = append(out, v)
			if len(out) >= candidateDisplayCap {
				return out
			}
		}
	}
	return out
}

// splitDraft turns the committed draft text into the ordered candidate
// substrings of a text-mode spec.
func splitDraft(draft string) []string {
	var out []string
	for _, part := range strings.Split(draft, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// sessionSpec applies the commit priority rule: selected candidates win
// over draft text; both empty means clear the column's filter.
func (cf *columnFilterUI) sessionSpec() ColumnFilter {
	var selected []string
	for _, v := range cf.candidates {
		if cf.candidateSel[v] {
			selected = append(selected, v)
		}
	}
	if len(selected) > 0 {
		return ColumnFilter{Mode: FilterCategorical, Values: selected}
	}
	if terms := splitDraft(cf.draft.Value()); len(terms) > 0 {
		return ColumnFilter{Mode: FilterText, Values: terms}
	}
	return ColumnFilter{}
}
