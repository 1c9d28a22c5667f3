package main

import "testing"

func TestColumnSessionKeepsCommittedValuesOutsideCandidates(t *testing.T) {
	m := newModel(testStore(), defaultFieldConfig(), nil)
	m.refreshPipeline()

	// "North" only occurs in extra.csv; hiding that dataset removes it
	// from the visible candidate list
	m.data.datasetOn["extra.csv"] = false
	m.data.setColumnFilter("Region", ColumnFilter{Mode: FilterCategorical, Values: []string{"North", "East"}})
	m.refreshPipeline()

	m.ui.columnFilter.columnIdx = 1 // Region
	m.loadColumnSession()

	cf := &m.ui.columnFilter
	if !cf.candidateSel["North"] || !cf.candidateSel["East"] {
		t.Fatalf("committed values should load selected, got %v", cf.candidateSel)
	}

	// committing the untouched session must round-trip the spec
	spec := cf.sessionSpec()
	if spec.Mode != FilterCategorical {
		t.Fatalf("spec mode = %v", spec.Mode)
	}
	got := make(map[string]bool, len(spec.Values))
	for _, v := range spec.Values {
		got[v] = true
	}
	if !got["North"] || !got["East"] || len(spec.Values) != 2 {
		t.Fatalf("untouched session dropped committed values, got %v", spec.Values)
	}
}

func TestColumnSessionTextSpecLoadsDraft(t *testing.T) {
	m := newModel(testStore(), defaultFieldConfig(), nil)
	m.refreshPipeline()
	m.data.setColumnFilter("Make", ColumnFilter{Mode: FilterText, Values: []string{"ford", "sedan"}})

	m.ui.columnFilter.columnIdx = 2 // Make
	m.loadColumnSession()

	if got := m.ui.columnFilter.draft.Value(); got != "ford, sedan" {
		t.Fatalf("text spec should load into the draft, got %q", got)
	}
	if len(m.ui.columnFilter.candidateSel) != 0 {
		t.Fatal("text spec must not mark candidates")
	}
}
