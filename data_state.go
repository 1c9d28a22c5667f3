package main

// dataState is the serializable application state driving the pipeline:
// datasets, toggles, filters, range. Everything derived (filtered,
// layers) is recomputed from it synchronously.
type dataState struct {
	store  *recordStore
	fields FieldConfig

	datasetOn map[string]bool
	kindOn    map[LayerKind]bool

	columnFilters map[string]ColumnFilter
	query         string
	rng           RangeState

	filtered []Record
}

func newDataState(store *recordStore, fields FieldConfig) dataState {
	datasetOn := make(map[string]bool, len(store.datasets))
	for _, ds := range store.datasets {
		datasetOn[ds.Source] = true
	}
	kindOn := make(map[LayerKind]bool, len(allKinds))
	for _, k := range allKinds {
		kindOn[k] = true
	}
	return dataState{
		store:         store,
		fields:        fields,
		datasetOn:     datasetOn,
		kindOn:        kindOn,
		columnFilters: make(map[string]ColumnFilter),
	}
}

// setColumnFilter replaces the field's spec wholesale; an empty spec
// removes the entry.
func (d *dataState) setColumnFilter(field string, spec ColumnFilter) {
	if spec.Empty() {
		delete(d.columnFilters, field)
		return
	}
	d.columnFilters[field] = spec
}

func (d *dataState) clearAllFilters() {
	d.columnFilters = make(map[string]ColumnFilter)
	d.query = ""
	if d.rng.HasBounds {
		d.rng.SelectedMin = d.rng.ObservedMin
		d.rng.SelectedMax = d.rng.ObservedMax
	}
	for src := range d.datasetOn {
		d.datasetOn[src] = true
	}
	for _, k := range allKinds {
		d.kindOn[k] = true
	}
}
