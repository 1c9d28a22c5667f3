package main

import (
	"strings"

	"github.com/nhollis/flowdeck/logging"
)

type FilterMode int

const (
	FilterText FilterMode = iota
	FilterCategorical
)

// ColumnFilter is the active spec for one field. An empty Values list means
// no constraint; a field has at most one spec and setting a new one
// replaces the old wholesale.
type ColumnFilter struct {
	Mode   FilterMode
	Values []string
}

func (f ColumnFilter) Empty() bool { return len(f.Values) == 0 }

// RangeState tracks the observed extent of the measure across
// dataset-visible records and the user-chosen sub-range within it.
type RangeState struct {
	HasBounds   bool
	ObservedMin float64
	ObservedMax float64
	SelectedMin float64
	SelectedMax float64
}

// FilterConfig is everything the pipeline needs beyond the store itself.
type FilterConfig struct {
	Measure   string
	DatasetOn map[string]bool
	Columns   map[string]ColumnFilter
	Query     string
	Range     RangeState
}

func datasetVisible(on map[string]bool, source string) bool {
	v, ok := on[source]
	if !ok {
		return true // default visible
	}
	return v
}

// observedExtent computes the measure min/max over dataset-visible records,
// before range and column filters apply. ok is false when no visible
// records exist.
func observedExtent(store *recordStore, on map[string]bool, measure string) (lo, hi float64, ok bool) {
	for _, ds := range store.datasets {
		if !datasetVisible(on, ds.Source) {
			continue
		}
		for _, rec := range ds.Records {
			v := rec.Num(measure)
			if !ok {
				lo, hi, ok = v, v, true
				continue
			}
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
		}
	}
	return lo, hi, ok
}

// reconcileRange folds a freshly observed extent into the range state.
// The selection is only touched when it falls outside the new observed
// bounds, and then snaps back inside; a selection already inside the
// bounds is preserved exactly, however it got there. Transient inversions
// self-correct here rather than being rejected at input time.
func reconcileRange(r RangeState, lo, hi float64, ok bool) RangeState {
	if !ok {
		r.HasBounds = false
		return r
	}
	if !r.HasBounds {
		return RangeState{HasBounds: true, ObservedMin: lo, ObservedMax: hi, SelectedMin: lo, SelectedMax: hi}
	}

	r.ObservedMin, r.ObservedMax = lo, hi

	snap := func(v float64) float64 {
		if v < lo {
			return lo
		}
		if v > hi {
			return hi
		}
		return v
	}
	r.SelectedMin = snap(r.SelectedMin)
	r.SelectedMax = snap(r.SelectedMax)
	if r.SelectedMin > r.SelectedMax {
		r.SelectedMin, r.SelectedMax = r.SelectedMax, r.SelectedMin
	}
	return r
}

// applyFilters produces the single combined sequence of records passing
// every active predicate: dataset visibility, measure range, each column
// filter, and the free-text query. Full recompute each call.
func applyFilters(store *recordStore, cfg FilterConfig) []Record {
	var out []Record
	for _, ds := range store.datasets {
		if !datasetVisible(cfg.DatasetOn, ds.Source) {
			continue
		}
		for _, rec := range ds.Records {
			if includeRecord(rec, cfg) {
				out = append(out, rec)
			}
		}
	}
	return out
}

func includeRecord(rec Record, cfg FilterConfig) bool {
	if cfg.Range.HasBounds {
		v := rec.Num(cfg.Measure)
		if v < cfg.Range.SelectedMin || v > cfg.Range.SelectedMax {
			return false
		}
	}

	for field, spec := range cfg.Columns {
		if !matchColumnFilter(rec, field, spec) {
			return false
		}
	}

	return recordMatchesQuery(rec, cfg.Query)
}

func matchColumnFilter(rec Record, field string, spec ColumnFilter) bool {
	if spec.Empty() {
		return true
	}
	val := rec.Str(field)
	switch spec.Mode {
	case FilterCategorical:
		for _, want := range spec.Values {
			if val == want {
				return true
			}
		}
		return false
	default: // FilterText
		lower := strings.ToLower(val)
		for _, want := range spec.Values {
			if want == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(want)) {
				return true
			}
		}
		return false
	}
}

// refreshPipeline recomputes the full derived chain: observed extent,
// range reconciliation, filtered records, then layers. Cheap enough to run
// synchronously on every state change.
func (m *model) refreshPipeline() {
	d := &m.data

	lo, hi, ok := observedExtent(d.store, d.datasetOn, d.fields.Measure)
	d.rng = reconcileRange(d.rng, lo, hi, ok)

	d.filtered = applyFilters(d.store, FilterConfig{
		Measure:   d.fields.Measure,
		DatasetOn: d.datasetOn,
		Columns:   d.columnFilters,
		Query:     d.query,
		Range:     d.rng,
	})
	logging.Debugf("pipeline: %d/%d records pass", len(d.filtered), d.store.TotalRecords())

	if m.cursor >= len(d.filtered) {
		m.cursor = len(d.filtered) - 1
	}
	if m.cursor < 0 && len(d.filtered) > 0 {
		m.cursor = 0
	}

	m.rebuildLayers()
}
