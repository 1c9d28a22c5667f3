package main

import (
	"reflect"
	"testing"
)

func testStore() *recordStore {
	trips := Dataset{Source: "trips.csv", Records: []Record{
		{"Code": float64(287504), "Region": "East", "Make": "Ford Sedan", "Volume": float64(5), "DestLat": float64(51.5), "DestLon": float64(-0.1)},
		{"Code": float64(100), "Region": "West", "Make": "Ford Truck", "Volume": float64(50), "DestLat": float64(52.0), "DestLon": float64(0.5)},
		{"Code": float64(200), "Region": "Eastern", "Make": "Toyota Sedan", "Volume": float64(500), "DestLat": float64(50.0), "DestLon": float64(1.0)},
	}}
	extra := Dataset{Source: "extra.csv", Records: []Record{
		{"Code": float64(300), "Region": "North", "Make": "BMW Coupe", "Volume": float64(75), "DestLat": float64(48.0), "DestLon": float64(2.0)},
	}}
	return &recordStore{
		datasets:   []Dataset{trips, extra},
		fieldOrder: []string{"Code", "Region", "Make", "Volume", "DestLat", "DestLon"},
	}
}

func allVisible(store *recordStore) map[string]bool {
	on := make(map[string]bool)
	for _, ds := range store.datasets {
		on[ds.Source] = true
	}
	return on
}

func baseConfig(store *recordStore) FilterConfig {
	lo, hi, ok := observedExtent(store, nil, "Volume")
	return FilterConfig{
		Measure:   "Volume",
		DatasetOn: allVisible(store),
		Columns:   map[string]ColumnFilter{},
		Range:     reconcileRange(RangeState{}, lo, hi, ok),
	}
}

func TestApplyFiltersNoConstraintsPassesEverything(t *testing.T) {
	store := testStore()
	out := applyFilters(store, baseConfig(store))
	if len(out) != 4 {
		t.Fatalf("expected 4 records, got %d", len(out))
	}
}

func TestOutputIsSubsetOfVisibleInput(t *testing.T) {
	store := testStore()
	cfg := baseConfig(store)
	cfg.Query = "ford"
	out := applyFilters(store, cfg)

	for _, rec := range out {
		found := false
		for _, ds := range store.datasets {
			if !datasetVisible(cfg.DatasetOn, ds.Source) {
				continue
			}
			for _, in := range ds.Records {
				if recordsEqual(rec, in) {
					found = true
				}
			}
		}
		if !found {
			t.Errorf("output record %v not present in visible input", rec)
		}
	}
}

// Each predicate can fail a record on its own while all others pass.
func TestConjunctivePredicates(t *testing.T) {
	store := testStore()

	cases := []struct {
		name   string
		mutate func(*FilterConfig)
		want   int
	}{
		{
			name:   "dataset visibility",
			mutate: func(c *FilterConfig) { c.DatasetOn["extra.csv"] = false },
			want:   3,
		},
		{
			name: "numeric range",
			mutate: func(c *FilterConfig) {
				c.Range.SelectedMin = 10
				c.Range.SelectedMax = 100
			},
			want: 2, // 50 and 75
		},
		{
			name: "categorical column filter",
			mutate: func(c *FilterConfig) {
				c.Columns["Region"] = ColumnFilter{Mode: FilterCategorical, Values: []string{"East", "West"}}
			},
			want: 2, // "Eastern" must not slip through
		},
		{
			name: "text column filter",
			mutate: func(c *FilterConfig) {
				c.Columns["Make"] = ColumnFilter{Mode: FilterText, Values: []string{"sedan"}}
			},
			want: 2,
		},
		{
			name:   "free-text query",
			mutate: func(c *FilterConfig) { c.Query = "toyota" },
			want:   1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig(store)
			tc.mutate(&cfg)
			out := applyFilters(store, cfg)
			if len(out) != tc.want {
				t.Fatalf("expected %d records, got %d", tc.want, len(out))
			}
			for _, rec := range out {
				if !includeRecord(rec, cfg) {
					t.Errorf("record %v in output but fails a predicate", rec)
				}
			}
		})
	}
}

func TestFilteringIsIdempotent(t *testing.T) {
	store := testStore()
	cfg := baseConfig(store)
	cfg.Query = "ford"
	cfg.Columns["Region"] = ColumnFilter{Mode: FilterCategorical, Values: []string{"East", "West"}}

	first := applyFilters(store, cfg)
	second := applyFilters(store, cfg)
	if !reflect.DeepEqual(first, second) {
		t.Fatal("same configuration produced different output")
	}
}

func TestRangeFilterInclusiveBounds(t *testing.T) {
	store := &recordStore{datasets: []Dataset{{Source: "m.csv", Records: []Record{
		{"Volume": float64(5)},
		{"Volume": float64(50)},
		{"Volume": float64(500)},
	}}}}
	cfg := FilterConfig{
		Measure:   "Volume",
		DatasetOn: map[string]bool{"m.csv": true},
		Range:     RangeState{HasBounds: true, ObservedMin: 5, ObservedMax: 500, SelectedMin: 10, SelectedMax: 100},
	}
	out := applyFilters(store, cfg)
	if len(out) != 1 || out[0].Num("Volume") != 50 {
		t.Fatalf("expected only the 50 record, got %v", out)
	}

	// boundary values are inclusive
	cfg.Range.SelectedMin = 50
	cfg.Range.SelectedMax = 50
	out = applyFilters(store, cfg)
	if len(out) != 1 {
		t.Fatalf("inclusive bounds should retain the boundary record, got %v", out)
	}
}

func TestMissingMeasureCoercesToZero(t *testing.T) {
	store := &recordStore{datasets: []Dataset{{Source: "m.csv", Records: []Record{
		{"Region": "East"}, // no Volume at all
	}}}}
	cfg := FilterConfig{
		Measure:   "Volume",
		DatasetOn: map[string]bool{"m.csv": true},
		Range:     RangeState{HasBounds: true, ObservedMin: -1, ObservedMax: 1, SelectedMin: -1, SelectedMax: 1},
	}
	if out := applyFilters(store, cfg); len(out) != 1 {
		t.Fatalf("missing measure should coerce to 0 and pass a range spanning 0, got %v", out)
	}

	cfg.Range.SelectedMin = 1
	if out := applyFilters(store, cfg); len(out) != 0 {
		t.Fatalf("coerced 0 should fail a [1,1] range, got %v", out)
	}
}

func TestReconcileRange(t *testing.T) {
	// first observation adopts the full extent
	r := reconcileRange(RangeState{}, 5, 500, true)
	if !r.HasBounds || r.SelectedMin != 5 || r.SelectedMax != 500 {
		t.Fatalf("initial reconcile should adopt the extent, got %+v", r)
	}

	// a selection inside the new bounds is preserved exactly, even when
	// it previously spanned the full extent
	r = reconcileRange(r, 0, 1000, true)
	if r.SelectedMin != 5 || r.SelectedMax != 500 {
		t.Fatalf("selection inside the new bounds must not widen, got %+v", r)
	}

	// a narrower user choice survives a wider observation
	r.SelectedMin, r.SelectedMax = 10, 100
	r = reconcileRange(r, 0, 2000, true)
	if r.SelectedMin != 10 || r.SelectedMax != 100 {
		t.Fatalf("narrow selection must not be widened, got %+v", r)
	}

	// a selection outside the observed bounds snaps back inside
	r = reconcileRange(r, 20, 80, true)
	if r.SelectedMin != 20 || r.SelectedMax != 80 {
		t.Fatalf("out-of-bounds selection should self-correct, got %+v", r)
	}

	// a selection entirely outside the new bounds collapses onto them
	r.SelectedMin, r.SelectedMax = 10, 100
	r = reconcileRange(r, 200, 500, true)
	if r.SelectedMin != 200 || r.SelectedMax != 200 {
		t.Fatalf("fully out-of-bounds selection should snap to the near edge, got %+v", r)
	}

	// transient inversion self-corrects rather than erroring
	r.SelectedMin, r.SelectedMax = 70, 30
	r = reconcileRange(r, 20, 80, true)
	if r.SelectedMin > r.SelectedMax {
		t.Fatalf("inverted selection should be repaired, got %+v", r)
	}

	// losing all visible records drops the bounds
	r = reconcileRange(r, 0, 0, false)
	if r.HasBounds {
		t.Fatalf("no visible records should clear HasBounds, got %+v", r)
	}
}

func TestColumnFilterReplacementIsWholesale(t *testing.T) {
	d := newDataState(testStore(), defaultFieldConfig())
	d.setColumnFilter("Region", ColumnFilter{Mode: FilterCategorical, Values: []string{"East"}})
	d.setColumnFilter("Region", ColumnFilter{Mode: FilterText, Values: []string{"wes"}})

	spec := d.columnFilters["Region"]
	if spec.Mode != FilterText || len(spec.Values) != 1 || spec.Values[0] != "wes" {
		t.Fatalf("second spec should fully replace the first, got %+v", spec)
	}

	d.setColumnFilter("Region", ColumnFilter{})
	if _, ok := d.columnFilters["Region"]; ok {
		t.Fatal("empty spec should remove the entry")
	}
}
