package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseDatasetTyping(t *testing.T) {
	ds, header := parseDataset("trips.csv", [][]string{
		{"Code", "Region", "Volume"},
		{"287504", "East", "12.5"},
		{"X9", "West", ""},
	})

	if len(header) != 3 || header[0] != "Code" {
		t.Fatalf("header = %v", header)
	}
	if len(ds.Records) != 2 {
		t.Fatalf("got %d records", len(ds.Records))
	}

	if v, ok := ds.Records[0]["Code"].(float64); !ok || v != 287504 {
		t.Errorf("numeric-looking cell should become float64, got %T %v", ds.Records[0]["Code"], ds.Records[0]["Code"])
	}
	if v, ok := ds.Records[0]["Region"].(string); !ok || v != "East" {
		t.Errorf("text cell should stay a string, got %T", ds.Records[0]["Region"])
	}
	if _, ok := ds.Records[1]["Code"].(string); !ok {
		t.Errorf("non-numeric cell should stay a string")
	}
}

func TestParseDatasetSkipsEmptyRowsAndShortRows(t *testing.T) {
	ds, _ := parseDataset("a.csv", [][]string{
		{"Code", "Region", "Volume"},
		{"", "", ""},
		{"1", "East"},
	})

	if len(ds.Records) != 1 {
		t.Fatalf("got %d records, want the short row only", len(ds.Records))
	}
	if _, present := ds.Records[0]["Volume"]; present {
		t.Error("short row should leave the trailing field absent, not empty")
	}
}

func TestParseDatasetStripsBOM(t *testing.T) {
	ds, header := parseDataset("bom.csv", [][]string{
		{"\ufeffCode", "Region"},
		{"1", "East"},
	})
	if header[0] != "Code" {
		t.Fatalf("header[0] = %q, BOM not stripped", header[0])
	}
	if ds.Records[0].Str("Code") != "1" {
		t.Error("record should be keyed by the stripped field name")
	}
}

func TestLoadDatasetsScenario(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "Code,Region,Volume\n"+
		"1,East,10\n2,East,20\n3,West,30\n4,West,40\n5,East,50\n"+
		"6,East,60\n7,West,70\n8,East,80\n9,West,90\n10,East,100\n")
	// unclosed quote: the whole file fails to parse
	b := writeCSV(t, dir, "b.csv", "Code,Region\n\"broken,East\n1,West\n")
	c := writeCSV(t, dir, "c.csv", "Code,Region,Volume\n"+
		"11,North,5\n12,North,6\n13,South,7\n14,South,8\n15,North,9\n")

	store := loadDatasets([]string{a, b, c})

	wantCounts := map[string]int{"a.csv": 10, "b.csv": 0, "c.csv": 5}
	for source, want := range wantCounts {
		ds, ok := store.Dataset(source)
		if !ok {
			t.Fatalf("dataset %q missing", source)
		}
		if len(ds.Records) != want {
			t.Errorf("%s: %d records, want %d", source, len(ds.Records), want)
		}
	}
	if store.TotalRecords() != 15 {
		t.Errorf("TotalRecords = %d, want 15", store.TotalRecords())
	}

	// field order comes from the first dataset that produced records
	want := []string{"Code", "Region", "Volume"}
	if len(store.fieldOrder) != len(want) {
		t.Fatalf("fieldOrder = %v", store.fieldOrder)
	}
	for i, f := range want {
		if store.fieldOrder[i] != f {
			t.Fatalf("fieldOrder = %v, want %v", store.fieldOrder, want)
		}
	}

	// sources keep input order even when a load failed
	sources := store.Sources()
	if len(sources) != 3 || sources[0] != "a.csv" || sources[1] != "b.csv" || sources[2] != "c.csv" {
		t.Errorf("Sources = %v", sources)
	}
}

func TestLoadDatasetsMissingFileDegradesToEmpty(t *testing.T) {
	dir := t.TempDir()
	ok := writeCSV(t, dir, "ok.csv", "Code,Volume\n1,10\n")

	store := loadDatasets([]string{filepath.Join(dir, "nope.csv"), ok})

	if ds, _ := store.Dataset("nope.csv"); len(ds.Records) != 0 {
		t.Error("missing file should yield an empty dataset")
	}
	if ds, _ := store.Dataset("ok.csv"); len(ds.Records) != 1 {
		t.Error("a failed sibling must not affect other loads")
	}
	// the empty dataset contributes no header; field order falls through
	if len(store.fieldOrder) != 2 || store.fieldOrder[0] != "Code" {
		t.Errorf("fieldOrder = %v, want header of first loadable dataset", store.fieldOrder)
	}
}

func TestDatasetToggleRemovesItsRecords(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "Code,Volume\n1,10\n2,20\n3,30\n")
	b := writeCSV(t, dir, "b.csv", "Code,Volume\n4,40\n5,50\n")
	store := loadDatasets([]string{a, b})

	cfg := baseConfig(store)
	if out := applyFilters(store, cfg); len(out) != 5 {
		t.Fatalf("all visible: got %d records", len(out))
	}

	cfg.DatasetOn["a.csv"] = false
	out := applyFilters(store, cfg)
	if len(out) != 2 {
		t.Fatalf("with a.csv off: got %d records, want 2", len(out))
	}
	for _, rec := range out {
		if rec.Num("Code") < 4 {
			t.Errorf("record %v belongs to the hidden dataset", rec)
		}
	}
}

func TestRecordNumOK(t *testing.T) {
	rec := Record{"N": float64(3.5), "S": "42", "Bad": "many", "Blank": "  "}

	if v, ok := rec.NumOK("N"); !ok || v != 3.5 {
		t.Errorf("NumOK(N) = %v, %v", v, ok)
	}
	if v, ok := rec.NumOK("S"); !ok || v != 42 {
		t.Errorf("NumOK(S) = %v, %v", v, ok)
	}
	for _, field := range []string{"Bad", "Blank", "Absent"} {
		if _, ok := rec.NumOK(field); ok {
			t.Errorf("NumOK(%s) should be invalid", field)
		}
	}
}
