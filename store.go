package main

import (
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nhollis/flowdeck/logging"
	"golang.org/x/sync/errgroup"
)

// Record is one row of a loaded dataset: field name to value.
// Values are string or float64; a missing field is simply absent.
type Record map[string]any

// Str returns the record's value for field as a string ("" when absent).
func (r Record) Str(field string) string {
	v, ok := r[field]
	if !ok {
		return ""
	}
	return valueString(v)
}

// Num coerces the record's value for field to a number.
// Missing or non-numeric values come back as 0.
func (r Record) Num(field string) float64 {
	n, _ := r.NumOK(field)
	return n
}

// NumOK is Num plus a validity flag: true only when the value is present
// and coerces to a finite number.
func (r Record) NumOK(field string) (float64, bool) {
	v, ok := r[field]
	if !ok {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return 0, false
		}
		return t, true
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func valueString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// Dataset is an ordered sequence of records plus its source identifier.
// Immutable once loaded.
type Dataset struct {
	Source  string
	Records []Record
}

// recordStore owns one dataset per input source plus the canonical field
// order taken from the first dataset that produced one.
type recordStore struct {
	datasets   []Dataset
	fieldOrder []string
}

func (s *recordStore) Dataset(source string) (Dataset, bool) {
	for _, ds := range s.datasets {
		if ds.Source == source {
			return ds, true
		}
	}
	return Dataset{}, false
}

func (s *recordStore) Sources() []string {
	out := make([]string, len(s.datasets))
	for i, ds := range s.datasets {
		out[i] = ds.Source
	}
	return out
}

func (s *recordStore) TotalRecords() int {
	n := 0
	for _, ds := range s.datasets {
		n += len(ds.Records)
	}
	return n
}

// inferValue applies best-effort typing: numeric-looking strings become
// numbers, everything else stays a string.
func inferValue(s string) any {
	t := strings.TrimSpace(s)
	if t == "" {
		return s
	}
	if n, err := strconv.ParseFloat(t, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return n
	}
	return s
}

// parseDataset reads one CSV: first row is the header, empty lines are
// skipped, short rows leave trailing fields absent.
func parseDataset(source string, data [][]string) (Dataset, []string) {
	if len(data) == 0 {
		return Dataset{Source: source}, nil
	}

	header := make([]string, 0, len(data[0]))
	for i, name := range data[0] {
		name = strings.TrimSpace(name)
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		header = append(header, name)
	}

	records := make([]Record, 0, len(data)-1)
	for _, row := range data[1:] {
		if rowIsEmpty(row) {
			continue
		}
		rec := make(Record, len(header))
		for i, name := range header {
			if name == "" || i >= len(row) {
				continue
			}
			rec[name] = inferValue(row[i])
		}
		records = append(records, rec)
	}

	return Dataset{Source: source, Records: records}, header
}

func rowIsEmpty(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func readCSVFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // datasets are allowed ragged rows
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("error reading CSV: %w", err)
	}
	return rows, nil
}

// loadDatasets fetches every source in parallel. A source that fails to
// open or parse is logged and degrades to an empty dataset; it never
// aborts the other loads.
func loadDatasets(paths []string) *recordStore {
	datasets := make([]Dataset, len(paths))
	headers := make([][]string, len(paths))

	var g errgroup.Group
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			source := filepath.Base(path)
			rows, err := readCSVFile(path)
			if err != nil {
				logging.Warnf("dataset %q failed to load: %v", source, err)
				datasets[i] = Dataset{Source: source}
				return nil
			}
			datasets[i], headers[i] = parseDataset(source, rows)
			logging.Infof("dataset %q loaded with %d records", source, len(datasets[i].Records))
			return nil
		})
	}
	// errors are swallowed per-source above
	_ = g.Wait()

	return newRecordStore(datasets, headers)
}

// newRecordStore fixes the field order from the first dataset that yielded
// a header and at least one record. Once set it is never recomputed, even
// when later datasets carry different fields.
func newRecordStore(datasets []Dataset, headers [][]string) *recordStore {
	store := &recordStore{datasets: datasets}
	for i := range datasets {
		if len(headers[i]) > 0 && len(datasets[i].Records) > 0 {
			store.fieldOrder = append([]string(nil), headers[i]...)
			break
		}
	}
	return store
}
