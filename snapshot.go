package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// --- Wire format ---

const snapshotVersion = 1

type columnFilterDTO struct {
	Mode   string   `json:"mode"` // "text" | "categorical"
	Values []string `json:"values"`
}

type rangeDTO struct {
	SelectedMin float64 `json:"selectedMin"`
	SelectedMax float64 `json:"selectedMax"`
}

// viewStateDTO captures everything needed to restore the current view
// over the same datasets: toggles, filters, query, range. Records
// themselves are not persisted; they always reload from source.
type viewStateDTO struct {
	Version   int                        `json:"version"`
	Sources   []string                   `json:"sources"`
	DatasetOn map[string]bool            `json:"datasetOn"`
	KindOn    map[string]bool            `json:"kindOn"`
	Filters   map[string]columnFilterDTO `json:"filters"`
	Query     string                     `json:"query"`
	Range     *rangeDTO                  `json:"range,omitempty"`
	SavedAt   time.Time                  `json:"savedAt"`
}

// --- Conversions ---

func filterModeLabel(m FilterMode) string {
	if m == FilterCategorical {
		return "categorical"
	}
	return "text"
}

func parseFilterMode(s string) FilterMode {
	if s == "categorical" {
		return FilterCategorical
	}
	return FilterText
}

func toViewStateDTO(m *model) viewStateDTO {
	filters := make(map[string]columnFilterDTO, len(m.data.columnFilters))
	for field, spec := range m.data.columnFilters {
		filters[field] = columnFilterDTO{
			Mode:   filterModeLabel(spec.Mode),
			Values: append([]string(nil), spec.Values...),
		}
	}
	kindOn := make(map[string]bool, len(m.data.kindOn))
	for k, on := range m.data.kindOn {
		kindOn[k.String()] = on
	}
	dto := viewStateDTO{
		Version:   snapshotVersion,
		Sources:   m.data.store.Sources(),
		DatasetOn: m.data.datasetOn,
		KindOn:    kindOn,
		Filters:   filters,
		Query:     m.data.query,
		SavedAt:   time.Now().UTC(),
	}
	if m.data.rng.HasBounds {
		dto.Range = &rangeDTO{
			SelectedMin: m.data.rng.SelectedMin,
			SelectedMax: m.data.rng.SelectedMax,
		}
	}
	return dto
}

func parseLayerKind(s string) (LayerKind, bool) {
	for _, k := range allKinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// --- Public API ---

// SaveViewState writes the current toggles/filters/query/range as a
// versioned JSON snapshot.
func SaveViewState(m *model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating snapshot file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toViewStateDTO(m)); err != nil {
		return fmt.Errorf("error encoding snapshot: %w", err)
	}
	return nil
}

// LoadViewState applies a snapshot's filters and toggles onto the model.
// Unknown datasets, kinds, and fields are ignored rather than erroring,
// so a snapshot from a slightly different file set degrades gracefully.
func LoadViewState(m *model, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading snapshot file: %w", err)
	}
	var dto viewStateDTO
	if err := json.Unmarshal(raw, &dto); err != nil {
		return fmt.Errorf("error decoding snapshot: %w", err)
	}
	if dto.Version != snapshotVersion {
		return fmt.Errorf("unsupported snapshot version %d", dto.Version)
	}

	for src, on := range dto.DatasetOn {
		if _, ok := m.data.datasetOn[src]; ok {
			m.data.datasetOn[src] = on
		}
	}
	for label, on := range dto.KindOn {
		if k, ok := parseLayerKind(label); ok {
			m.data.kindOn[k] = on
		}
	}
	m.data.columnFilters = make(map[string]ColumnFilter, len(dto.Filters))
	for field, spec := range dto.Filters {
		m.data.setColumnFilter(field, ColumnFilter{
			Mode:   parseFilterMode(spec.Mode),
			Values: append([]string(nil), spec.Values...),
		})
	}
	m.data.query = dto.Query

	// establish the observed extent before restoring the sub-range, then
	// let the pipeline clamp the restored values against it
	m.refreshPipeline()
	if dto.Range != nil && m.data.rng.HasBounds {
		m.data.rng.SelectedMin = dto.Range.SelectedMin
		m.data.rng.SelectedMax = dto.Range.SelectedMax
		m.refreshPipeline()
	}
	return nil
}

// ExportFiltered writes the *currently filtered* records to a CSV file,
// field order as columns, values stringified.
func ExportFiltered(m *model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating export file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	order := m.data.store.fieldOrder
	if err := w.Write(order); err != nil {
		return fmt.Errorf("error writing header: %w", err)
	}
	row := make([]string, len(order))
	for _, rec := range m.data.filtered {
		for i, field := range order {
			row[i] = rec.Str(field)
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("error writing record: %w", err)
		}
	}
	w.Flush()
	return w.Error()
}

func defaultExportName(m *model) string {
	base := "flowdeck"
	if len(m.InitialPaths) > 0 {
		base = strings.TrimSuffix(filepath.Base(m.InitialPaths[0]), filepath.Ext(m.InitialPaths[0]))
	}
	return base + "-filtered.csv"
}

func defaultSnapshotName(m *model) string {
	base := "flowdeck"
	if len(m.InitialPaths) > 0 {
		base = strings.TrimSuffix(filepath.Base(m.InitialPaths[0]), filepath.Ext(m.InitialPaths[0]))
	}
	return base + "-view.json"
}
