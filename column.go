package main

import "strings"

type ColumnRole int

const (
	RoleNormal ColumnRole = iota
	RoleMeasure
	RoleCoordinate
)

type ColumnMeta struct {
	Name     string
	Role     ColumnRole
	Visible  bool
	MinWidth int
	Weight   float64
	Width    int
}

func detectRole(name string, fields FieldConfig) ColumnRole {
	n := strings.TrimSpace(name)
	switch n {
	case fields.Measure:
		return RoleMeasure
	case fields.OriginLat, fields.OriginLon, fields.DestLat, fields.DestLon:
		return RoleCoordinate
	default:
		return RoleNormal
	}
}

func defaultMinWidthForRole(r ColumnRole) int {
	switch r {
	case RoleMeasure:
		return 10
	case RoleCoordinate:
		return 9
	default:
		return 8
	}
}

func defaultWeightForRole(r ColumnRole) float64 {
	switch r {
	case RoleMeasure:
		return 2.0
	case RoleCoordinate:
		return 0.5
	default:
		return 1.5
	}
}

// buildColumns derives the table columns from the canonical field order.
// Columns that never carry data across the store get hidden.
func buildColumns(store *recordStore, fields FieldConfig) []ColumnMeta {
	cols := make([]ColumnMeta, len(store.fieldOrder))
	for i, name := range store.fieldOrder {
		role := detectRole(name, fields)
		cols[i] = ColumnMeta{
			Name:     name,
			Role:     role,
			Visible:  true,
			MinWidth: defaultMinWidthForRole(role),
			Weight:   defaultWeightForRole(role),
		}
	}

	for i := range cols {
		hasData := false
		for _, ds := range store.datasets {
			for _, rec := range ds.Records {
				if strings.TrimSpace(rec.Str(cols[i].Name)) != "" {
					hasData = true
					break
				}
			}
			if hasData {
				break
			}
		}
		if !hasData && cols[i].Role != RoleMeasure {
			cols[i].Visible = false
			cols[i].Weight = 0
			cols[i].Width = 0
		}
	}
	return cols
}

// layoutColumns distributes totalWidth across the visible columns:
// min widths first, leftover space by weight.
func layoutColumns(cols []ColumnMeta, totalWidth int) []ColumnMeta {
	if totalWidth <= 0 {
		return cols
	}

	minSum := 0
	weightSum := 0.0
	for i := range cols {
		if !cols[i].Visible {
			continue
		}
		minSum += cols[i].MinWidth
		weightSum += cols[i].Weight
	}

	if minSum >= totalWidth {
		// Too tight: just give each visible column its MinWidth clamped
		for i := range cols {
			if !cols[i].Visible {
				continue
			}
			if cols[i].MinWidth > totalWidth {
				cols[i].Width = totalWidth
			} else {
				cols[i].Width = cols[i].MinWidth
			}
		}
		return cols
	}

	remaining := totalWidth - minSum
	for i := range cols {
		if !cols[i].Visible {
			cols[i].Width = 0
			continue
		}
		extra := 0
		if weightSum > 0 {
			extra = int(float64(remaining) * (cols[i].Weight / weightSum))
		}
		cols[i].Width = cols[i].MinWidth + extra
	}
	return cols
}
