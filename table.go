package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderRecordCells renders one record against the laid-out columns.
func renderRecordCells(rec Record, style lipgloss.Style, cols []ColumnMeta) string {
	var rendered []string
	for _, meta := range cols {
		if !meta.Visible || meta.Width <= 0 {
			continue
		}
		cell := style.Width(meta.Width).MaxHeight(1).Render(rec.Str(meta.Name))
		rendered = append(rendered, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderTable draws the filtered records around the cursor: cursor row
// first, then fill upward and downward until the pane is full. Same idea
// as a cursor-centred log view.
func (m *model) renderTable(height int) string {
	rows := m.data.filtered
	if len(rows) == 0 || height <= 0 {
		return ""
	}

	cursor := m.cursor
	if cursor < 0 {
		cursor = 0
	}
	if cursor >= len(rows) {
		cursor = len(rows) - 1
	}

	width := m.tableWidth()
	cols := layoutColumns(m.columns, width)

	line := func(i int) string {
		rec := rows[i]
		content := renderRecordCells(rec, cellStyle, cols)
		if i == cursor {
			return rowSelectedStyle.Render(content)
		}
		return content
	}

	rendered := []string{line(cursor)}
	heightFree := height - 1
	upIndex := cursor - 1
	downIndex := cursor + 1
	visible := 1

	for heightFree > 0 && (upIndex >= 0 || downIndex < len(rows)) {
		if upIndex >= 0 {
			rendered = append([]string{line(upIndex)}, rendered...)
			heightFree--
			upIndex--
			visible++
			continue
		}
		if downIndex < len(rows) {
			rendered = append(rendered, line(downIndex))
			heightFree--
			downIndex++
			visible++
		}
	}
	m.ui.visibleRowCount = visible

	return strings.Join(rendered, "\n")
}

func (m *model) tableHeaderView() string {
	width := m.tableWidth()
	cols := layoutColumns(m.columns, width)

	var cells []string
	for _, col := range cols {
		if !col.Visible || col.Width <= 0 {
			continue
		}
		cells = append(cells, cellStyle.Width(col.Width).Render(col.Name))
	}
	return headerStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
}

func (m *model) tableWidth() int {
	w := m.terminalWidth - 6
	if w < 20 {
		w = 20
	}
	return w
}
