package main

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nhollis/flowdeck/logging"
)

func (m *model) openColumnFilterDrawer() {
	cf := &m.ui.columnFilter
	cf.open = true
	cf.errorMsg = ""
	if len(m.data.store.fieldOrder) == 0 {
		cf.errorMsg = "No columns available"
		m.ui.mode = modeColumnFilter
		return
	}
	if cf.columnIdx >= len(m.data.store.fieldOrder) {
		cf.columnIdx = 0
	}
	m.loadColumnSession()
	m.setColumnFilterFocus(columnFilterFocusColumn)
	m.ui.mode = modeColumnFilter
}

func (m *model) closeColumnFilterDrawer() {
	m.ui.columnFilter.open = false
	m.ui.columnFilter.errorMsg = ""
	m.ui.mode = modeView
}

// loadColumnSession starts the editing session for the currently picked
// column: an existing categorical spec populates the candidate selection,
// a text spec populates the draft, and the other representation is
// cleared.
func (m *model) loadColumnSession() {
	cf := &m.ui.columnFilter
	field := m.columnFilterField()

	cf.candidates = candidateValues(m.data.store, m.data.datasetOn, field)
	cf.candidateSel = make(map[string]bool)
	cf.candidateCur = 0
	cf.draft.SetValue("")

	spec, ok := m.data.columnFilters[field]
	if !ok {
		return
	}
	switch spec.Mode {
	case FilterCategorical:
		// committed values stay part of the session even when they are no
		// longer among the visible candidates, so an untouched commit
		// round-trips the spec unchanged
		present := make(map[string]bool, len(cf.candidates))
		for _, v := range cf.candidates {
			present[v] = true
		}
		for _, v := range spec.Values {
			if !present[v] {
				cf.candidates = append(cf.candidates, v)
			}
			cf.candidateSel[v] = true
		}
	case FilterText:
		cf.draft.SetValue(strings.Join(spec.Values, ", "))
	}
	logging.Debugf("column filter: session loaded for %q (%d candidates)", field, len(cf.candidates))
}

func (m *model) columnFilterField() string {
	order := m.data.store.fieldOrder
	cf := &m.ui.columnFilter
	if len(order) == 0 {
		return ""
	}
	if cf.columnIdx < 0 || cf.columnIdx >= len(order) {
		cf.columnIdx = 0
	}
	return order[cf.columnIdx]
}

func (m *model) setColumnFilterFocus(focus int) {
	cf := &m.ui.columnFilter
	cf.focus = focus
	if focus == columnFilterFocusDraft {
		cf.draft.Focus()
	} else {
		cf.draft.Blur()
	}
}

func (m *model) handleColumnFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cf := &m.ui.columnFilter

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeColumnFilterDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		return m, m.commitColumnFilter()
	case msg.String() == "r" && cf.focus != columnFilterFocusDraft:
		return m, m.resetColumnFilter()
	case msg.Type == tea.KeyTab:
		m.setColumnFilterFocus((cf.focus + 1) % 3)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setColumnFilterFocus((cf.focus + 2) % 3)
		return m, nil
	case cf.focus == columnFilterFocusColumn && (msg.Type == tea.KeyLeft || msg.String() == "h"):
		m.cycleFilterColumn(-1)
		return m, nil
	case cf.focus == columnFilterFocusColumn && (msg.Type == tea.KeyRight || msg.String() == "l"):
		m.cycleFilterColumn(1)
		return m, nil
	case cf.focus == columnFilterFocusCandidates && (msg.Type == tea.KeyUp || msg.String() == "k"):
		if cf.candidateCur > 0 {
			cf.candidateCur--
		}
		return m, nil
	case cf.focus == columnFilterFocusCandidates && (msg.Type == tea.KeyDown || msg.String() == "j"):
		if cf.candidateCur < len(cf.candidates)-1 {
			cf.candidateCur++
		}
		return m, nil
	case cf.focus == columnFilterFocusCandidates && msg.Type == tea.KeySpace:
		m.toggleCandidate()
		return m, nil
	}

	if cf.focus == columnFilterFocusDraft {
		var cmd tea.Cmd
		cf.draft, cmd = cf.draft.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) cycleFilterColumn(delta int) {
	cf := &m.ui.columnFilter
	order := m.data.store.fieldOrder
	if len(order) == 0 {
		return
	}
	cf.columnIdx = (cf.columnIdx + delta + len(order)) % len(order)
	m.loadColumnSession()
}

// toggleCandidate flips the highlighted value and clears the draft text,
// steering the session toward one mode at a time. The commit priority
// rule remains the actual tie-breaker.
func (m *model) toggleCandidate() {
	cf := &m.ui.columnFilter
	if cf.candidateCur < 0 || cf.candidateCur >= len(cf.candidates) {
		return
	}
	v := cf.candidates[cf.candidateCur]
	cf.candidateSel[v] = !cf.candidateSel[v]
	if !cf.candidateSel[v] {
		delete(cf.candidateSel, v)
	}
	cf.draft.SetValue("")
}

func (m *model) commitColumnFilter() tea.Cmd {
	cf := &m.ui.columnFilter
	field := m.columnFilterField()
	if field == "" {
		m.closeColumnFilterDrawer()
		return nil
	}
	spec := cf.sessionSpec()
	m.data.setColumnFilter(field, spec)
	m.refreshPipeline()
	m.closeColumnFilterDrawer()
	if spec.Empty() {
		return m.startNotice(fmt.Sprintf("Filter cleared on %s", field), "info", noticeDuration)
	}
	return m.startNotice(fmt.Sprintf("Filter set on %s", field), "success", noticeDuration)
}

// resetColumnFilter clears both local representations and the column's
// committed filter immediately, without waiting for commit.
func (m *model) resetColumnFilter() tea.Cmd {
	cf := &m.ui.columnFilter
	field := m.columnFilterField()
	cf.candidateSel = make(map[string]bool)
	cf.draft.SetValue("")
	if field == "" {
		return nil
	}
	m.data.setColumnFilter(field, ColumnFilter{})
	m.refreshPipeline()
	return m.startNotice(fmt.Sprintf("Filter cleared on %s", field), "info", noticeDuration)
}

func (m *model) columnFilterDrawerView(width int) string {
	cf := &m.ui.columnFilter
	field := m.columnFilterField()

	title := fmt.Sprintf("Column filter: %s  (←/→ column, tab focus, space toggle, enter apply, r reset, esc close)", field)
	if cf.errorMsg != "" {
		title = cf.errorMsg
	}

	var lines []string
	lines = append(lines, title)

	// candidate window around the cursor
	const window = 5
	start := cf.candidateCur - window/2
	if start < 0 {
		start = 0
	}
	end := start + window
	if end > len(cf.candidates) {
		end = len(cf.candidates)
	}
	for i := start; i < end; i++ {
		v := cf.candidates[i]
		mark := "[ ]"
		if cf.candidateSel[v] {
			mark = "[x]"
		}
		line := fmt.Sprintf("%s %s", mark, v)
		if i == cf.candidateCur && cf.focus == columnFilterFocusCandidates {
			line = rowSelectedStyle.Render(line)
		}
		lines = append(lines, line)
	}
	if len(cf.candidates) == 0 {
		lines = append(lines, "(no values)")
	}

	draftLabel := "text: "
	if cf.focus == columnFilterFocusDraft {
		draftLabel = "text> "
	}
	lines = append(lines, draftLabel+cf.draft.View())

	body := strings.Join(lines, "\n")
	return drawerArea.Width(width).Render(body)
}
