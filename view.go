package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nhollis/flowdeck/logging"
)

const (
	sidePanelWidth  = 34
	tablePaneHeight = 8
	canvasMinHeight = 5
)

// Fixed offsets of the canvas content inside the terminal: app margin
// (1,2) plus the toggles line plus the canvas border. Mouse events are
// translated through these.
const (
	canvasOriginX = 3
	canvasOriginY = 3
)

func (m *model) canvasSize() (int, int) {
	w := m.terminalWidth - 4 - 2 - sidePanelWidth - 1
	if w < 20 {
		w = 20
	}
	h := m.terminalHeight - 2 - 1 - 2 - 1 - (tablePaneHeight + 2) - 2
	if m.ui.columnFilter.open {
		h -= columnFilterDrawerHeight
	}
	if m.ui.rangeDrawer.open {
		h -= rangeDrawerHeight
	}
	if h < canvasMinHeight {
		h = canvasMinHeight
	}
	return w, h
}

// togglesView is the top bar: dataset toggles then visual-kind toggles.
func (m *model) togglesView() string {
	var parts []string
	for i, src := range m.data.store.Sources() {
		label := fmt.Sprintf("[%d] %s", i+1, src)
		if datasetVisible(m.data.datasetOn, src) {
			parts = append(parts, toggleOnStyle.Render(label))
		} else {
			parts = append(parts, toggleOffStyle.Render(label))
		}
	}
	parts = append(parts, " ")
	kindLabels := map[LayerKind]string{
		KindFlow:   "[a] flows",
		KindMarker: "[p] markers",
		KindVolume: "[v] volumes",
	}
	for _, k := range allKinds {
		label := kindLabels[k]
		if m.data.kindOn[k] {
			parts = append(parts, toggleOnStyle.Render(label))
		} else {
			parts = append(parts, toggleOffStyle.Render(label))
		}
	}
	return strings.Join(parts, "  ")
}

// sidePanelView shows the tooltip for the active selection, or idle hints.
func (m *model) sidePanelView(height int) string {
	inner := sidePanelWidth - 4

	rec, ok := m.sel.Active()
	if !ok {
		hint := "hover a drawable for details\nclick or enter to pin\nesc clears the pin"
		return tooltipStyle.Width(sidePanelWidth - 2).Height(height).Render(hint)
	}

	var b strings.Builder
	if m.sel.Pinned() {
		b.WriteString(fmt.Sprintf("▣ pinned %s\n", m.sel.layer))
	} else {
		b.WriteString(fmt.Sprintf("▢ %s\n", m.sel.layer))
	}
	for _, row := range tooltipRows(rec, m.data.store.fieldOrder) {
		name := truncatePlain(row.Field, inner/2)
		val := truncatePlain(row.Value, inner-runeWidth(name)-1)
		b.WriteString(fmt.Sprintf("%s %s\n", name, val))
	}

	style := tooltipStyle
	if m.sel.Pinned() {
		style = tooltipPinnedStyle
	}
	return style.Width(sidePanelWidth - 2).Height(height).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *model) footerView(width int) string {
	logging.Debugf("footerView mode=%d cmd=%d", m.ui.mode, m.ui.command.cmd)
	styles := defaultFooterStyles()

	footerMode := CmdNone
	modeInput := ""
	if m.ui.mode == modeCommand {
		footerMode = m.ui.command.cmd
		modeInput = m.activeCommandLine()
	}

	legend := "(? help · f filter · n range · / search · a/p/v layers · 1-9 datasets)"
	if logging.IsDebugMode() {
		legend += " · debug"
	}

	st := footerState{
		Mode:         footerMode,
		ModeInput:    modeInput,
		Title:        m.title(),
		FilterCount:  len(m.data.columnFilters),
		QueryLabel:   m.data.query,
		Row:          m.cursor + 1,
		TotalRows:    len(m.data.filtered),
		TotalRecords: m.data.store.TotalRecords(),
		Legend:       legend,
	}
	if len(m.data.filtered) == 0 {
		st.Row = 0
	}
	if m.ui.noticeMsg != "" {
		st.StatusMessage = noticeText(m.ui.noticeMsg, m.ui.noticeType)
	}
	if st.StatusMessage == "" {
		st.StatusMessage = m.rangeStatusLabel()
	}

	return renderFooter(width, st, styles)
}

func (m *model) title() string {
	srcs := m.data.store.Sources()
	if len(srcs) == 0 {
		return ""
	}
	return strings.Join(srcs, ", ")
}

func (m *model) View() string {
	if !m.ready {
		return "loading..."
	}

	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		w, h := m.terminalWidth, m.terminalHeight
		return lipgloss.Place(
			w, h,
			lipgloss.Center, lipgloss.Center,
			m.activeDialog.View(),
			lipgloss.WithWhitespaceChars(" "),
			lipgloss.WithWhitespaceBackground(lipgloss.Color("236")),
		)
	}

	cw, ch := m.canvasSize()
	m.canvas.SetSize(cw, ch)

	mapPane := canvasStyle.Render(m.canvas.Render(&m.sel))
	side := m.sidePanelView(ch)
	top := lipgloss.JoinHorizontal(lipgloss.Top, mapPane, " ", side)

	tablePane := tableStyle.Render(
		lipgloss.NewStyle().Width(m.tableWidth()).Height(tablePaneHeight).Render(m.renderTable(tablePaneHeight)),
	)

	contentW := lipgloss.Width(top)
	parts := []string{m.togglesView(), top, m.tableHeaderView(), tablePane}
	if m.ui.columnFilter.open {
		parts = append(parts, m.columnFilterDrawerView(contentW))
	}
	if m.ui.rangeDrawer.open {
		parts = append(parts, m.rangeDrawerView(contentW))
	}
	parts = append(parts, m.footerView(contentW))
	return appstyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
