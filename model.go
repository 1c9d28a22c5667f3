package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nhollis/flowdeck/clipboard"
	"github.com/nhollis/flowdeck/dialogs"
	"github.com/nhollis/flowdeck/logging"
)

type mode int

const (
	modeView mode = iota
	modeCommand
	modeColumnFilter
	modeRange
)

type model struct {
	data dataState
	ui   uiState
	sel  selectionState

	layers  []Layer
	canvas  mapCanvas
	columns []ColumnMeta

	cursor int // index into data.filtered for the table pane

	terminalWidth  int
	terminalHeight int
	ready          bool

	activeDialog dialogs.Dialog

	InitialPaths []string
}

func newModel(store *recordStore, fields FieldConfig, paths []string) *model {
	m := &model{
		data:         newDataState(store, fields),
		canvas:       newMapCanvas(),
		InitialPaths: paths,
	}
	m.columns = buildColumns(store, fields)
	m.ui.columnFilter.draft = initColumnFilterInput()
	m.ui.rangeDrawer.minInput = initRangeInput()
	m.ui.rangeDrawer.maxInput = initRangeInput()
	return m
}

func (m *model) Init() tea.Cmd {
	m.refreshPipeline()
	logging.Infof("flowdeck: initialised with %d datasets", len(m.data.store.datasets))
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// a visible dialog swallows input first
	if m.activeDialog != nil && m.activeDialog.IsVisible() {
		switch msg.(type) {
		case tea.KeyMsg:
			var cmd tea.Cmd
			m.activeDialog, cmd = m.activeDialog.Update(msg)
			return m, cmd
		}
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case tea.WindowSizeMsg:
		m.terminalWidth = msg.Width
		m.terminalHeight = msg.Height
		m.ready = true
		return m, nil
	case clearNoticeMsg:
		if msg.id == m.ui.noticeSeq {
			m.ui.noticeMsg = ""
			m.ui.noticeType = ""
		}
		return m, nil

	case dialogs.ExportConfirmedMsg:
		m.activeDialog = nil
		if err := ExportFiltered(m, msg.Path); err != nil {
			logging.Errorf("export failed: %v", err)
			return m, m.startNotice("Export failed", "error", noticeDuration)
		}
		return m, m.startNotice(fmt.Sprintf("Exported to %s", msg.Path), "success", noticeDuration)
	case dialogs.ExportCanceledMsg:
		m.activeDialog = nil
		return m, nil
	case dialogs.SaveConfirmedMsg:
		m.activeDialog = nil
		if err := SaveViewState(m, msg.Path); err != nil {
			logging.Errorf("snapshot save failed: %v", err)
			return m, m.startNotice("Save failed", "error", noticeDuration)
		}
		return m, m.startNotice(fmt.Sprintf("View saved to %s", msg.Path), "success", noticeDuration)
	case dialogs.SaveCanceledMsg:
		m.activeDialog = nil
		return m, nil
	}

	return m, nil
}

func (m *model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.ui.mode {
	case modeView:
		return m.handleViewModeKey(msg)
	case modeCommand:
		return m.handleCommandKey(msg)
	case modeColumnFilter:
		return m.handleColumnFilterKey(msg)
	case modeRange:
		return m.handleRangeKey(msg)
	}
	return m, nil
}

func (m *model) handleViewModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// command prefixes start command mode directly
	if len(msg.Runes) == 1 {
		if cmd := CommandFromPrefix(msg.Runes[0]); cmd != CmdNone {
			m.ui.mode = modeCommand
			m.ui.command = CommandInput{cmd: cmd}
			if cmd == CmdQuery {
				m.ui.command.buf = m.data.query
			}
			return m, nil
		}
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.OpenHelp):
		m.activeDialog = dialogs.NewHelpDialog(Keys.Legend())
		return m, nil

	case key.Matches(msg, Keys.ColumnFilter):
		m.openColumnFilterDrawer()
		return m, nil

	case key.Matches(msg, Keys.RangeDrawer):
		m.openRangeDrawer()
		return m, nil

	case key.Matches(msg, Keys.ResetAll):
		m.data.clearAllFilters()
		m.refreshPipeline()
		return m, m.startNotice("All filters reset", "info", noticeDuration)

	case key.Matches(msg, Keys.ToggleFlows):
		return m, m.toggleKind(KindFlow)
	case key.Matches(msg, Keys.ToggleMarkers):
		return m, m.toggleKind(KindMarker)
	case key.Matches(msg, Keys.ToggleVolumes):
		return m, m.toggleKind(KindVolume)

	case key.Matches(msg, Keys.ToggleDataset):
		return m, m.toggleDatasetByKey(msg.String())

	case key.Matches(msg, Keys.PinRow):
		m.pinCursorRecord()
		return m, nil

	case key.Matches(msg, Keys.Dismiss):
		m.sel.Dismiss()
		return m, nil

	case key.Matches(msg, Keys.RowDown):
		if m.cursor < len(m.data.filtered)-1 {
			m.cursor++
		}
		m.hoverCursorRecord()
		return m, nil
	case key.Matches(msg, Keys.RowUp):
		if m.cursor > 0 {
			m.cursor--
		}
		m.hoverCursorRecord()
		return m, nil

	case key.Matches(msg, Keys.PageDown):
		m.pageCursor(1)
		return m, nil
	case key.Matches(msg, Keys.PageUp):
		m.pageCursor(-1)
		return m, nil

	case key.Matches(msg, Keys.ZoomIn):
		m.canvas.ZoomIn()
		return m, nil
	case key.Matches(msg, Keys.ZoomOut):
		m.canvas.ZoomOut()
		return m, nil
	case key.Matches(msg, Keys.FitView):
		m.canvas.ResetView()
		return m, nil

	case key.Matches(msg, Keys.ExportToFile):
		m.activeDialog = dialogs.NewExportDialog(defaultExportName(m), "")
		return m, m.activeDialog.Focus()
	case key.Matches(msg, Keys.SaveView):
		m.activeDialog = dialogs.NewSaveDialog(defaultSnapshotName(m))
		return m, m.activeDialog.Focus()

	case key.Matches(msg, Keys.CopyRecord):
		return m, m.copySelectedRecord()
	}

	// pan keys share arrows with nothing else in view mode
	switch msg.String() {
	case "left", "H":
		m.canvas.Pan(-2, 0)
	case "right", "L":
		m.canvas.Pan(2, 0)
	case "K":
		m.canvas.Pan(0, -1)
	case "J":
		m.canvas.Pan(0, 1)
	}

	return m, nil
}

func (m *model) toggleKind(k LayerKind) tea.Cmd {
	m.data.kindOn[k] = !m.data.kindOn[k]
	m.refreshPipeline()
	state := "hidden"
	if m.data.kindOn[k] {
		state = "visible"
	}
	return m.startNotice(fmt.Sprintf("%s layer %s", k, state), "info", noticeDuration)
}

func (m *model) toggleDatasetByKey(s string) tea.Cmd {
	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	sources := m.data.store.Sources()
	if n < 1 || n > len(sources) {
		return nil
	}
	src := sources[n-1]
	m.data.datasetOn[src] = !m.data.datasetOn[src]
	m.refreshPipeline()
	state := "hidden"
	if m.data.datasetOn[src] {
		state = "visible"
	}
	return m.startNotice(fmt.Sprintf("%s %s", src, state), "info", noticeDuration)
}

// pageCursor moves the cursor by one table page, using the row count the
// last render actually fit into the pane.
func (m *model) pageCursor(dir int) {
	step := m.ui.visibleRowCount
	if step < 1 {
		step = 1
	}
	m.cursor += dir * step
	if m.cursor > len(m.data.filtered)-1 {
		m.cursor = len(m.data.filtered) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	m.hoverCursorRecord()
}

// hoverCursorRecord mirrors the table cursor onto the canvas as a hover
// selection, so navigating rows highlights the matching drawable. A pin
// wins, same as pointer hover.
func (m *model) hoverCursorRecord() {
	if m.cursor < 0 || m.cursor >= len(m.data.filtered) {
		return
	}
	m.sel.HoverEnter(m.data.filtered[m.cursor], 0, 0, KindMarker)
}

// pinCursorRecord is the keyboard path to pinning: it pins the table
// cursor's record as a marker selection (or clears an identical pin).
func (m *model) pinCursorRecord() {
	if m.cursor < 0 || m.cursor >= len(m.data.filtered) {
		return
	}
	m.sel.ClickDrawable(m.data.filtered[m.cursor], 0, 0, KindMarker)
}

func (m *model) copySelectedRecord() tea.Cmd {
	rec, ok := m.sel.Active()
	if !ok {
		if m.cursor < 0 || m.cursor >= len(m.data.filtered) {
			return m.startNotice("Nothing selected", "warn", noticeDuration)
		}
		rec = m.data.filtered[m.cursor]
	}
	var vals []string
	for _, row := range tooltipRows(rec, m.data.store.fieldOrder) {
		vals = append(vals, row.Value)
	}
	if err := clipboard.Copy(strings.Join(vals, "\t")); err != nil {
		logging.Warnf("clipboard copy failed: %v", err)
		return m.startNotice("Copy failed", "error", noticeDuration)
	}
	return m.startNotice("Record copied", "success", noticeDuration)
}

// updateMouse resolves pointer events against the canvas hit index and
// drives the layer callbacks: motion hovers, left press pins or clears.
func (m *model) updateMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	cx := msg.X - canvasOriginX
	cy := msg.Y - canvasOriginY
	cw, ch := m.canvasSize()
	inside := cx >= 0 && cx < cw && cy >= 0 && cy < ch

	switch msg.Action {
	case tea.MouseActionMotion:
		if !inside {
			m.sel.HoverLeave()
			return m, nil
		}
		if l, rec, ok := m.canvas.HitAt(cx, cy); ok {
			l.OnHover(rec, msg.X, msg.Y)
		} else {
			m.sel.HoverLeave()
		}
		return m, nil

	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !inside {
			return m, nil
		}
		if l, rec, ok := m.canvas.HitAt(cx, cy); ok {
			l.OnClick(rec, msg.X, msg.Y)
		} else {
			// click on empty map clears any pin
			m.sel.ClickBackground()
		}
		return m, nil
	}
	return m, nil
}
