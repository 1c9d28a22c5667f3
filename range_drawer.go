package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	rangeFocusMin = iota
	rangeFocusMax
	rangeFocusScrubber
)

const (
	rangeDrawerContentHeight = 5
	rangeDrawerHeight        = rangeDrawerContentHeight + 2
	rangeStepDivisor         = 20.0
)

// rangeUI is the drawer for the measure range: dual inputs plus a
// scrubber that shifts or grows the selected window in steps.
type rangeUI struct {
	open      bool
	focus     int
	minInput  textinput.Model
	maxInput  textinput.Model
	errorMsg  string
	draftMin  float64
	draftMax  float64
	origRange RangeState
	step      float64
}

func initRangeInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "0"
	ti.CharLimit = 24
	ti.Width = 14
	ti.Prompt = ""
	return ti
}

func formatMeasure(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func (m *model) defaultRangeStep() float64 {
	r := m.data.rng
	if !r.HasBounds {
		return 1
	}
	step := (r.ObservedMax - r.ObservedMin) / rangeStepDivisor
	if step <= 0 {
		step = 1
	}
	return step
}

func (m *model) openRangeDrawer() {
	rd := &m.ui.rangeDrawer
	rd.open = true
	rd.errorMsg = ""
	rd.origRange = m.data.rng
	rd.step = m.defaultRangeStep()

	if !m.data.rng.HasBounds {
		rd.errorMsg = "No measure values available"
		rd.minInput.SetValue("")
		rd.maxInput.SetValue("")
		m.setRangeFocus(rangeFocusMin)
		m.ui.mode = modeRange
		return
	}

	rd.draftMin = m.data.rng.SelectedMin
	rd.draftMax = m.data.rng.SelectedMax
	m.updateRangeInputsFromDraft()
	m.setRangeFocus(rangeFocusMin)
	m.ui.mode = modeRange
}

func (m *model) closeRangeDrawer() {
	m.ui.rangeDrawer.open = false
	m.ui.rangeDrawer.errorMsg = ""
	m.ui.mode = modeView
}

func (m *model) setRangeFocus(focus int) {
	rd := &m.ui.rangeDrawer
	rd.focus = focus
	switch focus {
	case rangeFocusMin:
		rd.minInput.Focus()
		rd.maxInput.Blur()
	case rangeFocusMax:
		rd.minInput.Blur()
		rd.maxInput.Focus()
	default:
		rd.minInput.Blur()
		rd.maxInput.Blur()
	}
}

func (m *model) updateRangeInputsFromDraft() {
	rd := &m.ui.rangeDrawer
	rd.minInput.SetValue(formatMeasure(rd.draftMin))
	rd.maxInput.SetValue(formatMeasure(rd.draftMax))
}

func (m *model) syncRangeDraftFromInputs() {
	rd := &m.ui.rangeDrawer
	if v, err := strconv.ParseFloat(strings.TrimSpace(rd.minInput.Value()), 64); err == nil {
		rd.draftMin = v
	}
	if v, err := strconv.ParseFloat(strings.TrimSpace(rd.maxInput.Value()), 64); err == nil {
		rd.draftMax = v
	}
}

func (m *model) handleRangeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rd := &m.ui.rangeDrawer

	switch {
	case msg.Type == tea.KeyEsc:
		m.closeRangeDrawer()
		return m, nil
	case msg.Type == tea.KeyEnter:
		m.applyRangeFromInputs()
		return m, nil
	case msg.String() == "r":
		m.resetRangeDraft()
		return m, nil
	case msg.Type == tea.KeyTab:
		m.setRangeFocus((rd.focus + 1) % 3)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.setRangeFocus((rd.focus + 2) % 3)
		return m, nil
	case rd.focus == rangeFocusScrubber && msg.Type == tea.KeyLeft:
		m.shiftRange(-m.rangeStep())
		return m, nil
	case rd.focus == rangeFocusScrubber && msg.Type == tea.KeyRight:
		m.shiftRange(m.rangeStep())
		return m, nil
	case rd.focus == rangeFocusScrubber && msg.Type == tea.KeyShiftLeft:
		m.expandRange(-m.rangeStep())
		return m, nil
	case rd.focus == rangeFocusScrubber && msg.Type == tea.KeyShiftRight:
		m.expandRange(m.rangeStep())
		return m, nil
	case rd.focus == rangeFocusScrubber && msg.String() == "-":
		m.adjustRangeStep(false)
		return m, nil
	case rd.focus == rangeFocusScrubber && (msg.String() == "+" || msg.String() == "="):
		m.adjustRangeStep(true)
		return m, nil
	}

	var cmd tea.Cmd
	if rd.focus == rangeFocusMin {
		rd.minInput, cmd = rd.minInput.Update(msg)
		return m, cmd
	}
	if rd.focus == rangeFocusMax {
		rd.maxInput, cmd = rd.maxInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) resetRangeDraft() {
	rd := &m.ui.rangeDrawer
	rd.errorMsg = ""
	if !m.data.rng.HasBounds {
		rd.errorMsg = "No measure values available"
		return
	}
	rd.draftMin = m.data.rng.ObservedMin
	rd.draftMax = m.data.rng.ObservedMax
	m.updateRangeInputsFromDraft()

	m.data.rng.SelectedMin = m.data.rng.ObservedMin
	m.data.rng.SelectedMax = m.data.rng.ObservedMax
	m.refreshPipeline()
}

// applyRangeFromInputs commits the drafted sub-range. Inputs outside the
// observed bounds clamp instead of erroring; an inverted pair swaps. The
// pipeline's reconcile step keeps self-correcting afterwards.
func (m *model) applyRangeFromInputs() {
	rd := &m.ui.rangeDrawer
	rd.errorMsg = ""

	if !m.data.rng.HasBounds {
		rd.errorMsg = "No measure values available"
		return
	}

	lo, err := strconv.ParseFloat(strings.TrimSpace(rd.minInput.Value()), 64)
	if err != nil {
		rd.errorMsg = "Invalid minimum"
		return
	}
	hi, err := strconv.ParseFloat(strings.TrimSpace(rd.maxInput.Value()), 64)
	if err != nil {
		rd.errorMsg = "Invalid maximum"
		return
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	r := &m.data.rng
	if lo < r.ObservedMin {
		lo = r.ObservedMin
	}
	if hi > r.ObservedMax {
		hi = r.ObservedMax
	}
	r.SelectedMin = lo
	r.SelectedMax = hi
	rd.draftMin, rd.draftMax = lo, hi

	m.refreshPipeline()
	m.closeRangeDrawer()
}

func (m *model) rangeStep() float64 {
	step := m.ui.rangeDrawer.step
	if step <= 0 {
		return m.defaultRangeStep()
	}
	return step
}

func (m *model) adjustRangeStep(increase bool) {
	step := m.rangeStep()
	if increase {
		step *= 2
	} else {
		step /= 2
	}
	minStep := m.defaultRangeStep() / 8
	maxStep := m.defaultRangeStep() * 8
	if step < minStep {
		step = minStep
	}
	if step > maxStep {
		step = maxStep
	}
	m.ui.rangeDrawer.step = step
}

func (m *model) shiftRange(delta float64) {
	rd := &m.ui.rangeDrawer
	rd.errorMsg = ""
	if !m.data.rng.HasBounds {
		rd.errorMsg = "No measure values available"
		return
	}

	m.syncRangeDraftFromInputs()
	lo, hi := m.data.rng.ObservedMin, m.data.rng.ObservedMax
	window := rd.draftMax - rd.draftMin
	if window < 0 {
		window = 0
	}
	if window > hi-lo {
		rd.draftMin, rd.draftMax = lo, hi
		m.updateRangeInputsFromDraft()
		return
	}

	nextMin := rd.draftMin + delta
	nextMax := rd.draftMax + delta
	if nextMin < lo {
		nextMin = lo
		nextMax = lo + window
	}
	if nextMax > hi {
		nextMax = hi
		nextMin = hi - window
	}
	rd.draftMin, rd.draftMax = nextMin, nextMax
	m.updateRangeInputsFromDraft()
}

func (m *model) expandRange(delta float64) {
	rd := &m.ui.rangeDrawer
	rd.errorMsg = ""
	if !m.data.rng.HasBounds {
		rd.errorMsg = "No measure values available"
		return
	}

	m.syncRangeDraftFromInputs()
	lo, hi := m.data.rng.ObservedMin, m.data.rng.ObservedMax
	if delta < 0 {
		next := rd.draftMin + delta
		if next < lo {
			next = lo
		}
		rd.draftMin = next
		if rd.draftMin > rd.draftMax {
			rd.draftMax = rd.draftMin
		}
	} else if delta > 0 {
		next := rd.draftMax + delta
		if next > hi {
			next = hi
		}
		rd.draftMax = next
		if rd.draftMax < rd.draftMin {
			rd.draftMin = rd.draftMax
		}
	}
	m.updateRangeInputsFromDraft()
}

func (m *model) rangeStatusLabel() string {
	r := m.data.rng
	if !r.HasBounds {
		return ""
	}
	if r.SelectedMin == r.ObservedMin && r.SelectedMax == r.ObservedMax {
		return ""
	}
	return fmt.Sprintf("range %s–%s", formatMeasure(r.SelectedMin), formatMeasure(r.SelectedMax))
}

func (m *model) rangeDrawerView(width int) string {
	rd := &m.ui.rangeDrawer
	r := m.data.rng

	var lines []string
	title := fmt.Sprintf("Measure range (%s)  tab focus, enter apply, r reset, esc close", m.data.fields.Measure)
	if rd.errorMsg != "" {
		title = rd.errorMsg
	}
	lines = append(lines, title)

	minLabel := "min: "
	maxLabel := "max: "
	if rd.focus == rangeFocusMin {
		minLabel = "min> "
	}
	if rd.focus == rangeFocusMax {
		maxLabel = "max> "
	}
	lines = append(lines, minLabel+rd.minInput.View())
	lines = append(lines, maxLabel+rd.maxInput.View())

	if r.HasBounds {
		lines = append(lines, fmt.Sprintf("observed %s–%s", formatMeasure(r.ObservedMin), formatMeasure(r.ObservedMax)))
		lines = append(lines, m.rangeScrubberView(width-4))
	}

	return drawerArea.Width(width).Render(strings.Join(lines, "\n"))
}

// rangeScrubberView draws the selected window inside the observed extent.
func (m *model) rangeScrubberView(width int) string {
	rd := &m.ui.rangeDrawer
	r := m.data.rng
	if width < 10 {
		width = 10
	}
	span := r.ObservedMax - r.ObservedMin
	if span <= 0 {
		span = 1
	}
	pos := func(v float64) int {
		f := (v - r.ObservedMin) / span
		if f < 0 {
			f = 0
		}
		if f > 1 {
			f = 1
		}
		return int(f * float64(width-1))
	}
	a, b := pos(rd.draftMin), pos(rd.draftMax)
	bar := make([]rune, width)
	for i := range bar {
		switch {
		case i >= a && i <= b:
			bar[i] = '█'
		default:
			bar[i] = '─'
		}
	}
	label := "scrub"
	if rd.focus == rangeFocusScrubber {
		label = "scrub>"
	}
	return fmt.Sprintf("%s %s", label, string(bar))
}
