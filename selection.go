package main

import "github.com/nhollis/flowdeck/logging"

type selKind int

const (
	selNone selKind = iota
	selHovering
	selPinned
)

// selectionState is a three-state machine: Empty, Hovering, Pinned.
// A pin strictly dominates hover: while a record is pinned, hover updates
// are refused until the pin is cleared by a background click or dismiss.
type selectionState struct {
	kind   selKind
	record Record
	x, y   int
	layer  LayerKind
}

// HoverEnter moves to Hovering. Legal from Empty and Hovering only; while
// pinned it is a no-op and reports false.
func (s *selectionState) HoverEnter(rec Record, x, y int, k LayerKind) bool {
	if s.kind == selPinned {
		return false
	}
	s.kind = selHovering
	s.record = rec
	s.x, s.y = x, y
	s.layer = k
	return true
}

// HoverLeave clears a hover. Pins are unaffected.
func (s *selectionState) HoverLeave() {
	if s.kind != selHovering {
		return
	}
	*s = selectionState{}
}

// ClickDrawable toggles the pin: clicking the already-pinned record clears
// it, anything else pins the clicked record (from any state).
func (s *selectionState) ClickDrawable(rec Record, x, y int, k LayerKind) {
	if s.kind == selPinned && recordsEqual(s.record, rec) {
		logging.Debugf("selection: unpin via re-click")
		*s = selectionState{}
		return
	}
	s.kind = selPinned
	s.record = rec
	s.x, s.y = x, y
	s.layer = k
}

// ClickBackground clears any selection, pinned or not.
func (s *selectionState) ClickBackground() {
	*s = selectionState{}
}

// Dismiss is the explicit keyboard unpin.
func (s *selectionState) Dismiss() {
	*s = selectionState{}
}

func (s *selectionState) Active() (Record, bool) {
	if s.kind == selNone {
		return nil, false
	}
	return s.record, true
}

func (s *selectionState) Pinned() bool { return s.kind == selPinned }

// Records are value objects; equality is field-by-field.
func recordsEqual(a, b Record) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || valueString(av) != valueString(bv) {
			return false
		}
	}
	return true
}

type tooltipRow struct {
	Field string
	Value string
}

// tooltipRows derives the display pairs for a record: field order governs
// ordering, fields absent from the record are skipped, values render as
// strings (missing stays empty). Screen coordinates and the visual kind
// tag live outside the record, so nothing needs filtering out here.
func tooltipRows(rec Record, fieldOrder []string) []tooltipRow {
	if rec == nil {
		return nil
	}
	rows := make([]tooltipRow, 0, len(fieldOrder))
	for _, field := range fieldOrder {
		v, ok := rec[field]
		if !ok {
			continue
		}
		rows = append(rows, tooltipRow{Field: field, Value: valueString(v)})
	}
	return rows
}
