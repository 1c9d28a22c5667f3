package main

import "testing"

func TestPageCursorStepsByVisiblePage(t *testing.T) {
	m := newModel(testStore(), defaultFieldConfig(), nil)
	m.refreshPipeline()
	if len(m.data.filtered) != 4 {
		t.Fatalf("expected 4 filtered records, got %d", len(m.data.filtered))
	}
	m.ui.visibleRowCount = 2

	m.pageCursor(1)
	if m.cursor != 2 {
		t.Fatalf("page down should advance by the visible page, cursor = %d", m.cursor)
	}
	m.pageCursor(1)
	if m.cursor != 3 {
		t.Fatalf("page down clamps to the last record, cursor = %d", m.cursor)
	}
	m.pageCursor(-1)
	if m.cursor != 1 {
		t.Fatalf("page up should step back by the visible page, cursor = %d", m.cursor)
	}
	m.pageCursor(-1)
	if m.cursor != 0 {
		t.Fatalf("page up clamps to the first record, cursor = %d", m.cursor)
	}

	if rec, ok := m.sel.Active(); !ok || !recordsEqual(rec, m.data.filtered[0]) {
		t.Fatal("paging should mirror the cursor record onto the canvas selection")
	}
}

func TestPageCursorDefaultsToSingleStep(t *testing.T) {
	m := newModel(testStore(), defaultFieldConfig(), nil)
	m.refreshPipeline()
	// nothing rendered yet, so no measured page size
	m.pageCursor(1)
	if m.cursor != 1 {
		t.Fatalf("without a measured page the step is one row, cursor = %d", m.cursor)
	}
}
