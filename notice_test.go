package main

import "testing"

func TestStaleNoticeTimerIgnored(t *testing.T) {
	m := &model{}

	m.startNotice("first", "info", noticeDuration)
	staleID := m.ui.noticeSeq
	m.startNotice("second", "success", noticeDuration)

	m.Update(clearNoticeMsg{id: staleID})
	if m.ui.noticeMsg != "second" {
		t.Fatalf("stale timer cleared the newer notice, got %q", m.ui.noticeMsg)
	}

	m.Update(clearNoticeMsg{id: m.ui.noticeSeq})
	if m.ui.noticeMsg != "" {
		t.Fatalf("current timer should clear the notice, got %q", m.ui.noticeMsg)
	}
}

func TestNoticeText(t *testing.T) {
	if got := noticeText("saved", "success"); got != "✓ saved" {
		t.Errorf("noticeText = %q", got)
	}
	if got := noticeText("plain", "unknown-kind"); got != "plain" {
		t.Errorf("unknown kinds render without an icon, got %q", got)
	}
	if got := noticeText("", "info"); got != "" {
		t.Errorf("empty message renders empty, got %q", got)
	}
}
