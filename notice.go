package main

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Transient footer notices. Every notice bumps the sequence number and
// schedules its own clear; a stale timer firing after a newer notice took
// over is ignored by the sequence check in Update.

type clearNoticeMsg struct{ id int }

const noticeDuration = 2500 * time.Millisecond

var noticeIcons = map[string]string{
	"info":    "›",
	"success": "✓",
	"warn":    "⚠",
	"error":   "✗",
}

func noticeText(msg, kind string) string {
	if msg == "" {
		return ""
	}
	if icon, ok := noticeIcons[kind]; ok {
		return icon + " " + msg
	}
	return msg
}

func (m *model) startNotice(msg, kind string, d time.Duration) tea.Cmd {
	m.ui.noticeMsg = msg
	m.ui.noticeType = kind

	m.ui.noticeSeq++
	id := m.ui.noticeSeq
	return tea.Tick(d, func(time.Time) tea.Msg { return clearNoticeMsg{id: id} })
}
