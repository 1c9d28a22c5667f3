package main

import (
	"github.com/charmbracelet/bubbles/key"
)

type Keymap struct {
	Quit          key.Binding
	Search        key.Binding
	Jump          key.Binding
	ColumnFilter  key.Binding
	RangeDrawer   key.Binding
	ResetAll      key.Binding
	ToggleFlows   key.Binding
	ToggleMarkers key.Binding
	ToggleVolumes key.Binding
	ToggleDataset key.Binding
	PinRow        key.Binding
	Dismiss       key.Binding
	RowDown       key.Binding
	RowUp         key.Binding
	PageDown      key.Binding
	PageUp        key.Binding
	ZoomIn        key.Binding
	ZoomOut       key.Binding
	PanKeys       key.Binding
	FitView       key.Binding
	OpenHelp      key.Binding
	ExportToFile  key.Binding
	SaveView      key.Binding
	CopyRecord    key.Binding
}

var Keys = Keymap{
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "free-text search"),
	),
	Jump: key.NewBinding(
		key.WithKeys(":"),
		key.WithHelp(":", "jump to record"),
	),
	ColumnFilter: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "column filter editor"),
	),
	RangeDrawer: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "measure range"),
	),
	ResetAll: key.NewBinding(
		key.WithKeys("R"),
		key.WithHelp("R", "reset all filters"),
	),
	ToggleFlows: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "toggle flow arcs"),
	),
	ToggleMarkers: key.NewBinding(
		key.WithKeys("p"),
		key.WithHelp("p", "toggle point markers"),
	),
	ToggleVolumes: key.NewBinding(
		key.WithKeys("v"),
		key.WithHelp("v", "toggle volume columns"),
	),
	ToggleDataset: key.NewBinding(
		key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
		key.WithHelp("1-9", "toggle dataset"),
	),
	PinRow: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "pin/unpin cursor record"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "dismiss selection"),
	),
	RowDown: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "move down"),
	),
	RowUp: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "move up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("ctrl+d", "pgdown"),
		key.WithHelp("ctrl+d", "page down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("ctrl+u", "pgup"),
		key.WithHelp("ctrl+u", "page up"),
	),
	ZoomIn: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "zoom in"),
	),
	ZoomOut: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "zoom out"),
	),
	PanKeys: key.NewBinding(
		key.WithKeys("left", "right", "H", "L", "J", "K"),
		key.WithHelp("←/→ H/L/J/K", "pan the map"),
	),
	FitView: key.NewBinding(
		key.WithKeys("0"),
		key.WithHelp("0", "fit view"),
	),
	OpenHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help / keys"),
	),
	ExportToFile: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "export filtered records"),
	),
	SaveView: key.NewBinding(
		key.WithKeys("w"),
		key.WithHelp("w", "write view snapshot"),
	),
	CopyRecord: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "copy selected record"),
	),
}

func (k Keymap) Legend() []key.Binding {
	return []key.Binding{
		k.Quit,
		k.Search,
		k.Jump,
		k.ColumnFilter,
		k.RangeDrawer,
		k.ResetAll,
		k.ToggleFlows,
		k.ToggleMarkers,
		k.ToggleVolumes,
		k.ToggleDataset,
		k.PinRow,
		k.Dismiss,
		k.PageDown,
		k.PageUp,
		k.ZoomIn,
		k.ZoomOut,
		k.PanKeys,
		k.FitView,
		k.ExportToFile,
		k.SaveView,
		k.CopyRecord,
	}
}
