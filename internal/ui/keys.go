package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/herotail/internal/state"
)

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	Reconnect  key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Next     key.Binding
	Prev     key.Binding

	// Views
	ViewList   key.Binding
	ViewDetail key.Binding
	ViewSplit  key.Binding

	// Stream
	Pause     key.Binding
	ClearLogs key.Binding
	Copy      key.Binding
	Export    key.Binding

	// Filters
	Search       key.Binding
	ToggleMode   key.Binding
	ClearFilters key.Binding

	// Search/input
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),
		Reconnect: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Reconnect"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Scroll down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to oldest"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to newest"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdown", "Page down"),
		),
		Next: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "Select next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Select previous"),
		),

		// Views
		ViewList: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "List view"),
		),
		ViewDetail: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "Detail view"),
		),
		ViewSplit: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "Split view"),
		),

		// Stream
		Pause: key.NewBinding(
			key.WithKeys("p", " "),
			key.WithHelp("p/Space", "Pause"),
		),
		ClearLogs: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Clear logs"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy"),
		),
		Export: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "Export"),
		),

		// Filters
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Add filter"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "AND/OR"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),

		// Search/input
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Apply filter"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
	}
}

// message maps a normal-mode key to the reducer message it triggers.
func (k keyMap) message(msg tea.KeyMsg) (state.Message, bool) {
	switch {
	case key.Matches(msg, k.Up):
		return state.ScrollUp{}, true
	case key.Matches(msg, k.Down):
		return state.ScrollDown{}, true
	case key.Matches(msg, k.Top):
		return state.ScrollToTop{}, true
	case key.Matches(msg, k.Bottom):
		return state.ScrollToBottom{}, true
	case key.Matches(msg, k.PageUp):
		return state.PageUp{}, true
	case key.Matches(msg, k.PageDown):
		return state.PageDown{}, true
	case key.Matches(msg, k.Next):
		return state.SelectNext{}, true
	case key.Matches(msg, k.Prev):
		return state.SelectPrev{}, true
	case key.Matches(msg, k.ViewList):
		return state.SetViewMode{Mode: state.ViewList}, true
	case key.Matches(msg, k.ViewDetail):
		return state.SetViewMode{Mode: state.ViewDetail}, true
	case key.Matches(msg, k.ViewSplit):
		return state.SetViewMode{Mode: state.ViewSplit}, true
	case key.Matches(msg, k.Pause):
		return state.TogglePause{}, true
	case key.Matches(msg, k.ClearLogs):
		return state.ClearLogs{}, true
	case key.Matches(msg, k.Copy):
		return state.CopyToClipboard{}, true
	case key.Matches(msg, k.Export):
		return state.ExportToFile{}, true
	case key.Matches(msg, k.ToggleMode):
		return state.ToggleFilterMode{}, true
	case key.Matches(msg, k.ClearFilters):
		return state.ClearFilters{}, true
	}
	return nil, false
}

// ShortHelp returns key bindings for the command bar.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.ToggleMode, k.ClearFilters, k.Pause, k.ViewList, k.ViewDetail, k.ViewSplit, k.Help, k.Quit}
}

// FullHelp returns key bindings for the help overlay, one group per column.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PageUp, k.PageDown, k.Top, k.Bottom, k.Next, k.Prev},
		{k.Search, k.Confirm, k.Cancel, k.ToggleMode, k.ClearFilters},
		{k.ViewList, k.ViewDetail, k.ViewSplit, k.Pause, k.ClearLogs},
		{k.Copy, k.Export, k.Reconnect, k.CycleTheme, k.Help, k.Quit},
	}
}
