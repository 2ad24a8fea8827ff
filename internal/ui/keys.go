package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding
	ToggleTags key.Binding
	Escape     key.Binding
	Confirm    key.Binding

	// Filters
	EditQuery    key.Binding
	TagPicker    key.Binding
	RemoveTag    key.Binding
	Starred      key.Binding
	ClearFilters key.Binding
	Refresh      key.Binding

	// Selection
	ToggleRow key.Binding
	SelectAll key.Binding
	Expand    key.Binding
	Collapse  key.Binding
	Toggle    key.Binding

	// Actions
	Delete     key.Binding
	Move       key.Binding
	CopyURL    key.Binding
	CopyNew    key.Binding
	CopyImport key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
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
		ToggleTags: key.NewBinding(
			key.WithKeys("v"),
			key.WithHelp("v", "Show/hide tags"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),

		EditQuery: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "Search by name"),
		),
		TagPicker: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "Filter by tag"),
		),
		RemoveTag: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Remove last tag"),
		),
		Starred: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Toggle starred"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Clear filters"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),

		ToggleRow: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "Select row"),
		),
		SelectAll: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Select all"),
		),
		Expand: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l", "Expand folder"),
		),
		Collapse: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h", "Collapse folder"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Expand/collapse folder"),
		),

		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Delete selected"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "Move selected"),
		),
		CopyURL: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy row URL"),
		),
		CopyNew: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "Copy new dashboard URL"),
		),
		CopyImport: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "Copy import URL"),
		),

		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "Go to top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Go to bottom"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("pgup", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("pgdown", "Page down"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped the way the help overlay shows them.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.EditQuery, k.TagPicker, k.RemoveTag, k.Starred, k.ClearFilters, k.Refresh},
		{k.ToggleRow, k.SelectAll, k.Toggle, k.Expand, k.Collapse},
		{k.Delete, k.Move, k.CopyURL, k.CopyNew, k.CopyImport},
		{k.Up, k.Down, k.Top, k.Bottom, k.PageUp, k.PageDown},
		{k.ToggleTags, k.CycleTheme, k.Help, k.Quit},
	}
}

var helpGroupTitles = []string{"Filters", "Selection", "Actions", "Navigation", "General"}
