package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit       key.Binding
	Help       key.Binding
	CycleTheme key.Binding

	// Filters
	NextYear     key.Binding
	PrevYear     key.Binding
	NextWeek     key.Binding
	PrevWeek     key.Binding
	NextManager  key.Binding
	PrevManager  key.Binding
	NextPosition key.Binding
	PrevPosition key.Binding
	Reset        key.Binding

	// Location and view
	Back      key.Binding
	Forward   key.Binding
	Open      key.Binding
	Refresh   key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
	CycleSort key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "e"),
			key.WithHelp("e", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "Toggle help"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Cycle theme"),
		),

		NextYear: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y/Y", "Next/prev season"),
		),
		PrevYear: key.NewBinding(key.WithKeys("Y")),
		NextWeek: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w/W", "Next/prev week"),
		),
		PrevWeek: key.NewBinding(key.WithKeys("W")),
		NextManager: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m/M", "Next/prev manager"),
		),
		PrevManager: key.NewBinding(key.WithKeys("M")),
		NextPosition: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p/P", "Next/prev position"),
		),
		PrevPosition: key.NewBinding(key.WithKeys("P")),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "Reset filters"),
		),

		Back: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "Back"),
		),
		Forward: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "Forward"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Open link"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Refresh"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Cancel"),
		),
		CycleSort: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings grouped for the help overlay.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextYear, k.NextWeek, k.NextManager, k.NextPosition, k.Reset},
		{k.Back, k.Forward, k.Open, k.Refresh},
		{k.CycleSort},
		{k.CycleTheme, k.Help, k.Quit},
	}
}
