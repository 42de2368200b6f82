package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts.
type KeyMap struct {
	// Form
	Next       key.Binding
	Prev       key.Binding
	AddBill    key.Binding
	RemoveBill key.Binding
	ClearDate  key.Binding
	Generate   key.Binding
	NewReceipt key.Binding

	// Preview
	Share      key.Binding
	CycleTheme key.Binding
	Back       key.Binding

	// Application
	ToggleHelp key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings. Form fields take plain
// text, so every form shortcut uses a modifier.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "enter"),
			key.WithHelp("Tab/↓", "next field"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up"),
			key.WithHelp("Shift+Tab/↑", "previous field"),
		),
		AddBill: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("Ctrl+N", "add previous bill"),
		),
		RemoveBill: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("Ctrl+D", "remove bill"),
		),
		ClearDate: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("Ctrl+X", "clear date"),
		),
		Generate: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("Ctrl+G", "generate receipt"),
		),
		NewReceipt: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("Ctrl+R", "new receipt"),
		),

		Share: key.NewBinding(
			key.WithKeys("s", "ctrl+s"),
			key.WithHelp("s", "share"),
		),
		CycleTheme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "next theme"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "e"),
			key.WithHelp("Esc/e", "edit"),
		),

		ToggleHelp: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("F1", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "quit"),
		),
	}
}

// formKeys is the help shown while editing.
type formKeys struct{ KeyMap }

// ShortHelp returns key bindings for the short help view.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.AddBill, k.Generate, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.AddBill, k.RemoveBill, k.ClearDate},
		{k.Generate, k.NewReceipt},
		{k.ToggleHelp, k.Quit},
	}
}

// previewKeys is the help shown on the receipt preview.
type previewKeys struct{ KeyMap }

// ShortHelp returns key bindings for the short help view.
func (k previewKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Share, k.CycleTheme, k.Back, k.Quit}
}

// FullHelp returns all key bindings for the full help view.
func (k previewKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Share, k.CycleTheme},
		{k.Back, k.NewReceipt},
		{k.ToggleHelp, k.Quit},
	}
}
