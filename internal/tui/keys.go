package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the parent picker.
type KeyMap struct {
	// Navigation
	Up   key.Binding
	Down key.Binding
	Top  key.Binding
	End  key.Binding

	// Actions
	Assign key.Binding // Make the highlighted task the parent
	Root   key.Binding // Detach the task from its parent

	// General
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Top: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("g", "top"),
		),
		End: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("G", "bottom"),
		),
		Assign: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "set parent"),
		),
		Root: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "make root"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q/esc", "quit"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Assign, k.Root, k.Quit, k.Help}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Top, k.End},
		{k.Assign, k.Root},
		{k.Help, k.Quit},
	}
}
