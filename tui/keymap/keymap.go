package keymap

import "github.com/charmbracelet/bubbles/key"

// Base contains the bindings shared by every ccsessions view. Navigation is
// vim-style with arrow keys as equivalents.
type Base struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Quit    key.Binding
	Help    key.Binding
	Confirm key.Binding
	Back    key.Binding
	Search  key.Binding
	Refresh key.Binding
}

// NewBase returns the default bindings.
func NewBase() Base {
	return DefaultVim()
}

// DefaultVim returns the default vim-style keymap
func DefaultVim() Base {
	return Base{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←", "prev page"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("→", "next page"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎", "confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "refresh"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the compact help view.
func (b Base) ShortHelp() []key.Binding {
	return []key.Binding{b.Help, b.Quit}
}

// FullHelp returns keybindings for the full help view.
func (b Base) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{b.Up, b.Down, b.Left, b.Right},
		{b.Search, b.Refresh, b.Confirm, b.Back},
		{b.Help, b.Quit},
	}
}
