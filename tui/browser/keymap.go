package browser

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/grovetools/ccsessions/tui/keymap"
)

// KeyMap defines the keybindings for the session browser.
type KeyMap struct {
	keymap.Base

	Rename       key.Binding
	LabelEdit    key.Binding
	SortRecency  key.Binding
	SortMessages key.Binding
	Group        key.Binding
	ToggleWindow key.Binding
}

// DefaultKeyMap returns the browser bindings with any overrides applied.
func DefaultKeyMap(overrides keymap.Overrides) KeyMap {
	km := KeyMap{
		Base: keymap.NewBase(),
		Rename: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "rename"),
		),
		LabelEdit: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "label"),
		),
		SortRecency: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "sort by time"),
		),
		SortMessages: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "sort by msgs"),
		),
		Group: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "group by label"),
		),
		ToggleWindow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "all / 48h"),
		),
	}
	km.Confirm.SetHelp("⏎", "resume")
	keymap.ApplyOverrides(&km, overrides)
	return km
}

// ShortHelp returns keybindings to be shown in the compact help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{
		k.Up, k.Search, k.Rename, k.LabelEdit, k.Confirm,
		k.SortRecency, k.SortMessages, k.Group, k.ToggleWindow, k.Help, k.Quit,
	}
}

// FullHelp returns keybindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Search, k.Rename, k.LabelEdit, k.Confirm},
		{k.SortRecency, k.SortMessages, k.Group, k.ToggleWindow},
		{k.Refresh, k.Back, k.Help, k.Quit},
	}
}
