package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// Keymap defines all key bindings for the preview.
type Keymap struct {
	// Navigation between base colors
	Next key.Binding
	Prev key.Binding

	// Toggles
	Mode    key.Binding
	Level   key.Binding
	Harmony key.Binding
	More    key.Binding
	Fewer   key.Binding

	Help key.Binding
	Quit key.Binding
}

// DefaultKeymap returns the default key bindings.
func DefaultKeymap() Keymap {
	return Keymap{
		Next: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→/tab", "next color"),
		),
		Prev: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←/shift+tab", "previous color"),
		),
		Mode: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "light/dark mode"),
		),
		Level: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "contrast level"),
		),
		Harmony: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "next harmony"),
		),
		More: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "more shades"),
		),
		Fewer: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "fewer shades"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Mode, k.Level, k.Harmony, k.More, k.Fewer, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.Mode, k.Level, k.Harmony},
		{k.More, k.Fewer},
		{k.Help, k.Quit},
	}
}
