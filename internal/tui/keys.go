package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/thenoetrevino/labelpick/internal/config"
)

// keyMap holds the widget bindings built from the configured mappings
type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Toggle     key.Binding
	RemoveLast key.Binding
	Clear      key.Binding
	Quit       key.Binding
}

func newKeyMap(km config.KeyMappings) keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys(km.Up, "ctrl+p"),
			key.WithHelp(km.Up, "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(km.Down, "ctrl+n"),
			key.WithHelp(km.Down, "down"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(km.Toggle, "tab"),
			key.WithHelp(km.Toggle, "toggle"),
		),
		RemoveLast: key.NewBinding(
			key.WithKeys(km.RemoveLast),
			key.WithHelp(km.RemoveLast, "remove last"),
		),
		Clear: key.NewBinding(
			key.WithKeys(km.Clear),
			key.WithHelp(km.Clear, "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys(km.Quit, "ctrl+c"),
			key.WithHelp(km.Quit, "close"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.RemoveLast, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Toggle, k.RemoveLast, k.Clear},
		{k.Quit},
	}
}
