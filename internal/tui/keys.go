package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the key bindings of the advice card
type keyMap struct {
	Roll key.Binding
	Copy key.Binding
	Quit key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Roll: key.NewBinding(
			key.WithKeys(" ", "enter", "r"),
			key.WithHelp("space", "roll the dice"),
		),
		Copy: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "copy advice"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Roll, k.Copy, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
