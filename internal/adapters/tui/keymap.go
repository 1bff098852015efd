package tui

import "github.com/charmbracelet/bubbles/key"

// View-level bindings handled before the state machine sees the key.
type keyMap struct {
	Yank key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Yank: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy note to clipboard"),
		),
	}
}
