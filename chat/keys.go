package chat

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines the chat key bindings.
type KeyMap struct {
	Send     key.Binding
	Record   key.Binding
	Prompts  []key.Binding // Prompts[i] sends QuickPrompts[i]
	PageUp   key.Binding
	PageDown key.Binding
}

// DefaultKeyMap returns the default chat key bindings.
func DefaultKeyMap() KeyMap {
	prompts := make([]key.Binding, len(QuickPrompts))
	for i, p := range QuickPrompts {
		k := fmt.Sprintf("alt+%d", i+1)
		prompts[i] = key.NewBinding(key.WithKeys(k), key.WithHelp(k, p))
	}
	return KeyMap{
		Send: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "send"),
		),
		Record: key.NewBinding(
			key.WithKeys("ctrl+r"),
			key.WithHelp("ctrl+r", "voice message"),
		),
		Prompts: prompts,
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
			key.WithHelp("pgup", "scroll up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
			key.WithHelp("pgdn", "scroll down"),
		),
	}
}

// prompt returns the index of the quick prompt bound to msg.
func (k KeyMap) prompt(msg tea.KeyMsg) (int, bool) {
	for i, b := range k.Prompts {
		if key.Matches(msg, b) {
			return i, true
		}
	}
	return 0, false
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Send, k.Record, k.PageUp, k.PageDown}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Send, k.Record},
		k.Prompts,
		{k.PageUp, k.PageDown},
	}
}
