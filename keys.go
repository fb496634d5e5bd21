package lighthouse

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmc/lighthouse/router"
)

// KeyMap defines the application-wide key bindings.
type KeyMap struct {
	Home       key.Binding
	Chat       key.Binding
	Grounding  key.Binding
	SafetyPlan key.Binding
	Mood       key.Binding
	Checkin    key.Binding
	Emergency  key.Binding
	Settings   key.Binding
	Close      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default application key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Home:       key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "home")),
		Chat:       key.NewBinding(key.WithKeys("f2"), key.WithHelp("f2", "chat")),
		Grounding:  key.NewBinding(key.WithKeys("f3"), key.WithHelp("f3", "ground")),
		SafetyPlan: key.NewBinding(key.WithKeys("f4"), key.WithHelp("f4", "safety plan")),
		Mood:       key.NewBinding(key.WithKeys("f5"), key.WithHelp("f5", "mood")),
		Checkin:    key.NewBinding(key.WithKeys("f6"), key.WithHelp("f6", "check-in")),
		Emergency:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "get help now")),
		Settings:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "settings")),
		Close:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

// view returns the view bound to a navigation key.
func (k KeyMap) view(msg tea.KeyMsg) (router.View, bool) {
	nav := []struct {
		binding key.Binding
		view    router.View
	}{
		{k.Home, router.Home},
		{k.Chat, router.Chat},
		{k.Grounding, router.Grounding},
		{k.SafetyPlan, router.SafetyPlan},
		{k.Mood, router.Mood},
		{k.Checkin, router.Analysis},
	}
	for _, n := range nav {
		if key.Matches(msg, n.binding) {
			return n.view, true
		}
	}
	return 0, false
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Emergency, k.Settings, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Chat, k.Grounding, k.SafetyPlan, k.Mood, k.Checkin},
		{k.Emergency, k.Settings, k.Close, k.Quit},
	}
}
