package lighthouse

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/lighthouse/router"
)

// Greeting returns the time-of-day greeting shown on the home view.
func Greeting(t time.Time) string {
	switch h := t.Hour(); {
	case h < 5:
		return "It's late. I'm glad you're here."
	case h < 12:
		return "Good morning."
	case h < 18:
		return "Good afternoon."
	default:
		return "Good evening."
	}
}

// shortcut is a card on the home view.
type shortcut struct {
	view     router.View
	title    string
	subtitle string
}

var shortcuts = []shortcut{
	{router.Analysis, "AI Check-in", "Analyze mood via voice & camera"},
	{router.Chat, "3AM Friend", "Chat with Lighthouse"},
	{router.Grounding, "Ground Me", "Calm down quickly"},
	{router.SafetyPlan, "Safety Plan", "Your crisis toolkit"},
	{router.Mood, "Mood Log", "Track your journey"},
}

var homeKeys = struct {
	Up, Down, Open key.Binding
}{
	Up:   key.NewBinding(key.WithKeys("up", "k")),
	Down: key.NewBinding(key.WithKeys("down", "j")),
	Open: key.NewBinding(key.WithKeys("enter")),
}

// home is the landing view. It reads the affirmation from its parent on
// every render.
type home struct {
	greeting    string
	affirmation func() string
	cursor      int
	width       int
}

func newHome(now time.Time, affirmation func() string) *home {
	return &home{greeting: Greeting(now), affirmation: affirmation, width: 80}
}

func (h *home) Init() tea.Cmd { return nil }

func (h *home) Update(msg tea.Msg) (router.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, homeKeys.Up):
			h.cursor = max(0, h.cursor-1)
		case key.Matches(msg, homeKeys.Down):
			h.cursor = min(len(shortcuts)-1, h.cursor+1)
		case key.Matches(msg, homeKeys.Open):
			return h, router.NavigateTo(shortcuts[h.cursor].view)
		default:
			s := msg.String()
			if len(s) == 1 && s[0] >= '1' && s[0] < '1'+byte(len(shortcuts)) {
				i := int(s[0] - '1')
				h.cursor = i
				return h, router.NavigateTo(shortcuts[i].view)
			}
		}
	}
	return h, nil
}

func (h *home) View() string {
	var b strings.Builder
	b.WriteString(greetingStyle.Render(h.greeting) + "\n")
	if a := h.affirmation(); a != "" {
		quote := lipgloss.NewStyle().Width(max(20, min(h.width-4, 72))).Render("\"" + a + "\"")
		b.WriteString(quoteStyle.Render(quote) + "\n")
	}
	b.WriteString("\n")
	for i, s := range shortcuts {
		style := cardStyle
		if i == h.cursor {
			style = selectedStyle
		}
		card := fmt.Sprintf("%d  %s\n   %s", i+1, cardTitleStyle.Render(s.title), statusStyle.Render(s.subtitle))
		b.WriteString(style.Render(card) + "\n")
	}
	b.WriteString(statusStyle.Render("↑/↓ choose • enter open • 1-5 jump"))
	return b.String()
}

func (h *home) Teardown() {}
