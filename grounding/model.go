package grounding

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/tmc/lighthouse/router"
)

// KeyMap defines the grounding key bindings.
type KeyMap struct {
	Breathe key.Binding
	Done    key.Binding
	Reset   key.Binding
}

// DefaultKeyMap returns the default grounding key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Breathe: key.NewBinding(key.WithKeys(" ", "b"), key.WithHelp("space", "start/pause breathing")),
		Done:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "I've done this")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restart 5-4-3-2-1")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Breathe, k.Done, k.Reset} }
func (k KeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	phaseStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	cardStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 2)
	doneStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

type breathTickMsg struct {
	owner string
	gen   int
}

// Model is the grounding view.
type Model struct {
	id        string
	gen       int
	interval  time.Duration
	breathing Breathing
	senses    Senses
	keys      KeyMap
	help      help.Model
	bar       progress.Model
	width     int
}

var _ router.Component = (*Model)(nil)

// New returns a grounding view with the breathing timer paused.
func New() *Model {
	return &Model{
		id:        uuid.NewString(),
		interval:  time.Second,
		breathing: NewBreathing(),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		bar:       progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
		width:     80,
	}
}

// Breathing returns the breathing timer.
func (m *Model) Breathing() Breathing { return m.breathing }

// Senses returns the 5-4-3-2-1 walk-through.
func (m *Model) Senses() Senses { return m.senses }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (router.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.bar.Width = max(10, min(msg.Width-8, 60))
	case breathTickMsg:
		if msg.owner != m.id || msg.gen != m.gen || !m.breathing.Active() {
			return m, nil
		}
		m.breathing.Tick()
		return m, m.tick()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Breathe):
			m.breathing.Toggle()
			m.gen++
			if m.breathing.Active() {
				return m, m.tick()
			}
		case key.Matches(msg, m.keys.Done):
			m.senses.Next()
		case key.Matches(msg, m.keys.Reset):
			m.senses.Reset()
		}
	}
	return m, nil
}

func (m *Model) tick() tea.Cmd {
	owner, gen := m.id, m.gen
	return tea.Tick(m.interval, func(time.Time) tea.Msg {
		return breathTickMsg{owner: owner, gen: gen}
	})
}

func (m *Model) View() string {
	sections := []string{
		m.breathingView(),
		m.sensesView(),
		m.distractionsView(),
		m.help.View(m.keys),
	}
	return strings.Join(sections, "\n\n")
}

// Teardown stops the breathing timer.
func (m *Model) Teardown() { m.gen++ }

func (m *Model) breathingView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("4-7-8 Breathing") + "\n")
	if m.breathing.Active() {
		fmt.Fprintf(&b, "%s  %s",
			phaseStyle.Render(m.breathing.Phase().String()),
			phaseStyle.Render(fmt.Sprint(m.breathing.Remaining())))
	} else {
		b.WriteString(faintStyle.Render("Relax your mind and body."))
	}
	return cardStyle.Render(b.String())
}

func (m *Model) sensesView() string {
	step := m.senses.Step()
	var b strings.Builder
	b.WriteString(headingStyle.Render("5-4-3-2-1 Grounding") + "\n")
	b.WriteString(m.bar.ViewAs(m.senses.Progress()) + "\n\n")
	fmt.Fprintf(&b, "%d  %s\n", step.Count, step.Instruction)
	b.WriteString(faintStyle.Render("Take your time. Say them out loud or in your head.") + "\n")
	b.WriteString(faintStyle.Render(step.Placeholder))
	if m.senses.Last() {
		b.WriteString("\n\n" + doneStyle.Render("You did great. How do you feel?"))
	}
	return cardStyle.Render(b.String())
}

func (m *Model) distractionsView() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("Quick Distractions"))
	for _, d := range Distractions {
		b.WriteString("\n• " + d)
	}
	return b.String()
}
