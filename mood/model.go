package mood

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/lighthouse/router"
)

// KeyMap defines the mood key bindings.
type KeyMap struct {
	Rate key.Binding
}

// DefaultKeyMap returns the default mood key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Rate: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "rate today")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Rate} }
func (k KeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var (
	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	choiceStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8"))
	selectedStyle = choiceStyle.BorderForeground(lipgloss.Color("6")).Foreground(lipgloss.Color("6")).Bold(true)
	sparkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	faintStyle    = lipgloss.NewStyle().Faint(true)
)

// Model is the mood view. The log outlives the view so ratings survive
// navigation.
type Model struct {
	log  *Log
	now  func() time.Time
	keys KeyMap
	help help.Model
}

var _ router.Component = (*Model)(nil)

// New returns a mood view over l. A nil clock means time.Now.
func New(l *Log, now func() time.Time) *Model {
	if now == nil {
		now = time.Now
	}
	return &Model{log: l, now: now, keys: DefaultKeyMap(), help: help.New()}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (router.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Rate) {
			value := int(msg.String()[0] - '0')
			if err := m.log.Record(m.now().Format("Mon"), value); err != nil {
				log.Printf("[MOOD] %v", err)
			}
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(headingStyle.Render("How are you feeling today?") + "\n")
	var choices []string
	for v := MinRating; v <= MaxRating; v++ {
		style := choiceStyle
		if m.log.Today() == v {
			style = selectedStyle
		}
		choices = append(choices, style.Render(fmt.Sprintf("%s %d", Face(v), v)))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, choices...) + "\n\n")

	entries := m.log.Entries()
	b.WriteString(headingStyle.Render("Your Week") + "\n")
	b.WriteString(sparkStyle.Render(strings.Join(strings.Split(Sparkline(entries), ""), "   ")) + "\n")
	var days []string
	for _, e := range entries {
		days = append(days, fmt.Sprintf("%-3s", e.Day))
	}
	b.WriteString(faintStyle.Render(strings.Join(days, " ")) + "\n")
	b.WriteString(faintStyle.Render(fmt.Sprintf("average %.1f", m.log.Average())) + "\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) Teardown() {}
