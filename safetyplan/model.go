package safetyplan

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/lighthouse/router"
)

// KeyMap defines the safety plan key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
}

// DefaultKeyMap returns the default safety plan key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "expand/collapse")),
	}
}

func (k KeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Up, k.Down, k.Toggle} }
func (k KeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var (
	bannerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("61")).Padding(0, 2)
	subtitleStyle = lipgloss.NewStyle().Faint(true)
	titleStyle    = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	itemStyle     = lipgloss.NewStyle().PaddingLeft(6)
)

// Model is the read-only safety plan view. Sections start collapsed.
type Model struct {
	sections []Section
	open     []bool
	cursor   int
	keys     KeyMap
	help     help.Model
}

var _ router.Component = (*Model)(nil)

// New returns a view of plan.
func New(plan Plan) *Model {
	s := plan.Sections()
	return &Model{sections: s, open: make([]bool, len(s)), keys: DefaultKeyMap(), help: help.New()}
}

// Open reports whether section i is expanded.
func (m *Model) Open(i int) bool { return m.open[i] }

// Cursor returns the selected section.
func (m *Model) Cursor() int { return m.cursor }

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (router.Component, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Up):
			m.cursor = max(0, m.cursor-1)
		case key.Matches(msg, m.keys.Down):
			m.cursor = min(len(m.sections)-1, m.cursor+1)
		case key.Matches(msg, m.keys.Toggle):
			m.open[m.cursor] = !m.open[m.cursor]
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(bannerStyle.Render("🛡 My Safety Plan") + "\n")
	b.WriteString(subtitleStyle.Render("A prioritized list of coping strategies and supports to use during a crisis.") + "\n\n")
	for i, s := range m.sections {
		marker, pointer := "▸", "  "
		if m.open[i] {
			marker = "▾"
		}
		title := titleStyle.Render(s.Title)
		if i == m.cursor {
			pointer = cursorStyle.Render("> ")
			title = cursorStyle.Render(s.Title)
		}
		b.WriteString(pointer + marker + " " + s.Icon + " " + title + "\n")
		if m.open[i] {
			for _, item := range s.Items {
				b.WriteString(itemStyle.Render("• "+item) + "\n")
			}
		}
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}

func (m *Model) Teardown() {}
