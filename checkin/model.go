package checkin

import (
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/lighthouse/media"
	"github.com/tmc/lighthouse/router"
)

// KeyMap defines the check-in key bindings.
type KeyMap struct {
	Record key.Binding
	Again  key.Binding
}

// DefaultKeyMap returns the default check-in key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Record: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "record / stop"),
		),
		Again: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "check-in again"),
		),
	}
}

func (k KeyMap) ShortHelp() []key.Binding  { return []key.Binding{k.Record, k.Again} }
func (k KeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var (
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	hintStyle      = lipgloss.NewStyle().Faint(true)
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	countdownStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Padding(1, 4).Border(lipgloss.RoundedBorder())
	insightStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(1, 2)
	insightHeader  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))
)

// Model is the check-in view.
type Model struct {
	ctrl    *Controller
	keys    KeyMap
	help    help.Model
	spinner spinner.Model
	width   int
}

var _ router.Component = (*Model)(nil)

// New returns a check-in view. The camera is probed when the view mounts.
func New(a Analyzer, dev media.Device, opts ...ControllerOption) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	return &Model{
		ctrl:    NewController(a, dev, opts...),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		spinner: sp,
		width:   80,
	}
}

// Controller returns the check-in state machine.
func (m *Model) Controller() *Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.ctrl.Init(), m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (router.Component, tea.Cmd) {
	if cmd, ok := m.ctrl.Handle(msg); ok {
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Record):
			switch m.ctrl.State() {
			case Ready:
				return m, m.ctrl.Start()
			case Recording:
				return m, m.ctrl.Stop()
			}
		case key.Matches(msg, m.keys.Again):
			m.ctrl.Reset()
		}
	}
	return m, nil
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Emotion Check-in"))
	b.WriteString("\n\n")
	switch m.ctrl.State() {
	case Initializing:
		b.WriteString(m.spinner.View() + " Initializing camera...")
	case Error:
		b.WriteString(errorStyle.Render("✗ " + ErrorMessage))
	case Ready:
		b.WriteString("Center your face and press enter to record.\n")
		if m.ctrl.HasAudio() {
			b.WriteString(hintStyle.Render(fmt.Sprintf("Say how you're feeling (%ds)", Seconds)))
		} else {
			b.WriteString(warnStyle.Render("(Microphone not detected - Visual only)"))
		}
	case Recording:
		b.WriteString(countdownStyle.Render(fmt.Sprint(m.ctrl.Remaining())))
		b.WriteString("\n" + hintStyle.Render("● Recording"))
	case Analyzing:
		b.WriteString(m.spinner.View() + " Sensing emotions...")
	case Result:
		width := max(20, min(m.width-4, 72))
		body := insightHeader.Render("✦ AI INSIGHT") + "\n\n" +
			lipgloss.NewStyle().Width(width-6).Render("\""+m.ctrl.Result()+"\"")
		b.WriteString(insightStyle.Width(width).Render(body))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

// Teardown releases the camera.
func (m *Model) Teardown() {
	log.Printf("[CHECKIN] teardown %s", m.ctrl.ID())
	m.ctrl.Teardown()
}
