// Package lighthouse is a terminal companion for hard nights: a supportive
// chat, grounding exercises, a safety plan, a mood log and a camera check-in,
// with crisis resources one key away.
package lighthouse

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/lighthouse/api"
	"github.com/tmc/lighthouse/chat"
	"github.com/tmc/lighthouse/checkin"
	"github.com/tmc/lighthouse/grounding"
	"github.com/tmc/lighthouse/media"
	"github.com/tmc/lighthouse/mood"
	"github.com/tmc/lighthouse/router"
	"github.com/tmc/lighthouse/safetyplan"
	"github.com/tmc/lighthouse/settings"
)

// Gateway is the AI gateway used by the application.
type Gateway interface {
	chat.Gateway
	checkin.Analyzer
	GenerateAffirmation(ctx context.Context) string
}

type affirmationMsg struct {
	text string
}

// Model represents the state of the Bubble Tea application.
type Model struct {
	router   *router.Router
	settings settings.Model
	keys     KeyMap
	help     help.Model

	gateway Gateway
	device  media.Device
	now     func() time.Time
	moodLog *mood.Log
	plan    safetyplan.Plan

	showLogo      bool
	markdown      bool
	affirmOnStart bool
	affirmation   string
	emergency     bool
	width         int
	height        int
	quitting      bool
}

// New creates a new Model with default settings and applies options.
func New(opts ...Option) *Model {
	m := &Model{
		settings:      settings.New(),
		keys:          DefaultKeyMap(),
		help:          help.New(),
		gateway:       &api.Client{},
		now:           time.Now,
		moodLog:       mood.NewLog(mood.DefaultWeek()),
		plan:          safetyplan.DefaultPlan(),
		showLogo:      true,
		markdown:      true,
		affirmOnStart: true,
		width:         80,
		height:        24,
	}
	for _, opt := range opts {
		if err := opt(m); err != nil {
			log.Printf("Warning: Error applying option: %v", err)
		}
	}
	if m.affirmOnStart {
		m.affirmation = LoadingAffirmation
	}
	m.router = router.New(m.factories())
	return m
}

func (m *Model) factories() map[router.View]router.Factory {
	return map[router.View]router.Factory{
		router.Home: func() router.Component {
			return newHome(m.now(), m.Affirmation)
		},
		router.Chat: func() router.Component {
			return chat.New(m.gateway, m.device, chat.WithClock(m.now), chat.WithMarkdown(m.markdown))
		},
		router.Grounding: func() router.Component {
			return grounding.New()
		},
		router.SafetyPlan: func() router.Component {
			return safetyplan.New(m.plan)
		},
		router.Mood: func() router.Component {
			return mood.New(m.moodLog, m.now)
		},
		router.Analysis: func() router.Component {
			return checkin.New(m.gateway, m.device)
		},
	}
}

// Active returns the active view.
func (m *Model) Active() router.View { return m.router.Active() }

// Affirmation returns the launch affirmation, or the loading text until it
// arrives.
func (m *Model) Affirmation() string { return m.affirmation }

// EmergencyOpen reports whether the crisis overlay is showing.
func (m *Model) EmergencyOpen() bool { return m.emergency }

// Navigate switches the active view.
func (m *Model) Navigate(v router.View) tea.Cmd { return m.router.Navigate(v) }

// Init is the initial command called by Bubble Tea.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.router.Start()}
	if m.affirmOnStart {
		gw := m.gateway
		cmds = append(cmds, func() tea.Msg {
			return affirmationMsg{text: generateAffirmation(gw)}
		})
	}
	return tea.Batch(cmds...)
}

func generateAffirmation(gw Gateway) (text string) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[GATEWAY] affirmation panic: %v", r)
			text = api.AffirmationFailure
		}
	}()
	return gw.GenerateAffirmation(context.Background())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.releaseOrphan(msg) {
		return m, nil
	}
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.settings, _ = m.settings.Update(msg)
		return m, m.router.Update(m.bodySize())

	case affirmationMsg:
		m.affirmation = msg.text
		return m, nil

	case router.NavigateMsg:
		return m, m.router.Navigate(msg.View)

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, m.quit()
		}
		if m.emergency {
			if key.Matches(msg, m.keys.Close, m.keys.Emergency) {
				m.emergency = false
			}
			return m, nil
		}
		if key.Matches(msg, m.keys.Emergency) {
			log.Println("emergency overlay opened")
			m.emergency = true
			return m, nil
		}
		if m.settings.IsFocused() {
			m.settings, _ = m.settings.Update(msg)
			return m, nil
		}
		if key.Matches(msg, m.keys.Settings) {
			m.settings.Focus()
			return m, m.router.Update(m.bodySize())
		}
		if v, ok := m.keys.view(msg); ok {
			return m, m.router.Navigate(v)
		}
	}
	return m, m.router.Update(msg)
}

// releaseOrphan closes media that arrives for a view that has already been
// torn down.
func (m *Model) releaseOrphan(msg tea.Msg) bool {
	var (
		chatCtrl    *chat.Controller
		checkinCtrl *checkin.Controller
	)
	switch v := m.router.Mounted().(type) {
	case *chat.Model:
		chatCtrl = v.Controller()
	case *checkin.Model:
		checkinCtrl = v.Controller()
	}
	return chat.ReleaseOrphan(msg, chatCtrl) || checkin.ReleaseOrphan(msg, checkinCtrl)
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.router.Teardown()
	return tea.Quit
}

// bodySize is the area available to the active view.
func (m *Model) bodySize() tea.WindowSizeMsg {
	width := m.width
	if m.settings.IsFocused() {
		width -= m.settings.Width + 4
	}
	return tea.WindowSizeMsg{Width: max(20, width), Height: max(5, m.height-chromeHeight)}
}

// View renders the header, the active view and the footer.
func (m *Model) View() string {
	if m.quitting {
		return "Take care of yourself. Goodbye.\n"
	}
	body := m.router.Render()
	if m.emergency {
		body = emergencyView(m.width)
	} else if m.settings.IsFocused() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, "  ", m.settings.View())
	}
	return strings.Join([]string{m.headerView(), body, m.help.View(m.keys)}, "\n")
}

func (m *Model) headerView() string {
	var tabs []string
	if m.showLogo {
		tabs = append(tabs, logoStyle.Render("⚓ "+Name))
	}
	for _, v := range router.Views() {
		style := tabStyle
		if v == m.router.Active() {
			style = activeTabStyle
		}
		tabs = append(tabs, style.Render(v.String()))
	}
	tabs = append(tabs, helpTabStyle.Render("Help: ctrl+e"))
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...) + "\n"
}
