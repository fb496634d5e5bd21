// Package settings renders the side panel showing the effective configuration.
package settings

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Model represents the settings panel state
type Model struct {
	Width        int
	Height       int
	Focused      bool
	CurrentModel string
	GatewayMode  string
	AudioDevice  string
	CameraDevice string
	ConfigPath   string
	LogFile      string
	ShowLogo     bool
}

// New creates a new settings model
func New() Model {
	return Model{
		CurrentModel: "gemini-2.5-flash",
		GatewayMode:  "offline",
		AudioDevice:  "default",
		CameraDevice: "default",
		ShowLogo:     true,
	}
}

// Init initializes the settings model
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles updating the settings model
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width / 3
		m.Height = msg.Height
	case tea.KeyMsg:
		if !m.Focused {
			return m, nil
		}

		if msg.String() == "esc" {
			m.Focused = false
		}
	}

	return m, nil
}

// View renders the settings panel
func (m Model) View() string {
	if !m.Focused {
		return ""
	}

	style := lipgloss.NewStyle().
		Width(m.Width).
		Height(m.Height).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2)

	var b strings.Builder
	b.WriteString("Settings\n\n")
	fmt.Fprintf(&b, "Model: %s\nGateway: %s\nMicrophone: %s\nCamera: %s\nShow Logo: %t\n",
		m.CurrentModel, m.GatewayMode, orDefault(m.AudioDevice), orDefault(m.CameraDevice), m.ShowLogo)
	if m.ConfigPath != "" {
		fmt.Fprintf(&b, "Config: %s\n", m.ConfigPath)
	}
	if m.LogFile != "" {
		fmt.Fprintf(&b, "Log: %s\n", m.LogFile)
	}
	if m.GatewayMode == "offline" {
		b.WriteString("\nNo API key configured: replies are offline.\n")
	}
	b.WriteString("\nPress ESC to close")

	return style.Render(b.String())
}

func orDefault(s string) string {
	if s == "" {
		return "default"
	}
	return s
}

// Focus sets focus on the settings panel
func (m *Model) Focus() {
	m.Focused = true
}

// Blur removes focus from the settings panel
func (m *Model) Blur() {
	m.Focused = false
}

// IsFocused returns whether the settings panel is focused
func (m Model) IsFocused() bool {
	return m.Focused
}
