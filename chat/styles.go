package chat

import "github.com/charmbracelet/lipgloss"

var (
	senderYouStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))  // Cyan
	senderFriendStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14")) // Bright cyan
	statusStyle       = lipgloss.NewStyle().Faint(true)
	recordingStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	micErrorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	promptStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Border(lipgloss.RoundedBorder()).Padding(0, 1)
	spinnerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
)
