package lighthouse

import "github.com/charmbracelet/lipgloss"

// Name is the application name.
const Name = "Lighthouse"

// LoadingAffirmation is shown until the launch affirmation arrives.
const LoadingAffirmation = "Loading hope..."

// chromeHeight is the number of lines used by the header and footer.
const chromeHeight = 4

// Styles
var (
	logoStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true) // Bright cyan
	tabStyle       = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true).Underline(true).Padding(0, 1)
	helpTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("9")).Bold(true).Padding(0, 1)
	statusStyle    = lipgloss.NewStyle().Faint(true)
	greetingStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	quoteStyle     = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("6"))
	cardStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("8")).Padding(0, 1)
	selectedStyle  = cardStyle.BorderForeground(lipgloss.Color("6"))
	cardTitleStyle = lipgloss.NewStyle().Bold(true)
	overlayStyle   = lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(lipgloss.Color("9")).Padding(1, 4).Align(lipgloss.Center)
	alertStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
)
