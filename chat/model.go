package chat

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/lighthouse/media"
	"github.com/tmc/lighthouse/router"
	"github.com/tmc/lighthouse/session"
)

// Option configures a chat Model.
type Option func(*options)

type options struct {
	now      func() time.Time
	markdown bool
}

// WithClock sets the clock used for turn timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithMarkdown enables or disables markdown rendering of replies.
func WithMarkdown(on bool) Option {
	return func(o *options) { o.markdown = on }
}

// Model is the chat view.
type Model struct {
	ctrl     *Controller
	keys     KeyMap
	help     help.Model
	viewport viewport.Model
	textarea textarea.Model
	spinner  spinner.Model

	markdown bool
	renderer *glamour.TermRenderer
	width    int
	height   int
}

var _ router.Component = (*Model)(nil)

// New returns a chat view with a fresh conversation.
func New(gw Gateway, dev media.Device, opts ...Option) *Model {
	o := options{markdown: true}
	for _, opt := range opts {
		opt(&o)
	}
	var sessOpts []session.Option
	if o.now != nil {
		sessOpts = append(sessOpts, session.WithClock(o.now))
	}

	ta := textarea.New()
	ta.Placeholder = "Type your message..."
	ta.Prompt = "┃ "
	ta.CharLimit = 2000
	ta.SetHeight(2)
	ta.ShowLineNumbers = false
	ta.KeyMap.InsertNewline.SetEnabled(false)
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = spinnerStyle

	m := &Model{
		ctrl:     NewController(gw, dev, sessOpts...),
		keys:     DefaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(80, 20),
		textarea: ta,
		spinner:  sp,
		markdown: o.markdown,
	}
	m.setSize(80, 24)
	return m
}

// Controller returns the conversation state machine.
func (m *Model) Controller() *Controller { return m.ctrl }

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

func (m *Model) Update(msg tea.Msg) (router.Component, tea.Cmd) {
	if cmd, ok := m.ctrl.Handle(msg); ok {
		m.syncInput()
		m.refresh()
		return m, cmd
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setSize(msg.Width, msg.Height)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Send):
			cmd := m.ctrl.SubmitText(m.textarea.Value())
			if cmd != nil {
				m.textarea.Reset()
			}
			m.after()
			return m, cmd
		case key.Matches(msg, m.keys.Record):
			var cmd tea.Cmd
			if m.ctrl.State() == Recording {
				cmd = m.ctrl.StopRecording()
			} else {
				cmd = m.ctrl.StartRecording()
			}
			m.after()
			return m, cmd
		case key.Matches(msg, m.keys.Prompts...):
			i, _ := m.keys.prompt(msg)
			if !m.ctrl.ShowQuickPrompts() {
				return m, nil
			}
			cmd := m.ctrl.SubmitText(QuickPrompts[i])
			m.after()
			return m, cmd
		case key.Matches(msg, m.keys.PageUp, m.keys.PageDown):
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
		if m.ctrl.CanSubmit() {
			var cmd tea.Cmd
			m.textarea, cmd = m.textarea.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) View() string {
	parts := []string{m.viewport.View()}
	if m.ctrl.ShowQuickPrompts() {
		parts = append(parts, m.quickPromptsView())
	}
	parts = append(parts, m.statusView(), m.textarea.View(), m.help.View(m.keys))
	return strings.Join(parts, "\n")
}

// Teardown releases the microphone.
func (m *Model) Teardown() {
	log.Printf("[CHAT] teardown %s", m.ctrl.ID())
	m.ctrl.Teardown()
}

// after updates the input and transcript following a user action.
func (m *Model) after() {
	m.syncInput()
	m.refresh()
}

func (m *Model) syncInput() {
	switch {
	case m.ctrl.State() == Recording:
		m.textarea.Placeholder = "Listening..."
		m.textarea.Blur()
	case m.ctrl.CanSubmit():
		m.textarea.Placeholder = "Type your message..."
		m.textarea.Focus()
	default:
		m.textarea.Blur()
	}
}

func (m *Model) setSize(width, height int) {
	m.width, m.height = width, height
	m.textarea.SetWidth(width)
	m.help.Width = width

	reserved := m.textarea.Height() + 4
	if m.ctrl.ShowQuickPrompts() {
		reserved += 3
	}
	m.viewport.Width = width
	m.viewport.Height = max(3, height-reserved)

	if m.markdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(20, width-4)),
		)
		if err != nil {
			log.Printf("[CHAT] markdown renderer unavailable: %v", err)
			r = nil
		}
		m.renderer = r
	}
	m.refresh()
}

// refresh re-renders the transcript and keeps it scrolled to the end.
func (m *Model) refresh() {
	m.viewport.SetContent(m.transcriptView())
	m.viewport.GotoBottom()
}

func (m *Model) transcriptView() string {
	var b strings.Builder
	for _, t := range m.ctrl.Session().Turns() {
		b.WriteString(m.turnView(t))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) turnView(t session.Turn) string {
	if t.Author == session.AuthorUser {
		header := senderYouStyle.Render("You:")
		body := lipgloss.NewStyle().Width(max(20, m.width-4)).Render(t.Body)
		return header + "\n" + body + "\n"
	}
	header := senderFriendStyle.Render("3AM Friend:")
	return header + "\n" + m.renderMarkdown(t.Body)
}

func (m *Model) renderMarkdown(content string) string {
	if m.renderer == nil {
		return lipgloss.NewStyle().Width(max(20, m.width-4)).Render(content) + "\n"
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return content + "\n"
	}
	return out
}

func (m *Model) quickPromptsView() string {
	var prompts []string
	for i, p := range QuickPrompts {
		prompts = append(prompts, promptStyle.Render(fmt.Sprintf("alt+%d  %s", i+1, p)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, prompts...)
}

func (m *Model) statusView() string {
	switch {
	case m.ctrl.Acquiring():
		return m.spinner.View() + " " + statusStyle.Render("Opening microphone...")
	case m.ctrl.State() == Recording:
		return recordingStyle.Render("● Recording") + statusStyle.Render("  ctrl+r to send")
	case m.ctrl.State() == AwaitingResponse:
		return m.spinner.View() + " " + statusStyle.Render("3AM Friend is typing...")
	case m.ctrl.State() == RecordingFailed:
		return micErrorStyle.Render("Microphone access failed")
	default:
		return statusStyle.Render("Ready")
	}
}
