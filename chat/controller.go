// Package chat implements the conversational session with the companion.
package chat

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/tmc/lighthouse/api"
	"github.com/tmc/lighthouse/media"
	"github.com/tmc/lighthouse/session"
)

// Greeting seeds every new session.
const Greeting = "Hello. I'm your 3AM Friend. \n\nThe night can be long, but you don't have to get through it alone. I'm here to listen without judgment, help you ground yourself, or just sit with you in the dark. \n\nHow are you holding up?"

// Voice message bodies.
const (
	PlaceholderBody = "🎤 Sending voice message..."
	VoiceLabel      = "🎤 Voice Message"
)

// MicErrorWindow is how long a microphone failure stays visible.
const MicErrorWindow = 3 * time.Second

// QuickPrompts are offered while the conversation is new.
var QuickPrompts = []string{
	"I'm feeling anxious",
	"Help me ground myself",
	"I just need to vent",
}

// quickPromptTurns is the session length below which quick prompts show.
const quickPromptTurns = 3

// Gateway is the conversational part of the AI gateway.
type Gateway interface {
	SendMessage(ctx context.Context, history []api.HistoryEntry, text, audioBase64 string) api.Reply
}

// State is the turn-taking state of a Controller.
type State int

const (
	Idle State = iota
	AwaitingResponse
	Recording
	RecordingFailed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case AwaitingResponse:
		return "awaiting-response"
	case Recording:
		return "recording"
	case RecordingFailed:
		return "recording-failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Messages carry the id of the controller that scheduled them.
type (
	replyMsg struct {
		owner         string
		placeholderID string
		reply         api.Reply
	}
	micAcquiredMsg struct {
		owner    string
		stream   media.Stream
		recorder media.Recorder
		err      error
	}
	audioCapturedMsg struct {
		owner string
		audio []byte
		err   error
	}
	micErrorExpiredMsg struct {
		owner string
		seq   int
	}
)

// Controller is the turn-taking state machine of one conversation. It owns
// its Session and, while recording, the microphone stream. All methods run on
// the event loop; slow work is returned as commands.
type Controller struct {
	id      string
	gateway Gateway
	device  media.Device
	session *session.Session

	state     State
	acquiring bool
	stream    media.Stream
	recorder  media.Recorder
	errSeq    int
	closed    atomic.Bool
}

// NewController returns a controller whose session holds the greeting.
func NewController(gw Gateway, dev media.Device, opts ...session.Option) *Controller {
	c := &Controller{
		id:      uuid.NewString(),
		gateway: gw,
		device:  dev,
		session: session.New(opts...),
	}
	c.session.Append(session.AuthorAssistant, Greeting)
	return c
}

// ID identifies this controller instance.
func (c *Controller) ID() string { return c.id }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Session returns the conversation log.
func (c *Controller) Session() *session.Session { return c.session }

// Acquiring reports whether the microphone is being opened.
func (c *Controller) Acquiring() bool { return c.acquiring }

// CanSubmit reports whether text input is accepted. A microphone error does
// not block typing.
func (c *Controller) CanSubmit() bool {
	return (c.state == Idle || c.state == RecordingFailed) && !c.acquiring
}

// ShowQuickPrompts reports whether quick prompts should be offered.
func (c *Controller) ShowQuickPrompts() bool {
	return c.session.Len() < quickPromptTurns && c.CanSubmit()
}

// SubmitText sends text as a user turn. Blank text and text submitted while
// another action is in progress are ignored.
func (c *Controller) SubmitText(text string) tea.Cmd {
	if !c.CanSubmit() {
		log.Printf("[CHAT] ignoring submit in state %v", c.state)
		return nil
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	history := c.history()
	c.session.Append(session.AuthorUser, text)
	c.state = AwaitingResponse
	return c.send(history, text, "", "")
}

// StartRecording opens the microphone and starts recording.
func (c *Controller) StartRecording() tea.Cmd {
	if !c.CanSubmit() {
		log.Printf("[CHAT] ignoring start recording in state %v", c.state)
		return nil
	}
	c.acquiring = true
	owner, dev, closed := c.id, c.device, &c.closed
	return func() tea.Msg {
		if dev == nil {
			return micAcquiredMsg{owner: owner, err: media.ErrUnavailable}
		}
		ctx := context.Background()
		stream, err := dev.Acquire(ctx, media.Constraints{Audio: true})
		if err != nil {
			return micAcquiredMsg{owner: owner, err: err}
		}
		rec, err := stream.RecordAudio(ctx)
		if err != nil {
			stream.Close()
			return micAcquiredMsg{owner: owner, err: err}
		}
		if closed.Load() {
			release(stream, rec)
			return micAcquiredMsg{owner: owner, err: media.ErrClosed}
		}
		return micAcquiredMsg{owner: owner, stream: stream, recorder: rec}
	}
}

// StopRecording finalizes the recording and sends it as a voice message.
func (c *Controller) StopRecording() tea.Cmd {
	if c.state != Recording {
		return nil
	}
	c.state = AwaitingResponse
	owner, stream, rec := c.id, c.stream, c.recorder
	c.stream, c.recorder = nil, nil
	return func() tea.Msg {
		audio, err := rec.Stop()
		stream.Close()
		return audioCapturedMsg{owner: owner, audio: audio, err: err}
	}
}

// Handle applies a message scheduled by a controller. It reports whether the
// message belonged to the chat flow.
func (c *Controller) Handle(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case replyMsg:
		if msg.owner == c.id {
			c.applyReply(msg)
		}
		return nil, true
	case micAcquiredMsg:
		if msg.owner != c.id {
			release(msg.stream, msg.recorder)
			return nil, true
		}
		c.acquiring = false
		if msg.err != nil {
			log.Printf("[CHAT] microphone unavailable: %v", msg.err)
			return c.failRecording(), true
		}
		if c.closed.Load() {
			release(msg.stream, msg.recorder)
			return nil, true
		}
		c.stream, c.recorder = msg.stream, msg.recorder
		c.state = Recording
		log.Println("[CHAT] recording")
		return nil, true
	case audioCapturedMsg:
		if msg.owner != c.id || c.state != AwaitingResponse {
			return nil, true
		}
		if msg.err != nil || len(msg.audio) == 0 {
			log.Printf("[CHAT] no audio captured: %v", msg.err)
			return c.failRecording(), true
		}
		history := c.history()
		placeholder := c.session.Append(session.AuthorUser, PlaceholderBody)
		return c.send(history, "", media.Base64(msg.audio), placeholder.ID), true
	case micErrorExpiredMsg:
		if msg.owner == c.id && msg.seq == c.errSeq && c.state == RecordingFailed {
			c.state = Idle
		}
		return nil, true
	}
	return nil, false
}

// ReleaseOrphan releases the microphone carried by a chat message that live
// does not own, and reports whether it did. live is nil when no chat view is
// mounted.
func ReleaseOrphan(msg tea.Msg, live *Controller) bool {
	m, ok := msg.(micAcquiredMsg)
	if !ok || (live != nil && m.owner == live.id) {
		return false
	}
	log.Printf("[CHAT] releasing microphone of unmounted chat %s", m.owner)
	release(m.stream, m.recorder)
	return true
}

// Teardown stops any recording and releases the microphone.
func (c *Controller) Teardown() {
	c.closed.Store(true)
	release(c.stream, c.recorder)
	c.stream, c.recorder = nil, nil
}

func (c *Controller) applyReply(msg replyMsg) {
	if msg.placeholderID != "" {
		body := VoiceLabel
		if msg.reply.Transcript != "" {
			body = "🎤 \"" + msg.reply.Transcript + "\""
		}
		if err := c.session.Patch(msg.placeholderID, body); err != nil {
			log.Printf("[CHAT] %v", err)
		}
	}
	c.session.Append(session.AuthorAssistant, msg.reply.Text)
	c.state = Idle
}

func (c *Controller) failRecording() tea.Cmd {
	c.state = RecordingFailed
	c.errSeq++
	owner, seq := c.id, c.errSeq
	return tea.Tick(MicErrorWindow, func(time.Time) tea.Msg {
		return micErrorExpiredMsg{owner: owner, seq: seq}
	})
}

// send dispatches one gateway call. A panicking gateway degrades to the
// failure reply like any other gateway failure.
func (c *Controller) send(history []api.HistoryEntry, text, audio, placeholderID string) tea.Cmd {
	owner, gw := c.id, c.gateway
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("[CHAT] gateway panic: %v", r)
				msg = replyMsg{owner: owner, placeholderID: placeholderID, reply: api.Reply{Text: api.ChatFailureReply}}
			}
		}()
		if gw == nil {
			return replyMsg{owner: owner, placeholderID: placeholderID, reply: api.Reply{Text: api.ChatOfflineReply}}
		}
		reply := gw.SendMessage(context.Background(), history, text, audio)
		return replyMsg{owner: owner, placeholderID: placeholderID, reply: reply}
	}
}

// history converts the session into gateway history.
func (c *Controller) history() []api.HistoryEntry {
	turns := c.session.Turns()
	out := make([]api.HistoryEntry, 0, len(turns))
	for _, t := range turns {
		role := api.RoleUser
		if t.Author == session.AuthorAssistant {
			role = api.RoleModel
		}
		out = append(out, api.HistoryEntry{Role: role, Text: t.Body})
	}
	return out
}

func release(stream media.Stream, rec media.Recorder) {
	if rec != nil {
		if _, err := rec.Stop(); err != nil {
			log.Printf("[CHAT] stop recorder: %v", err)
		}
	}
	if stream != nil {
		stream.Close()
	}
}
