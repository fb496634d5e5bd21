// Package checkin implements the camera and voice emotion check-in.
package checkin

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/tmc/lighthouse/media"
)

// Seconds is the length of one check-in recording.
const Seconds = 5

// ErrorMessage is shown when no camera can be acquired.
const ErrorMessage = "Unable to access camera. Please check permissions or device connection."

// State is the phase of a check-in.
type State int

const (
	Initializing State = iota
	Ready
	Recording
	Analyzing
	Result
	Error
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Recording:
		return "recording"
	case Analyzing:
		return "analyzing"
	case Result:
		return "result"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Messages carry the id of the controller that scheduled them and, where a
// recording is involved, the run they belong to.
type (
	probedMsg struct {
		owner   string
		stream  media.Stream
		outcome media.Outcome
		err     error
	}
	recorderStartedMsg struct {
		owner    string
		run      int
		recorder media.Recorder
		err      error
	}
	tickMsg struct {
		owner string
		run   int
	}
	resultMsg struct {
		owner string
		run   int
		text  string
	}
)

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithInterval sets the countdown step. It defaults to one second.
func WithInterval(d time.Duration) ControllerOption {
	return func(c *Controller) { c.interval = d }
}

// WithStrategies replaces the probe strategies.
func WithStrategies(s []media.Strategy) ControllerOption {
	return func(c *Controller) { c.strategies = s }
}

// Controller is the check-in state machine. It owns the camera stream from a
// successful probe until Teardown. All methods run on the event loop.
type Controller struct {
	id         string
	analyzer   Analyzer
	device     media.Device
	interval   time.Duration
	strategies []media.Strategy

	state     State
	outcome   media.Outcome
	stream    media.Stream
	recorder  media.Recorder
	countdown Countdown
	run       int
	result    string
	closed    atomic.Bool
}

// NewController returns a controller in the Initializing state.
func NewController(a Analyzer, dev media.Device, opts ...ControllerOption) *Controller {
	c := &Controller{
		id:         uuid.NewString(),
		analyzer:   a,
		device:     dev,
		interval:   time.Second,
		strategies: media.DefaultStrategies,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID identifies this controller instance.
func (c *Controller) ID() string { return c.id }

// State returns the current phase.
func (c *Controller) State() State { return c.state }

// Outcome returns the probe outcome.
func (c *Controller) Outcome() media.Outcome { return c.outcome }

// HasAudio reports whether the probe acquired a microphone.
func (c *Controller) HasAudio() bool { return c.outcome == media.Full }

// Remaining returns the seconds left in the current recording.
func (c *Controller) Remaining() int { return c.countdown.Remaining() }

// Result returns the text of the last analysis.
func (c *Controller) Result() string { return c.result }

// Init probes the camera. It is called once; the outcome is kept for the
// life of the controller.
func (c *Controller) Init() tea.Cmd {
	if c.state != Initializing {
		return nil
	}
	owner, dev, strategies, closed := c.id, c.device, c.strategies, &c.closed
	return func() tea.Msg {
		if dev == nil {
			return probedMsg{owner: owner, err: media.ErrUnavailable}
		}
		stream, outcome, err := media.Probe(context.Background(), dev, strategies)
		if err == nil && closed.Load() {
			stream.Close()
			return probedMsg{owner: owner, err: media.ErrClosed}
		}
		return probedMsg{owner: owner, stream: stream, outcome: outcome, err: err}
	}
}

// Start begins a recording. It is ignored outside the Ready state.
func (c *Controller) Start() tea.Cmd {
	if c.state != Ready {
		log.Printf("[CHECKIN] ignoring start in state %v", c.state)
		return nil
	}
	c.state = Recording
	c.run++
	c.countdown = NewCountdown(Seconds)
	c.recorder = nil
	log.Printf("[CHECKIN] recording run %d (audio=%v)", c.run, c.HasAudio())

	cmds := []tea.Cmd{c.tick()}
	if c.HasAudio() {
		owner, run, stream := c.id, c.run, c.stream
		cmds = append(cmds, func() tea.Msg {
			rec, err := stream.RecordAudio(context.Background())
			return recorderStartedMsg{owner: owner, run: run, recorder: rec, err: err}
		})
	}
	return tea.Batch(cmds...)
}

// Stop ends the recording and requests the analysis. It is ignored outside
// the Recording state.
func (c *Controller) Stop() tea.Cmd {
	if c.state != Recording {
		return nil
	}
	c.state = Analyzing
	owner, run, stream, rec, a := c.id, c.run, c.stream, c.recorder, c.analyzer
	c.recorder = nil
	return func() tea.Msg {
		ctx := context.Background()
		p := collect(ctx, stream, rec)
		return resultMsg{owner: owner, run: run, text: analyze(ctx, a, p)}
	}
}

// Reset re-arms the controller after a result. The camera is not re-probed.
func (c *Controller) Reset() {
	if c.state != Result {
		return
	}
	c.result = ""
	c.state = Ready
}

// Handle applies a message scheduled by a controller. It reports whether the
// message belonged to the check-in flow.
func (c *Controller) Handle(msg tea.Msg) (tea.Cmd, bool) {
	switch msg := msg.(type) {
	case probedMsg:
		if msg.owner != c.id || c.closed.Load() {
			closeStream(msg.stream)
			return nil, true
		}
		if msg.err != nil {
			log.Printf("[CHECKIN] camera unavailable: %v", msg.err)
			c.state = Error
			return nil, true
		}
		c.stream, c.outcome = msg.stream, msg.outcome
		c.state = Ready
		return nil, true
	case recorderStartedMsg:
		if msg.owner != c.id || msg.run != c.run || c.state != Recording || c.closed.Load() {
			stopRecorder(msg.recorder)
			return nil, true
		}
		if msg.err != nil {
			log.Printf("[CHECKIN] audio unavailable, visual only: %v", msg.err)
			return nil, true
		}
		c.recorder = msg.recorder
		return nil, true
	case tickMsg:
		if msg.owner != c.id || msg.run != c.run || c.state != Recording {
			return nil, true
		}
		if c.countdown.Tick() {
			return c.Stop(), true
		}
		return c.tick(), true
	case resultMsg:
		if msg.owner != c.id || msg.run != c.run || c.state != Analyzing {
			return nil, true
		}
		c.result = msg.text
		c.state = Result
		return nil, true
	}
	return nil, false
}

// ReleaseOrphan releases the stream or recorder carried by a check-in
// message that live does not own, and reports whether it did. live is nil
// when no check-in view is mounted.
func ReleaseOrphan(msg tea.Msg, live *Controller) bool {
	switch msg := msg.(type) {
	case probedMsg:
		if live != nil && msg.owner == live.id {
			return false
		}
		log.Printf("[CHECKIN] releasing camera of unmounted check-in %s", msg.owner)
		closeStream(msg.stream)
		return true
	case recorderStartedMsg:
		if live != nil && msg.owner == live.id {
			return false
		}
		stopRecorder(msg.recorder)
		return true
	}
	return false
}

// Teardown stops any recording and releases the camera.
func (c *Controller) Teardown() {
	c.closed.Store(true)
	stopRecorder(c.recorder)
	closeStream(c.stream)
	c.recorder, c.stream = nil, nil
}

func (c *Controller) tick() tea.Cmd {
	owner, run := c.id, c.run
	return tea.Tick(c.interval, func(time.Time) tea.Msg {
		return tickMsg{owner: owner, run: run}
	})
}

func stopRecorder(rec media.Recorder) {
	if rec == nil {
		return
	}
	if _, err := rec.Stop(); err != nil {
		log.Printf("[CHECKIN] stop recorder: %v", err)
	}
}

func closeStream(stream media.Stream) {
	if stream == nil {
		return
	}
	if err := stream.Close(); err != nil {
		log.Printf("[CHECKIN] close stream: %v", err)
	}
}
