package lighthouse

import (
	"errors"
	"time"

	"github.com/tmc/lighthouse/media"
	"github.com/tmc/lighthouse/mood"
	"github.com/tmc/lighthouse/safetyplan"
	"github.com/tmc/lighthouse/settings"
)

// Option configures a Model.
type Option func(*Model) error

// WithGateway sets the AI gateway used by every view.
func WithGateway(gw Gateway) Option {
	return func(m *Model) error {
		if gw == nil {
			return errors.New("nil gateway")
		}
		m.gateway = gw
		return nil
	}
}

// WithDevice sets the camera and microphone source.
func WithDevice(dev media.Device) Option {
	return func(m *Model) error {
		m.device = dev
		return nil
	}
}

// WithClock sets the clock used for greetings, timestamps and mood entries.
func WithClock(now func() time.Time) Option {
	return func(m *Model) error {
		if now == nil {
			return errors.New("nil clock")
		}
		m.now = now
		return nil
	}
}

// WithLogo enables or disables the logo display.
func WithLogo(showLogo bool) Option {
	return func(m *Model) error {
		m.showLogo = showLogo
		return nil
	}
}

// WithAffirmationOnStart enables or disables generating an affirmation at launch.
func WithAffirmationOnStart(enabled bool) Option {
	return func(m *Model) error {
		m.affirmOnStart = enabled
		return nil
	}
}

// WithMarkdown enables or disables markdown rendering of replies.
func WithMarkdown(enabled bool) Option {
	return func(m *Model) error {
		m.markdown = enabled
		return nil
	}
}

// WithSafetyPlan sets the plan shown in the safety plan view.
func WithSafetyPlan(plan safetyplan.Plan) Option {
	return func(m *Model) error {
		m.plan = plan.Merge(safetyplan.DefaultPlan())
		return nil
	}
}

// WithMoodLog sets the mood log. It outlives the mood view.
func WithMoodLog(l *mood.Log) Option {
	return func(m *Model) error {
		if l == nil {
			return errors.New("nil mood log")
		}
		m.moodLog = l
		return nil
	}
}

// WithSettings sets the values shown in the settings panel.
func WithSettings(panel settings.Model) Option {
	return func(m *Model) error {
		m.settings = panel
		return nil
	}
}
