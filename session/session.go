// Package session holds the in-memory conversation log for one chat.
//
// A Session is append-only. The single sanctioned mutation of an existing
// Turn is Patch, which replaces the body of a turn located by its id and never
// changes its position.
package session

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// ErrTurnNotFound is returned by Patch for an unknown turn id.
var ErrTurnNotFound = errors.New("turn not found")

// Author identifies who wrote a turn.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Turn is one message in a conversation.
type Turn struct {
	ID        string    `json:"id"`
	Author    Author    `json:"author"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the ordered log of turns for one conversation. It is not safe
// for concurrent use; it is owned by a single controller on the event loop.
type Session struct {
	ID        string
	CreatedAt time.Time

	turns   []Turn
	index   map[string]int
	entropy io.Reader
	now     func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the time source used for turn timestamps and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		if now != nil {
			s.now = now
		}
	}
}

// New returns an empty session.
func New(opts ...Option) *Session {
	s := &Session{
		ID:      uuid.NewString(),
		index:   make(map[string]int),
		entropy: ulid.Monotonic(rand.Reader, 0),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.CreatedAt = s.now()
	return s
}

// Append adds a turn at the end of the log and returns it.
func (s *Session) Append(author Author, body string) Turn {
	now := s.now()
	t := Turn{
		ID:        s.newID(now),
		Author:    author,
		Body:      body,
		CreatedAt: now,
	}
	s.index[t.ID] = len(s.turns)
	s.turns = append(s.turns, t)
	return t
}

func (s *Session) newID(now time.Time) string {
	id, err := ulid.New(ulid.Timestamp(now), s.entropy)
	if err != nil {
		// Entropy overflow within one millisecond.
		id = ulid.Make()
	}
	if _, dup := s.index[id.String()]; dup {
		id = ulid.Make()
	}
	return id.String()
}

// Patch replaces the body of the turn with the given id in place.
func (s *Session) Patch(id, body string) error {
	i, ok := s.index[id]
	if !ok {
		return fmt.Errorf("patch %s: %w", id, ErrTurnNotFound)
	}
	s.turns[i].Body = body
	return nil
}

// Get returns the turn with the given id.
func (s *Session) Get(id string) (Turn, bool) {
	i, ok := s.index[id]
	if !ok {
		return Turn{}, false
	}
	return s.turns[i], true
}

// Turns returns a copy of the turns in order.
func (s *Session) Turns() []Turn {
	out := make([]Turn, len(s.turns))
	copy(out, s.turns)
	return out
}

// Len returns the number of turns.
func (s *Session) Len() int { return len(s.turns) }

// Last returns the most recent turn.
func (s *Session) Last() (Turn, bool) {
	if len(s.turns) == 0 {
		return Turn{}, false
	}
	return s.turns[len(s.turns)-1], true
}
