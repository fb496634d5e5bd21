package lighthouse

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/lighthouse/api"
	"github.com/tmc/lighthouse/chat"
	"github.com/tmc/lighthouse/internal/testing/testlog"
	"github.com/tmc/lighthouse/session"
)

func TestRunLineMode(t *testing.T) {
	testlog.Setup(t)
	gw := &fakeGateway{reply: "That sounds heavy. I'm here."}
	var out bytes.Buffer

	s, err := RunLineMode(context.Background(), gw, strings.NewReader("I'm anxious\n\n   \nthanks\n"), &out)
	require.NoError(t, err)

	turns := s.Turns()
	require.Len(t, turns, 5)
	assert.Equal(t, chat.Greeting, turns[0].Body)
	assert.Equal(t, session.AuthorUser, turns[1].Author)
	assert.Equal(t, "I'm anxious", turns[1].Body)
	assert.Equal(t, "That sounds heavy. I'm here.", turns[2].Body)
	assert.Equal(t, "thanks", turns[3].Body)
	assert.Equal(t, 3, strings.Count(out.String(), "3AM Friend:"))
}

func TestRunLineModeOffline(t *testing.T) {
	testlog.Setup(t)
	var out bytes.Buffer
	s, err := RunLineMode(context.Background(), &api.Client{}, strings.NewReader("hello\n"), &out)
	require.NoError(t, err)
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, api.ChatOfflineReply, last.Body)
	assert.Contains(t, out.String(), api.ChatOfflineReply)
}

func TestRunLineModeCanceled(t *testing.T) {
	testlog.Setup(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, err := RunLineMode(ctx, &fakeGateway{}, strings.NewReader("hello\n"), &bytes.Buffer{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, s.Len())
}
