package api

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/tmc/lighthouse/internal/testing/testlog"
)

func TestGatewaySpans(t *testing.T) {
	testlog.Setup(t)
	var buf bytes.Buffer
	shutdown, err := SetupTracing(&buf)
	if err != nil {
		t.Fatalf("SetupTracing() error = %v", err)
	}
	t.Cleanup(func() { otel.SetTracerProvider(noop.NewTracerProvider()) })

	ok := newFakeClient(&fakeBackend{reply: "fine"})
	ok.SendMessage(context.Background(), nil, "hi", "")
	failing := newFakeClient(&fakeBackend{err: errors.New("remote unavailable")})
	failing.GenerateAffirmation(context.Background())

	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown() error = %v", err)
	}
	out := buf.String()
	for _, want := range []string{"gateway.send_message", "gateway.affirmation", "remote unavailable", "gateway.backend"} {
		if !strings.Contains(out, want) {
			t.Errorf("trace output missing %q", want)
		}
	}
}
