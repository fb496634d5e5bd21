package api

import (
	"context"
	"sync"
)

// fakeBackend records requests and replies with a canned result.
type fakeBackend struct {
	mu    sync.Mutex
	reply string
	err   error
	panic bool
	block bool // wait for the context to end
	reqs  []GenerateRequest
}

func (f *fakeBackend) Name() string { return "fake" }

func (f *fakeBackend) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()
	if f.panic {
		panic("backend exploded")
	}
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

func (f *fakeBackend) Close() error { return nil }

func (f *fakeBackend) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reqs)
}

func (f *fakeBackend) last() GenerateRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.reqs[len(f.reqs)-1]
}

func newFakeClient(f *fakeBackend) *Client {
	c := &Client{}
	c.SetBackend(f)
	return c
}
