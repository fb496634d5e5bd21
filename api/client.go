package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	otelcodes "go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/status"
)

// DefaultTimeout bounds a single gateway call.
const DefaultTimeout = 45 * time.Second

// DefaultLocation is the Vertex AI region used when none is configured.
const DefaultLocation = "us-central1"

// Mode describes how the gateway reaches the model.
type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
	ModeVertex  Mode = "vertex"
)

// errNotInitialized is returned when a configured backend could not be created.
var errNotInitialized = errors.New("gateway backend not initialized")

// Client is the external AI gateway. Its three operations never return
// errors: every failure resolves to one of the fixed reply strings.
//
// A Client is safe for use from concurrent commands.
type Client struct {
	APIKey            string // API key for the generative language API
	Project           string // Vertex AI project, used when APIKey is empty
	Location          string // Vertex AI region
	ModelName         string
	SystemInstruction string
	Timeout           time.Duration

	mu            sync.Mutex
	backend       Backend
	initialized   bool
	initErr       error
	httpTransport http.RoundTripper
}

// SetHTTPTransport sets a custom HTTP transport for the API key backend.
// It must be called before InitClient.
func (c *Client) SetHTTPTransport(transport http.RoundTripper) {
	c.httpTransport = transport
}

// SetBackend installs b as the backend, bypassing credential based selection.
func (c *Client) SetBackend(b Backend) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.backend = b
	c.initialized = true
	c.initErr = nil
}

// InitClient selects and creates the backend: an API key wins, then a Vertex
// project; with neither the client stays offline and opens no connection.
func (c *Client) InitClient(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initLocked(ctx)
}

func (c *Client) initLocked(ctx context.Context) error {
	if c.initialized {
		return c.initErr
	}
	c.initialized = true

	switch {
	case c.APIKey != "":
		log.Println("[GATEWAY] Using provided API Key.")
		b, err := newLanguageBackend(ctx, c.APIKey, c.httpTransport)
		if err != nil {
			c.initErr = err
			return err
		}
		c.backend = b
	case c.Project != "":
		if c.Location == "" {
			c.Location = DefaultLocation
		}
		b, err := newVertexBackend(ctx, c.Project, c.Location)
		if err != nil {
			c.initErr = err
			return err
		}
		c.backend = b
	default:
		log.Println("[GATEWAY] No API key or Vertex project configured, running offline.")
		return nil
	}
	log.Printf("[GATEWAY] %s backend initialized successfully.", c.backend.Name())
	return nil
}

// Mode reports how the gateway is configured.
func (c *Client) Mode() Mode {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch {
	case c.backend != nil && c.backend.Name() == "vertex":
		return ModeVertex
	case c.backend != nil, c.APIKey != "":
		return ModeOnline
	case c.Project != "":
		return ModeVertex
	default:
		return ModeOffline
	}
}

// Model returns the configured model name or the default.
func (c *Client) Model() string {
	if c.ModelName == "" {
		return DefaultModel
	}
	return c.ModelName
}

func (c *Client) offline() bool {
	return c.Mode() == ModeOffline
}

// Close releases the backend connection.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.backend == nil {
		return nil
	}
	err := c.backend.Close()
	c.backend = nil
	c.initialized = false
	return err
}

// generate performs one traced backend call bounded by the client timeout.
func (c *Client) generate(ctx context.Context, op string, req GenerateRequest) (text string, err error) {
	c.mu.Lock()
	initErr := c.initLocked(ctx)
	backend := c.backend
	c.mu.Unlock()
	if backend == nil {
		if initErr == nil {
			initErr = errNotInitialized
		}
		return "", fmt.Errorf("%s: %w", op, initErr)
	}

	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ctx, span := tracer().Start(ctx, "gateway."+op, trace.WithAttributes(
		attribute.String("gateway.backend", backend.Name()),
		attribute.String("gateway.model", req.Model),
		attribute.Int("gateway.contents", len(req.Contents)),
	))
	defer span.End()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s: backend panic: %v", op, r)
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(otelcodes.Error, err.Error())
			log.Printf("[GATEWAY] %s failed (code=%s): %v", op, status.Code(err), err)
			return
		}
		span.SetAttributes(attribute.Int("gateway.reply_len", len(text)))
	}()

	log.Printf("[GATEWAY] %s: %s", op, describeRequest(req))
	return backend.Generate(ctx, req)
}
