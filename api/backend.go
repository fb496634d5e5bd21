package api

import (
	"context"
	"fmt"
	"strings"
)

// Role tags a history entry for the model.
type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// Mime types of the media payloads sent through the gateway.
const (
	AudioMimeType = "audio/wav"
	ImageMimeType = "image/jpeg"
)

// HistoryEntry is one prior turn of a conversation.
type HistoryEntry struct {
	Role Role
	Text string
}

// Part is a piece of request content: either text or inline binary data.
type Part struct {
	Text     string
	MimeType string
	Data     []byte
}

// IsMedia reports whether the part carries inline data.
func (p Part) IsMedia() bool { return len(p.Data) > 0 }

// Content is a role-tagged list of parts.
type Content struct {
	Role  Role
	Parts []Part
}

// GenerateRequest is a backend-neutral content generation request.
type GenerateRequest struct {
	Model             string
	SystemInstruction string
	Contents          []Content
}

// Backend performs a single unary generation call.
type Backend interface {
	Name() string
	Generate(ctx context.Context, req GenerateRequest) (string, error)
	Close() error
}

// normalizeModelName returns the model name with the "models/" prefix the
// generative language API expects.
func normalizeModelName(name string) string {
	if strings.HasPrefix(name, "models/") {
		return name
	}
	return "models/" + name
}

// buildContents turns prior history and the new user parts into the ordered
// content list. Leading model turns are dropped: a conversation sent to the
// API must open with a user turn.
func buildContents(history []HistoryEntry, parts []Part) []Content {
	contents := make([]Content, 0, len(history)+1)
	for _, h := range history {
		if len(contents) == 0 && h.Role != RoleUser {
			continue
		}
		if strings.TrimSpace(h.Text) == "" {
			continue
		}
		contents = append(contents, Content{Role: h.Role, Parts: []Part{{Text: h.Text}}})
	}
	return append(contents, Content{Role: RoleUser, Parts: parts})
}

// describeRequest summarizes a request for logs without payload bytes.
func describeRequest(req GenerateRequest) string {
	var media int
	for _, c := range req.Contents {
		for _, p := range c.Parts {
			if p.IsMedia() {
				media++
			}
		}
	}
	return fmt.Sprintf("model=%s contents=%d media_parts=%d", req.Model, len(req.Contents), media)
}
