package api

import (
	"context"
	"fmt"
	"log"
	"strings"

	"cloud.google.com/go/vertexai/genai"
)

// vertexBackend talks to Vertex AI using application default credentials.
type vertexBackend struct {
	client *genai.Client
}

func newVertexBackend(ctx context.Context, project, location string) (*vertexBackend, error) {
	log.Printf("[GATEWAY] Initializing Vertex AI client for project %s in %s", project, location)
	client, err := genai.NewClient(ctx, project, location)
	if err != nil {
		return nil, fmt.Errorf("failed to create vertex client: %w", err)
	}
	return &vertexBackend{client: client}, nil
}

func (b *vertexBackend) Name() string { return "vertex" }

func (b *vertexBackend) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	model := b.client.GenerativeModel(strings.TrimPrefix(req.Model, "models/"))
	if req.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.SystemInstruction)}}
	}
	if len(req.Contents) == 0 {
		return "", fmt.Errorf("vertex: empty request")
	}

	cs := model.StartChat()
	last := len(req.Contents) - 1
	for _, c := range req.Contents[:last] {
		cs.History = append(cs.History, &genai.Content{Role: string(c.Role), Parts: toVertexParts(c.Parts)})
	}
	resp, err := cs.SendMessage(ctx, toVertexParts(req.Contents[last].Parts)...)
	if err != nil {
		return "", fmt.Errorf("vertex send message: %w", err)
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 && resp.Candidates[0].Content != nil {
		for _, part := range resp.Candidates[0].Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return strings.TrimSpace(text.String()), nil
}

func (b *vertexBackend) Close() error {
	if b.client == nil {
		return nil
	}
	log.Println("[GATEWAY] Closing Vertex AI client.")
	err := b.client.Close()
	b.client = nil
	return err
}

func toVertexParts(parts []Part) []genai.Part {
	out := make([]genai.Part, 0, len(parts))
	for _, p := range parts {
		if p.IsMedia() {
			out = append(out, genai.Blob{MIMEType: p.MimeType, Data: p.Data})
			continue
		}
		out = append(out, genai.Text(p.Text))
	}
	return out
}
