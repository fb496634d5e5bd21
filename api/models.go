package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"slices"
	"strings"

	language "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// ErrNoAPIKey is returned by operations that need the API key backend.
var ErrNoAPIKey = errors.New("api key required")

// knownModels is the list offered when the model service cannot be queried.
var knownModels = []string{
	"gemini-2.5-flash",
	"gemini-2.5-pro",
	"gemini-2.0-flash",
	"gemini-2.0-flash-lite",
}

// ModelInfo describes a model that can serve conversational turns.
type ModelInfo struct {
	Name        string // without the "models/" prefix
	DisplayName string
	Description string
}

// ListModels returns the models that support content generation, optionally
// filtered by a case-insensitive substring. It needs an API key.
func (c *Client) ListModels(ctx context.Context, filter string) ([]ModelInfo, error) {
	if c.APIKey == "" {
		return nil, ErrNoAPIKey
	}
	opts := []option.ClientOption{option.WithAPIKey(c.APIKey)}
	if c.httpTransport != nil {
		opts = append(opts, option.WithHTTPClient(httpClient(c.httpTransport)))
	}
	modelClient, err := language.NewModelClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create model client: %w", err)
	}
	defer modelClient.Close()

	var models []*generativelanguagepb.Model
	it := modelClient.ListModels(ctx, &generativelanguagepb.ListModelsRequest{})
	for {
		m, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("error iterating models: %w", err)
		}
		models = append(models, m)
	}
	log.Printf("[GATEWAY] Listed %d models", len(models))
	return filterModels(models, filter), nil
}

// filterModels keeps generateContent capable models matching filter.
func filterModels(models []*generativelanguagepb.Model, filter string) []ModelInfo {
	filter = strings.ToLower(filter)
	var out []ModelInfo
	for _, m := range models {
		if !slices.Contains(m.GetSupportedGenerationMethods(), "generateContent") {
			continue
		}
		name := strings.TrimPrefix(m.GetName(), "models/")
		if filter != "" && !strings.Contains(strings.ToLower(name), filter) {
			continue
		}
		out = append(out, ModelInfo{Name: name, DisplayName: m.GetDisplayName(), Description: m.GetDescription()})
	}
	return out
}

// KnownModels returns the built-in model names matching filter.
func KnownModels(filter string) []string {
	filter = strings.ToLower(filter)
	var out []string
	for _, m := range knownModels {
		if filter == "" || strings.Contains(m, filter) {
			out = append(out, m)
		}
	}
	return out
}
