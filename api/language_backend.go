package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	language "cloud.google.com/go/ai/generativelanguage/apiv1beta"
	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/encoding/prototext"
	"google.golang.org/protobuf/proto"
)

// languageBackend talks to the generative language API with an API key.
type languageBackend struct {
	genAI *language.GenerativeClient
}

func newLanguageBackend(ctx context.Context, apiKey string, transport http.RoundTripper) (*languageBackend, error) {
	opts := []option.ClientOption{option.WithAPIKey(apiKey)}
	if transport != nil {
		log.Println("[GATEWAY] Using custom HTTP transport")
		opts = append(opts, option.WithHTTPClient(httpClient(transport)))
	}

	loggableOpts := []string{}
	for _, o := range opts {
		optStr := fmt.Sprintf("%T", o)
		if strings.Contains(optStr, "withAPIKey") || strings.Contains(optStr, "WithAPIKey") {
			optStr = "WithAPIKey(****)"
		}
		loggableOpts = append(loggableOpts, optStr)
	}
	log.Printf("[GATEWAY] Initializing GenerativeClient with options: %v", loggableOpts)

	client, err := language.NewGenerativeClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create generative client: %w", err)
	}
	return &languageBackend{genAI: client}, nil
}

func httpClient(transport http.RoundTripper) *http.Client {
	return &http.Client{Transport: transport}
}

func (b *languageBackend) Name() string { return "generativelanguage" }

func (b *languageBackend) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	pbReq := toLanguageRequest(req)
	if os.Getenv("LIGHTHOUSE_DEBUG") != "" {
		log.Printf("[GATEWAY] Sending request: %s", prototext.Format(redactRequest(pbReq)))
	}
	resp, err := b.genAI.GenerateContent(ctx, pbReq)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return ExtractOutput(resp), nil
}

func (b *languageBackend) Close() error {
	if b.genAI == nil {
		return nil
	}
	log.Println("[GATEWAY] Closing GenerativeClient connection.")
	err := b.genAI.Close()
	b.genAI = nil
	return err
}

// toLanguageRequest converts a GenerateRequest into its protobuf form.
func toLanguageRequest(req GenerateRequest) *generativelanguagepb.GenerateContentRequest {
	pbReq := &generativelanguagepb.GenerateContentRequest{
		Model: normalizeModelName(req.Model),
	}
	if req.SystemInstruction != "" {
		pbReq.SystemInstruction = &generativelanguagepb.Content{
			Parts: []*generativelanguagepb.Part{{
				Data: &generativelanguagepb.Part_Text{Text: req.SystemInstruction},
			}},
		}
	}
	for _, c := range req.Contents {
		content := &generativelanguagepb.Content{Role: string(c.Role)}
		for _, p := range c.Parts {
			if p.IsMedia() {
				content.Parts = append(content.Parts, &generativelanguagepb.Part{
					Data: &generativelanguagepb.Part_InlineData{
						InlineData: &generativelanguagepb.Blob{MimeType: p.MimeType, Data: p.Data},
					},
				})
				continue
			}
			content.Parts = append(content.Parts, &generativelanguagepb.Part{
				Data: &generativelanguagepb.Part_Text{Text: p.Text},
			})
		}
		pbReq.Contents = append(pbReq.Contents, content)
	}
	return pbReq
}

// redactRequest returns a copy of req with inline data replaced by its size.
func redactRequest(req *generativelanguagepb.GenerateContentRequest) *generativelanguagepb.GenerateContentRequest {
	out := proto.Clone(req).(*generativelanguagepb.GenerateContentRequest)
	for _, c := range out.Contents {
		for _, p := range c.Parts {
			if blob := p.GetInlineData(); blob != nil {
				blob.Data = []byte(fmt.Sprintf("<%d bytes>", len(blob.Data)))
			}
		}
	}
	return out
}

// ExtractOutput extracts the text of the first candidate of a response.
// Prompt feedback is logged, never returned as reply text.
func ExtractOutput(resp *generativelanguagepb.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}
	if os.Getenv("LIGHTHOUSE_DEBUG") != "" {
		log.Printf("[GATEWAY] Received raw response: %s", prototext.Format(resp))
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 {
		candidate := resp.Candidates[0]
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if t := part.GetText(); t != "" {
					text.WriteString(t)
				}
				if inline := part.GetInlineData(); inline != nil {
					log.Printf("[GATEWAY] Ignoring inline data part (%s, %d bytes)", inline.MimeType, len(inline.Data))
				}
			}
		}
	}

	if fb := resp.GetPromptFeedback(); fb != nil {
		if feedbackText := processFeedback(fb); feedbackText != "" {
			log.Printf("[GATEWAY] Prompt feedback: %s", feedbackText)
		}
	}
	out := strings.TrimSpace(text.String())
	if out == "" {
		log.Println("[GATEWAY] Response contained no processable text.")
	}
	return out
}

// processFeedback formats prompt feedback into a string.
func processFeedback(promptFeedback *generativelanguagepb.GenerateContentResponse_PromptFeedback) string {
	var feedbackParts []string
	if promptFeedback.BlockReason != generativelanguagepb.GenerateContentResponse_PromptFeedback_BLOCK_REASON_UNSPECIFIED {
		feedbackParts = append(feedbackParts, fmt.Sprintf("[Blocked: %s]", promptFeedback.BlockReason))
	}
	for _, rating := range promptFeedback.SafetyRatings {
		if rating.Probability != generativelanguagepb.SafetyRating_NEGLIGIBLE && rating.Probability != generativelanguagepb.SafetyRating_LOW {
			feedbackParts = append(feedbackParts, fmt.Sprintf("[Safety: %s - %s]", rating.Category, rating.Probability))
		}
	}
	return strings.Join(feedbackParts, " ")
}
