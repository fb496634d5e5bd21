package api

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"strings"
)

// Reply is the result of a conversational turn.
type Reply struct {
	Text       string
	Transcript string // verbatim transcript of an audio message, if the model gave one
}

// SendMessage exchanges one conversational turn. history holds the prior turns
// in order. When audioBase64 is non-empty the turn is a voice message and text
// is ignored.
func (c *Client) SendMessage(ctx context.Context, history []HistoryEntry, text, audioBase64 string) Reply {
	if c.offline() {
		return Reply{Text: ChatOfflineReply}
	}

	var parts []Part
	if audioBase64 != "" {
		audio, err := base64.StdEncoding.DecodeString(audioBase64)
		if err != nil {
			log.Printf("[GATEWAY] send_message: bad audio payload: %v", err)
			return Reply{Text: ChatFailureReply}
		}
		parts = []Part{
			{MimeType: AudioMimeType, Data: audio},
			{Text: voicePrompt},
		}
	} else {
		parts = []Part{{Text: text}}
	}

	systemInstruction := c.SystemInstruction
	if systemInstruction == "" {
		systemInstruction = DefaultSystemInstruction
	}
	out, err := c.generate(ctx, "send_message", GenerateRequest{
		Model:             c.Model(),
		SystemInstruction: systemInstruction,
		Contents:          buildContents(history, parts),
	})
	if err != nil {
		return Reply{Text: ChatFailureReply}
	}
	if strings.TrimSpace(out) == "" {
		return Reply{Text: ChatEmptyReply}
	}

	clean, transcript := ExtractTranscript(out)
	if clean == "" {
		clean = ChatEmptyReply
	}
	return Reply{Text: clean, Transcript: transcript}
}

// GenerateAffirmation returns a short hopeful sentence.
func (c *Client) GenerateAffirmation(ctx context.Context) string {
	if c.offline() {
		return AffirmationOffline
	}
	out, err := c.generate(ctx, "affirmation", GenerateRequest{
		Model:    c.Model(),
		Contents: []Content{{Role: RoleUser, Parts: []Part{{Text: affirmationPrompt}}}},
	})
	if err != nil {
		return AffirmationFailure
	}
	if out = strings.TrimSpace(out); out == "" {
		return AffirmationEmpty
	}
	return out
}

// AnalyzeSentiment reads the user's state from an optional JPEG frame and an
// optional WAV recording, both base64 encoded. With neither present no call is
// made.
func (c *Client) AnalyzeSentiment(ctx context.Context, imageBase64, audioBase64 string) string {
	if c.offline() {
		return SentimentOffline
	}

	var parts []Part
	if len(imageBase64) > minImagePayload {
		p, err := decodePart(ImageMimeType, imageBase64)
		if err != nil {
			log.Printf("[GATEWAY] analyze_sentiment: %v", err)
			return SentimentFailure
		}
		parts = append(parts, p)
	}
	if audioBase64 != "" {
		p, err := decodePart(AudioMimeType, audioBase64)
		if err != nil {
			log.Printf("[GATEWAY] analyze_sentiment: %v", err)
			return SentimentFailure
		}
		parts = append(parts, p)
	}
	if len(parts) == 0 {
		return SentimentNoMedia
	}
	parts = append(parts, Part{Text: sentimentPrompt})

	out, err := c.generate(ctx, "analyze_sentiment", GenerateRequest{
		Model:    c.Model(),
		Contents: []Content{{Role: RoleUser, Parts: parts}},
	})
	if err != nil {
		return SentimentFailure
	}
	if out = strings.TrimSpace(out); out == "" {
		return SentimentEmpty
	}
	return out
}

func decodePart(mimeType, payload string) (Part, error) {
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return Part{}, fmt.Errorf("bad %s payload: %w", mimeType, err)
	}
	return Part{MimeType: mimeType, Data: data}, nil
}
