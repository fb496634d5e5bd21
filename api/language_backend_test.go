package api

import (
	"testing"

	"cloud.google.com/go/ai/generativelanguage/apiv1beta/generativelanguagepb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmc/lighthouse/internal/testing/testlog"
)

func TestToLanguageRequest(t *testing.T) {
	req := GenerateRequest{
		Model:             "gemini-2.5-flash",
		SystemInstruction: "be calm",
		Contents: []Content{
			{Role: RoleUser, Parts: []Part{{Text: "hi"}}},
			{Role: RoleModel, Parts: []Part{{Text: "hello"}}},
			{Role: RoleUser, Parts: []Part{{MimeType: AudioMimeType, Data: []byte{1, 2, 3}}, {Text: voicePrompt}}},
		},
	}
	pb := toLanguageRequest(req)

	assert.Equal(t, "models/gemini-2.5-flash", pb.GetModel())
	require.NotNil(t, pb.GetSystemInstruction())
	assert.Equal(t, "be calm", pb.GetSystemInstruction().GetParts()[0].GetText())
	require.Len(t, pb.GetContents(), 3)
	assert.Equal(t, "model", pb.GetContents()[1].GetRole())

	last := pb.GetContents()[2]
	require.Len(t, last.GetParts(), 2)
	blob := last.GetParts()[0].GetInlineData()
	require.NotNil(t, blob)
	assert.Equal(t, AudioMimeType, blob.GetMimeType())
	assert.Equal(t, []byte{1, 2, 3}, blob.GetData())
	assert.Equal(t, voicePrompt, last.GetParts()[1].GetText())
}

func TestToLanguageRequestWithoutSystemInstruction(t *testing.T) {
	pb := toLanguageRequest(GenerateRequest{Model: "models/x", Contents: []Content{{Role: RoleUser, Parts: []Part{{Text: "a"}}}}})
	if pb.GetSystemInstruction() != nil {
		t.Errorf("SystemInstruction = %v, want nil", pb.GetSystemInstruction())
	}
	if pb.GetModel() != "models/x" {
		t.Errorf("Model = %q, want models/x", pb.GetModel())
	}
}

func TestRedactRequest(t *testing.T) {
	pb := toLanguageRequest(GenerateRequest{Model: "m", Contents: []Content{
		{Role: RoleUser, Parts: []Part{{MimeType: ImageMimeType, Data: make([]byte, 2048)}}},
	}})
	redacted := redactRequest(pb)

	assert.Equal(t, "<2048 bytes>", string(redacted.GetContents()[0].GetParts()[0].GetInlineData().GetData()))
	assert.Len(t, pb.GetContents()[0].GetParts()[0].GetInlineData().GetData(), 2048, "original untouched")
}

func TestExtractOutput(t *testing.T) {
	testlog.Setup(t)
	textPart := func(s string) *generativelanguagepb.Part {
		return &generativelanguagepb.Part{Data: &generativelanguagepb.Part_Text{Text: s}}
	}
	tests := []struct {
		name string
		resp *generativelanguagepb.GenerateContentResponse
		want string
	}{
		{"nil", nil, ""},
		{"no candidates", &generativelanguagepb.GenerateContentResponse{}, ""},
		{
			name: "joined parts",
			resp: &generativelanguagepb.GenerateContentResponse{
				Candidates: []*generativelanguagepb.Candidate{{
					Content: &generativelanguagepb.Content{Parts: []*generativelanguagepb.Part{textPart(" I'm "), textPart("here. ")}},
				}},
			},
			want: "I'm here.",
		},
		{
			name: "blocked prompt",
			resp: &generativelanguagepb.GenerateContentResponse{
				PromptFeedback: &generativelanguagepb.GenerateContentResponse_PromptFeedback{
					BlockReason: generativelanguagepb.GenerateContentResponse_PromptFeedback_SAFETY,
				},
			},
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractOutput(tt.resp); got != tt.want {
				t.Errorf("ExtractOutput() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessFeedback(t *testing.T) {
	fb := &generativelanguagepb.GenerateContentResponse_PromptFeedback{
		BlockReason: generativelanguagepb.GenerateContentResponse_PromptFeedback_SAFETY,
		SafetyRatings: []*generativelanguagepb.SafetyRating{
			{Category: generativelanguagepb.HarmCategory_HARM_CATEGORY_HARASSMENT, Probability: generativelanguagepb.SafetyRating_LOW},
			{Category: generativelanguagepb.HarmCategory_HARM_CATEGORY_DANGEROUS_CONTENT, Probability: generativelanguagepb.SafetyRating_HIGH},
		},
	}
	want := "[Blocked: SAFETY] [Safety: HARM_CATEGORY_DANGEROUS_CONTENT - HIGH]"
	if got := processFeedback(fb); got != want {
		t.Errorf("processFeedback() = %q, want %q", got, want)
	}
}

func TestBuildContents(t *testing.T) {
	history := []HistoryEntry{
		{Role: RoleModel, Text: "greeting"},
		{Role: RoleModel, Text: "second greeting"},
		{Role: RoleUser, Text: "   "},
		{Role: RoleUser, Text: "hi"},
		{Role: RoleModel, Text: "hello"},
	}
	got := buildContents(history, []Part{{Text: "new"}})
	want := []Content{
		{Role: RoleUser, Parts: []Part{{Text: "hi"}}},
		{Role: RoleModel, Parts: []Part{{Text: "hello"}}},
		{Role: RoleUser, Parts: []Part{{Text: "new"}}},
	}
	assert.Equal(t, want, got)
}

func TestFilterModels(t *testing.T) {
	models := []*generativelanguagepb.Model{
		{Name: "models/gemini-2.5-flash", DisplayName: "Gemini 2.5 Flash", SupportedGenerationMethods: []string{"generateContent", "countTokens"}},
		{Name: "models/text-embedding-004", SupportedGenerationMethods: []string{"embedContent"}},
		{Name: "models/gemini-2.5-pro", SupportedGenerationMethods: []string{"generateContent"}},
	}
	got := filterModels(models, "FLASH")
	require.Len(t, got, 1)
	assert.Equal(t, ModelInfo{Name: "gemini-2.5-flash", DisplayName: "Gemini 2.5 Flash"}, got[0])
	assert.Len(t, filterModels(models, ""), 2)
}

func TestKnownModels(t *testing.T) {
	if got := KnownModels("pro"); len(got) != 1 || got[0] != "gemini-2.5-pro" {
		t.Errorf("KnownModels(pro) = %v", got)
	}
	if got := KnownModels(""); len(got) != len(knownModels) {
		t.Errorf("KnownModels() len = %d, want %d", len(got), len(knownModels))
	}
}
