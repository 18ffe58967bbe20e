package analysis

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/empowerment-ai/thumbforge/internal/ai"
	"github.com/empowerment-ai/thumbforge/internal/youtube"
)

type mockCompletionClient struct {
	response string
	err      error
	calls    int
	lastReq  ai.CompletionRequest
}

func (m *mockCompletionClient) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	m.calls++
	m.lastReq = req
	return m.response, m.err
}

type stubResolver struct {
	text string
	err  error
}

func (r *stubResolver) Resolve(ctx context.Context, videoID string) (string, error) {
	return r.text, r.err
}

type stubMetadata struct {
	meta youtube.VideoMetadata
}

func (m *stubMetadata) FetchMetadata(ctx context.Context, videoURL string) youtube.VideoMetadata {
	return m.meta
}

const analysisResponse = `{
	"title": "Build a Go Service",
	"topic": "backend development",
	"hook": "ship a service in an afternoon",
	"mood": "energetic",
	"keyMoments": ["setup", "routing", "deploy"],
	"visualElements": ["laptop", "terminal"],
	"textSuggestions": ["SHIP IT FAST"],
	"colorPalette": ["#00ADD8", "#FFFFFF"],
	"targetEmotion": "curiosity",
	"concepts": [
		{"description": "developer at desk", "textOverlay": "SHIP IT", "mood": "energetic", "visualStyle": "photorealistic", "faceExpression": "excited"},
		{"description": "terminal close-up", "textOverlay": "GO FAST", "mood": "focused", "visualStyle": "cinematic", "faceExpression": "determined"}
	]
}`

func newTestService(client *mockCompletionClient, resolver *stubResolver, meta *stubMetadata) *Service {
	return NewService(client, resolver, meta, "openai/gpt-4o-mini")
}

func TestAnalyzeURL(t *testing.T) {
	client := &mockCompletionClient{response: analysisResponse}
	resolver := &stubResolver{text: "today we are building a go service from scratch"}
	meta := &stubMetadata{meta: youtube.VideoMetadata{Title: "Build a Go Service", AuthorName: "gopher"}}
	service := newTestService(client, resolver, meta)

	analysis, err := service.AnalyzeURL(context.Background(), "https://www.youtube.com/watch?v=dQw4w9WgXcQ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if analysis.Topic != "backend development" {
		t.Errorf("expected topic from response, got %q", analysis.Topic)
	}
	if len(analysis.Concepts) != 2 {
		t.Errorf("expected 2 concepts, got %d", len(analysis.Concepts))
	}

	prompt := client.lastReq.Prompt
	if !strings.Contains(prompt, "today we are building a go service") {
		t.Error("expected transcript in prompt")
	}
	if !strings.Contains(prompt, "Build a Go Service") {
		t.Error("expected title in prompt")
	}
	if !strings.Contains(prompt, "gopher") {
		t.Error("expected channel in prompt")
	}
	if client.lastReq.Temperature != 0.8 {
		t.Errorf("expected temperature 0.8, got %f", client.lastReq.Temperature)
	}
	if client.lastReq.MaxTokens != 2048 {
		t.Errorf("expected 2048 max tokens, got %d", client.lastReq.MaxTokens)
	}
}

func TestAnalyzeURLTranscriptFailureDegrades(t *testing.T) {
	client := &mockCompletionClient{response: analysisResponse}
	resolver := &stubResolver{err: youtube.ErrNoTranscript}
	meta := &stubMetadata{meta: youtube.VideoMetadata{Title: "Still Analyzable"}}
	service := newTestService(client, resolver, meta)

	if _, err := service.AnalyzeURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); err != nil {
		t.Fatalf("metadata alone should be enough: %v", err)
	}
	if strings.Contains(client.lastReq.Prompt, "Transcript") {
		t.Error("prompt should not mention a transcript when none resolved")
	}
}

func TestAnalyzeURLNoContent(t *testing.T) {
	client := &mockCompletionClient{response: analysisResponse}
	resolver := &stubResolver{err: youtube.ErrNoTranscript}
	meta := &stubMetadata{}
	service := newTestService(client, resolver, meta)

	_, err := service.AnalyzeURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("expected no provider call, got %d", client.calls)
	}
}

func TestAnalyzeURLInvalidURL(t *testing.T) {
	service := newTestService(&mockCompletionClient{}, &stubResolver{}, &stubMetadata{})

	_, err := service.AnalyzeURL(context.Background(), "https://example.com/not-youtube")
	if !errors.Is(err, youtube.ErrInvalidURL) {
		t.Errorf("expected ErrInvalidURL, got %v", err)
	}
}

func TestAnalyzeURLTruncatesTranscript(t *testing.T) {
	client := &mockCompletionClient{response: analysisResponse}
	resolver := &stubResolver{text: strings.Repeat("x", 5000)}
	meta := &stubMetadata{}
	service := newTestService(client, resolver, meta)

	if _, err := service.AnalyzeURL(context.Background(), "https://youtu.be/dQw4w9WgXcQ"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(client.lastReq.Prompt, strings.Repeat("x", 3001)) {
		t.Error("expected transcript truncated to 3000 characters")
	}
	if !strings.Contains(client.lastReq.Prompt, strings.Repeat("x", 3000)) {
		t.Error("expected 3000 characters of transcript in prompt")
	}
}

func TestAnalyzeDescription(t *testing.T) {
	client := &mockCompletionClient{response: "```json\n" + analysisResponse + "\n```"}
	service := newTestService(client, &stubResolver{}, &stubMetadata{})

	analysis, err := service.AnalyzeDescription(context.Background(), "a video about sourdough baking")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if analysis.Hook != "ship a service in an afternoon" {
		t.Errorf("fenced response should still parse, got hook %q", analysis.Hook)
	}
	if !strings.Contains(client.lastReq.Prompt, "sourdough baking") {
		t.Error("expected description in prompt")
	}
}

func TestAnalyzeDescriptionEmpty(t *testing.T) {
	client := &mockCompletionClient{response: analysisResponse}
	service := newTestService(client, &stubResolver{}, &stubMetadata{})

	_, err := service.AnalyzeDescription(context.Background(), "   ")
	if !errors.Is(err, ErrNoContent) {
		t.Errorf("expected ErrNoContent, got %v", err)
	}
	if client.calls != 0 {
		t.Errorf("expected no provider call, got %d", client.calls)
	}
}

func TestAnalyzeDescriptionParseError(t *testing.T) {
	client := &mockCompletionClient{response: "I think a great thumbnail would show..."}
	service := newTestService(client, &stubResolver{}, &stubMetadata{})

	_, err := service.AnalyzeDescription(context.Background(), "a cooking video")
	if !errors.Is(err, ErrAnalysisParse) {
		t.Errorf("expected ErrAnalysisParse, got %v", err)
	}
}

func TestAnalyzeDescriptionProviderErrorPropagates(t *testing.T) {
	provErr := &ai.ProviderError{StatusCode: 429, Body: "rate limited"}
	client := &mockCompletionClient{err: provErr}
	service := newTestService(client, &stubResolver{}, &stubMetadata{})

	_, err := service.AnalyzeDescription(context.Background(), "a cooking video")
	var got *ai.ProviderError
	if !errors.As(err, &got) {
		t.Errorf("expected ProviderError passthrough, got %v", err)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "json fence", input: "```json\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "bare fence", input: "```\n{\"a\":1}\n```", expected: `{"a":1}`},
		{name: "no fence", input: `{"a":1}`, expected: `{"a":1}`},
		{name: "surrounding whitespace", input: "  \n{\"a\":1}\n  ", expected: `{"a":1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripFences(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
