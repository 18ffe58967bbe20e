package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/empowerment-ai/thumbforge/internal/ai"
)

const (
	suggestionCount     = 8
	suggestionMaxTokens = 512
)

// SuggestOverlayText proposes short thumbnail overlay texts for a topic.
// Mood and the creator's current draft are optional steering inputs.
func (s *Service) SuggestOverlayText(ctx context.Context, topic, mood, currentText string) ([]string, error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("%w: topic is required", ErrInvalidInput)
	}

	raw, err := s.client.Complete(ctx, ai.CompletionRequest{
		Model:       s.textModel,
		Prompt:      suggestionsPrompt(topic, mood, currentText),
		Temperature: analysisTemperature,
		MaxTokens:   suggestionMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var suggestions []string
	if err := json.Unmarshal([]byte(stripFences(raw)), &suggestions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAnalysisParse, err)
	}

	if len(suggestions) > suggestionCount {
		suggestions = suggestions[:suggestionCount]
	}
	return suggestions, nil
}
