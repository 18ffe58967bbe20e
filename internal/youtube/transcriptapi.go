package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const transcriptAPIURL = "https://kome.ai/api/transcript"

// TranscriptAPISource asks kome.ai's public transcript endpoint. It serves
// the same caption text through a third party when YouTube itself will not.
type TranscriptAPISource struct {
	apiURL     string
	httpClient *http.Client
}

func NewTranscriptAPISource() *TranscriptAPISource {
	return &TranscriptAPISource{
		apiURL: transcriptAPIURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (s *TranscriptAPISource) Name() string { return "transcript-api" }

func (s *TranscriptAPISource) Fetch(ctx context.Context, videoID string) (string, error) {
	payload, err := json.Marshal(map[string]any{
		"video_id": WatchURL(videoID),
		"format":   true,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call transcript API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("transcript API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var result struct {
		Transcript string `json:"transcript"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return strings.TrimSpace(result.Transcript), nil
}
