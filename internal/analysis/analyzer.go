package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/empowerment-ai/thumbforge/internal/ai"
	"github.com/empowerment-ai/thumbforge/internal/models"
	"github.com/empowerment-ai/thumbforge/internal/youtube"
)

var (
	ErrNoContent     = errors.New("no content available to analyze")
	ErrAnalysisParse = errors.New("failed to parse analysis response")
	ErrInvalidInput  = errors.New("invalid input")
)

const (
	maxTranscriptChars  = 3000
	analysisTemperature = 0.8
	analysisMaxTokens   = 2048
)

// TranscriptResolver yields the transcript text for a video ID.
type TranscriptResolver interface {
	Resolve(ctx context.Context, videoID string) (string, error)
}

// MetadataFetcher yields best-effort title/author for a video URL.
type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, videoURL string) youtube.VideoMetadata
}

type Service struct {
	client    ai.CompletionClient
	resolver  TranscriptResolver
	metadata  MetadataFetcher
	textModel string
}

func NewService(client ai.CompletionClient, resolver TranscriptResolver, metadata MetadataFetcher, textModel string) *Service {
	return &Service{
		client:    client,
		resolver:  resolver,
		metadata:  metadata,
		textModel: textModel,
	}
}

// AnalyzeURL resolves transcript and metadata for the video and asks the
// model for thumbnail concepts. A missing transcript degrades to analyzing
// title/author alone; only both missing is an error.
func (s *Service) AnalyzeURL(ctx context.Context, videoURL string) (*models.VideoAnalysis, error) {
	videoID, err := youtube.ExtractVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	// The transcript and metadata fetches run in parallel. Neither leg
	// cancels or fails the other.
	transcriptCh := make(chan struct {
		text string
		err  error
	}, 1)

	go func() {
		text, err := s.resolver.Resolve(ctx, videoID)
		transcriptCh <- struct {
			text string
			err  error
		}{text, err}
	}()

	metadataCh := make(chan youtube.VideoMetadata, 1)
	go func() {
		metadataCh <- s.metadata.FetchMetadata(ctx, videoURL)
	}()

	transcriptResult := <-transcriptCh
	meta := <-metadataCh

	transcript := transcriptResult.text
	if transcriptResult.err != nil {
		log.Printf("[ANALYZER] transcript unavailable for %s: %v", videoID, transcriptResult.err)
		transcript = ""
	}

	if transcript == "" && meta.Title == "" {
		return nil, ErrNoContent
	}

	return s.complete(ctx, contentAnalysisPrompt(transcript, meta.Title, meta.AuthorName))
}

// AnalyzeDescription builds thumbnail concepts from a free-text description
// of a planned video.
func (s *Service) AnalyzeDescription(ctx context.Context, description string) (*models.VideoAnalysis, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrNoContent
	}
	return s.complete(ctx, descriptionAnalysisPrompt(description))
}

func (s *Service) complete(ctx context.Context, prompt string) (*models.VideoAnalysis, error) {
	raw, err := s.client.Complete(ctx, ai.CompletionRequest{
		Model:       s.textModel,
		Prompt:      prompt,
		Temperature: analysisTemperature,
		MaxTokens:   analysisMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var analysis models.VideoAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &analysis); err != nil {
		log.Printf("[ANALYZER] unparseable analysis response: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrAnalysisParse, err)
	}

	log.Printf("[ANALYZER] analysis produced %d concepts for topic %q", len(analysis.Concepts), analysis.Topic)
	return &analysis, nil
}

// stripFences removes markdown code fences models wrap JSON in despite
// instructions not to.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
