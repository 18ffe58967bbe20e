package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/empowerment-ai/thumbforge/internal/ai"
	"github.com/empowerment-ai/thumbforge/internal/models"
)

const (
	// MaxFaceImages bounds how many reference photos one request may carry.
	MaxFaceImages = 5

	faceTemperature = 0.3
	faceMaxTokens   = 1024
)

// AnalyzeFaces turns 1-5 reference photos of the same person into a likeness
// description for the image generator. Malformed model output degrades to the
// raw text as description instead of failing the call.
func (s *Service) AnalyzeFaces(ctx context.Context, images []string) (*models.FaceAnalysis, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("%w: at least one face image is required", ErrInvalidInput)
	}
	if len(images) > MaxFaceImages {
		return nil, fmt.Errorf("%w: at most %d face images are supported", ErrInvalidInput, MaxFaceImages)
	}

	dataURLs := make([]string, len(images))
	for i, img := range images {
		dataURLs[i] = ai.EncodeImageDataURL(img)
	}

	raw, err := s.client.Complete(ctx, ai.CompletionRequest{
		Model:       s.textModel,
		Prompt:      faceAnalysisPrompt(len(images)),
		Images:      dataURLs,
		Temperature: faceTemperature,
		MaxTokens:   faceMaxTokens,
	})
	if err != nil {
		return nil, err
	}

	var analysis models.FaceAnalysis
	if err := json.Unmarshal([]byte(stripFences(raw)), &analysis); err != nil {
		// The prose is still a usable likeness description even when the
		// model ignored the JSON instruction.
		log.Printf("[FACE] falling back to raw description: %v", err)
		analysis = models.FaceAnalysis{
			Description: strings.TrimSpace(raw),
			KeyFeatures: []string{},
		}
	}
	analysis.PhotoCount = len(images)

	return &analysis, nil
}
