package thumbnail

import (
	"context"
	"errors"
	"log"

	"github.com/empowerment-ai/thumbforge/internal/ai"
	"github.com/empowerment-ai/thumbforge/internal/models"
)

var ErrNoThumbnails = errors.New("no thumbnails could be generated")

const defaultCount = 4

type Generator struct {
	client     ai.ImageClient
	imageModel string
}

func NewGenerator(client ai.ImageClient, imageModel string) *Generator {
	return &Generator{
		client:     client,
		imageModel: imageModel,
	}
}

// Request carries one generation run's inputs. Count defaults to 4 and is
// capped to the number of concepts in the analysis.
type Request struct {
	Analysis        *models.VideoAnalysis
	FaceDescription string
	FaceImages      []string // reference photos, base64 or data URLs
	Model           string   // overrides the configured image model
	Count           int
}

// Generate renders one thumbnail per concept, strictly one provider call at
// a time to stay inside upstream rate limits. A failed item is logged and
// skipped; only an empty result set is an error.
func (g *Generator) Generate(ctx context.Context, req Request) ([]*models.GeneratedThumbnail, error) {
	if req.Analysis == nil || len(req.Analysis.Concepts) == 0 {
		return nil, ErrNoThumbnails
	}

	count := req.Count
	if count <= 0 {
		count = defaultCount
	}
	if count > len(req.Analysis.Concepts) {
		count = len(req.Analysis.Concepts)
	}

	model := req.Model
	if model == "" {
		model = g.imageModel
	}

	references := make([]string, len(req.FaceImages))
	for i, img := range req.FaceImages {
		references[i] = ai.EncodeImageDataURL(img)
	}

	thumbnails := make([]*models.GeneratedThumbnail, 0, count)
	for i := 0; i < count; i++ {
		concept := req.Analysis.Concepts[i]
		log.Printf("[GENERATOR] rendering concept %d/%d (%s)", i+1, count, concept.VisualStyle)

		image, err := g.client.GenerateImage(ctx, ai.ImageRequest{
			Model:           model,
			Prompt:          buildConceptPrompt(concept, req.Analysis, req.FaceDescription),
			ReferenceImages: references,
		})
		if err != nil {
			log.Printf("[GENERATOR] concept %d/%d failed: %v", i+1, count, err)
			continue
		}

		thumbnails = append(thumbnails, models.NewGeneratedThumbnail(concept, image.Data, image.MimeType, image.RevisedPrompt))
	}

	if len(thumbnails) == 0 {
		return nil, ErrNoThumbnails
	}

	log.Printf("[GENERATOR] generated %d/%d thumbnails", len(thumbnails), count)
	return thumbnails, nil
}

// GenerateCustom renders a single thumbnail from a caller-written prompt,
// wrapped with the standard resolution and composition rules.
func (g *Generator) GenerateCustom(ctx context.Context, customPrompt, model string, faceImages []string) (*models.GeneratedThumbnail, error) {
	if model == "" {
		model = g.imageModel
	}

	references := make([]string, len(faceImages))
	for i, img := range faceImages {
		references[i] = ai.EncodeImageDataURL(img)
	}

	image, err := g.client.GenerateImage(ctx, ai.ImageRequest{
		Model:           model,
		Prompt:          buildCustomPrompt(customPrompt),
		ReferenceImages: references,
	})
	if err != nil {
		return nil, err
	}

	concept := models.ThumbnailConcept{Description: customPrompt}
	return models.NewGeneratedThumbnail(concept, image.Data, image.MimeType, image.RevisedPrompt), nil
}
