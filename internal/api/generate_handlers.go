package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/empowerment-ai/thumbforge/internal/analysis"
	"github.com/empowerment-ai/thumbforge/internal/models"
	"github.com/empowerment-ai/thumbforge/internal/thumbnail"
)

type generateRequest struct {
	Analysis        *models.VideoAnalysis `json:"analysis"`
	CustomPrompt    string                `json:"customPrompt"`
	FaceImageBase64 string                `json:"faceImageBase64"`
	FaceImages      []string              `json:"faceImages"`
	FaceDescription string                `json:"faceDescription"`
	Model           string                `json:"model"`
	Count           int                   `json:"count"`
}

type thumbnailResponse struct {
	ID            string                  `json:"id"`
	ImageDataURL  string                  `json:"imageDataUrl"`
	Concept       models.ThumbnailConcept `json:"concept"`
	TextOverlay   string                  `json:"textOverlay"`
	Width         int                     `json:"width"`
	Height        int                     `json:"height"`
	RevisedPrompt string                  `json:"revisedPrompt,omitempty"`
}

func toThumbnailResponse(t *models.GeneratedThumbnail) thumbnailResponse {
	return thumbnailResponse{
		ID:            t.ID,
		ImageDataURL:  t.DataURL(),
		Concept:       t.Concept,
		TextOverlay:   t.TextOverlay,
		Width:         t.Width,
		Height:        t.Height,
		RevisedPrompt: t.RevisedPrompt,
	}
}

// GenerateHandler renders thumbnails for an analysis, or a single image when
// a custom prompt is given. faceImageBase64 carries one reference photo and
// is folded in ahead of faceImages; the combined list is capped at the face
// photo limit.
func (app *App) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.renderBodyError(w, err)
		return
	}

	faceImages := req.FaceImages
	if req.FaceImageBase64 != "" {
		faceImages = append([]string{req.FaceImageBase64}, req.FaceImages...)
	}
	if len(faceImages) > analysis.MaxFaceImages {
		faceImages = faceImages[:analysis.MaxFaceImages]
	}

	if strings.TrimSpace(req.CustomPrompt) != "" {
		thumb, err := app.Generator.GenerateCustom(r.Context(), req.CustomPrompt, req.Model, faceImages)
		if err != nil {
			log.Printf("[API] custom generation failed: %v", err)
			writeError(w, statusForError(err), err.Error())
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"thumbnails": []thumbnailResponse{toThumbnailResponse(thumb)},
		})
		return
	}

	if req.Analysis == nil || len(req.Analysis.Concepts) == 0 {
		writeError(w, http.StatusBadRequest, "Analysis with at least one concept is required")
		return
	}

	thumbs, err := app.Generator.Generate(r.Context(), thumbnail.Request{
		Analysis:        req.Analysis,
		FaceDescription: req.FaceDescription,
		FaceImages:      faceImages,
		Model:           req.Model,
		Count:           req.Count,
	})
	if err != nil {
		log.Printf("[API] generation failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	responses := make([]thumbnailResponse, len(thumbs))
	for i, t := range thumbs {
		responses[i] = toThumbnailResponse(t)
	}
	writeJSON(w, http.StatusOK, map[string]any{"thumbnails": responses})
}
