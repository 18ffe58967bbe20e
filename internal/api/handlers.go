package api

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/empowerment-ai/thumbforge/internal/analysis"
	"github.com/empowerment-ai/thumbforge/internal/models"
	"github.com/empowerment-ai/thumbforge/internal/thumbnail"
	"github.com/empowerment-ai/thumbforge/internal/youtube"
)

const defaultMaxRequestBytes = 32 << 20

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("pong"))
}

// AnalysisService is the content side of the app: video and description
// analysis, face description, and overlay text suggestions.
type AnalysisService interface {
	AnalyzeURL(ctx context.Context, videoURL string) (*models.VideoAnalysis, error)
	AnalyzeDescription(ctx context.Context, description string) (*models.VideoAnalysis, error)
	AnalyzeFaces(ctx context.Context, images []string) (*models.FaceAnalysis, error)
	SuggestOverlayText(ctx context.Context, topic, mood, currentText string) ([]string, error)
}

// GeneratorService renders thumbnails from an analysis or a custom prompt.
type GeneratorService interface {
	Generate(ctx context.Context, req thumbnail.Request) ([]*models.GeneratedThumbnail, error)
	GenerateCustom(ctx context.Context, customPrompt, model string, faceImages []string) (*models.GeneratedThumbnail, error)
}

type App struct {
	Analysis        AnalysisService
	Generator       GeneratorService
	MaxRequestBytes int64
}

func (app *App) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	limit := app.MaxRequestBytes
	if limit <= 0 {
		limit = defaultMaxRequestBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	return json.NewDecoder(r.Body).Decode(dst)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[API] failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (app *App) renderBodyError(w http.ResponseWriter, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		writeError(w, http.StatusBadRequest, "Request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, "Invalid JSON body")
}

// statusForError maps service errors onto HTTP statuses: bad input is the
// caller's fault, everything else is ours or the provider's.
func statusForError(err error) int {
	switch {
	case errors.Is(err, youtube.ErrInvalidURL),
		errors.Is(err, analysis.ErrInvalidInput),
		errors.Is(err, analysis.ErrNoContent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

type analyzeRequest struct {
	YoutubeURL  string `json:"youtubeUrl"`
	Description string `json:"description"`
}

// AnalyzeHandler produces a video analysis from a YouTube URL or, failing
// that, a free-form description. The URL wins when both are present.
func (app *App) AnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.renderBodyError(w, err)
		return
	}

	var (
		result *models.VideoAnalysis
		err    error
	)
	switch {
	case strings.TrimSpace(req.YoutubeURL) != "":
		result, err = app.Analysis.AnalyzeURL(r.Context(), req.YoutubeURL)
	case strings.TrimSpace(req.Description) != "":
		result, err = app.Analysis.AnalyzeDescription(r.Context(), req.Description)
	default:
		writeError(w, http.StatusBadRequest, "Either youtubeUrl or description is required")
		return
	}
	if err != nil {
		log.Printf("[API] analyze failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analysis": result})
}

type faceAnalyzeRequest struct {
	FaceImages []string `json:"faceImages"`
}

func (app *App) FaceAnalyzeHandler(w http.ResponseWriter, r *http.Request) {
	var req faceAnalyzeRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.renderBodyError(w, err)
		return
	}

	result, err := app.Analysis.AnalyzeFaces(r.Context(), req.FaceImages)
	if err != nil {
		log.Printf("[API] face analysis failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"analysis": result})
}

type textSuggestionsRequest struct {
	Topic       string `json:"topic"`
	Mood        string `json:"mood"`
	CurrentText string `json:"currentText"`
}

func (app *App) TextSuggestionsHandler(w http.ResponseWriter, r *http.Request) {
	var req textSuggestionsRequest
	if err := app.decodeJSON(w, r, &req); err != nil {
		app.renderBodyError(w, err)
		return
	}

	suggestions, err := app.Analysis.SuggestOverlayText(r.Context(), req.Topic, req.Mood, req.CurrentText)
	if err != nil {
		log.Printf("[API] text suggestions failed: %v", err)
		writeError(w, statusForError(err), err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}
