package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(app *App) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)

	r.Post("/analyze", app.AnalyzeHandler)
	r.Post("/generate", app.GenerateHandler)
	r.Post("/face-analyze", app.FaceAnalyzeHandler)
	r.Post("/text-suggestions", app.TextSuggestionsHandler)

	return r
}
