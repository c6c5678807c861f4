// Package router sets up the HTTP routes and middleware chain for the
// StoriesLab server.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"

	"storieslab/internal/handlers"
	"storieslab/internal/middleware"
	"storieslab/web"
)

// New creates and returns the configured Chi router with all middleware
// and routes wired up.
func New(stories *handlers.Stories) chi.Router {
	r := chi.NewRouter()

	// Global middleware — applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	// Health check.
	r.Get("/health", healthHandler)

	// Submission front-end.
	r.Get("/", indexHandler)
	r.Handle("/static/*", http.FileServer(http.FS(web.StaticFS)))

	// Story publishing and artifact serving.
	r.Route("/stories", func(r chi.Router) {
		r.Post("/", stories.Submit)
		r.Get("/{slug}.html", stories.ServeStory)
		r.Get("/{slug}/metadata.json", stories.ServeMetadata)
	})

	// AI chat sidebar.
	r.Post("/chat", stories.Chat)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// indexHandler serves the embedded submission form.
func indexHandler(w http.ResponseWriter, r *http.Request) {
	page, err := fs.ReadFile(web.StaticFS, "static/index.html")
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(page)
}
