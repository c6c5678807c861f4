package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ServeStory serves the assembled AMP document for a published slug.
func (h *Stories) ServeStory(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	html, ok := h.Store.HTML(r.Context(), slug)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(html)
}

// ServeMetadata serves the metadata JSON for a published slug.
func (h *Stories) ServeMetadata(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	meta, ok := h.Store.Metadata(r.Context(), slug)
	if !ok {
		http.Error(w, "Not Found", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(meta)
}
