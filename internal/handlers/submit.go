// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"storieslab/internal/models"
	"storieslab/internal/publisher"
)

// maxUploadSize caps the multipart request body (fragment document plus
// form fields).
const maxUploadSize = 10 << 20

// submitResponse is the JSON body returned for an accepted submission.
type submitResponse struct {
	Slug         string          `json:"slug"`
	StoryURL     string          `json:"story_url"`
	HTMLURL      string          `json:"html_url"`
	HTMLPath     string          `json:"html_path"`
	MetadataPath string          `json:"metadata_path"`
	ImageURL     string          `json:"image_url,omitempty"`
	Warnings     []string        `json:"warnings,omitempty"`
	Metadata     json.RawMessage `json:"metadata"`
}

// Submit accepts a multipart story submission, runs the publishing
// pipeline, stores the artifacts, and returns the story's addresses.
func (h *Stories) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1024)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, "Request too large or malformed form.", http.StatusRequestEntityTooLarge)
		return
	}

	in := models.StoryInput{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Keywords:    strings.TrimSpace(r.FormValue("keywords")),
		ContentType: models.ContentType(r.FormValue("content_type")),
		Language:    models.Language(r.FormValue("language")),
		Category:    r.FormValue("category"),
	}
	imageURL := strings.TrimSpace(r.FormValue("image_url"))

	if msg := validateSubmission(in, imageURL); msg != "" {
		writeError(w, msg, http.StatusBadRequest)
		return
	}

	rawHTML, err := readFragmentFile(r)
	if err != nil {
		writeError(w, "Could not read the uploaded document.", http.StatusBadRequest)
		return
	}

	res, err := h.Publisher.Publish(r.Context(), publisher.Submission{
		Story:    in,
		ImageURL: imageURL,
		RawHTML:  rawHTML,
	})
	if err != nil {
		slog.Error("publish failed", "error", err)
		writeError(w, "Publishing failed.", http.StatusInternalServerError)
		return
	}
	if res.Identity == nil || res.Identity.Slug == "" {
		// Title survived validation but produced no usable slug
		// (punctuation-only and the like). Nothing addressable to store.
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":    "Title does not produce a valid slug.",
			"warnings": res.Warnings,
		})
		return
	}

	metaJSON, err := res.Metadata.MarshalIndent()
	if err != nil {
		slog.Error("metadata marshal failed", "error", err)
		writeError(w, "Publishing failed.", http.StatusInternalServerError)
		return
	}

	slug := res.Identity.CompositeSlug
	if err := h.Store.Save(r.Context(), slug, []byte(res.HTML), metaJSON); err != nil {
		slog.Error("artifact store failed", "slug", slug, "error", err)
		writeError(w, "Could not store the published story.", http.StatusInternalServerError)
		return
	}

	slog.Info("story published", "slug", slug, "warnings", len(res.Warnings))
	writeJSON(w, http.StatusCreated, submitResponse{
		Slug:         slug,
		StoryURL:     res.Identity.CanonicalURL,
		HTMLURL:      res.Identity.CanonicalURLAlt,
		HTMLPath:     "/stories/" + slug + ".html",
		MetadataPath: "/stories/" + slug + "/metadata.json",
		ImageURL:     res.ImageURL,
		Warnings:     res.Warnings,
		Metadata:     metaJSON,
	})
}

// readFragmentFile returns the uploaded fragment document, or "" when the
// submission carries none.
func readFragmentFile(r *http.Request) (string, error) {
	file, _, err := r.FormFile("html")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	defer file.Close()

	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
