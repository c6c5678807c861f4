// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"unicode/utf8"
)

// maxQuestionLen caps chat questions to keep upstream token usage sane.
const maxQuestionLen = 4_000

type chatRequest struct {
	Question string `json:"question"`
}

type chatResponse struct {
	Answer   string `json:"answer"`
	Provider string `json:"provider"`
}

// Chat relays a question to the active AI provider and returns its answer.
func (h *Stories) Chat(w http.ResponseWriter, r *http.Request) {
	if h.AI == nil || len(h.AI.Available()) == 0 {
		writeError(w, "No AI provider is configured.", http.StatusServiceUnavailable)
		return
	}

	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "Invalid JSON body.", http.StatusBadRequest)
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		writeError(w, "Question is required.", http.StatusBadRequest)
		return
	}
	if utf8.RuneCountInString(question) > maxQuestionLen {
		writeError(w, "Question is too long (max 4,000 characters).", http.StatusBadRequest)
		return
	}

	answer, err := h.AI.Ask(r.Context(), question)
	if err != nil {
		slog.Error("chat request failed", "provider", h.AI.ActiveName(), "error", err)
		writeError(w, "AI request failed. Check your provider configuration.", http.StatusBadGateway)
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Answer:   answer,
		Provider: h.AI.ActiveName(),
	})
}
