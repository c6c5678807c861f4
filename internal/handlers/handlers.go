// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP surface: story submission, artifact
// serving, and the AI chat sidebar.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"storieslab/internal/ai"
	"storieslab/internal/publisher"
)

// ArtifactStore persists published story artifacts keyed by composite slug.
// Implemented by cache.StoryCache; MemoryStore backs development setups
// without Valkey.
type ArtifactStore interface {
	Save(ctx context.Context, slug string, html, meta []byte) error
	HTML(ctx context.Context, slug string) ([]byte, bool)
	Metadata(ctx context.Context, slug string) ([]byte, bool)
}

// Stories bundles the dependencies for the submission and serving handlers.
type Stories struct {
	Publisher *publisher.Publisher
	Store     ArtifactStore
	AI        *ai.Registry
}

// MemoryStore is an in-process ArtifactStore. Artifacts survive only for
// the lifetime of the process.
type MemoryStore struct {
	mu   sync.RWMutex
	html map[string][]byte
	meta map[string][]byte
}

// NewMemoryStore creates an empty in-memory artifact store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		html: make(map[string][]byte),
		meta: make(map[string][]byte),
	}
}

func (m *MemoryStore) Save(_ context.Context, slug string, html, meta []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.html[slug] = html
	m.meta[slug] = meta
	return nil
}

func (m *MemoryStore) HTML(_ context.Context, slug string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.html[slug]
	return v, ok
}

func (m *MemoryStore) Metadata(_ context.Context, slug string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.meta[slug]
	return v, ok
}

// writeJSON writes a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, status, map[string]string{"error": msg})
}
