// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package ai provides the chat providers behind the question/answer
// sidebar. Each provider handles its own HTTP communication and response
// parsing; the Registry selects the active one by name.
package ai

import (
	"context"
	"fmt"
	"sync"
)

// Provider is implemented by every chat backend.
type Provider interface {
	// Ask sends one user question and returns the assistant's answer.
	Ask(ctx context.Context, question string) (string, error)

	// Name returns the provider identifier (e.g., "azure", "openai").
	Name() string
}

// ProviderConfig holds the credentials and settings for a single provider.
type ProviderConfig struct {
	APIKey     string
	Model      string // deployment name for Azure, model name for OpenAI
	BaseURL    string // Azure resource endpoint or OpenAI API base
	APIVersion string // Azure only
}

// Registry manages the configured providers and the active selection.
// Safe for concurrent use.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
	active    string
}

// NewRegistry initialises a provider for every config with a non-empty
// API key; configs without keys are silently skipped.
func NewRegistry(active string, configs map[string]ProviderConfig) *Registry {
	r := &Registry{
		providers: make(map[string]Provider),
		active:    active,
	}

	for name, cfg := range configs {
		if cfg.APIKey == "" {
			continue
		}
		switch name {
		case "azure":
			r.providers[name] = newAzure(cfg)
		case "openai":
			r.providers[name] = newOpenAI(cfg)
		}
	}

	return r
}

// Ask forwards the question to the active provider.
func (r *Registry) Ask(ctx context.Context, question string) (string, error) {
	p, err := r.Active()
	if err != nil {
		return "", err
	}
	return p.Ask(ctx, question)
}

// Active returns the currently active provider.
func (r *Registry) Active() (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.providers[r.active]
	if !ok {
		return nil, fmt.Errorf("ai: no provider configured for %q", r.active)
	}
	return p, nil
}

// ActiveName returns the name of the currently active provider.
func (r *Registry) ActiveName() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.active
}

// Available returns the names of all providers with valid API keys.
func (r *Registry) Available() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var names []string
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

// Register adds or replaces a provider, used to inject fakes in tests.
func (r *Registry) Register(name string, p Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = p
}
