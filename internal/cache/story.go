// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// story.go provides a Valkey-backed store for published story artifacts.
// Each submission produces two artifacts keyed by the composite slug: the
// assembled AMP document and its metadata JSON. Both are written together
// so the HTML and metadata endpoints always serve a matching pair.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	htmlKeyPrefix = "story:html:"
	metaKeyPrefix = "story:meta:"

	// DefaultStoryTTL is how long published artifacts stay available.
	DefaultStoryTTL = 24 * time.Hour
)

// StoryCache stores assembled stories and their metadata in Valkey.
type StoryCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStoryCache creates a story cache backed by the given Valkey client.
func NewStoryCache(client *redis.Client, ttl time.Duration) *StoryCache {
	if ttl == 0 {
		ttl = DefaultStoryTTL
	}
	return &StoryCache{client: client, ttl: ttl}
}

// Save stores the assembled HTML and metadata JSON under the composite slug.
func (sc *StoryCache) Save(ctx context.Context, slug string, html, meta []byte) error {
	if err := sc.client.Set(ctx, htmlKeyPrefix+slug, html, sc.ttl).Err(); err != nil {
		return err
	}
	if err := sc.client.Set(ctx, metaKeyPrefix+slug, meta, sc.ttl).Err(); err != nil {
		return err
	}
	slog.Debug("story cached", "slug", slug, "html_bytes", len(html))
	return nil
}

// HTML retrieves the assembled document for a slug. Returns false on miss.
func (sc *StoryCache) HTML(ctx context.Context, slug string) ([]byte, bool) {
	return sc.get(ctx, htmlKeyPrefix+slug)
}

// Metadata retrieves the metadata JSON for a slug. Returns false on miss.
func (sc *StoryCache) Metadata(ctx context.Context, slug string) ([]byte, bool) {
	return sc.get(ctx, metaKeyPrefix+slug)
}

// Delete removes both artifacts for a slug.
func (sc *StoryCache) Delete(ctx context.Context, slug string) {
	if err := sc.client.Del(ctx, htmlKeyPrefix+slug, metaKeyPrefix+slug).Err(); err != nil {
		slog.Warn("story cache delete error", "slug", slug, "error", err)
	}
}

func (sc *StoryCache) get(ctx context.Context, key string) ([]byte, bool) {
	val, err := sc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("story cache get error", "key", key, "error", err)
		return nil, false
	}
	return val, true
}
