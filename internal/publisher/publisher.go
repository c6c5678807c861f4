// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package publisher runs one story submission end to end: identifier
// generation, image re-hosting, fragment extraction, template assembly,
// and metadata building. Every step except the template read degrades
// gracefully — the result always carries a document plus the list of
// omissions that occurred, so callers can tell "fully assembled" from
// "assembled with warnings".
package publisher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"storieslab/internal/assembler"
	"storieslab/internal/fetch"
	"storieslab/internal/fragment"
	"storieslab/internal/identity"
	"storieslab/internal/imaging"
	"storieslab/internal/metadata"
	"storieslab/internal/models"
)

// ErrTemplateRead marks the one fatal failure mode: the page template
// could not be loaded. Everything downstream depends on it.
var ErrTemplateRead = errors.New("publisher: cannot read page template")

// DefaultImageKey is the placeholder object key used when no image URL is
// given or re-hosting fails.
const DefaultImageKey = "media/default.png"

// DefaultPageTitleSuffix is appended to the story title to form the page title.
const DefaultPageTitleSuffix = " | Suvichaar"

// Fetcher downloads the source image.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*fetch.Image, error)
}

// Uploader stores image bytes under a key and resolves retrieval URLs.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body []byte) error
	FileURL(key string) string
}

// Submission is one complete form submission handed to Publish.
type Submission struct {
	Story    models.StoryInput
	ImageURL string // optional source image to re-host
	RawHTML  string // optional uploaded fragment document
}

// Result is everything one submission produces.
type Result struct {
	HTML       string
	Metadata   metadata.Record
	Identity   *identity.Bundle // nil when title was invalid
	StorageKey string           // object key the placements derive from
	ImageURL   string           // CDN URL of the re-hosted original, "" when the default was used
	Warnings   []string
}

// Publisher wires the pipeline's collaborators. Storage may be nil
// (uploads degrade to the default key); everything else is required.
type Publisher struct {
	Identity     identity.Generator
	Fetcher      Fetcher
	Storage      Uploader
	Images       imaging.Builder
	Assembler    *assembler.Assembler
	LoadTemplate func() (string, error)

	S3Prefix        string // key prefix for re-hosted images
	PageTitleSuffix string // defaults to DefaultPageTitleSuffix
}

// FileTemplate returns a template loader reading from a fixed path on
// every submission, so template edits apply without a restart.
func FileTemplate(path string) func() (string, error) {
	return func() (string, error) {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		return string(b), nil
	}
}

// Publish processes one submission synchronously. The returned error is
// non-nil only for template read/assembly failures; all other failures
// surface as warnings on the result.
func (p *Publisher) Publish(ctx context.Context, sub Submission) (*Result, error) {
	res := &Result{}

	// Identity. An invalid title degrades: assembly proceeds with empty
	// identifier fields, and the omission is recorded explicitly.
	id, err := p.Identity.New(sub.Story.Title)
	if err != nil {
		slog.Warn("identity generation failed", "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("identity: %v", err))
	}
	res.Identity = id

	pageTitle := ""
	if id != nil {
		suffix := p.PageTitleSuffix
		if suffix == "" {
			suffix = DefaultPageTitleSuffix
		}
		pageTitle = sub.Story.Title + suffix
	}

	// Image re-hosting. Any failure falls back to the default placeholder.
	res.StorageKey, res.ImageURL = p.rehostImage(ctx, sub.ImageURL, res)

	imageURLs := p.Images.PlacementURLs(res.StorageKey, nil)

	// Fragment extraction runs only when a document was uploaded; an
	// absent upload is not a degradation worth warning about.
	var frag fragment.Result
	if sub.RawHTML != "" {
		frag = fragment.Extract(sub.RawHTML)
		for _, w := range frag.Warnings {
			slog.Info("fragment extraction", "note", w)
		}
		res.Warnings = append(res.Warnings, frag.Warnings...)
	}

	tmpl, err := p.LoadTemplate()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}

	asm, err := p.Assembler.Assemble(tmpl, assembler.Inputs{
		Story:      sub.Story,
		Identity:   id,
		PageTitle:  pageTitle,
		ImageURLs:  imageURLs,
		StyleBlock: frag.StyleBlock,
		StoryBlock: frag.StoryBlock,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplateRead, err)
	}
	res.HTML = asm.HTML
	res.Warnings = append(res.Warnings, asm.Warnings...)

	res.Metadata = metadata.Build(sub.Story, id, imageURLs[imaging.PrimaryPlacement])

	if len(res.Warnings) > 0 {
		slog.Warn("submission assembled with omissions", "count", len(res.Warnings))
	}
	return res, nil
}

// rehostImage fetches the source image and uploads it under a fresh key.
// Returns the storage key the placements should use and the retrieval URL
// of the uploaded original ("" when the default placeholder is used).
func (p *Publisher) rehostImage(ctx context.Context, imageURL string, res *Result) (string, string) {
	if imageURL == "" {
		res.Warnings = append(res.Warnings, "no image URL provided; using default image")
		return DefaultImageKey, ""
	}
	if p.Storage == nil {
		slog.Warn("object storage not configured; using default image")
		res.Warnings = append(res.Warnings, "object storage not configured; using default image")
		return DefaultImageKey, ""
	}

	img, err := p.Fetcher.Fetch(ctx, imageURL)
	if err != nil {
		slog.Warn("image fetch failed, using default", "url", imageURL, "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("image fetch failed, using default: %v", err))
		return DefaultImageKey, ""
	}

	key := fetch.StorageKey(p.S3Prefix, imageURL)
	if err := p.Storage.Upload(ctx, key, img.ContentType, img.Data); err != nil {
		slog.Warn("image upload failed, using default", "key", key, "error", err)
		res.Warnings = append(res.Warnings, fmt.Sprintf("image upload failed, using default: %v", err))
		return DefaultImageKey, ""
	}

	slog.Info("image re-hosted", "key", key)
	return key, p.Storage.FileURL(key)
}
