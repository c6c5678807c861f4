// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metadata builds the flat story record the downstream indexer
// consumes alongside the published page.
package metadata

import (
	"encoding/json"

	"storieslab/internal/identity"
	"storieslab/internal/models"
)

// StoryLogoLink is the fixed publisher logo rendition.
const StoryLogoLink = "https://media.suvichaar.org/filters:resize/96x96/media/brandasset/suvichaariconblack.png"

// Record is the serialized story description. Field names are part of the
// indexing contract — do not rename.
type Record struct {
	StoryTitle      string `json:"story_title"`
	Categories      string `json:"categories"`
	FilterTags      string `json:"filterTags"`
	StoryUID        string `json:"story_uid"`
	StoryLink       string `json:"story_link"`
	StoryHTMLURL    string `json:"storyhtmlurl"`
	URLSlug         string `json:"urlslug"`
	CoverImageLink  string `json:"cover_image_link"`
	PublisherID     string `json:"publisher_id"`
	StoryLogoLink   string `json:"story_logo_link"`
	Keywords        string `json:"keywords"`
	MetaDescription string `json:"metadescription"`
	Lang            string `json:"lang"`
}

// Build assembles the metadata record from the submission input, the
// identity bundle, and the primary image's CDN URL. identity may be nil
// when upstream generation failed; the identifier fields stay empty.
// Pure — no failure modes beyond what upstream already surfaced.
func Build(in models.StoryInput, id *identity.Bundle, coverImageURL string) Record {
	rec := Record{
		StoryTitle:      in.Title,
		Categories:      in.Category,
		CoverImageLink:  coverImageURL,
		StoryLogoLink:   StoryLogoLink,
		Keywords:        in.Keywords,
		MetaDescription: in.Description,
		Lang:            string(in.Language),
	}
	if id != nil {
		rec.StoryUID = id.ShortID
		rec.StoryLink = id.CanonicalURL
		rec.StoryHTMLURL = id.CanonicalURLAlt
		rec.URLSlug = id.CompositeSlug
	}
	return rec
}

// MarshalIndent serializes the record as 4-space-indented JSON, the form
// offered for download next to the assembled page.
func (r Record) MarshalIndent() ([]byte, error) {
	return json.MarshalIndent(r, "", "    ")
}
