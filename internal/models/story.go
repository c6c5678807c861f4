// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

// ContentType classifies a submission for downstream indexing.
type ContentType string

const (
	ContentTypeNews    ContentType = "News"
	ContentTypeArticle ContentType = "Article"
)

// Language is the locale tag of a story.
type Language string

const (
	LanguageEnUS Language = "en-US"
	LanguageHiIN Language = "hi-IN"
)

// Categories is the closed set of topic labels a story can carry.
var Categories = []string{
	"Art", "Travel", "Entertainment", "Literature", "Books", "Sports",
	"History", "Culture", "Wildlife", "Spiritual", "Food",
}

// StoryInput is the plain record of form fields one submission carries.
// Created once per submission; immutable thereafter.
type StoryInput struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Keywords    string      `json:"keywords"` // comma-separated
	ContentType ContentType `json:"content_type"`
	Language    Language    `json:"language"`
	Category    string      `json:"category"`
}

// ValidContentType reports whether v is one of the accepted content types.
func ValidContentType(v string) bool {
	return v == string(ContentTypeNews) || v == string(ContentTypeArticle)
}

// ValidLanguage reports whether v is one of the accepted locale tags.
func ValidLanguage(v string) bool {
	return v == string(LanguageEnUS) || v == string(LanguageHiIN)
}

// ValidCategory reports whether v is in the closed category set.
func ValidCategory(v string) bool {
	for _, c := range Categories {
		if c == v {
			return true
		}
	}
	return false
}
