package handlers

import (
	"strings"
	"unicode/utf8"

	"storieslab/internal/models"
)

// Validation limits for submission form fields.
const (
	maxTitleLen    = 300
	maxDescLen     = 1_000
	maxKeywordsLen = 500
	maxImageURLLen = 2_000
)

// validateSubmission checks form inputs and returns the first error found.
func validateSubmission(in models.StoryInput, imageURL string) string {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "Title is too long (max 300 characters)."
	}
	if utf8.RuneCountInString(in.Description) > maxDescLen {
		return "Description is too long (max 1,000 characters)."
	}
	if utf8.RuneCountInString(in.Keywords) > maxKeywordsLen {
		return "Keywords are too long (max 500 characters)."
	}
	if utf8.RuneCountInString(imageURL) > maxImageURLLen {
		return "Image URL is too long (max 2,000 characters)."
	}
	if !models.ValidContentType(string(in.ContentType)) {
		return "Content type must be News or Article."
	}
	if !models.ValidLanguage(string(in.Language)) {
		return "Language must be en-US or hi-IN."
	}
	if !models.ValidCategory(in.Category) {
		return "Unknown category."
	}
	return ""
}
