package metadata

import (
	"encoding/json"
	"strings"
	"testing"

	"storieslab/internal/identity"
	"storieslab/internal/models"
)

func testStory() models.StoryInput {
	return models.StoryInput{
		Title:       "My Story!",
		Description: "desc",
		Keywords:    "a,b,c",
		ContentType: models.ContentTypeArticle,
		Language:    models.LanguageHiIN,
		Category:    "Spiritual",
	}
}

func testBundle() *identity.Bundle {
	return &identity.Bundle{
		ShortID:         "AbC123xy_z_G",
		Slug:            "my-story",
		CompositeSlug:   "my-story_AbC123xy_z_G",
		CanonicalURL:    "https://suvichaar.org/stories/my-story_AbC123xy_z_G",
		CanonicalURLAlt: "https://stories.suvichaar.org/my-story_AbC123xy_z_G.html",
	}
}

func TestBuild(t *testing.T) {
	rec := Build(testStory(), testBundle(), "https://media.suvichaar.org/XYZ")

	if rec.StoryTitle != "My Story!" {
		t.Errorf("StoryTitle = %q", rec.StoryTitle)
	}
	if rec.Categories != "Spiritual" {
		t.Errorf("Categories = %q", rec.Categories)
	}
	if rec.StoryUID != "AbC123xy_z_G" {
		t.Errorf("StoryUID = %q", rec.StoryUID)
	}
	if rec.URLSlug != "my-story_AbC123xy_z_G" {
		t.Errorf("URLSlug = %q", rec.URLSlug)
	}
	if rec.CoverImageLink != "https://media.suvichaar.org/XYZ" {
		t.Errorf("CoverImageLink = %q", rec.CoverImageLink)
	}
	if rec.StoryLogoLink != StoryLogoLink {
		t.Errorf("StoryLogoLink = %q", rec.StoryLogoLink)
	}
	if rec.FilterTags != "" || rec.PublisherID != "" {
		t.Errorf("FilterTags/PublisherID must stay empty")
	}
	if rec.Lang != "hi-IN" {
		t.Errorf("Lang = %q", rec.Lang)
	}
}

func TestBuild_NilIdentity(t *testing.T) {
	rec := Build(testStory(), nil, "")

	if rec.StoryUID != "" || rec.StoryLink != "" || rec.StoryHTMLURL != "" || rec.URLSlug != "" {
		t.Errorf("identifier fields should stay empty without a bundle: %+v", rec)
	}
	if rec.StoryTitle != "My Story!" {
		t.Errorf("non-identity fields must still be populated")
	}
}

// TestRecord_JSONFieldNames pins the wire names — they are an external
// contract with the story indexer.
func TestRecord_JSONFieldNames(t *testing.T) {
	data, err := json.Marshal(Build(testStory(), testBundle(), "u"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	wantKeys := []string{
		"story_title", "categories", "filterTags", "story_uid", "story_link",
		"storyhtmlurl", "urlslug", "cover_image_link", "publisher_id",
		"story_logo_link", "keywords", "metadescription", "lang",
	}
	if len(m) != len(wantKeys) {
		t.Errorf("got %d fields, want %d", len(m), len(wantKeys))
	}
	for _, k := range wantKeys {
		if _, ok := m[k]; !ok {
			t.Errorf("missing JSON field %q", k)
		}
	}
}

func TestRecord_MarshalIndent(t *testing.T) {
	out, err := Build(testStory(), testBundle(), "u").MarshalIndent()
	if err != nil {
		t.Fatalf("MarshalIndent: %v", err)
	}
	if !strings.Contains(string(out), "\n    \"story_title\": \"My Story!\"") {
		t.Errorf("expected 4-space indentation, got:\n%s", out)
	}
}
