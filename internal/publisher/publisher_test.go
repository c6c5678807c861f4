package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"storieslab/internal/assembler"
	"storieslab/internal/fetch"
	"storieslab/internal/identity"
	"storieslab/internal/imaging"
	"storieslab/internal/models"
)

// fakeFetcher returns canned bytes or an error.
type fakeFetcher struct {
	img *fetch.Image
	err error
}

func (f *fakeFetcher) Fetch(_ context.Context, _ string) (*fetch.Image, error) {
	return f.img, f.err
}

// fakeUploader records uploads in memory.
type fakeUploader struct {
	uploads map[string][]byte
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, key, _ string, body []byte) error {
	if u.err != nil {
		return u.err
	}
	if u.uploads == nil {
		u.uploads = make(map[string][]byte)
	}
	u.uploads[key] = body
	return nil
}

func (u *fakeUploader) FileURL(key string) string {
	return "https://cdn.suvichaar.org/" + key
}

const testTemplate = `<html lang="{{lang}}"><head><title>{{pagetitle}}</title>` +
	`<link rel="canonical" href="{{canurl}}"></head>` +
	`<amp-story standalone poster-portrait-src="{{image0}}">` +
	assembler.DefaultAnalyticsTag +
	`</amp-story></html>`

const testUpload = `<style amp-custom>p{}</style>` +
	`<amp-story-page id="s1"></amp-story-page></amp-story>`

func testPublisher() *Publisher {
	return &Publisher{
		Fetcher: &fakeFetcher{img: &fetch.Image{Data: []byte("jpg"), ContentType: "image/jpeg"}},
		Storage: &fakeUploader{},
		Images:  imaging.Builder{Bucket: "suvichaarapp"},
		Assembler: &assembler.Assembler{
			Authors: []string{"Onip"},
			Now:     func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) },
		},
		LoadTemplate: func() (string, error) { return testTemplate, nil },
		S3Prefix:     "media/",
	}
}

func testSubmission() Submission {
	return Submission{
		Story: models.StoryInput{
			Title:       "My Story!",
			Description: "desc",
			Keywords:    "k1,k2",
			ContentType: models.ContentTypeNews,
			Language:    models.LanguageEnUS,
			Category:    "Travel",
		},
		ImageURL: "https://example.org/cover.jpg",
		RawHTML:  testUpload,
	}
}

func TestPublish_HappyPath(t *testing.T) {
	p := testPublisher()
	up := p.Storage.(*fakeUploader)

	res, err := p.Publish(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Publish: unexpected error: %v", err)
	}

	if len(res.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", res.Warnings)
	}
	if res.Identity == nil || res.Identity.Slug != "my-story" {
		t.Fatalf("Identity = %+v", res.Identity)
	}

	// Exactly one object uploaded under the fresh key.
	if len(up.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(up.uploads))
	}
	if _, ok := up.uploads[res.StorageKey]; !ok {
		t.Errorf("upload key mismatch: %q not in %v", res.StorageKey, up.uploads)
	}
	if !strings.HasPrefix(res.StorageKey, "media/") || !strings.HasSuffix(res.StorageKey, ".jpg") {
		t.Errorf("StorageKey = %q", res.StorageKey)
	}
	if res.ImageURL != "https://cdn.suvichaar.org/"+res.StorageKey {
		t.Errorf("ImageURL = %q", res.ImageURL)
	}

	// Assembled page: canonical URL substituted, fragments spliced.
	if !strings.Contains(res.HTML, res.Identity.CanonicalURL) {
		t.Errorf("HTML missing canonical URL")
	}
	if !strings.Contains(res.HTML, `<style amp-custom>p{}</style>`) {
		t.Errorf("HTML missing injected style block")
	}
	if !strings.Contains(res.HTML, `<amp-story-page id="s1">`) {
		t.Errorf("HTML missing injected story block")
	}
	if !strings.Contains(res.HTML, "<title>My Story! | Suvichaar</title>") {
		t.Errorf("HTML missing composed page title")
	}

	// Metadata cover link is the primary placement URL for the fresh key.
	wantCover := p.Images.URL(res.StorageKey, 720, 1200)
	if res.Metadata.CoverImageLink != wantCover {
		t.Errorf("CoverImageLink = %q, want %q", res.Metadata.CoverImageLink, wantCover)
	}
	if res.Metadata.URLSlug != res.Identity.CompositeSlug {
		t.Errorf("URLSlug = %q", res.Metadata.URLSlug)
	}
}

func TestPublish_InvalidTitleDegrades(t *testing.T) {
	p := testPublisher()
	sub := testSubmission()
	sub.Story.Title = "   "

	res, err := p.Publish(context.Background(), sub)
	if err != nil {
		t.Fatalf("Publish: unexpected error: %v", err)
	}

	if res.Identity != nil {
		t.Errorf("Identity = %+v, want nil", res.Identity)
	}
	hasIdentityWarning := false
	for _, w := range res.Warnings {
		if strings.HasPrefix(w, "identity:") {
			hasIdentityWarning = true
		}
	}
	if !hasIdentityWarning {
		t.Errorf("Warnings = %v, want an identity warning", res.Warnings)
	}

	// Assembly still ran, with empty identifier placeholders.
	if !strings.Contains(res.HTML, `href=""`) {
		t.Errorf("canonical placeholder should resolve to empty string")
	}
	if res.Metadata.StoryUID != "" || res.Metadata.URLSlug != "" {
		t.Errorf("metadata identifier fields should stay empty: %+v", res.Metadata)
	}
}

func TestPublish_NoImageURL(t *testing.T) {
	p := testPublisher()
	sub := testSubmission()
	sub.ImageURL = ""

	res, err := p.Publish(context.Background(), sub)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}

	if res.StorageKey != DefaultImageKey {
		t.Errorf("StorageKey = %q, want default", res.StorageKey)
	}
	if res.ImageURL != "" {
		t.Errorf("ImageURL = %q, want empty for default image", res.ImageURL)
	}
	if len(res.Warnings) != 1 || !strings.Contains(res.Warnings[0], "default image") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
	if res.Metadata.CoverImageLink != p.Images.URL(DefaultImageKey, 720, 1200) {
		t.Errorf("CoverImageLink should derive from the default key")
	}
}

func TestPublish_FetchFailureFallsBack(t *testing.T) {
	p := testPublisher()
	p.Fetcher = &fakeFetcher{err: errors.New("connection refused")}

	res, err := p.Publish(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.StorageKey != DefaultImageKey {
		t.Errorf("StorageKey = %q, want default after fetch failure", res.StorageKey)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "image fetch failed") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestPublish_UploadFailureFallsBack(t *testing.T) {
	p := testPublisher()
	p.Storage = &fakeUploader{err: errors.New("access denied")}

	res, err := p.Publish(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.StorageKey != DefaultImageKey {
		t.Errorf("StorageKey = %q, want default after upload failure", res.StorageKey)
	}
	if len(res.Warnings) == 0 || !strings.Contains(res.Warnings[0], "image upload failed") {
		t.Errorf("Warnings = %v", res.Warnings)
	}
}

func TestPublish_NilStorageFallsBack(t *testing.T) {
	p := testPublisher()
	p.Storage = nil

	res, err := p.Publish(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if res.StorageKey != DefaultImageKey {
		t.Errorf("StorageKey = %q, want default without storage", res.StorageKey)
	}
}

func TestPublish_FragmentWarningsPropagate(t *testing.T) {
	p := testPublisher()
	sub := testSubmission()
	sub.RawHTML = "<p>no amp markers at all</p>"

	res, err := p.Publish(context.Background(), sub)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if len(res.Warnings) != 2 {
		t.Errorf("Warnings = %v, want style + story notes", res.Warnings)
	}
}

func TestPublish_NoUploadNoFragmentWarnings(t *testing.T) {
	p := testPublisher()
	sub := testSubmission()
	sub.RawHTML = ""

	res, err := p.Publish(context.Background(), sub)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	// An absent upload is not a degradation; no fragment warnings expected.
	for _, w := range res.Warnings {
		if strings.Contains(w, "amp") {
			t.Errorf("unexpected fragment warning without an upload: %q", w)
		}
	}
}

func TestPublish_TemplateReadFailureIsFatal(t *testing.T) {
	p := testPublisher()
	p.LoadTemplate = func() (string, error) { return "", fmt.Errorf("open: no such file") }

	_, err := p.Publish(context.Background(), testSubmission())
	if !errors.Is(err, ErrTemplateRead) {
		t.Fatalf("error = %v, want ErrTemplateRead", err)
	}
}

func TestPublish_EmptyTemplateIsFatal(t *testing.T) {
	p := testPublisher()
	p.LoadTemplate = func() (string, error) { return "", nil }

	_, err := p.Publish(context.Background(), testSubmission())
	if !errors.Is(err, ErrTemplateRead) {
		t.Fatalf("error = %v, want ErrTemplateRead", err)
	}
}

// TestPublish_IdentityBasesFlowThrough pins that custom canonical bases
// reach both the page and the metadata record.
func TestPublish_IdentityBasesFlowThrough(t *testing.T) {
	p := testPublisher()
	p.Identity = identity.Generator{
		StoryBase: "https://staging.example.org/s/",
		HTMLBase:  "https://h.example.org/",
	}

	res, err := p.Publish(context.Background(), testSubmission())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if !strings.HasPrefix(res.Metadata.StoryLink, "https://staging.example.org/s/") {
		t.Errorf("StoryLink = %q", res.Metadata.StoryLink)
	}
	if !strings.HasSuffix(res.Metadata.StoryHTMLURL, ".html") {
		t.Errorf("StoryHTMLURL = %q", res.Metadata.StoryHTMLURL)
	}
}
