// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package assembler stitches a story submission into the master page
// template. It performs literal {{name}} placeholder substitution for a
// fixed vocabulary, then splices the extracted style and story fragments
// into their anchors. Splicing degrades gracefully: a missing fragment or
// anchor yields a warning in the result, never a failure.
package assembler

import (
	"errors"
	"math/rand"
	"regexp"
	"strings"
	"time"

	"storieslab/internal/identity"
	"storieslab/internal/models"
)

// ErrEmptyTemplate is returned when the page template text is empty —
// nothing can be assembled without it.
var ErrEmptyTemplate = errors.New("assembler: empty page template")

// DefaultAnalyticsTag is the analytics element whose presence in the
// template gates story-block injection. It is an existence check only;
// the physical insertion point is the story container's opening tag.
const DefaultAnalyticsTag = `<amp-story-auto-analytics gtag-id="G-2D5GXVRK1E" class="i-amphtml-layout-container" i-amphtml-layout="container"></amp-story-auto-analytics>`

// DefaultAuthors is the editor-tag pool one author is drawn from per page.
var DefaultAuthors = []string{"Onip", "Naman", "Mayank"}

const headCloseMarker = "</head>"

// storyOpenRe locates the opening tag of the outer story container in the
// template, attributes included.
var storyOpenRe = regexp.MustCompile(`<amp-story\b[^>]*>`)

// Inputs carries everything one assembly run consumes. Identity may be nil
// when identifier generation failed upstream; the URL and page-title
// placeholders then resolve to empty strings.
type Inputs struct {
	Story     models.StoryInput
	Identity  *identity.Bundle
	PageTitle string            // composed page title, e.g. "My Story | Suvichaar"
	ImageURLs map[string]string // placement name -> CDN transform URL

	StyleBlock string // extracted <style amp-custom> element, or ""
	StoryBlock string // extracted story-page span, or ""
}

// Result is the assembled document together with the degradations that
// occurred along the way, so callers can distinguish "fully assembled"
// from "assembled with omissions".
type Result struct {
	HTML     string
	Warnings []string
}

// Assembler performs template assembly. The zero value uses the default
// author pool, the default analytics tag, and the wall clock; tests inject
// Now and a single-author pool for determinism.
type Assembler struct {
	Authors      []string
	AnalyticsTag string
	Now          func() time.Time
}

// Assemble applies, in order: placeholder substitution, style injection
// before the head-close anchor, and story-block injection after the story
// container's opening tag. Order matters — the container search runs
// against the already-substituted text.
func (a *Assembler) Assemble(tmpl string, in Inputs) (*Result, error) {
	if tmpl == "" {
		return nil, ErrEmptyTemplate
	}

	doc := a.substitute(tmpl, in)
	res := &Result{}

	doc = a.injectStyle(doc, in.StyleBlock, res)
	doc = a.injectStory(doc, in.StoryBlock, res)

	res.HTML = doc
	return res, nil
}

// substitute replaces every occurrence of each known {{name}} token.
// Tokens outside the fixed vocabulary pass through unchanged — there is
// no generic interpolation.
func (a *Assembler) substitute(tmpl string, in Inputs) string {
	now := a.now().UTC()
	// Second precision with an explicit +00:00 offset, the form the
	// downstream story indexer expects.
	stamp := now.Format("2006-01-02T15:04:05") + "+00:00"

	values := map[string]string{
		"user":            a.pickAuthor(),
		"publishedtime":   stamp,
		"modifiedtime":    stamp,
		"storytitle":      in.Story.Title,
		"metadescription": in.Story.Description,
		"metakeywords":    in.Story.Keywords,
		"contenttype":     string(in.Story.ContentType),
		"lang":            string(in.Story.Language),
		"pagetitle":       in.PageTitle,
		"canurl":          "",
		"canurl1":         "",
	}
	if in.Identity != nil {
		values["canurl"] = in.Identity.CanonicalURL
		values["canurl1"] = in.Identity.CanonicalURLAlt
	}
	for name, url := range in.ImageURLs {
		values[name] = url
	}

	for name, v := range values {
		tmpl = strings.ReplaceAll(tmpl, "{{"+name+"}}", v)
	}
	return tmpl
}

// injectStyle inserts the extracted style element on its own line
// immediately before the first case-insensitive </head>. A missing
// fragment skips silently; a missing anchor records a warning.
func (a *Assembler) injectStyle(doc, style string, res *Result) string {
	if style == "" {
		return doc
	}

	pos := strings.Index(strings.ToLower(doc), headCloseMarker)
	if pos == -1 {
		res.Warnings = append(res.Warnings, "no </head> tag found in template to insert <style amp-custom>")
		return doc
	}

	return doc[:pos] + "\n" + style + "\n" + doc[pos:]
}

// injectStory inserts the extracted story pages immediately after the end
// of the story container's opening tag, but only when the analytics tag is
// present somewhere in the document. Either condition failing records a
// warning and skips the injection.
func (a *Assembler) injectStory(doc, story string, res *Result) string {
	if story == "" {
		return doc
	}

	loc := storyOpenRe.FindStringIndex(doc)
	tag := a.AnalyticsTag
	if tag == "" {
		tag = DefaultAnalyticsTag
	}

	if loc == nil || !strings.Contains(doc, tag) {
		res.Warnings = append(res.Warnings, "could not find story insertion points in the template")
		return doc
	}

	return doc[:loc[1]] + "\n\n" + story + "\n\n" + doc[loc[1]:]
}

func (a *Assembler) pickAuthor() string {
	authors := a.Authors
	if len(authors) == 0 {
		authors = DefaultAuthors
	}
	return authors[rand.Intn(len(authors))]
}

func (a *Assembler) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}
