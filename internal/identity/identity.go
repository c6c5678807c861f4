// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package identity derives the canonical identifiers for a story submission:
// a URL-safe slug from the title, a random short ID, and the two canonical
// URL forms under which the published story is reachable.
package identity

import (
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidTitle is returned when the story title is empty or whitespace.
var ErrInvalidTitle = errors.New("identity: title must be a non-empty string")

const (
	// tokenAlphabet is the 64-symbol alphabet the short ID is drawn from.
	tokenAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_-"

	// tokenLength is the number of random symbols in a short ID.
	tokenLength = 10

	// tokenSuffix marks generated IDs; every short ID ends with it.
	tokenSuffix = "_G"
)

// Default canonical URL bases for the published story.
const (
	DefaultStoryBase = "https://suvichaar.org/stories/"
	DefaultStoryHTML = "https://stories.suvichaar.org/"
)

// Bundle holds every identifier derived for one submission. Computed once,
// never mutated.
type Bundle struct {
	ShortID         string // random token + suffix, e.g. "AbC123xy_z_G"
	Slug            string // hyphenated lowercase derivation of the title
	CompositeSlug   string // slug + "_" + ShortID; the unique story key
	CanonicalURL    string // path-style, e.g. https://suvichaar.org/stories/<compositeSlug>
	CanonicalURLAlt string // subdomain-style with .html suffix
}

// Generator builds identity bundles. URL bases are configurable so tests
// and staging environments can point elsewhere; zero values fall back to
// the production domains.
type Generator struct {
	StoryBase string
	HTMLBase  string
}

// New derives the full identity bundle for a title. The slug keeps only
// [a-z0-9-] after replacing spaces and underscores with hyphens; consecutive
// hyphens are preserved. A title with no usable characters yields an empty
// slug and a composite of the form "_<token>_G" — callers decide whether
// that is acceptable.
func (g Generator) New(title string) (*Bundle, error) {
	if strings.TrimSpace(title) == "" {
		return nil, ErrInvalidTitle
	}

	slug := Slugify(title)

	token, err := randomToken(tokenLength)
	if err != nil {
		return nil, fmt.Errorf("identity: token generation: %w", err)
	}

	shortID := token + tokenSuffix
	composite := slug + "_" + shortID

	storyBase := g.StoryBase
	if storyBase == "" {
		storyBase = DefaultStoryBase
	}
	htmlBase := g.HTMLBase
	if htmlBase == "" {
		htmlBase = DefaultStoryHTML
	}

	return &Bundle{
		ShortID:         shortID,
		Slug:            slug,
		CompositeSlug:   composite,
		CanonicalURL:    storyBase + composite,
		CanonicalURLAlt: htmlBase + composite + ".html",
	}, nil
}

// Slugify lowercases the title, replaces spaces and underscores with
// hyphens, strips everything outside [a-z0-9-], and trims hyphens from
// both ends.
func Slugify(title string) string {
	s := strings.ToLower(title)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}

	return strings.Trim(b.String(), "-")
}

// randomToken draws n independent uniform samples from tokenAlphabet using
// a cryptographically secure source. The alphabet has exactly 64 symbols,
// so a single random byte masked to 6 bits is an unbiased sample.
func randomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	out := make([]byte, n)
	for i, b := range buf {
		out[i] = tokenAlphabet[b&0x3f]
	}
	return string(out), nil
}
