// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fragment extracts the relocatable sub-blocks from an uploaded raw
// AMP HTML document: the custom style element and the story-page body.
// Extraction is first-match text search, not balanced-tag parsing; nested
// or repeated markers are not disambiguated.
package fragment

import (
	"regexp"
	"strings"
)

// Markers delimiting the two fragments in the uploaded document.
const (
	storyOpenMarker  = "<amp-story-page"
	storyCloseMarker = "</amp-story>"
)

// styleRe matches the first inline style element carrying the amp-custom
// attribute, open and close tags inclusive, across multiple lines.
var styleRe = regexp.MustCompile(`(?is)<style\s+amp-custom[^>]*>.*?</style>`)

// Result holds the extracted fragments. A missing block leaves its field
// empty and adds a human-readable note to Warnings; extraction never fails.
type Result struct {
	StyleBlock string // full <style amp-custom ...>...</style> element, or ""
	StoryBlock string // first <amp-story-page ...> through </amp-story>, or ""
	Warnings   []string
}

// Extract pulls the style and story blocks out of the raw document.
// The style block is the first regex match for the amp-custom style element.
// The story block spans from the first <amp-story-page occurrence through
// the first </amp-story> occurrence after it, inclusive of the closing tag.
func Extract(raw string) Result {
	var res Result

	if m := styleRe.FindString(raw); m != "" {
		res.StyleBlock = m
	} else {
		res.Warnings = append(res.Warnings, "no <style amp-custom> block found in uploaded HTML")
	}

	start := strings.Index(raw, storyOpenMarker)
	if start == -1 {
		res.Warnings = append(res.Warnings, "no complete <amp-story> block found in uploaded HTML")
		return res
	}

	// The closing marker must occur after the opening one; an earlier stray
	// close tag does not count.
	rel := strings.Index(raw[start:], storyCloseMarker)
	if rel == -1 {
		res.Warnings = append(res.Warnings, "no complete <amp-story> block found in uploaded HTML")
		return res
	}

	end := start + rel + len(storyCloseMarker)
	res.StoryBlock = raw[start:end]
	return res
}
