// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging builds on-the-fly image-transform URLs for the media CDN.
// No pixel processing happens here: each URL embeds a base64url-encoded
// resize descriptor that the downstream image service decodes and applies.
package imaging

import (
	"encoding/base64"
	"encoding/json"
)

// Placement describes one required image rendition of the story page.
type Placement struct {
	Name   string // template placeholder the URL is bound to
	Width  int    // target width in pixels
	Height int    // target height in pixels
}

// DefaultPlacements defines the three renditions every story needs:
// the portrait cover, the thumbnail, and the primary inline image.
var DefaultPlacements = []Placement{
	{Name: "potraitcoverurl", Width: 640, Height: 853},
	{Name: "msthumbnailcoverurl", Width: 300, Height: 300},
	{Name: "image0", Width: 720, Height: 1200},
}

// PrimaryPlacement is the rendition whose URL goes into the story metadata
// as the cover image link.
const PrimaryPlacement = "image0"

// DefaultCDNBase is the media-delivery base URL the encoded descriptor is
// appended to.
const DefaultCDNBase = "https://media.suvichaar.org/"

// descriptor is the wire format understood by the image-transform service.
type descriptor struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Edits  edits  `json:"edits"`
}

type edits struct {
	Resize resize `json:"resize"`
}

type resize struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Fit    string `json:"fit"`
}

// Builder assembles transform URLs for a fixed bucket and CDN base.
type Builder struct {
	Bucket  string
	CDNBase string // defaults to DefaultCDNBase when empty
}

// URL builds the transform URL for one rendition of the stored image.
// The descriptor is serialized as compact JSON and encoded with URL-safe
// base64, padding included. Pure and deterministic: identical inputs
// always yield the identical URL.
func (b Builder) URL(storageKey string, width, height int) string {
	d := descriptor{
		Bucket: b.Bucket,
		Key:    storageKey,
		Edits: edits{
			Resize: resize{Width: width, Height: height, Fit: "cover"},
		},
	}

	// The descriptor has no values json.Marshal can fail on.
	payload, _ := json.Marshal(d)
	encoded := base64.URLEncoding.EncodeToString(payload)

	base := b.CDNBase
	if base == "" {
		base = DefaultCDNBase
	}
	return base + encoded
}

// PlacementURLs builds one transform URL per placement, all deriving from
// the same storage key. The returned map is keyed by placement name and
// feeds directly into the template assembler's image placeholders.
func (b Builder) PlacementURLs(storageKey string, placements []Placement) map[string]string {
	if len(placements) == 0 {
		placements = DefaultPlacements
	}

	urls := make(map[string]string, len(placements))
	for _, p := range placements {
		urls[p.Name] = b.URL(storageKey, p.Width, p.Height)
	}
	return urls
}
