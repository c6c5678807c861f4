// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package fetch downloads a submission's source image from an arbitrary
// URL so it can be re-hosted on object storage. One blocking round trip,
// short fixed timeout, no retries.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultTimeout bounds the whole fetch round trip.
	DefaultTimeout = 10 * time.Second

	// maxImageBytes caps how much of a response body is read. Anything
	// larger is rejected rather than buffered.
	maxImageBytes = 32 << 20 // 32 MB
)

// imageExts are the source extensions carried through to the storage key;
// everything else is normalized to .jpg.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// Image is a downloaded image ready for upload.
type Image struct {
	Data        []byte
	ContentType string
}

// Fetcher downloads images over HTTP. The zero value uses DefaultTimeout.
type Fetcher struct {
	client *http.Client
}

// New creates a fetcher with the given timeout (0 means DefaultTimeout).
func New(timeout time.Duration) *Fetcher {
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	return &Fetcher{client: &http.Client{Timeout: timeout}}
}

// Fetch downloads the image at rawURL. Non-2xx statuses are errors. When
// the server sends no Content-Type, image/jpeg is assumed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch: build request: %w", err)
	}

	client := f.client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch %s: unexpected status %d", rawURL, resp.StatusCode)
	}

	data, err := readLimited(resp.Body, maxImageBytes)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", rawURL, err)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "image/jpeg"
	}

	return &Image{Data: data, ContentType: contentType}, nil
}

// StorageKey derives a unique object key for the fetched image:
// prefix + random hex + the source URL's extension (lowercased, whitelisted,
// defaulting to .jpg). Each call yields a fresh key.
func StorageKey(prefix, rawURL string) string {
	ext := ".jpg"
	if u, err := url.Parse(rawURL); err == nil {
		if e := strings.ToLower(path.Ext(path.Base(u.Path))); imageExts[e] {
			ext = e
		}
	}

	id := uuid.New()
	return fmt.Sprintf("%s%x%s", prefix, id[:], ext)
}

// readLimited reads at most limit bytes from r, erroring out when the
// body is larger instead of truncating it silently.
func readLimited(r io.Reader, limit int64) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("response body exceeds %d bytes", limit)
	}
	return data, nil
}
