// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package storage provides the S3 object-storage client used to re-host
// story images. It wraps the AWS SDK v2 with a single public bucket and a
// CDN retrieval convention of base URL + key.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client wraps an S3 client for story media uploads.
type Client struct {
	s3      *s3.Client
	bucket  string
	cdnBase string
}

// New creates an S3 storage client with static credentials. Returns
// (nil, nil) when credentials are missing, letting the app start without
// storage — submissions then fall back to the default placeholder image.
func New(region, accessKey, secretKey, bucket, cdnBase string) (*Client, error) {
	if accessKey == "" || secretKey == "" {
		return nil, nil
	}
	if bucket == "" {
		return nil, fmt.Errorf("storage: bucket is required")
	}

	s3Client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})

	return &Client{
		s3:      s3Client,
		bucket:  bucket,
		cdnBase: strings.TrimRight(cdnBase, "/") + "/",
	}, nil
}

// Upload stores an object under key with the given content type.
func (c *Client) Upload(ctx context.Context, key, contentType string, body []byte) error {
	_, err := c.s3.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", c.bucket, key, err)
	}
	return nil
}

// FileURL returns the CDN retrieval URL for an uploaded key.
func (c *Client) FileURL(key string) string {
	return c.cdnBase + key
}

// Bucket returns the configured bucket name.
func (c *Client) Bucket() string {
	return c.bucket
}
