// Package s3 wraps an S3-compatible object store (Cloudflare R2 in
// production) used for cover and portrait images.
package s3

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type Client struct {
	api       *s3.Client
	presigner *s3.PresignClient
	bucket    string
	baseURL   string
}

// NewClient builds a client from AWS_* environment variables. ASSET_BASE_URL,
// when set, is the public prefix returned for uploaded objects; otherwise
// callers fall back to presigned GET URLs.
func NewClient(ctx context.Context) (*Client, error) {
	endpoint := os.Getenv("AWS_ENDPOINT")
	region := os.Getenv("AWS_REGION")
	bucket := os.Getenv("AWS_BUCKET")
	if bucket == "" {
		return nil, fmt.Errorf("AWS_BUCKET not set")
	}

	creds := credentials.NewStaticCredentialsProvider(
		os.Getenv("AWS_ACCESS_KEY_ID"),
		os.Getenv("AWS_SECRET_ACCESS_KEY"),
		"",
	)

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(region),
		config.WithCredentialsProvider(creds),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = false
	})

	return &Client{
		api:       api,
		presigner: s3.NewPresignClient(api),
		bucket:    bucket,
		baseURL:   os.Getenv("ASSET_BASE_URL"),
	}, nil
}

// PresignPut creates a presigned PUT URL for direct upload.
func (c *Client) PresignPut(ctx context.Context, objectKey, contentType string) (string, error) {
	req, err := c.presigner.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(c.bucket),
		Key:         aws.String(objectKey),
		ContentType: aws.String(contentType),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 15 * time.Minute
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign upload: %w", err)
	}
	return req.URL, nil
}

// PresignGet creates a presigned GET URL for downloading.
func (c *Client) PresignGet(ctx context.Context, objectKey string) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	}, func(opts *s3.PresignOptions) {
		opts.Expires = 15 * time.Minute
	})
	if err != nil {
		return "", fmt.Errorf("failed to presign download: %w", err)
	}
	return req.URL, nil
}

// Upload presigns a PUT and streams body to it. contentLength MUST be set;
// R2 rejects chunked uploads without it.
func (c *Client) Upload(ctx context.Context, objectKey string, body io.Reader, contentType string, contentLength int64) error {
	uploadURL, err := c.PresignPut(ctx, objectKey, contentType)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, uploadURL, body)
	if err != nil {
		return fmt.Errorf("create put request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Content-Length", strconv.FormatInt(contentLength, 10))
	req.ContentLength = contentLength

	client := &http.Client{Timeout: 2 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("put to object store failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("object store upload failed status=%d", resp.StatusCode)
	}
	return nil
}

// PublicURL resolves the URL served back to clients for objectKey. With no
// ASSET_BASE_URL configured it falls back to a presigned GET.
func (c *Client) PublicURL(ctx context.Context, objectKey string) (string, error) {
	if c.baseURL != "" {
		return fmt.Sprintf("%s/%s", c.baseURL, objectKey), nil
	}
	return c.PresignGet(ctx, objectKey)
}

// DeleteObject deletes an object from the bucket (used for cleanup).
func (c *Client) DeleteObject(ctx context.Context, objectKey string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return fmt.Errorf("s3: delete object %s: %w", objectKey, err)
	}
	return nil
}
