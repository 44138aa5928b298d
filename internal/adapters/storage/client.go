package storage

// Package storage provides a REST client for the hosted object store that
// holds profile pictures and brand logos.

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/collabhub/collabhub-api/internal/ports"
)

var _ ports.ObjectStorage = (*Client)(nil)

// Config captures the subset of the storage service behaviour we need.
type Config struct {
	BaseURL    string
	ServiceKey string
	Timeout    time.Duration
	Client     *http.Client
}

// Client performs bucket and object operations against the storage service.
type Client struct {
	baseURL    string
	serviceKey string
	client     *http.Client
}

// NewClient builds a storage client. Callers should pass a validated config.
func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSuffix(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("storage base URL is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	hc := cfg.Client
	if hc == nil {
		hc = &http.Client{Timeout: timeout}
	}

	return &Client{
		baseURL:    baseURL,
		serviceKey: strings.TrimSpace(cfg.ServiceKey),
		client:     hc,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist. A bucket that
// already exists is success, not an error.
func (c *Client) EnsureBucket(ctx context.Context, bucket string) error {
	if bucket == "" {
		return errors.New("bucket name is required")
	}

	body, err := json.Marshal(map[string]any{"name": bucket, "public": true})
	if err != nil {
		return fmt.Errorf("encode bucket payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bucket", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build bucket request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("create bucket: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode < 300 || resp.StatusCode == http.StatusConflict {
		return nil
	}
	msg := readErrorMessage(resp.Body)
	if strings.Contains(strings.ToLower(msg), "already exists") {
		return nil
	}
	return fmt.Errorf("create bucket %q: status %d: %s", bucket, resp.StatusCode, msg)
}

// Upload stores an object at in.Bucket/in.Path, replacing any existing object.
func (c *Client) Upload(ctx context.Context, in ports.UploadInput) error {
	if in.Bucket == "" || in.Path == "" {
		return errors.New("bucket and path are required")
	}

	target := fmt.Sprintf("%s/object/%s/%s", c.baseURL, url.PathEscape(in.Bucket), escapeObjectPath(in.Path))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(in.Data))
	if err != nil {
		return fmt.Errorf("build upload request: %w", err)
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	// Overwrite on re-upload so repeated onboarding submissions stay idempotent.
	req.Header.Set("x-upsert", "true")
	c.authorize(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("upload object: %w", err)
	}
	defer drainAndClose(resp.Body)

	if resp.StatusCode >= 300 {
		return fmt.Errorf("upload %s/%s: status %d: %s", in.Bucket, in.Path, resp.StatusCode, readErrorMessage(resp.Body))
	}
	return nil
}

// PublicURL returns the public retrieval URL for an object.
func (c *Client) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", c.baseURL, url.PathEscape(bucket), escapeObjectPath(path))
}

func (c *Client) authorize(req *http.Request) {
	if c.serviceKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	}
}

// escapeObjectPath escapes each path segment while keeping separators.
func escapeObjectPath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// readErrorMessage extracts a service error message, preferring a JSON
// body with a "message" or "error" field.
func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil || len(raw) == 0 {
		return "no response body"
	}
	var body struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if jsonErr := json.Unmarshal(raw, &body); jsonErr == nil {
		if body.Message != "" {
			return body.Message
		}
		if body.Error != "" {
			return body.Error
		}
	}
	return strings.TrimSpace(string(raw))
}

func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, 4096))
	_ = body.Close()
}
