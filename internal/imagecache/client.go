// Package imagecache uploads rendered card images to a durable HTTP cache
// so outbound messages can link a URL instead of embedding raw bytes.
// Upload failure is non-fatal: callers fall back to byte embedding.
package imagecache

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"wanderbot/internal/config"
)

// Uploader stores image bytes and returns a durable URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

type httpUploader struct {
	http      *http.Client
	uploadURL string
	ttl       time.Duration
	log       *slog.Logger
}

// NewUploader builds the HTTP cache uploader, or nil when caching is
// disabled in configuration.
func NewUploader(cfg config.CacheConfig, log *slog.Logger) Uploader {
	if !cfg.Enabled || cfg.UploadURL == "" {
		return nil
	}
	return &httpUploader{
		http:      &http.Client{Timeout: cfg.Timeout},
		uploadURL: cfg.UploadURL,
		ttl:       cfg.TTL,
		log:       log.With("component", "image_cache"),
	}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload POSTs the image to the configured endpoint. The endpoint contract
// is a PNG body with a filename header and a JSON {"url": ...} response.
func (u *httpUploader) Upload(ctx context.Context, filename string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no image data to upload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.uploadURL, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", "image/png")
	req.Header.Set("X-Filename", filename)
	if u.ttl > 0 {
		req.Header.Set("X-TTL-Seconds", strconv.FormatInt(int64(u.ttl.Seconds()), 10))
	}

	resp, err := u.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("image upload failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("image cache returned status %d", resp.StatusCode)
	}

	var parsed uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode upload response: %w", err)
	}
	if parsed.URL == "" {
		return "", fmt.Errorf("image cache returned empty URL")
	}

	u.log.DebugContext(ctx, "Image uploaded", "filename", filename, "url", parsed.URL, "size", len(data))
	return parsed.URL, nil
}
