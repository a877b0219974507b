// Package sun looks up sunrise times by coordinates using the public
// sunrise-sunset.org API. Failures degrade to the caller's fallback; the
// lookup is best-effort and never blocks the message pipeline.
package sun

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const apiURL = "https://api.sunrise-sunset.org/json"

// Client fetches sunrise times for a coordinate pair.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a sunrise lookup client with the given per-request timeout.
func NewClient(timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: apiURL,
	}
}

// NewClientWithBaseURL is used by tests to point the client at a local server.
func NewClientWithBaseURL(timeout time.Duration, baseURL string) *Client {
	c := NewClient(timeout)
	c.baseURL = baseURL
	return c
}

type apiResponse struct {
	Status  string `json:"status"`
	Results struct {
		Sunrise string `json:"sunrise"`
	} `json:"results"`
}

// SunriseAt returns today's sunrise instant (UTC) for the coordinates.
func (c *Client) SunriseAt(ctx context.Context, lat, lon float64) (time.Time, error) {
	endpoint := fmt.Sprintf("%s?lat=%f&lng=%f&formatted=0", c.baseURL, lat, lon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to build sunrise request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return time.Time{}, fmt.Errorf("sunrise lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return time.Time{}, fmt.Errorf("sunrise API returned status %d", resp.StatusCode)
	}

	var parsed apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return time.Time{}, fmt.Errorf("failed to decode sunrise response: %w", err)
	}
	if parsed.Status != "OK" {
		return time.Time{}, fmt.Errorf("sunrise API returned status %q", parsed.Status)
	}

	sunrise, err := time.Parse(time.RFC3339, parsed.Results.Sunrise)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse sunrise time %q: %w", parsed.Results.Sunrise, err)
	}

	return sunrise.UTC(), nil
}
