package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const unsplashSearchURL = "https://api.unsplash.com/search/photos"

type unsplashClient struct {
	key  string
	http *http.Client
}

type unsplashResponse struct {
	Results []struct {
		URLs struct {
			Regular string `json:"regular"`
		} `json:"urls"`
	} `json:"results"`
}

func (c *unsplashClient) Search(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s?query=%s&per_page=1&orientation=landscape",
		unsplashSearchURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+c.key)

	resp, err := doJSON(ctx, c.http, req)
	if err != nil {
		return "", fmt.Errorf("unsplash request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var parsed unsplashResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode unsplash response: %w", err)
	}

	if len(parsed.Results) == 0 {
		return "", nil
	}
	return parsed.Results[0].URLs.Regular, nil
}
