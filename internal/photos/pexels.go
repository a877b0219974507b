package photos

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

const pexelsSearchURL = "https://api.pexels.com/v1/search"

type pexelsClient struct {
	key  string
	http *http.Client
}

type pexelsResponse struct {
	Photos []struct {
		Src struct {
			Landscape string `json:"landscape"`
			Large     string `json:"large"`
		} `json:"src"`
	} `json:"photos"`
}

func (c *pexelsClient) Search(ctx context.Context, query string) (string, error) {
	endpoint := fmt.Sprintf("%s?query=%s&per_page=1&orientation=landscape",
		pexelsSearchURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build pexels request: %w", err)
	}
	req.Header.Set("Authorization", c.key)

	resp, err := doJSON(ctx, c.http, req)
	if err != nil {
		return "", fmt.Errorf("pexels request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("pexels returned status %d", resp.StatusCode)
	}

	var parsed pexelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode pexels response: %w", err)
	}

	if len(parsed.Photos) == 0 {
		return "", nil
	}
	if parsed.Photos[0].Src.Landscape != "" {
		return parsed.Photos[0].Src.Landscape, nil
	}
	return parsed.Photos[0].Src.Large, nil
}
