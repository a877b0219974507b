// Package photos implements stock-photo search against Unsplash and Pexels.
// Providers are tried in a fixed preference order and every failure is
// non-fatal: the caller keeps its existing photo URL when nothing matches.
package photos

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"wanderbot/internal/config"
)

// Searcher finds one photo URL for a free-text query. A nil error with an
// empty URL means the provider had no match.
type Searcher interface {
	Search(ctx context.Context, query string) (string, error)
}

// Chain queries providers in order and returns the first hit.
type Chain struct {
	providers []Searcher
	log       *slog.Logger
}

// NewChain builds the provider chain from configuration. Unsplash is
// preferred over Pexels. Returns nil when no API key is configured, which
// disables photo replacement entirely.
func NewChain(cfg config.PhotosConfig, log *slog.Logger) *Chain {
	httpClient := &http.Client{Timeout: cfg.Timeout}

	var providers []Searcher
	if cfg.UnsplashKey != "" {
		providers = append(providers, &unsplashClient{key: cfg.UnsplashKey, http: httpClient})
	}
	if cfg.PexelsKey != "" {
		providers = append(providers, &pexelsClient{key: cfg.PexelsKey, http: httpClient})
	}
	if len(providers) == 0 {
		return nil
	}

	return &Chain{
		providers: providers,
		log:       log.With("component", "photo_search"),
	}
}

// SearchFirst tries each candidate query against each provider in order and
// returns the first non-empty photo URL. Queries that strip down to nothing
// are skipped. Returns "" when every combination misses.
func (c *Chain) SearchFirst(ctx context.Context, queries []string) string {
	for _, query := range queries {
		query = StripNonLatin(query)
		if query == "" {
			continue
		}
		for _, provider := range c.providers {
			url, err := provider.Search(ctx, query)
			if err != nil {
				c.log.WarnContext(ctx, "Photo search failed", "query", query, "error", err)
				continue
			}
			if url != "" {
				c.log.DebugContext(ctx, "Photo search hit", "query", query, "url", url)
				return url
			}
		}
	}
	return ""
}

// StripNonLatin removes characters outside basic Latin letters, digits, and
// separators, collapsing runs of whitespace. Provider search APIs handle
// localized scripts poorly, so queries are reduced to their Latin parts.
func StripNonLatin(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '\'':
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// doJSON performs one attempt with the client timeout, no retries.
func doJSON(ctx context.Context, client *http.Client, req *http.Request) (*http.Response, error) {
	req.Header.Set("Accept", "application/json")
	return client.Do(req.WithContext(ctx))
}
