package photos

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"wanderbot/internal/config"
)

func TestStripNonLatin(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain ascii", "Trolltunga Norway", "Trolltunga Norway"},
		{"mixed script", "挪威 Trolltunga 絶景", "Trolltunga"},
		{"only non-latin", "富士山", ""},
		{"collapses whitespace", "  Machu   Picchu  ", "Machu Picchu"},
		{"keeps hyphen and apostrophe", "Mont-Saint-Michel O'ahu", "Mont-Saint-Michel O'ahu"},
		{"drops punctuation", "Prague, Czech Republic!", "Prague Czech Republic"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := StripNonLatin(tt.input); got != tt.want {
				t.Errorf("StripNonLatin(%q) = %q, expected %q", tt.input, got, tt.want)
			}
		})
	}
}

type fakeSearcher struct {
	url     string
	err     error
	queries []string
}

func (f *fakeSearcher) Search(_ context.Context, query string) (string, error) {
	f.queries = append(f.queries, query)
	return f.url, f.err
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestChain(providers ...Searcher) *Chain {
	return &Chain{providers: providers, log: discardLogger()}
}

func TestSearchFirstReturnsFirstHit(t *testing.T) {
	t.Parallel()

	first := &fakeSearcher{url: "https://images.example/a.jpg"}
	second := &fakeSearcher{url: "https://images.example/b.jpg"}
	chain := newTestChain(first, second)

	got := chain.SearchFirst(context.Background(), []string{"Trolltunga Norway", "Norway landscape"})
	if got != "https://images.example/a.jpg" {
		t.Fatalf("SearchFirst = %q, expected first provider hit", got)
	}
	if len(first.queries) != 1 || first.queries[0] != "Trolltunga Norway" {
		t.Errorf("first provider queries = %v", first.queries)
	}
	if len(second.queries) != 0 {
		t.Errorf("second provider should not be queried after a hit, got %v", second.queries)
	}
}

func TestSearchFirstSkipsFailingProvider(t *testing.T) {
	t.Parallel()

	failing := &fakeSearcher{err: errors.New("rate limited")}
	working := &fakeSearcher{url: "https://images.example/ok.jpg"}
	chain := newTestChain(failing, working)

	got := chain.SearchFirst(context.Background(), []string{"Kyoto Japan"})
	if got != "https://images.example/ok.jpg" {
		t.Fatalf("SearchFirst = %q, expected fallback provider hit", got)
	}
	if len(failing.queries) != 1 {
		t.Errorf("failing provider should still be tried, queries = %v", failing.queries)
	}
}

func TestSearchFirstTriesNextQueryOnMiss(t *testing.T) {
	t.Parallel()

	provider := &fakeSearcher{}
	chain := newTestChain(provider)

	got := chain.SearchFirst(context.Background(), []string{"first query", "second query"})
	if got != "" {
		t.Fatalf("SearchFirst = %q, expected no hit", got)
	}
	want := []string{"first query", "second query"}
	if len(provider.queries) != len(want) {
		t.Fatalf("provider queries = %v, expected %v", provider.queries, want)
	}
	for i := range want {
		if provider.queries[i] != want[i] {
			t.Errorf("query %d = %q, expected %q", i, provider.queries[i], want[i])
		}
	}
}

func TestSearchFirstSkipsEmptyQueries(t *testing.T) {
	t.Parallel()

	provider := &fakeSearcher{url: "https://images.example/x.jpg"}
	chain := newTestChain(provider)

	got := chain.SearchFirst(context.Background(), []string{"富士山", "Fuji Japan"})
	if got != "https://images.example/x.jpg" {
		t.Fatalf("SearchFirst = %q", got)
	}
	if len(provider.queries) != 1 || provider.queries[0] != "Fuji Japan" {
		t.Errorf("non-latin query should be skipped, queries = %v", provider.queries)
	}
}

func TestNewChainDisabledWithoutKeys(t *testing.T) {
	t.Parallel()

	if chain := NewChain(config.PhotosConfig{}, discardLogger()); chain != nil {
		t.Error("expected nil chain when no API key is configured")
	}

	chain := NewChain(config.PhotosConfig{UnsplashKey: "key"}, discardLogger())
	if chain == nil {
		t.Fatal("expected chain with one provider")
	}
	if len(chain.providers) != 1 {
		t.Errorf("providers = %d, expected 1", len(chain.providers))
	}
}
