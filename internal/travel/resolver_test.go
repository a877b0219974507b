package travel_test

import (
	"context"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"wanderbot/internal/config"
	"wanderbot/internal/geo"
	"wanderbot/internal/travel"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func resolverConfig() *config.Config {
	return &config.Config{
		Travel: config.TravelConfig{
			DynamicEnabled:  true,
			FailureCooldown: 10 * time.Minute,
		},
		Gemini: config.GeminiConfig{
			Model:   "test-model",
			Timeout: 5 * time.Second,
		},
	}
}

// fakeCompleter scripts the LLM capability.
type fakeCompleter struct {
	response string
	err      error
	calls    int
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string, _ float32) (string, error) {
	f.calls++
	return f.response, f.err
}

// fakeSearcher scripts the photo capability.
type fakeSearcher struct {
	url     string
	queries []string
}

func (f *fakeSearcher) SearchFirst(_ context.Context, queries []string) string {
	f.queries = queries
	return f.url
}

func inCatalog(loc geo.Location) bool {
	for _, entry := range geo.Catalog {
		if entry.Landmark == loc.Landmark && entry.Country == loc.Country {
			return true
		}
	}
	return false
}

func TestResolveCatalogOnlyWhenDisabled(t *testing.T) {
	t.Parallel()

	cfg := resolverConfig()
	cfg.Travel.DynamicEnabled = false
	runtime := travel.NewRuntime(travel.SystemClock())
	ai := &fakeCompleter{response: "unused"}
	resolver := travel.NewResolver(discardLogger(), cfg, ai, nil, runtime, rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		loc := resolver.Resolve(context.Background())
		if !inCatalog(loc) {
			t.Fatalf("iteration %d: %q is not a catalog entry", i, loc.Landmark)
		}
	}
	if ai.calls != 0 {
		t.Errorf("completer should never be invoked when dynamic generation is off, got %d calls", ai.calls)
	}
}

func TestResolveMalformedResponseFallsBack(t *testing.T) {
	t.Parallel()

	clock := newFakeClock(time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC))
	runtime := travel.NewRuntime(clock)
	ai := &fakeCompleter{response: "I would rather chat about the weather."}
	resolver := travel.NewResolver(discardLogger(), resolverConfig(), ai, nil, runtime, rand.New(rand.NewSource(1)))

	loc := resolver.Resolve(context.Background())
	if !inCatalog(loc) {
		t.Errorf("malformed response should fall back to the catalog, got %q", loc.Landmark)
	}
	if !runtime.InCooldown() {
		t.Error("failure should arm the cooldown")
	}

	// While cooled down the completer is not consulted.
	resolver.Resolve(context.Background())
	if ai.calls != 1 {
		t.Errorf("expected 1 completer call during cooldown, got %d", ai.calls)
	}

	// After the cooldown elapses generation is attempted again.
	clock.Advance(10*time.Minute + time.Second)
	resolver.Resolve(context.Background())
	if ai.calls != 2 {
		t.Errorf("expected retry after cooldown expiry, got %d calls", ai.calls)
	}
}

func TestResolveSuccessClearsCooldownAndReplacesPhoto(t *testing.T) {
	t.Parallel()

	runtime := travel.NewRuntime(travel.SystemClock())
	ai := &fakeCompleter{response: "```json\n" +
		`{"country": "Norway", "country_localized": "Norge", "city": "Odda", ` +
		`"landmark": "Trolltunga", "timezone": "Europe/Oslo", ` +
		`"photo_url": "https://llm.example/suggested.jpg"}` + "\n```"}
	photos := &fakeSearcher{url: "https://stock.example/real.jpg"}
	resolver := travel.NewResolver(discardLogger(), resolverConfig(), ai, photos, runtime, rand.New(rand.NewSource(1)))

	loc := resolver.Resolve(context.Background())
	if loc.Landmark != "Trolltunga" {
		t.Fatalf("expected the generated destination, got %q", loc.Landmark)
	}
	if loc.PhotoURL != "https://stock.example/real.jpg" {
		t.Errorf("photo should be replaced by the stock search hit, got %q", loc.PhotoURL)
	}
	if runtime.InCooldown() {
		t.Error("success should leave no cooldown")
	}
	if len(photos.queries) == 0 {
		t.Fatal("photo search should receive candidate queries")
	}
}

func TestResolvePhotoMissKeepsSuggestedURL(t *testing.T) {
	t.Parallel()

	runtime := travel.NewRuntime(travel.SystemClock())
	ai := &fakeCompleter{response: "```json\n" +
		`{"country": "Norway", "landmark": "Trolltunga", "photo_url": "https://llm.example/suggested.jpg"}` +
		"\n```"}
	photos := &fakeSearcher{url: ""}
	resolver := travel.NewResolver(discardLogger(), resolverConfig(), ai, photos, runtime, rand.New(rand.NewSource(1)))

	loc := resolver.Resolve(context.Background())
	if loc.PhotoURL != "https://llm.example/suggested.jpg" {
		t.Errorf("photo miss should keep the suggested URL, got %q", loc.PhotoURL)
	}
}
