package render

import (
	"bytes"
	"context"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wanderbot/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testFetcher(cfg config.RenderConfig) *backgroundFetcher {
	if cfg.BackgroundTimeout == 0 {
		cfg.BackgroundTimeout = 5 * time.Second
	}
	return newBackgroundFetcher(discardLogger(), cfg)
}

// pngBytes is a valid 1x1 PNG used as a fake remote image body.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	data := placeholderPNG("test")
	if len(data) == 0 {
		t.Fatal("placeholderPNG returned no data")
	}
	return data
}

func TestResolveRawBytesWin(t *testing.T) {
	t.Parallel()

	f := testFetcher(config.RenderConfig{BackgroundFetch: "never"})
	got := f.resolve(context.Background(), "https://example.com/bg.png", pngBytes(t))
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("raw bytes should become a data URI, got prefix %q", got[:min(40, len(got))])
	}
}

func TestResolveEmptyURLUsesPlaceholder(t *testing.T) {
	t.Parallel()

	f := testFetcher(config.RenderConfig{BackgroundFetch: "auto"})
	got := f.resolve(context.Background(), "", nil)
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("empty URL should yield a placeholder data URI, got prefix %q", got[:min(40, len(got))])
	}
}

func TestResolveNeverModeLinksURL(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("never mode must not fetch")
	}))
	defer srv.Close()

	f := testFetcher(config.RenderConfig{BackgroundFetch: "never"})
	got := f.resolve(context.Background(), srv.URL+"/bg.png", nil)
	if got != srv.URL+"/bg.png" {
		t.Errorf("resolve = %q, expected the URL as-is", got)
	}
}

func TestResolveAutoInlinesSmallImage(t *testing.T) {
	t.Parallel()

	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f := testFetcher(config.RenderConfig{
		BackgroundFetch:    "auto",
		BackgroundMaxBytes: int64(len(body)) + 100,
	})
	got := f.resolve(context.Background(), srv.URL, nil)
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("small image should be inlined, got prefix %q", got[:min(40, len(got))])
	}
}

func TestResolveAutoLinksOversizedImage(t *testing.T) {
	t.Parallel()

	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f := testFetcher(config.RenderConfig{
		BackgroundFetch:    "auto",
		BackgroundMaxBytes: 16,
	})
	got := f.resolve(context.Background(), srv.URL, nil)
	if got != srv.URL {
		t.Errorf("oversized image should be linked, got %q", got)
	}
}

func TestResolveAlwaysModeIgnoresCeiling(t *testing.T) {
	t.Parallel()

	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(body)
	}))
	defer srv.Close()

	f := testFetcher(config.RenderConfig{
		BackgroundFetch:    "always",
		BackgroundMaxBytes: 16,
	})
	got := f.resolve(context.Background(), srv.URL, nil)
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("always mode should inline regardless of size, got prefix %q", got[:min(40, len(got))])
	}
}

func TestResolveFetchFailureFallsBackToPlaceholder(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	f := testFetcher(config.RenderConfig{BackgroundFetch: "auto"})
	got := f.resolve(context.Background(), srv.URL, nil)
	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("fetch failure should yield a placeholder data URI, got prefix %q", got[:min(40, len(got))])
	}
}

func TestPlaceholderPNG(t *testing.T) {
	t.Parallel()

	a := placeholderPNG("https://example.com/one.jpg")
	b := placeholderPNG("https://example.com/one.jpg")
	if !bytes.Equal(a, b) {
		t.Error("placeholder must be deterministic per seed")
	}

	img, err := png.Decode(bytes.NewReader(a))
	if err != nil {
		t.Fatalf("placeholder is not a valid PNG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != cardWidth || bounds.Dy() != cardHeight {
		t.Errorf("placeholder size = %dx%d, expected %dx%d",
			bounds.Dx(), bounds.Dy(), cardWidth, cardHeight)
	}
}
