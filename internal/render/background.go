package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"

	xdraw "golang.org/x/image/draw"

	"wanderbot/internal/config"
)

// backgroundFetcher resolves a card background to a CSS image value. It
// produces either an inline data URI, a direct URL, or a generated
// placeholder gradient. It never fails; rendering must not depend on a
// background fetch succeeding.
type backgroundFetcher struct {
	log    *slog.Logger
	cfg    config.RenderConfig
	client *http.Client
}

func newBackgroundFetcher(log *slog.Logger, cfg config.RenderConfig) *backgroundFetcher {
	return &backgroundFetcher{
		log:    log,
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.BackgroundTimeout},
	}
}

// resolve returns the CSS url(...) argument for the background. Raw bytes
// take precedence over a URL. Remote fetching follows the configured mode:
// "never" links the URL as-is, "auto" inlines up to the size ceiling and
// links above it, "always" inlines regardless of size.
func (f *backgroundFetcher) resolve(ctx context.Context, rawURL string, raw []byte) string {
	if len(raw) > 0 {
		return dataURI(raw)
	}
	if rawURL == "" {
		return dataURI(placeholderPNG("default"))
	}
	if f.cfg.BackgroundFetch == "never" {
		return rawURL
	}

	body, err := f.fetch(ctx, rawURL)
	if err != nil {
		f.log.WarnContext(ctx, "Background fetch failed, using placeholder gradient",
			"url", rawURL, "error", err)
		return dataURI(placeholderPNG(rawURL))
	}
	if body == nil {
		// Over the size ceiling in auto mode, link instead of inlining.
		return rawURL
	}
	return dataURI(body)
}

// fetch downloads the image. A nil, nil return means the body exceeded the
// auto-mode size ceiling and the caller should link the URL directly.
func (f *backgroundFetcher) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create background request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("background request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("background request returned status %d", resp.StatusCode)
	}

	limit := f.cfg.BackgroundMaxBytes
	if f.cfg.BackgroundFetch == "always" || limit <= 0 {
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read background body: %w", err)
		}
		return body, nil
	}

	if resp.ContentLength > limit {
		return nil, nil
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read background body: %w", err)
	}
	if int64(len(body)) > limit {
		return nil, nil
	}
	return body, nil
}

func dataURI(data []byte) string {
	mime := http.DetectContentType(data)
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// placeholder palettes, two corner colors each
var placeholderPalettes = [][2]color.RGBA{
	{{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff}, {R: 0x90, G: 0xcd, B: 0xf4, A: 0xff}},
	{{R: 0x55, G: 0x3c, B: 0x9b, A: 0xff}, {R: 0xee, G: 0x81, B: 0x6d, A: 0xff}},
	{{R: 0x0f, G: 0x76, B: 0x5e, A: 0xff}, {R: 0xa7, G: 0xf3, B: 0xd0, A: 0xff}},
	{{R: 0xb4, G: 0x53, B: 0x09, A: 0xff}, {R: 0xfd, G: 0xe6, B: 0x8a, A: 0xff}},
}

// placeholderPNG builds a smooth diagonal gradient by scaling a 2x2 seed
// image up to card size. The palette is picked from a hash of the seed so
// the same failed URL always yields the same gradient.
func placeholderPNG(seed string) []byte {
	h := fnv.New32a()
	h.Write([]byte(seed))
	palette := placeholderPalettes[h.Sum32()%uint32(len(placeholderPalettes))]

	corners := image.NewRGBA(image.Rect(0, 0, 2, 2))
	corners.SetRGBA(0, 0, palette[0])
	corners.SetRGBA(1, 1, palette[0])
	corners.SetRGBA(1, 0, palette[1])
	corners.SetRGBA(0, 1, palette[1])

	out := image.NewRGBA(image.Rect(0, 0, cardWidth, cardHeight))
	xdraw.CatmullRom.Scale(out, out.Bounds(), corners, corners.Bounds(), xdraw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return nil
	}
	return buf.Bytes()
}
