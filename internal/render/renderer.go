// Package render turns card data into PNG images. Each card is composed as
// an HTML document and screenshotted by a headless browser with a fixed
// viewport, after a short settle delay so images and fonts finish loading.
package render

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"wanderbot/internal/config"
)

const (
	cardWidth  = 800
	cardHeight = 520

	mapWidth  = 1100
	mapHeight = 620

	renderTimeout = 30 * time.Second
)

// Renderer drives a shared headless-browser allocator. Individual pages
// are created per render call and always released.
type Renderer struct {
	log *slog.Logger
	cfg *config.Config
	bg  *backgroundFetcher

	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewRenderer starts the browser allocator. Call Close on shutdown.
func NewRenderer(log *slog.Logger, cfg *config.Config) *Renderer {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoSandbox,
		chromedp.Flag("hide-scrollbars", true),
		chromedp.Flag("disable-gpu", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	componentLog := log.With("component", "render")
	return &Renderer{
		log:         componentLog,
		cfg:         cfg,
		bg:          newBackgroundFetcher(componentLog, cfg.Render),
		allocCtx:    allocCtx,
		allocCancel: allocCancel,
	}
}

// Close releases the browser allocator.
func (r *Renderer) Close() {
	r.allocCancel()
}

// snapshot renders the document and captures it as PNG bytes. The page
// context is released on every exit path.
func (r *Renderer) snapshot(ctx context.Context, html string, width, height int) ([]byte, error) {
	pageCtx, cancel := chromedp.NewContext(r.allocCtx)
	defer cancel()
	pageCtx, cancelTimeout := context.WithTimeout(pageCtx, renderTimeout)
	defer cancelTimeout()

	// Propagate caller cancellation into the page context.
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	settle := r.cfg.Render.SettleDelay
	dataURL := "data:text/html;charset=utf-8;base64," +
		base64.StdEncoding.EncodeToString([]byte(html))

	start := time.Now()
	var buf []byte
	err := chromedp.Run(pageCtx,
		chromedp.EmulateViewport(int64(width), int64(height)),
		chromedp.Navigate(dataURL),
		chromedp.Sleep(settle),
		chromedp.FullScreenshot(&buf, 100),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to capture screenshot: %w", err)
	}

	r.log.DebugContext(ctx, "Card rendered",
		"width", width, "height", height,
		"bytes", len(buf), "duration", time.Since(start))
	return buf, nil
}
