package travel

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"wanderbot/internal/config"
	"wanderbot/internal/database"
	"wanderbot/internal/geo"
)

// ImageGenerator is the optional AI image capability for card backgrounds.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) ([]byte, error)
}

// FootprintData is the input bundle for the footprint card renderer.
type FootprintData struct {
	UserName string
	Location geo.Location
	TripAt   time.Time

	// BackgroundURL is used when BackgroundBytes is empty. Either may be
	// unset; the renderer substitutes a placeholder gradient.
	BackgroundURL   string
	BackgroundBytes []byte
}

// FootprintRenderer renders a footprint card to PNG bytes plus a filename.
type FootprintRenderer interface {
	RenderFootprint(ctx context.Context, data FootprintData) ([]byte, string, error)
}

// Uploader stores rendered bytes durably, returning a URL.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) (string, error)
}

// Result is the outcome of one travel trigger.
type Result struct {
	Location    geo.Location
	Message     string
	ImageBytes  []byte
	ImageName   string
	ImageURL    string
	AIGenerated bool
}

// Orchestrator runs the full travel sequence: resolve a destination,
// produce the card, persist the trip. It is the only component that writes
// to the travel log.
type Orchestrator struct {
	log      *slog.Logger
	cfg      *config.Config
	resolver *Resolver
	imageGen ImageGenerator
	renderer FootprintRenderer
	uploader Uploader
	store    database.Store
	runtime  *Runtime
}

// NewOrchestrator wires the orchestrator. imageGen, renderer, and uploader
// may be nil; the corresponding enhancement steps are skipped.
func NewOrchestrator(
	log *slog.Logger,
	cfg *config.Config,
	resolver *Resolver,
	imageGen ImageGenerator,
	renderer FootprintRenderer,
	uploader Uploader,
	store database.Store,
	runtime *Runtime,
) *Orchestrator {
	return &Orchestrator{
		log:      log.With("component", "travel_orchestrator"),
		cfg:      cfg,
		resolver: resolver,
		imageGen: imageGen,
		renderer: renderer,
		uploader: uploader,
		store:    store,
		runtime:  runtime,
	}
}

// Travel executes one travel trigger for the given user. Image generation,
// rendering, and upload failures all degrade; the travel-log insert is the
// only step whose failure is returned to the caller. Exactly one log row is
// written per invocation.
func (o *Orchestrator) Travel(ctx context.Context, platform string, chatID, userID int64, userName, backgroundOverride string) (*Result, error) {
	loc := o.resolver.Resolve(ctx)
	now := o.runtime.Now()

	result := &Result{
		Location: loc,
		Message:  o.formatMessage(loc),
	}

	if o.cfg.Render.OutputMode == "image" && o.renderer != nil {
		o.renderCard(ctx, result, userName, backgroundOverride, now)
	}

	entry := &database.TravelLog{
		Platform:         platform,
		UserID:           userID,
		ChatID:           chatID,
		UserName:         userName,
		TripAt:           now.UTC(),
		Country:          loc.Country,
		CountryLocalized: loc.CountryLocalized,
		City:             loc.City,
		Landmark:         loc.Landmark,
		LandmarkLocal:    loc.LandmarkLocalized,
		Timezone:         loc.Timezone,
		ImageURL:         result.ImageURL,
		AIGenerated:      result.AIGenerated,
	}
	if err := o.store.InsertTravelLog(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record trip: %w", err)
	}

	o.log.InfoContext(ctx, "Trip recorded",
		"user_id", userID, "chat_id", chatID,
		"country", loc.Country, "landmark", loc.Landmark,
		"ai_generated", result.AIGenerated, "has_image", len(result.ImageBytes) > 0)

	return result, nil
}

// renderCard fills the image fields of result. All failures are absorbed.
func (o *Orchestrator) renderCard(ctx context.Context, result *Result, userName, backgroundOverride string, now time.Time) {
	data := FootprintData{
		UserName: userName,
		Location: result.Location,
		TripAt:   now,
	}

	switch {
	case backgroundOverride != "":
		data.BackgroundURL = backgroundOverride
	case o.cfg.Travel.AIImageEnabled && o.imageGen != nil:
		if img, err := o.imageGen.GenerateImage(ctx, o.imagePrompt(result.Location)); err != nil {
			o.log.WarnContext(ctx, "AI background generation failed, using stock photo", "error", err)
			data.BackgroundURL = result.Location.PhotoURL
		} else {
			data.BackgroundBytes = img
			result.AIGenerated = true
		}
	default:
		data.BackgroundURL = result.Location.PhotoURL
	}

	imageBytes, filename, err := o.renderer.RenderFootprint(ctx, data)
	if err != nil {
		o.log.WarnContext(ctx, "Footprint card rendering failed, sending text only", "error", err)
		return
	}
	result.ImageBytes = imageBytes
	result.ImageName = filename

	if o.uploader != nil {
		url, err := o.uploader.Upload(ctx, filename, imageBytes)
		if err != nil {
			o.log.WarnContext(ctx, "Image upload failed, embedding raw bytes", "error", err)
			return
		}
		result.ImageURL = url
	}
}

func (o *Orchestrator) formatMessage(loc geo.Location) string {
	return strings.NewReplacer(
		"{landmark}", loc.LandmarkLocalized,
		"{country}", loc.CountryLocalized,
	).Replace(o.cfg.Messages.TravelTemplate)
}

func (o *Orchestrator) imagePrompt(loc geo.Location) string {
	return strings.NewReplacer(
		"{landmark}", loc.Landmark,
		"{country}", loc.Country,
		"{city}", loc.City,
	).Replace(o.cfg.Travel.AIImagePrompt)
}
