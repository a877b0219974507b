package travel

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"

	"wanderbot/internal/config"
	"wanderbot/internal/geo"
)

// Completer is the optional LLM capability the resolver uses for dynamic
// destination generation. Absent (nil) means catalog-only operation.
type Completer interface {
	Complete(ctx context.Context, systemInstruction, prompt string, temperature float32) (string, error)
}

// PhotoSearcher is the optional stock-photo capability used to replace the
// model-suggested photo URL with a real search result.
type PhotoSearcher interface {
	SearchFirst(ctx context.Context, queries []string) string
}

// destination categories the prompt can ask for.
var categories = []string{
	"a breathtaking natural wonder",
	"ancient or historic ruins",
	"a striking modern landmark",
	"a hidden gem few tourists know",
	"a polar or remote border region",
	"a dramatic coastal location",
	"a high mountain landscape",
	"a place of deep cultural significance",
	"a vibrant urban district",
	"an uncanny or surreal geological formation",
}

var continents = []string{
	"Africa", "Asia", "Europe", "North America", "South America", "Oceania",
}

// hotCountries are over-suggested destinations; each prompt excludes a
// random 3-6 of them for diversity.
var hotCountries = []string{
	"Japan", "France", "Italy", "United States", "China",
	"United Kingdom", "Spain", "Greece", "Australia",
}

const resolverSystemInstruction = `You are a travel destination picker. ` +
	`You answer with exactly one JSON object and nothing else, inside a fenced code block. ` +
	`The object has these string fields: "country" (English name), "country_localized" ` +
	`(name in the main local language), "city", "landmark" (English name), ` +
	`"landmark_localized" (name in the main local language), "timezone" (IANA zone), ` +
	`"photo_url" (a direct HTTPS photo URL of the landmark). ` +
	`Only real, existing places. Never invent landmarks.`

// Resolver produces one Location per call, preferring LLM generation when
// enabled and healthy, and always falling back to the static catalog.
type Resolver struct {
	log     *slog.Logger
	cfg     *config.Config
	ai      Completer
	photos  PhotoSearcher
	runtime *Runtime
	rng     *rand.Rand
}

// NewResolver wires the resolver. ai and photoSearch may be nil; the
// resolver then operates catalog-only or skips photo replacement.
func NewResolver(log *slog.Logger, cfg *config.Config, ai Completer, photoSearch PhotoSearcher, runtime *Runtime, rng *rand.Rand) *Resolver {
	return &Resolver{
		log:     log.With("component", "destination_resolver"),
		cfg:     cfg,
		ai:      ai,
		photos:  photoSearch,
		runtime: runtime,
		rng:     rng,
	}
}

// Resolve returns one destination. It never fails: every error path
// degrades to a uniform catalog pick.
func (r *Resolver) Resolve(ctx context.Context) geo.Location {
	if !r.dynamicAvailable() {
		return geo.PickRandom(r.rng)
	}

	loc, err := r.generate(ctx)
	if err != nil {
		r.log.WarnContext(ctx, "Dynamic generation failed, falling back to catalog", "error", err)
		r.runtime.ArmCooldown(r.cfg.Travel.FailureCooldown)
		return geo.PickRandom(r.rng)
	}

	r.runtime.ClearCooldown()

	if r.photos != nil {
		if url := r.photos.SearchFirst(ctx, r.photoQueries(loc)); url != "" {
			loc.PhotoURL = url
		}
	}

	return loc
}

func (r *Resolver) dynamicAvailable() bool {
	if !r.cfg.Travel.DynamicEnabled || r.cfg.Gemini.Model == "" || r.ai == nil {
		return false
	}
	if r.runtime.InCooldown() {
		r.log.Debug("Dynamic generation in cooldown, using catalog")
		return false
	}
	return true
}

func (r *Resolver) generate(ctx context.Context) (geo.Location, error) {
	prompt := r.buildPrompt()

	ctx, cancel := context.WithTimeout(ctx, r.cfg.Gemini.Timeout)
	defer cancel()

	// Temperature is fixed at 1.0 for destination diversity.
	text, err := r.ai.Complete(ctx, resolverSystemInstruction, prompt, 1.0)
	if err != nil {
		return geo.Location{}, fmt.Errorf("completion failed: %w", err)
	}

	loc, err := ExtractLocation(text)
	if err != nil {
		return geo.Location{}, fmt.Errorf("response parse failed: %w", err)
	}

	r.log.InfoContext(ctx, "Dynamic destination generated",
		"country", loc.Country, "landmark", loc.Landmark, "timezone", loc.Timezone)
	return loc, nil
}

func (r *Resolver) buildPrompt() string {
	category := categories[r.rng.Intn(len(categories))]
	continent := continents[r.rng.Intn(len(continents))]
	avoided := r.pickAvoidedCountries()
	band := geo.CurrentSunriseBand(r.runtime.Now())

	var b strings.Builder
	fmt.Fprintf(&b, "Pick %s, preferably in %s.\n", category, continent)
	fmt.Fprintf(&b, "Do not pick a location in: %s.\n", strings.Join(avoided, ", "))
	fmt.Fprintf(&b, "Prefer a location where the sun is rising right now, i.e. in the %s band.\n", band)

	if custom := strings.TrimSpace(r.cfg.Travel.CustomContext); custom != "" {
		b.WriteString(custom)
		b.WriteString("\n")
	}

	return b.String()
}

// pickAvoidedCountries selects a random 3-6 of the hot countries.
func (r *Resolver) pickAvoidedCountries() []string {
	n := 3 + r.rng.Intn(4)
	shuffled := make([]string, len(hotCountries))
	copy(shuffled, hotCountries)
	r.rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled[:n]
}

// photoQueries builds the ordered candidate queries for photo replacement.
// The chain strips non-Latin characters from each before searching.
func (r *Resolver) photoQueries(loc geo.Location) []string {
	var queries []string

	if template := r.cfg.Photos.QueryTemplate; template != "" {
		q := strings.NewReplacer(
			"{landmark}", loc.Landmark,
			"{country}", loc.Country,
			"{city}", loc.City,
		).Replace(template)
		queries = append(queries, q)
	}

	queries = append(queries, loc.Landmark+" "+loc.Country)
	if loc.City != "" {
		queries = append(queries, loc.City+" "+loc.Country)
	}
	queries = append(queries, loc.Country)

	return queries
}
