package travel

import (
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"wanderbot/internal/geo"
)

// locationPayload is the JSON object the generation prompt asks the model
// to produce.
type locationPayload struct {
	Country           string `json:"country"`
	CountryLocalized  string `json:"country_localized"`
	City              string `json:"city"`
	Landmark          string `json:"landmark"`
	LandmarkLocalized string `json:"landmark_localized"`
	Timezone          string `json:"timezone"`
	PhotoURL          string `json:"photo_url"`
}

var (
	fencedBlockRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")
	looseObjectRe = regexp.MustCompile(`\{[^{}]+\}`)
)

// ExtractLocation parses free-form model text into a Location. Extraction
// is two-stage: a fenced code block first, then the first brace-delimited
// object mentioning both "country" and "landmark". It returns an error for
// anything unusable and never panics; callers fall back to the catalog.
func ExtractLocation(text string) (geo.Location, error) {
	raw, ok := extractJSONCandidate(text)
	if !ok {
		return geo.Location{}, fmt.Errorf("no JSON object found in model response")
	}

	var payload locationPayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return geo.Location{}, fmt.Errorf("malformed JSON in model response: %w", err)
	}

	payload.Country = strings.TrimSpace(payload.Country)
	payload.Landmark = strings.TrimSpace(payload.Landmark)
	payload.PhotoURL = strings.TrimSpace(payload.PhotoURL)

	// country, landmark and a photo URL are required; everything else has
	// a documented fallback.
	if payload.Country == "" || payload.Landmark == "" || payload.PhotoURL == "" {
		return geo.Location{}, fmt.Errorf("model response missing required fields (country=%q, landmark=%q, photo=%q)",
			payload.Country, payload.Landmark, payload.PhotoURL)
	}

	loc := geo.Location{
		Country:           payload.Country,
		CountryLocalized:  strings.TrimSpace(payload.CountryLocalized),
		City:              strings.TrimSpace(payload.City),
		Landmark:          payload.Landmark,
		LandmarkLocalized: strings.TrimSpace(payload.LandmarkLocalized),
		Timezone:          strings.TrimSpace(payload.Timezone),
		PhotoURL:          payload.PhotoURL,
	}

	if loc.CountryLocalized == "" {
		loc.CountryLocalized = loc.Country
	}
	if loc.LandmarkLocalized == "" {
		loc.LandmarkLocalized = loc.Landmark
	}
	if loc.Timezone == "" {
		loc.Timezone = "UTC"
	}
	if !isAbsoluteHTTPURL(loc.PhotoURL) {
		loc.PhotoURL = fallbackPhotoURL(loc.Landmark, loc.Country)
	}

	return loc, nil
}

func extractJSONCandidate(text string) (string, bool) {
	if m := fencedBlockRe.FindStringSubmatch(text); m != nil {
		candidate := strings.TrimSpace(m[1])
		if strings.HasPrefix(candidate, "{") {
			return candidate, true
		}
	}

	for _, candidate := range looseObjectRe.FindAllString(text, -1) {
		if strings.Contains(candidate, `"country"`) && strings.Contains(candidate, `"landmark"`) {
			return candidate, true
		}
	}

	return "", false
}

func isAbsoluteHTTPURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// fallbackPhotoURL synthesizes a search-style image URL when the model
// suggests something that is not an absolute HTTP(S) URL.
func fallbackPhotoURL(landmark, country string) string {
	query := url.QueryEscape(landmark + " " + country)
	return "https://www.bing.com/images/search?q=" + query
}
