package travel_test

import (
	"strings"
	"testing"

	"wanderbot/internal/travel"
)

func TestExtractLocationFencedBlock(t *testing.T) {
	t.Parallel()

	text := "Here you go:\n```json\n{\n" +
		`  "country": "Norway",` + "\n" +
		`  "country_localized": "Norge",` + "\n" +
		`  "city": "Aurland",` + "\n" +
		`  "landmark": "Trolltunga",` + "\n" +
		`  "landmark_localized": "Trolltunga",` + "\n" +
		`  "timezone": "Europe/Oslo",` + "\n" +
		`  "photo_url": "https://example.com/trolltunga.jpg"` + "\n}\n```"

	loc, err := travel.ExtractLocation(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Country != "Norway" || loc.Landmark != "Trolltunga" {
		t.Errorf("unexpected location: %+v", loc)
	}
	if loc.Timezone != "Europe/Oslo" {
		t.Errorf("timezone = %q, expected Europe/Oslo", loc.Timezone)
	}
	if loc.PhotoURL != "https://example.com/trolltunga.jpg" {
		t.Errorf("photo URL = %q", loc.PhotoURL)
	}
}

func TestExtractLocationLooseObject(t *testing.T) {
	t.Parallel()

	text := `Sure! {"country": "Japan", "landmark": "Fushimi Inari", "photo_url": "https://example.com/fi.jpg"} enjoy.`

	loc, err := travel.ExtractLocation(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Country != "Japan" {
		t.Errorf("country = %q", loc.Country)
	}
	// Localized names fall back to the canonical ones, timezone to UTC.
	if loc.CountryLocalized != "Japan" || loc.LandmarkLocalized != "Fushimi Inari" {
		t.Errorf("localized fallbacks not applied: %+v", loc)
	}
	if loc.Timezone != "UTC" {
		t.Errorf("timezone = %q, expected UTC", loc.Timezone)
	}
}

func TestExtractLocationFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		text string
	}{
		{name: "no JSON at all", text: "I took a little trip to the seaside."},
		{name: "malformed JSON", text: "```json\n{\"country\": \"Norway\",}\n```"},
		{name: "missing landmark", text: `{"country": "Norway", "landmark": "", "photo_url": "https://x.test/a.jpg"}`},
		{name: "missing photo", text: "```\n" + `{"country": "Norway", "landmark": "Trolltunga"}` + "\n```"},
		{name: "empty string", text: ""},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if _, err := travel.ExtractLocation(tc.text); err == nil {
				t.Errorf("expected error for %q", tc.text)
			}
		})
	}
}

func TestExtractLocationRewritesNonHTTPPhoto(t *testing.T) {
	t.Parallel()

	text := `{"country": "Norway", "landmark": "Trolltunga", "photo_url": "trolltunga.jpg"}`

	loc, err := travel.ExtractLocation(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(loc.PhotoURL, "http") {
		t.Errorf("photo URL not rewritten to an absolute one: %q", loc.PhotoURL)
	}
	if !strings.Contains(loc.PhotoURL, "Trolltunga") {
		t.Errorf("synthesized URL should mention the landmark: %q", loc.PhotoURL)
	}
}
