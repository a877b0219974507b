package render

import (
	"strings"
	"testing"
	"time"
)

func TestHourLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		hour int
		want string
	}{
		{3, "03:00"},
		{0, "00:00"},
		{23, "23:00"},
		{-1, "n/a"},
	}
	for _, tt := range tests {
		if got := HourLabel(tt.hour); got != tt.want {
			t.Errorf("HourLabel(%d) = %q, expected %q", tt.hour, got, tt.want)
		}
	}
}

func TestNightOwlTemplateHandlesMissingPeak(t *testing.T) {
	t.Parallel()

	r := &Renderer{}
	page := struct {
		Title   string
		Entries []NightOwlRow
	}{
		Title: "Night-owl leaderboard",
		Entries: []NightOwlRow{
			{Label: "Ada", Count: 4, PeakHour: 2},
			{Label: "Lin", Count: 1, PeakHour: -1},
		},
	}

	html, err := r.compose("nightowl", page)
	if err != nil {
		t.Fatalf("compose failed: %v", err)
	}
	if !strings.Contains(html, "02:00") {
		t.Error("known peak hour should render as 02:00")
	}
	if !strings.Contains(html, "n/a") {
		t.Error("missing hourly data should render as n/a")
	}
	if strings.Contains(html, "-1:00") {
		t.Error("sentinel peak must not leak into the card")
	}
}

func TestCardFilename(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 8, 26, 9, 30, 5, 0, time.UTC)
	if got := cardFilename("nightowl", at); got != "nightowl_20260826_093005.png" {
		t.Errorf("cardFilename = %q", got)
	}
}
