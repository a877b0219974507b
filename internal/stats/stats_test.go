package stats_test

import (
	"testing"
	"time"

	"wanderbot/internal/database"
	"wanderbot/internal/stats"
)

func trip(userID int64, userName, country string, at time.Time) *database.TravelLog {
	return &database.TravelLog{
		Platform: "telegram",
		UserID:   userID,
		ChatID:   1,
		UserName: userName,
		TripAt:   at,
		Country:  country,
		Landmark: country + " landmark",
	}
}

func TestLeaderboardScoring(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	logs := []*database.TravelLog{
		// A: 3 trips, 2 distinct countries -> score 3 + 2*2 = 7.
		trip(1, "A", "Norway", at),
		trip(1, "A", "Norway", at),
		trip(1, "A", "Japan", at),
		// B: 5 trips, 1 country -> score 5 + 2*1 = 7.
		trip(2, "B", "Chile", at),
		trip(2, "B", "Chile", at),
		trip(2, "B", "Chile", at),
		trip(2, "B", "Chile", at),
		trip(2, "B", "Chile", at),
		// C: 1 trip -> score 3.
		trip(3, "C", "Kenya", at),
	}

	entries := stats.Leaderboard(logs, 10)
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Score != 7 || entries[1].Score != 7 {
		t.Errorf("expected tied scores of 7, got %d and %d", entries[0].Score, entries[1].Score)
	}
	// Stable sort: the tie keeps first-trip order, A before B.
	if entries[0].UserID != 1 || entries[1].UserID != 2 {
		t.Errorf("tie should preserve input order, got %d then %d", entries[0].UserID, entries[1].UserID)
	}
	if entries[2].UserID != 3 || entries[2].Score != 3 {
		t.Errorf("unexpected last entry: %+v", entries[2])
	}
}

func TestLeaderboardCanonicalizesCountries(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	logs := []*database.TravelLog{
		trip(1, "A", "USA", at),
		trip(1, "A", "United States", at),
	}

	entries := stats.Leaderboard(logs, 0)
	if entries[0].Countries != 1 {
		t.Errorf("spelling variants should collapse to one country, got %d", entries[0].Countries)
	}
	if entries[0].Score != 2+2*1 {
		t.Errorf("score = %d, expected 4", entries[0].Score)
	}
}

func TestLeaderboardTopN(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	var logs []*database.TravelLog
	for i := int64(1); i <= 5; i++ {
		logs = append(logs, trip(i, "u", "Norway", at))
	}

	if got := len(stats.Leaderboard(logs, 3)); got != 3 {
		t.Errorf("topN should cap entries at 3, got %d", got)
	}
	if got := len(stats.Leaderboard(logs, 0)); got != 5 {
		t.Errorf("topN 0 should keep all entries, got %d", got)
	}
}

func owlState(userID int64, count int, hourCounts map[int]int) *database.UserState {
	state := &database.UserState{
		Platform:      "telegram",
		UserID:        userID,
		ChatID:        1,
		NightOwlCount: count,
		HourCountsRaw: "{}",
	}
	state.SetHourCounts(hourCounts)
	return state
}

func TestNightOwls(t *testing.T) {
	t.Parallel()

	states := []*database.UserState{
		owlState(1, 2, map[int]int{1: 5, 3: 9}),
		owlState(2, 0, map[int]int{2: 4}), // zero counter, excluded
		owlState(3, 7, map[int]int{0: 3, 4: 3}),
	}

	entries := stats.NightOwls(states, 10)
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].UserID != 3 || entries[1].UserID != 1 {
		t.Errorf("entries should sort by counter descending: %+v", entries)
	}
	if entries[1].PeakHour != 3 {
		t.Errorf("peak hour = %d, expected 3", entries[1].PeakHour)
	}
	// Equal counts resolve to the earliest hour.
	if entries[0].PeakHour != 0 {
		t.Errorf("tied peak hour should resolve low, got %d", entries[0].PeakHour)
	}
}

func TestNightOwlsNoHourlyData(t *testing.T) {
	t.Parallel()

	entries := stats.NightOwls([]*database.UserState{owlState(1, 4, nil)}, 10)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].PeakHour != -1 {
		t.Errorf("peak hour without hourly data = %d, expected -1", entries[0].PeakHour)
	}
}

func TestMonthlyWindow(t *testing.T) {
	t.Parallel()

	from, to := stats.MonthWindow(2026, time.April)
	if !from.Equal(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window start = %v", from)
	}
	if !to.Equal(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("window end = %v", to)
	}
}

func TestMonthlyGrouping(t *testing.T) {
	t.Parallel()

	inApril := time.Date(2026, 4, 15, 12, 0, 0, 0, time.UTC)
	logs := []*database.TravelLog{
		trip(1, "A", "Norway", inApril),
		trip(1, "A", "Japan", inApril.Add(time.Hour)),
		trip(2, "B", "Norway", inApril.Add(2*time.Hour)),
		// Boundary cases: start is inclusive, end exclusive.
		trip(2, "B", "Chile", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)),
		trip(2, "B", "Kenya", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)),
		trip(3, "C", "Kenya", time.Date(2026, 3, 31, 23, 59, 59, 0, time.UTC)),
	}

	summary := stats.Monthly(logs, 2026, time.April)
	if summary.TotalTrips != 4 {
		t.Fatalf("expected 4 trips inside the window, got %d", summary.TotalTrips)
	}
	if len(summary.Users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(summary.Users))
	}
	// Norway appears for both users but counts once globally.
	if summary.DistinctCountries != 3 {
		t.Errorf("distinct countries = %d, expected 3", summary.DistinctCountries)
	}

	userA := summary.Users[0]
	if userA.UserID != 1 || userA.Trips != 2 || len(userA.Countries) != 2 {
		t.Errorf("unexpected per-user aggregate: %+v", userA)
	}
}

func TestCountryVisits(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	logs := []*database.TravelLog{
		trip(1, "A", "Norway", at),
		trip(2, "B", "norway", at),
		trip(1, "A", "Atlantis", at),
	}

	visits := stats.CountryVisits(logs)
	if visits["NO"] != 2 {
		t.Errorf("visits[NO] = %d, expected 2", visits["NO"])
	}
	if visits["Atlantis"] != 1 {
		t.Errorf("unknown countries keep their raw name, got %v", visits)
	}
}
