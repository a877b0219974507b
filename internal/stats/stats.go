// Package stats computes the aggregate views over travel logs and user
// state: trip leaderboards, night-owl rankings, monthly groupings, and
// per-country visit counts for the world map.
package stats

import (
	"sort"
	"time"

	"wanderbot/internal/database"
	"wanderbot/internal/geo"
)

// LeaderboardEntry is one ranked user in the trip leaderboard.
type LeaderboardEntry struct {
	UserID    int64
	UserName  string
	Trips     int
	Countries int
	Score     int
}

// Leaderboard ranks users by score = trips + 2 * distinct countries.
// Countries are canonicalized to ISO codes where known, so spelling
// variants collapse. The sort is stable: ties keep first-trip order.
func Leaderboard(logs []*database.TravelLog, topN int) []LeaderboardEntry {
	type userAgg struct {
		entry     LeaderboardEntry
		countries map[string]struct{}
	}

	var order []int64
	byUser := make(map[int64]*userAgg)

	for _, log := range logs {
		agg, ok := byUser[log.UserID]
		if !ok {
			agg = &userAgg{
				entry:     LeaderboardEntry{UserID: log.UserID, UserName: log.UserName},
				countries: make(map[string]struct{}),
			}
			byUser[log.UserID] = agg
			order = append(order, log.UserID)
		}
		agg.entry.Trips++
		if log.UserName != "" {
			agg.entry.UserName = log.UserName
		}
		agg.countries[geo.CanonicalCountry(log.Country)] = struct{}{}
	}

	entries := make([]LeaderboardEntry, 0, len(order))
	for _, userID := range order {
		agg := byUser[userID]
		agg.entry.Countries = len(agg.countries)
		agg.entry.Score = agg.entry.Trips + 2*agg.entry.Countries
		entries = append(entries, agg.entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Score > entries[j].Score
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

// NightOwlEntry is one ranked user in the night-owl leaderboard.
type NightOwlEntry struct {
	UserID   int64
	Count    int
	PeakHour int
}

// NightOwls ranks users with a non-zero night-owl counter by that counter,
// descending, and computes each user's single busiest hour of day. Hour
// ties resolve to the earliest hour. PeakHour is -1 when the user has no
// hourly data at all, as happens for states recorded before hourly tracking.
func NightOwls(states []*database.UserState, topN int) []NightOwlEntry {
	var entries []NightOwlEntry
	for _, state := range states {
		if state.NightOwlCount == 0 {
			continue
		}
		entries = append(entries, NightOwlEntry{
			UserID:   state.UserID,
			Count:    state.NightOwlCount,
			PeakHour: peakHour(state.HourCounts()),
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})

	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	return entries
}

func peakHour(counts map[int]int) int {
	best, bestCount := -1, 0
	for hour := 0; hour < 24; hour++ {
		if c := counts[hour]; c > bestCount {
			best, bestCount = hour, c
		}
	}
	return best
}

// UserMonthly is one user's trips within a month.
type UserMonthly struct {
	UserID    int64
	UserName  string
	Trips     int
	Countries []string
	Locations []string
}

// MonthlySummary groups a month of travel logs per user, with guild-wide
// distinct sets and totals.
type MonthlySummary struct {
	Year  int
	Month time.Month

	Users []UserMonthly

	TotalTrips        int
	DistinctCountries int
	DistinctLocations int
}

// MonthWindow returns the UTC half-open interval [start of month, start of
// next month).
func MonthWindow(year int, month time.Month) (time.Time, time.Time) {
	from := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// Monthly filters logs to the [year, month) window and groups them by user
// in first-trip order.
func Monthly(logs []*database.TravelLog, year int, month time.Month) MonthlySummary {
	from, to := MonthWindow(year, month)

	summary := MonthlySummary{Year: year, Month: month}

	type userAgg struct {
		user      UserMonthly
		countries map[string]struct{}
		locations map[string]struct{}
	}
	var order []int64
	byUser := make(map[int64]*userAgg)
	allCountries := make(map[string]struct{})
	allLocations := make(map[string]struct{})

	for _, log := range logs {
		tripAt := log.TripAt.UTC()
		if tripAt.Before(from) || !tripAt.Before(to) {
			continue
		}

		agg, ok := byUser[log.UserID]
		if !ok {
			agg = &userAgg{
				user:      UserMonthly{UserID: log.UserID, UserName: log.UserName},
				countries: make(map[string]struct{}),
				locations: make(map[string]struct{}),
			}
			byUser[log.UserID] = agg
			order = append(order, log.UserID)
		}

		agg.user.Trips++
		if log.UserName != "" {
			agg.user.UserName = log.UserName
		}

		country := geo.CanonicalCountry(log.Country)
		if _, seen := agg.countries[country]; !seen {
			agg.countries[country] = struct{}{}
			agg.user.Countries = append(agg.user.Countries, log.Country)
		}
		if _, seen := agg.locations[log.Landmark]; !seen {
			agg.locations[log.Landmark] = struct{}{}
			agg.user.Locations = append(agg.user.Locations, log.Landmark)
		}

		allCountries[country] = struct{}{}
		allLocations[log.Landmark] = struct{}{}
		summary.TotalTrips++
	}

	for _, userID := range order {
		summary.Users = append(summary.Users, byUser[userID].user)
	}
	summary.DistinctCountries = len(allCountries)
	summary.DistinctLocations = len(allLocations)

	return summary
}

// CountryVisits counts trips per canonical country key (ISO code when
// recognized, raw name otherwise) for map highlighting.
func CountryVisits(logs []*database.TravelLog) map[string]int {
	visits := make(map[string]int)
	for _, log := range logs {
		visits[geo.CanonicalCountry(log.Country)]++
	}
	return visits
}
