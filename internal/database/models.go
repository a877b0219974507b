package database

import (
	"database/sql"
	"encoding/json"
	"time"
)

// UserState is the accumulated behavioral state for one user in one chat.
// There is at most one row per (platform, user_id, chat_id); counters only
// grow, and the hourly map accumulates for the lifetime of the row.
type UserState struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Platform string `db:"platform"`
	UserID   int64  `db:"user_id"`
	ChatID   int64  `db:"chat_id"`

	LastWakeAt    sql.NullTime    `db:"last_wake_at"`
	LastSunriseAt sql.NullTime    `db:"last_sunrise_at"`
	Latitude      sql.NullFloat64 `db:"latitude"`
	Longitude     sql.NullFloat64 `db:"longitude"`

	AbnormalSleepCount int            `db:"abnormal_sleep_count"`
	NightOwlCount      int            `db:"night_owl_count"`
	LastNightOwlDate   sql.NullString `db:"last_night_owl_date"` // YYYY-MM-DD

	TotalMsgCount int    `db:"total_msg_count"`
	NightMsgCount int    `db:"night_msg_count"`
	HourCountsRaw string `db:"hour_counts"` // JSON map from hour-of-day to count

	CustomBackground sql.NullString `db:"custom_background"`
}

// HourCounts decodes the hourly message-count map. An empty or malformed
// column yields an empty map rather than an error, since the column is
// written only by SetHourCounts.
func (u *UserState) HourCounts() map[int]int {
	counts := make(map[int]int)
	if u.HourCountsRaw == "" {
		return counts
	}
	if err := json.Unmarshal([]byte(u.HourCountsRaw), &counts); err != nil {
		return make(map[int]int)
	}
	return counts
}

// SetHourCounts encodes the hourly message-count map into the raw column.
func (u *UserState) SetHourCounts(counts map[int]int) {
	data, err := json.Marshal(counts)
	if err != nil {
		return
	}
	u.HourCountsRaw = string(data)
}

// TravelLog is one completed travel trigger. Rows are immutable once
// inserted and are bulk-deleted by the retention task. Timestamp is the
// trigger time, not any time at the destination.
type TravelLog struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	Platform string    `db:"platform"`
	UserID   int64     `db:"user_id"`
	ChatID   int64     `db:"chat_id"`
	UserName string    `db:"user_name"`
	TripAt   time.Time `db:"trip_at"`

	Country          string `db:"country"`
	CountryLocalized string `db:"country_localized"`
	City             string `db:"city"`
	Landmark         string `db:"landmark"`
	LandmarkLocal    string `db:"landmark_localized"`
	Timezone         string `db:"timezone"`

	ImageURL    string `db:"image_url"` // empty when no durable URL was produced
	AIGenerated bool   `db:"ai_generated"`
}

// GuildConfig stores the administrator-set shared background image for a
// chat. At most one row per (platform, chat_id).
type GuildConfig struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	Platform      string    `db:"platform"`
	ChatID        int64     `db:"chat_id"`
	BackgroundURL string    `db:"background_url"`
	SetByUserID   int64     `db:"set_by_user_id"`
	SetAt         time.Time `db:"set_at"`
}
