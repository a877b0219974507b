package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the interface for database operations.
// Methods accept context.Context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// GetUserState retrieves the state row for one user in one chat.
	// Returns nil, nil if not found.
	GetUserState(ctx context.Context, platform string, userID, chatID int64) (*UserState, error)

	// UpsertUserState inserts or updates a user state row, keyed by
	// (platform, user_id, chat_id).
	UpsertUserState(ctx context.Context, state *UserState) error

	// GetUserStatesInChat retrieves all user state rows for a chat.
	GetUserStatesInChat(ctx context.Context, platform string, chatID int64) ([]*UserState, error)

	// InsertTravelLog inserts a new travel log row.
	InsertTravelLog(ctx context.Context, entry *TravelLog) error

	// GetTravelLogsInChat retrieves all travel logs for a chat, oldest first.
	GetTravelLogsInChat(ctx context.Context, platform string, chatID int64) ([]*TravelLog, error)

	// GetTravelLogsForUser retrieves all travel logs for one user in a chat, oldest first.
	GetTravelLogsForUser(ctx context.Context, platform string, chatID, userID int64) ([]*TravelLog, error)

	// GetTravelLogsInWindow retrieves travel logs for a chat with
	// from <= trip_at < to, oldest first.
	GetTravelLogsInWindow(ctx context.Context, platform string, chatID int64, from, to time.Time) ([]*TravelLog, error)

	// ListChatsWithTrips returns the distinct chat IDs that have at least one
	// travel log with from <= trip_at < to.
	ListChatsWithTrips(ctx context.Context, platform string, from, to time.Time) ([]int64, error)

	// DeleteTravelLogsBefore removes travel logs older than the cutoff and
	// returns the number of rows deleted.
	DeleteTravelLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// GetGuildConfig retrieves the shared chat configuration.
	// Returns nil, nil if not found.
	GetGuildConfig(ctx context.Context, platform string, chatID int64) (*GuildConfig, error)

	// UpsertGuildConfig inserts or replaces the shared chat configuration,
	// keyed by (platform, chat_id).
	UpsertGuildConfig(ctx context.Context, cfg *GuildConfig) error

	// DeleteGuildConfig removes the shared chat configuration.
	DeleteGuildConfig(ctx context.Context, platform string, chatID int64) error

	// RunSQLMaintenance performs database maintenance tasks like VACUUM.
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore provides an implementation of the Store interface using sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a new Store implementation backed by sqlx.
// It requires a connected sqlx.DB instance and a logger.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

// Ping checks the database connection.
func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) GetUserState(ctx context.Context, platform string, userID, chatID int64) (*UserState, error) {
	if platform == "" || userID == 0 || chatID == 0 {
		return nil, fmt.Errorf("platform, user_id and chat_id are required")
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	var state UserState
	query := `SELECT * FROM user_states WHERE platform = ? AND user_id = ? AND chat_id = ?`

	err := s.db.GetContext(ctx, &state, query, platform, userID, chatID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		s.logger.DebugContext(ctx, "No user state found", "user_id", userID, "chat_id", chatID)
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting user state", "user_id", userID, "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get user state (user %d, chat %d): %w", userID, chatID, err)
	}

	return &state, nil
}

func (s *sqlxStore) UpsertUserState(ctx context.Context, state *UserState) error {
	if state == nil {
		return fmt.Errorf("cannot save nil user state")
	}
	if state.Platform == "" || state.UserID == 0 || state.ChatID == 0 {
		return fmt.Errorf("user state must have platform, user_id and chat_id")
	}

	now := time.Now().UTC()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	state.UpdatedAt = now
	if state.HourCountsRaw == "" {
		state.HourCountsRaw = "{}"
	}

	query := `
        INSERT INTO user_states (
            platform, user_id, chat_id, created_at, updated_at,
            last_wake_at, last_sunrise_at, latitude, longitude,
            abnormal_sleep_count, night_owl_count, last_night_owl_date,
            total_msg_count, night_msg_count, hour_counts, custom_background
        ) VALUES (
            :platform, :user_id, :chat_id, :created_at, :updated_at,
            :last_wake_at, :last_sunrise_at, :latitude, :longitude,
            :abnormal_sleep_count, :night_owl_count, :last_night_owl_date,
            :total_msg_count, :night_msg_count, :hour_counts, :custom_background
        )
        ON CONFLICT(platform, user_id, chat_id) DO UPDATE SET
            updated_at = excluded.updated_at,
            last_wake_at = excluded.last_wake_at,
            last_sunrise_at = excluded.last_sunrise_at,
            latitude = excluded.latitude,
            longitude = excluded.longitude,
            abnormal_sleep_count = excluded.abnormal_sleep_count,
            night_owl_count = excluded.night_owl_count,
            last_night_owl_date = excluded.last_night_owl_date,
            total_msg_count = excluded.total_msg_count,
            night_msg_count = excluded.night_msg_count,
            hour_counts = excluded.hour_counts,
            custom_background = excluded.custom_background;
    `

	if _, err := s.db.NamedExecContext(ctx, query, state); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting user state",
			"user_id", state.UserID, "chat_id", state.ChatID, "error", err)
		return fmt.Errorf("failed to upsert user state (user %d, chat %d): %w", state.UserID, state.ChatID, err)
	}

	s.logger.DebugContext(ctx, "User state saved", "user_id", state.UserID, "chat_id", state.ChatID)
	return nil
}

func (s *sqlxStore) GetUserStatesInChat(ctx context.Context, platform string, chatID int64) ([]*UserState, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var states []*UserState
	query := `SELECT * FROM user_states WHERE platform = ? AND chat_id = ? ORDER BY user_id`

	if err := s.db.SelectContext(ctx, &states, query, platform, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error getting user states for chat", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get user states for chat %d: %w", chatID, err)
	}

	return states, nil
}

func (s *sqlxStore) InsertTravelLog(ctx context.Context, entry *TravelLog) error {
	if entry == nil {
		return fmt.Errorf("cannot save nil travel log")
	}
	if entry.Platform == "" || entry.UserID == 0 || entry.ChatID == 0 {
		return fmt.Errorf("travel log must have platform, user_id and chat_id")
	}
	if entry.Country == "" || entry.Landmark == "" {
		return fmt.Errorf("travel log must have country and landmark")
	}
	if entry.TripAt.IsZero() {
		return fmt.Errorf("travel log must have a non-zero trip time")
	}

	entry.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO travel_logs (
            platform, user_id, chat_id, user_name, created_at, trip_at,
            country, country_localized, city, landmark, landmark_localized,
            timezone, image_url, ai_generated
        ) VALUES (
            :platform, :user_id, :chat_id, :user_name, :created_at, :trip_at,
            :country, :country_localized, :city, :landmark, :landmark_localized,
            :timezone, :image_url, :ai_generated
        );
    `

	result, err := s.db.NamedExecContext(ctx, query, entry)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error saving travel log",
			"user_id", entry.UserID, "chat_id", entry.ChatID, "error", err)
		return fmt.Errorf("failed to save travel log (user %d, chat %d): %w", entry.UserID, entry.ChatID, err)
	}

	if id, err := result.LastInsertId(); err == nil {
		entry.ID = uint(id) //nolint:gosec // row counts stay far below overflow
	}

	s.logger.DebugContext(ctx, "Travel log saved",
		"user_id", entry.UserID, "chat_id", entry.ChatID, "country", entry.Country)
	return nil
}

const travelLogColumns = `id, platform, user_id, chat_id, user_name, created_at, trip_at,
    country, country_localized, city, landmark, landmark_localized, timezone, image_url, ai_generated`

func (s *sqlxStore) GetTravelLogsInChat(ctx context.Context, platform string, chatID int64) ([]*TravelLog, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var logs []*TravelLog
	query := `SELECT ` + travelLogColumns + ` FROM travel_logs
	          WHERE platform = ? AND chat_id = ? ORDER BY trip_at ASC`

	if err := s.db.SelectContext(ctx, &logs, query, platform, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error getting travel logs for chat", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get travel logs for chat %d: %w", chatID, err)
	}

	return logs, nil
}

func (s *sqlxStore) GetTravelLogsForUser(ctx context.Context, platform string, chatID, userID int64) ([]*TravelLog, error) {
	if chatID == 0 || userID == 0 {
		return nil, fmt.Errorf("chat_id and user_id cannot be zero")
	}

	var logs []*TravelLog
	query := `SELECT ` + travelLogColumns + ` FROM travel_logs
	          WHERE platform = ? AND chat_id = ? AND user_id = ? ORDER BY trip_at ASC`

	if err := s.db.SelectContext(ctx, &logs, query, platform, chatID, userID); err != nil {
		s.logger.ErrorContext(ctx, "Error getting travel logs for user",
			"chat_id", chatID, "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to get travel logs for user %d in chat %d: %w", userID, chatID, err)
	}

	return logs, nil
}

func (s *sqlxStore) GetTravelLogsInWindow(ctx context.Context, platform string, chatID int64, from, to time.Time) ([]*TravelLog, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}
	if !from.Before(to) {
		return nil, fmt.Errorf("window start %v must be before end %v", from, to)
	}

	var logs []*TravelLog
	query := `SELECT ` + travelLogColumns + ` FROM travel_logs
	          WHERE platform = ? AND chat_id = ? AND trip_at >= ? AND trip_at < ?
	          ORDER BY trip_at ASC`

	if err := s.db.SelectContext(ctx, &logs, query, platform, chatID, from, to); err != nil {
		s.logger.ErrorContext(ctx, "Error getting travel logs in window",
			"chat_id", chatID, "from", from, "to", to, "error", err)
		return nil, fmt.Errorf("failed to get travel logs for chat %d: %w", chatID, err)
	}

	return logs, nil
}

func (s *sqlxStore) ListChatsWithTrips(ctx context.Context, platform string, from, to time.Time) ([]int64, error) {
	var chatIDs []int64
	query := `SELECT DISTINCT chat_id FROM travel_logs
	          WHERE platform = ? AND trip_at >= ? AND trip_at < ? ORDER BY chat_id`

	if err := s.db.SelectContext(ctx, &chatIDs, query, platform, from, to); err != nil {
		s.logger.ErrorContext(ctx, "Error listing chats with trips", "from", from, "to", to, "error", err)
		return nil, fmt.Errorf("failed to list chats with trips: %w", err)
	}

	return chatIDs, nil
}

func (s *sqlxStore) DeleteTravelLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if cutoff.IsZero() {
		return 0, fmt.Errorf("cutoff cannot be zero")
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM travel_logs WHERE trip_at < ?`, cutoff)
	if err != nil {
		s.logger.ErrorContext(ctx, "Error deleting old travel logs", "cutoff", cutoff, "error", err)
		return 0, fmt.Errorf("failed to delete travel logs before %v: %w", cutoff, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		s.logger.WarnContext(ctx, "Could not count deleted travel logs", "error", err)
		return 0, nil
	}

	s.logger.InfoContext(ctx, "Deleted old travel logs", "cutoff", cutoff, "deleted", deleted)
	return deleted, nil
}

func (s *sqlxStore) GetGuildConfig(ctx context.Context, platform string, chatID int64) (*GuildConfig, error) {
	if chatID == 0 {
		return nil, fmt.Errorf("chat_id cannot be zero")
	}

	var cfg GuildConfig
	query := `SELECT * FROM guild_configs WHERE platform = ? AND chat_id = ?`

	err := s.db.GetContext(ctx, &cfg, query, platform, chatID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, nil
	case err != nil:
		s.logger.ErrorContext(ctx, "Error getting guild config", "chat_id", chatID, "error", err)
		return nil, fmt.Errorf("failed to get guild config for chat %d: %w", chatID, err)
	}

	return &cfg, nil
}

func (s *sqlxStore) UpsertGuildConfig(ctx context.Context, cfg *GuildConfig) error {
	if cfg == nil {
		return fmt.Errorf("cannot save nil guild config")
	}
	if cfg.Platform == "" || cfg.ChatID == 0 {
		return fmt.Errorf("guild config must have platform and chat_id")
	}

	now := time.Now().UTC()
	if cfg.CreatedAt.IsZero() {
		cfg.CreatedAt = now
	}
	cfg.UpdatedAt = now

	query := `
        INSERT INTO guild_configs (platform, chat_id, created_at, updated_at, background_url, set_by_user_id, set_at)
        VALUES (:platform, :chat_id, :created_at, :updated_at, :background_url, :set_by_user_id, :set_at)
        ON CONFLICT(platform, chat_id) DO UPDATE SET
            updated_at = excluded.updated_at,
            background_url = excluded.background_url,
            set_by_user_id = excluded.set_by_user_id,
            set_at = excluded.set_at;
    `

	if _, err := s.db.NamedExecContext(ctx, query, cfg); err != nil {
		s.logger.ErrorContext(ctx, "Error upserting guild config", "chat_id", cfg.ChatID, "error", err)
		return fmt.Errorf("failed to upsert guild config for chat %d: %w", cfg.ChatID, err)
	}

	return nil
}

func (s *sqlxStore) DeleteGuildConfig(ctx context.Context, platform string, chatID int64) error {
	if chatID == 0 {
		return fmt.Errorf("chat_id cannot be zero")
	}

	if _, err := s.db.ExecContext(ctx, `DELETE FROM guild_configs WHERE platform = ? AND chat_id = ?`, platform, chatID); err != nil {
		s.logger.ErrorContext(ctx, "Error deleting guild config", "chat_id", chatID, "error", err)
		return fmt.Errorf("failed to delete guild config for chat %d: %w", chatID, err)
	}

	return nil
}

// RunSQLMaintenance executes a VACUUM command on the SQLite database.
func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	s.logger.InfoContext(ctx, "Starting database maintenance (VACUUM)...")

	// VACUUM must run outside a transaction in SQLite.
	_, err := s.db.ExecContext(ctx, "VACUUM;")
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		s.logger.WarnContext(ctx, "VACUUM operation timed out or was cancelled", "error", err)
		return fmt.Errorf("database maintenance (VACUUM) timed out: %w", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "Database maintenance (VACUUM) failed", "error", err)
		return fmt.Errorf("failed to execute VACUUM: %w", err)
	}

	s.logger.InfoContext(ctx, "Database maintenance (VACUUM) completed successfully")
	return nil
}
