package handlers

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/database"
	"wanderbot/internal/travel"
)

// wakeGap is the minimum silence before a message counts as waking up.
const wakeGap = 6 * time.Hour

// ObserveActivity creates the message-observation middleware. It updates
// per-user counters, tracks night-owl activity, and runs sleep-pattern
// detection. All failures are logged and the pipeline continues; observation
// must never block normal chat flow.
func ObserveActivity(deps HandlerDeps) tgbot.Middleware {
	o := observer{deps: deps, log: deps.Logger.With("middleware", "ObserveActivity")}
	return func(next tgbot.HandlerFunc) tgbot.HandlerFunc {
		return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {
			o.observe(ctx, b, update)
			next(ctx, b, update)
		}
	}
}

type observer struct {
	deps HandlerDeps
	log  *slog.Logger
}

func (o observer) observe(ctx context.Context, b *tgbot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	cfg := o.deps.Config.Behavior
	if !cfg.SilentRecord && !cfg.AutoDetect {
		return
	}
	if cfg.AvatarFilter && msg.From.IsBot {
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID
	now := o.deps.Runtime.Now()

	state, err := o.deps.Store.GetUserState(ctx, platform, userID, chatID)
	if err != nil {
		o.log.WarnContext(ctx, "Failed to load user state", "error", err, "user_id", userID, "chat_id", chatID)
		return
	}
	if state == nil {
		state = &database.UserState{
			Platform:      platform,
			UserID:        userID,
			ChatID:        chatID,
			HourCountsRaw: "{}",
		}
	}

	lastActivity := state.LastWakeAt

	if cfg.SilentRecord {
		o.recordActivity(state, now)
	}
	if cfg.AutoDetect && o.autoDetectChat(chatID) {
		o.detectWake(ctx, b, state, lastActivity, now, displayName(msg.From))
	}

	state.LastWakeAt = sql.NullTime{Time: now.UTC(), Valid: true}

	if err := o.deps.Store.UpsertUserState(ctx, state); err != nil {
		o.log.WarnContext(ctx, "Failed to persist user state", "error", err, "user_id", userID, "chat_id", chatID)
	}
}

// recordActivity bumps the message counters. The hourly map only ever
// grows; no day rollover resets it.
func (o observer) recordActivity(state *database.UserState, now time.Time) {
	cfg := o.deps.Config.Behavior

	state.TotalMsgCount++

	hour := now.Hour()
	counts := state.HourCounts()
	counts[hour]++
	state.SetHourCounts(counts)

	if !inNightWindow(hour, cfg.NightStartHour, cfg.NightEndHour) {
		return
	}
	state.NightMsgCount++

	today := now.Format("2006-01-02")
	key := travel.UserKey(platform, state.ChatID, state.UserID)
	if state.LastNightOwlDate.String != today && o.deps.Runtime.MarkDaily("owl:"+key) {
		state.NightOwlCount++
		state.LastNightOwlDate = sql.NullString{String: today, Valid: true}
	}
}

// detectWake treats the first message after a long silence as waking up,
// compares it to local sunrise, and counts wakes that precede it. Once the
// abnormal-sleep counter reaches the threshold, a trip is auto-triggered at
// most once per day.
func (o observer) detectWake(ctx context.Context, b *tgbot.Bot, state *database.UserState, lastActivity sql.NullTime, now time.Time, userName string) {
	if !lastActivity.Valid || now.Sub(lastActivity.Time) < wakeGap {
		return
	}

	sunrise, err := o.sunrise(ctx, state, now)
	if err != nil {
		o.log.DebugContext(ctx, "Sunrise lookup failed, skipping sleep check", "error", err)
		return
	}
	state.LastSunriseAt = sql.NullTime{Time: sunrise.UTC(), Valid: true}

	if !now.Before(sunrise) {
		return
	}
	state.AbnormalSleepCount++
	o.log.InfoContext(ctx, "Pre-sunrise wake detected",
		"user_id", state.UserID, "chat_id", state.ChatID,
		"sunrise", sunrise, "count", state.AbnormalSleepCount)

	cfg := o.deps.Config.Behavior
	if !cfg.SilentAutoTravel || state.AbnormalSleepCount < cfg.AbnormalSleepThreshold {
		return
	}
	key := travel.UserKey(platform, state.ChatID, state.UserID)
	if !o.deps.Runtime.MarkDaily("autotrip:" + key) {
		return
	}

	result, err := o.deps.Orchestrator.Travel(ctx, platform, state.ChatID, state.UserID, userName, o.background(ctx, state))
	if err != nil {
		o.log.WarnContext(ctx, "Auto-triggered trip failed", "error", err, "user_id", state.UserID)
		return
	}
	sendTravelResult(ctx, b, o.log, state.ChatID, result)
}

// sunrise returns today's sunrise for the user's coordinates, falling back
// to the configured defaults. The value is cached for the day.
func (o observer) sunrise(ctx context.Context, state *database.UserState, now time.Time) (time.Time, error) {
	day := now.Format("2006-01-02")
	if cached, ok := o.deps.Runtime.CachedSunrise(day); ok {
		return cached, nil
	}

	cfg := o.deps.Config.Behavior
	lat, lon := cfg.DefaultLatitude, cfg.DefaultLongitude
	if state.Latitude.Valid && state.Longitude.Valid {
		lat, lon = state.Latitude.Float64, state.Longitude.Float64
	}

	lookupCtx, cancel := context.WithTimeout(ctx, cfg.SunriseTimeout)
	defer cancel()
	sunrise, err := o.deps.SunClient.SunriseAt(lookupCtx, lat, lon)
	if err != nil {
		return time.Time{}, err
	}

	o.deps.Runtime.SetSunrise(day, sunrise)
	return sunrise, nil
}

func (o observer) autoDetectChat(chatID int64) bool {
	scope := o.deps.Config.Behavior.AutoDetectChats
	if len(scope) == 0 {
		return true
	}
	for _, id := range scope {
		if id == chatID {
			return true
		}
	}
	return false
}

// background resolves the card background for auto-triggered trips, user
// preference first, then the guild-shared image.
func (o observer) background(ctx context.Context, state *database.UserState) string {
	if state.CustomBackground.Valid && state.CustomBackground.String != "" {
		return state.CustomBackground.String
	}
	guild, err := o.deps.Store.GetGuildConfig(ctx, platform, state.ChatID)
	if err != nil || guild == nil {
		return ""
	}
	return guild.BackgroundURL
}

// inNightWindow reports whether hour falls in [start, end), wrapping past
// midnight when start > end.
func inNightWindow(hour, start, end int) bool {
	if start <= end {
		return hour >= start && hour < end
	}
	return hour >= start || hour < end
}
