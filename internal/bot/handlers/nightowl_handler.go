package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/render"
	"wanderbot/internal/stats"
)

// NewNightOwlHandler returns a handler for the /nightowl command.
func NewNightOwlHandler(deps HandlerDeps) bot.HandlerFunc {
	return nightOwlHandler{deps}.Handle
}

type nightOwlHandler struct {
	deps HandlerDeps
}

func (h nightOwlHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "nightowl")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Night-owl handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	states, err := h.deps.Store.GetUserStatesInChat(ctx, platform, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load user states", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	entries := stats.NightOwls(states, leaderboardSize)
	if len(entries) == 0 {
		sendText(ctx, b, log, chatID, "No night owls spotted yet.")
		return
	}

	names := h.userNames(ctx, chatID)
	rows := make([]render.NightOwlRow, 0, len(entries))
	for _, entry := range entries {
		label := names[entry.UserID]
		if label == "" {
			label = fmt.Sprintf("user %d", entry.UserID)
		}
		rows = append(rows, render.NightOwlRow{Label: label, Count: entry.Count, PeakHour: entry.PeakHour})
	}

	const title = "Night-owl leaderboard"
	if h.deps.Renderer == nil {
		var sb strings.Builder
		sb.WriteString(title + "\n")
		for i, row := range rows {
			fmt.Fprintf(&sb, "%d. %s: %d late nights, busiest at %s\n",
				i+1, row.Label, row.Count, render.HourLabel(row.PeakHour))
		}
		sendText(ctx, b, log, chatID, strings.TrimRight(sb.String(), "\n"))
		return
	}

	img, filename, err := h.deps.Renderer.RenderNightOwls(ctx, title, rows)
	if err != nil {
		log.ErrorContext(ctx, "Night-owl card rendering failed", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	sendPhoto(ctx, b, log, chatID, filename, img, title)
}

// userNames maps user IDs to the most recent display name seen in the
// chat's travel logs. User state rows carry no names.
func (h nightOwlHandler) userNames(ctx context.Context, chatID int64) map[int64]string {
	logs, err := h.deps.Store.GetTravelLogsInChat(ctx, platform, chatID)
	if err != nil {
		return nil
	}
	names := make(map[int64]string)
	for _, log := range logs {
		if log.UserName != "" {
			names[log.UserID] = log.UserName
		}
	}
	return names
}
