package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/stats"
)

// leaderboardSize caps the ranked entries shown on cards.
const leaderboardSize = 10

// NewLeaderboardHandler returns a handler for the /leaderboard command.
func NewLeaderboardHandler(deps HandlerDeps) bot.HandlerFunc {
	return leaderboardHandler{deps}.Handle
}

type leaderboardHandler struct {
	deps HandlerDeps
}

func (h leaderboardHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "leaderboard")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Leaderboard handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	logs, err := h.deps.Store.GetTravelLogsInChat(ctx, platform, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load travel logs", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if len(logs) == 0 {
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.NoTrips)
		return
	}

	entries := stats.Leaderboard(logs, leaderboardSize)
	const title = "Trip leaderboard"

	if h.deps.Renderer == nil {
		var sb strings.Builder
		sb.WriteString(title + "\n")
		for i, entry := range entries {
			fmt.Fprintf(&sb, "%d. %s: %d trips, %d countries (score %d)\n",
				i+1, entry.UserName, entry.Trips, entry.Countries, entry.Score)
		}
		sendText(ctx, b, log, chatID, strings.TrimRight(sb.String(), "\n"))
		return
	}

	img, filename, err := h.deps.Renderer.RenderLeaderboard(ctx, title, entries)
	if err != nil {
		log.ErrorContext(ctx, "Leaderboard rendering failed", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	sendPhoto(ctx, b, log, chatID, filename, img, title)
}
