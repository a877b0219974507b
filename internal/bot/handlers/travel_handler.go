package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/travel"
)

// NewTravelHandler returns a handler for the /travel command.
func NewTravelHandler(deps HandlerDeps) bot.HandlerFunc {
	return travelHandler{deps}.Handle
}

// travelHandler triggers a trip for the message sender.
type travelHandler struct {
	deps HandlerDeps
}

func (h travelHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "travel")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Travel handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	from := update.Message.From
	triggerTravel(ctx, b, log, h.deps, update.Message.Chat.ID, from.ID, displayName(from))
}

// NewTravelUserHandler returns a handler for the /travel_user command,
// which triggers a trip for another user, targeted by reply or numeric ID.
func NewTravelUserHandler(deps HandlerDeps) bot.HandlerFunc {
	return travelUserHandler{deps}.Handle
}

type travelUserHandler struct {
	deps HandlerDeps
}

func (h travelUserHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "travel_user")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Travel-user handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	var targetID int64
	var targetName string
	switch {
	case update.Message.ReplyToMessage != nil && update.Message.ReplyToMessage.From != nil:
		target := update.Message.ReplyToMessage.From
		targetID = target.ID
		targetName = displayName(target)
	default:
		args := commandArgs(update.Message.Text)
		if len(args) == 0 {
			sendText(ctx, b, log, chatID, "Reply to someone's message or pass a user ID: /travel_user <id>")
			return
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			sendText(ctx, b, log, chatID, "That doesn't look like a user ID: "+args[0])
			return
		}
		targetID = id
		targetName = fmt.Sprintf("user %d", id)
	}

	triggerTravel(ctx, b, log, h.deps, chatID, targetID, targetName)
}

// triggerTravel runs one trip, shared by the self and targeted commands and
// rate-limited per user by the trigger lock.
func triggerTravel(ctx context.Context, b *bot.Bot, log *slog.Logger, deps HandlerDeps, chatID, userID int64, userName string) {
	key := travel.UserKey(platform, chatID, userID)
	if !deps.Runtime.TryLockTrigger(key, deps.Config.Travel.TriggerLock) {
		log.DebugContext(ctx, "Trigger suppressed by lock window", "user_id", userID, "chat_id", chatID)
		return
	}

	result, err := deps.Orchestrator.Travel(ctx, platform, chatID, userID, userName, sharedBackground(ctx, deps, chatID, userID))
	if err != nil {
		log.ErrorContext(ctx, "Travel trigger failed", "error", err, "user_id", userID, "chat_id", chatID)
		sendText(ctx, b, log, chatID, deps.Config.Messages.GeneralError)
		return
	}

	sendTravelResult(ctx, b, log, chatID, result)
}

// sharedBackground resolves the background override for a trip: the user's
// own preference wins over the guild-shared image. Lookup failures mean no
// override.
func sharedBackground(ctx context.Context, deps HandlerDeps, chatID, userID int64) string {
	state, err := deps.Store.GetUserState(ctx, platform, userID, chatID)
	if err == nil && state != nil && state.CustomBackground.Valid && state.CustomBackground.String != "" {
		return state.CustomBackground.String
	}
	guild, err := deps.Store.GetGuildConfig(ctx, platform, chatID)
	if err != nil || guild == nil {
		return ""
	}
	return guild.BackgroundURL
}

// commandArgs splits the text after the command token.
func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) <= 1 {
		return nil
	}
	return fields[1:]
}
