package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// NewStartHandler returns a handler for the /start command.
func NewStartHandler(deps HandlerDeps) bot.HandlerFunc {
	return startHandler{deps}.Handle
}

type startHandler struct {
	deps HandlerDeps
}

func (h startHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "start")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Start handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	welcome := h.deps.Config.Messages.Welcome
	if h.deps.Config.Telegram.BotInfo != nil && h.deps.Config.Telegram.BotInfo.Username != "" {
		welcome = strings.ReplaceAll(welcome, "@botname", "@"+h.deps.Config.Telegram.BotInfo.Username)
	}
	sendText(ctx, b, log, update.Message.Chat.ID, welcome)
}

const helpText = `Commands:
/travel - take a trip somewhere in the world
/travel_user <id> - send someone else on a trip (or reply to them)
/worldmap - your visited countries
/worldmap_all - the whole chat's visited countries
/monthly [year month] - your trips for a month
/monthly_all [year month] - everyone's trips for a month
/leaderboard - trip leaderboard
/nightowl - who's up past bedtime
/getbg - show the shared card background
/setbg <url> - set the shared card background (admin)
/resetbg - clear the shared card background (admin)`

// NewHelpHandler returns a handler for the /help command.
func NewHelpHandler(deps HandlerDeps) bot.HandlerFunc {
	return helpHandler{deps}.Handle
}

type helpHandler struct {
	deps HandlerDeps
}

func (h helpHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "help")

	if update.Message == nil {
		return
	}
	sendText(ctx, b, log, update.Message.Chat.ID, helpText)
}
