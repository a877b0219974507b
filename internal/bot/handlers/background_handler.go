package handlers

import (
	"context"
	"net/url"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/database"
)

// NewSetBackgroundHandler returns a handler for the admin-only /setbg
// command, which stores a chat-shared card background URL.
func NewSetBackgroundHandler(deps HandlerDeps) bot.HandlerFunc {
	return setBackgroundHandler{deps}.Handle
}

type setBackgroundHandler struct {
	deps HandlerDeps
}

func (h setBackgroundHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "setbg")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Set-background handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	args := commandArgs(update.Message.Text)
	if len(args) == 0 {
		sendText(ctx, b, log, chatID, "Usage: /setbg <image URL>")
		return
	}
	parsed, err := url.Parse(args[0])
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		sendText(ctx, b, log, chatID, "Background must be an absolute http(s) URL.")
		return
	}

	cfg := &database.GuildConfig{
		Platform:      platform,
		ChatID:        chatID,
		BackgroundURL: parsed.String(),
		SetByUserID:   update.Message.From.ID,
		SetAt:         h.deps.Runtime.Now().UTC(),
	}
	if err := h.deps.Store.UpsertGuildConfig(ctx, cfg); err != nil {
		log.ErrorContext(ctx, "Failed to store chat background", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	log.InfoContext(ctx, "Chat background updated", "chat_id", chatID, "set_by", update.Message.From.ID)
	sendText(ctx, b, log, chatID, h.deps.Config.Messages.BgSet)
}

// NewGetBackgroundHandler returns a handler for the /getbg command.
func NewGetBackgroundHandler(deps HandlerDeps) bot.HandlerFunc {
	return getBackgroundHandler{deps}.Handle
}

type getBackgroundHandler struct {
	deps HandlerDeps
}

func (h getBackgroundHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "getbg")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	cfg, err := h.deps.Store.GetGuildConfig(ctx, platform, chatID)
	if err != nil {
		log.ErrorContext(ctx, "Failed to load chat background", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if cfg == nil || cfg.BackgroundURL == "" {
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.BgNone)
		return
	}
	sendText(ctx, b, log, chatID, cfg.BackgroundURL)
}

// NewResetBackgroundHandler returns a handler for the admin-only /resetbg
// command.
func NewResetBackgroundHandler(deps HandlerDeps) bot.HandlerFunc {
	return resetBackgroundHandler{deps}.Handle
}

type resetBackgroundHandler struct {
	deps HandlerDeps
}

func (h resetBackgroundHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "resetbg")

	if update.Message == nil {
		return
	}
	chatID := update.Message.Chat.ID

	if err := h.deps.Store.DeleteGuildConfig(ctx, platform, chatID); err != nil {
		log.ErrorContext(ctx, "Failed to reset chat background", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	sendText(ctx, b, log, chatID, h.deps.Config.Messages.BgReset)
}
