package handlers

import (
	"bytes"
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/travel"
)

// sendText sends a plain text message, logging delivery failures.
func sendText(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send message", "error", err, "chat_id", chatID)
	}
}

// sendPhoto uploads rendered card bytes with a caption.
func sendPhoto(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, filename string, data []byte, caption string) {
	_, err := b.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(data)},
		Caption: caption,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send photo", "error", err, "chat_id", chatID)
	}
}

// sendTravelResult delivers a trip result, preferring the durable URL over
// raw bytes over plain text.
func sendTravelResult(ctx context.Context, b *tgbot.Bot, log *slog.Logger, chatID int64, result *travel.Result) {
	switch {
	case result.ImageURL != "":
		_, err := b.SendPhoto(ctx, &tgbot.SendPhotoParams{
			ChatID:  chatID,
			Photo:   &models.InputFileString{Data: result.ImageURL},
			Caption: result.Message,
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send photo by URL, falling back to bytes",
				"error", err, "chat_id", chatID)
			sendPhoto(ctx, b, log, chatID, result.ImageName, result.ImageBytes, result.Message)
		}
	case len(result.ImageBytes) > 0:
		sendPhoto(ctx, b, log, chatID, result.ImageName, result.ImageBytes, result.Message)
	default:
		sendText(ctx, b, log, chatID, result.Message)
	}
}

// displayName picks the best available name for a Telegram user.
func displayName(user *models.User) string {
	if user == nil {
		return ""
	}
	if user.FirstName != "" {
		return user.FirstName
	}
	return user.Username
}
