package tasks

import (
	"bytes"
	"context"
	"fmt"
	"time"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/stats"
)

// newMonthlyReportTask creates the daily job that posts last month's trip
// summary to every chat that traveled, but only on the first day of the
// month. Per-chat failures are logged and do not stop the broadcast.
func newMonthlyReportTask(deps TaskDeps) ScheduledTaskFunc {
	log := deps.Logger.With("task", "monthly_report")

	return func(ctx context.Context) error {
		if !deps.Config.Travel.MonthlySummaryEnabled {
			log.DebugContext(ctx, "Monthly summary disabled, skipping")
			return nil
		}
		now := deps.Runtime.Now().UTC()
		if now.Day() != 1 {
			log.DebugContext(ctx, "Not the first of the month, skipping", "day", now.Day())
			return nil
		}

		previous := now.AddDate(0, -1, 0)
		year, month := previous.Year(), previous.Month()
		from, to := stats.MonthWindow(year, month)

		chats, err := deps.Store.ListChatsWithTrips(ctx, platform, from, to)
		if err != nil {
			return fmt.Errorf("failed to list chats with trips: %w", err)
		}
		log.InfoContext(ctx, "Broadcasting monthly summaries", "chats", len(chats), "year", year, "month", int(month))

		var failed int
		for _, chatID := range chats {
			if err := sendChatSummary(ctx, deps, chatID, year, month); err != nil {
				log.WarnContext(ctx, "Failed to send monthly summary", "error", err, "chat_id", chatID)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("monthly summary failed for %d of %d chats", failed, len(chats))
		}
		return nil
	}
}

func sendChatSummary(ctx context.Context, deps TaskDeps, chatID int64, year int, month time.Month) error {
	from, to := stats.MonthWindow(year, month)
	logs, err := deps.Store.GetTravelLogsInWindow(ctx, platform, chatID, from, to)
	if err != nil {
		return fmt.Errorf("failed to load travel logs: %w", err)
	}

	summary := stats.Monthly(logs, year, month)
	if summary.TotalTrips == 0 {
		return nil
	}
	// Scope down to totals when per-user listing is disabled.
	if !deps.Config.Travel.MonthlySummaryAllUsers {
		summary.Users = nil
	}
	title := fmt.Sprintf("Trips in %04d-%02d", year, month)

	if deps.Renderer == nil {
		text := fmt.Sprintf("%s: %d trips, %d countries, %d places",
			title, summary.TotalTrips, summary.DistinctCountries, summary.DistinctLocations)
		_, err = deps.TgBot.SendMessage(ctx, &tgbot.SendMessageParams{ChatID: chatID, Text: text})
		return err
	}

	img, filename, err := deps.Renderer.RenderMonthly(ctx, title, summary)
	if err != nil {
		return fmt.Errorf("failed to render monthly card: %w", err)
	}
	_, err = deps.TgBot.SendPhoto(ctx, &tgbot.SendPhotoParams{
		ChatID:  chatID,
		Photo:   &models.InputFileUpload{Filename: filename, Data: bytes.NewReader(img)},
		Caption: title,
	})
	return err
}
