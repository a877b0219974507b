package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/database"
	"wanderbot/internal/stats"
)

// NewMonthlyHandler returns a handler for the /monthly command. It accepts
// an optional "year month" argument pair and defaults to the current month.
// groupWide switches it to the whole chat for /monthly_all.
func NewMonthlyHandler(deps HandlerDeps, groupWide bool) bot.HandlerFunc {
	return monthlyHandler{deps: deps, groupWide: groupWide}.Handle
}

type monthlyHandler struct {
	deps      HandlerDeps
	groupWide bool
}

func (h monthlyHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "monthly", "group_wide", h.groupWide)

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Monthly handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	year, month, err := parseMonthArgs(commandArgs(update.Message.Text), h.deps.Runtime.Now())
	if err != nil {
		sendText(ctx, b, log, chatID, err.Error())
		return
	}

	from, to := stats.MonthWindow(year, month)
	var logs []*database.TravelLog
	if h.groupWide {
		logs, err = h.deps.Store.GetTravelLogsInWindow(ctx, platform, chatID, from, to)
	} else {
		logs, err = h.deps.Store.GetTravelLogsForUser(ctx, platform, chatID, update.Message.From.ID)
	}
	if err != nil {
		log.ErrorContext(ctx, "Failed to load travel logs", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}

	summary := stats.Monthly(logs, year, month)
	title := fmt.Sprintf("Trips in %04d-%02d", year, month)
	if summary.TotalTrips == 0 {
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.NoTrips)
		return
	}

	if h.deps.Renderer == nil {
		sendText(ctx, b, log, chatID, title+"\n"+formatMonthly(summary))
		return
	}

	img, filename, err := h.deps.Renderer.RenderMonthly(ctx, title, summary)
	if err != nil {
		log.ErrorContext(ctx, "Monthly card rendering failed", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	sendPhoto(ctx, b, log, chatID, filename, img, title)
}

// parseMonthArgs reads an optional "year month" pair, defaulting to the
// current UTC month.
func parseMonthArgs(args []string, now time.Time) (int, time.Month, error) {
	if len(args) == 0 {
		return now.UTC().Year(), now.UTC().Month(), nil
	}
	if len(args) < 2 {
		return 0, 0, fmt.Errorf("usage: /monthly [year month], e.g. /monthly %d %d", now.Year(), int(now.Month()))
	}

	year, err := strconv.Atoi(args[0])
	if err != nil || year < 2000 || year > 9999 {
		return 0, 0, fmt.Errorf("invalid year: %s", args[0])
	}
	monthNum, err := strconv.Atoi(args[1])
	if err != nil || monthNum < 1 || monthNum > 12 {
		return 0, 0, fmt.Errorf("invalid month: %s", args[1])
	}
	return year, time.Month(monthNum), nil
}

// formatMonthly is the text-mode fallback.
func formatMonthly(summary stats.MonthlySummary) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d trips, %d countries, %d places\n",
		summary.TotalTrips, summary.DistinctCountries, summary.DistinctLocations)
	for _, user := range summary.Users {
		fmt.Fprintf(&sb, "%s: %d trips (%s)\n",
			user.UserName, user.Trips, strings.Join(user.Countries, ", "))
	}
	return strings.TrimRight(sb.String(), "\n")
}
