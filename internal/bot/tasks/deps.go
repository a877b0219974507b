// Package tasks implements the scheduled maintenance jobs: the daily
// runtime-cache reset, the first-of-month summary broadcast, and the
// travel-log retention cleanup.
package tasks

import (
	"context"
	"log/slog"

	tgbot "github.com/go-telegram/bot"

	"wanderbot/internal/config"
	"wanderbot/internal/database"
	"wanderbot/internal/stats"
	"wanderbot/internal/travel"
)

const platform = "telegram"

// MonthlyCardRenderer renders the month-summary card. Nil in text mode.
type MonthlyCardRenderer interface {
	RenderMonthly(ctx context.Context, title string, summary stats.MonthlySummary) ([]byte, string, error)
}

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Store    database.Store
	Runtime  *travel.Runtime
	Renderer MonthlyCardRenderer
	TgBot    *tgbot.Bot
}
