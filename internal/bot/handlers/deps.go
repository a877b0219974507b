package handlers

import (
	"context"
	"log/slog"

	"wanderbot/internal/config"
	"wanderbot/internal/database"
	"wanderbot/internal/render"
	"wanderbot/internal/stats"
	"wanderbot/internal/sun"
	"wanderbot/internal/travel"
	"wanderbot/internal/worldmap"
)

// platform tags every persisted row; the schema is platform-scoped so the
// data model survives a future second transport.
const platform = "telegram"

// CardRenderer is the subset of the renderer the query handlers need.
// It is nil when output_mode is "text".
type CardRenderer interface {
	RenderMonthly(ctx context.Context, title string, summary stats.MonthlySummary) ([]byte, string, error)
	RenderLeaderboard(ctx context.Context, title string, entries []stats.LeaderboardEntry) ([]byte, string, error)
	RenderNightOwls(ctx context.Context, title string, rows []render.NightOwlRow) ([]byte, string, error)
	RenderWorldMap(ctx context.Context, title, svg string) ([]byte, string, error)
}

// HandlerDeps provides dependencies for Telegram command handlers.
type HandlerDeps struct {
	Logger       *slog.Logger
	Config       *config.Config
	Store        database.Store
	Orchestrator *travel.Orchestrator
	Runtime      *travel.Runtime
	Renderer     CardRenderer
	Painter      *worldmap.Painter
	SunClient    *sun.Client
}
