package handlers

import (
	"context"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// RegisteredHandler represents a command handler with its registration
// metadata and middleware.
type RegisteredHandler struct {
	HandlerType tgbot.HandlerType
	Pattern     string
	Handler     tgbot.HandlerFunc
	Middleware  []tgbot.Middleware
	MatchType   tgbot.MatchType
}

// RegisterAllCommands initializes and returns a map of all available bot
// commands with their handlers and middleware.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredHandler {
	command := func(pattern string, handler tgbot.HandlerFunc, mw ...tgbot.Middleware) RegisteredHandler {
		return RegisteredHandler{
			HandlerType: tgbot.HandlerTypeMessageText,
			Pattern:     pattern,
			Handler:     handler,
			MatchType:   tgbot.MatchTypeCommandStartOnly,
			Middleware:  mw,
		}
	}
	adminOnly := AdminOnly(deps)

	handlers := make(map[string]RegisteredHandler)
	handlers["/start"] = command("start", NewStartHandler(deps))
	handlers["/help"] = command("help", NewHelpHandler(deps))

	handlers["/travel"] = command("travel", NewTravelHandler(deps))
	handlers["/travel_user"] = command("travel_user", NewTravelUserHandler(deps))

	handlers["/worldmap"] = command("worldmap", NewWorldMapHandler(deps, false))
	handlers["/worldmap_all"] = command("worldmap_all", NewWorldMapHandler(deps, true))
	handlers["/monthly"] = command("monthly", NewMonthlyHandler(deps, false))
	handlers["/monthly_all"] = command("monthly_all", NewMonthlyHandler(deps, true))
	handlers["/leaderboard"] = command("leaderboard", NewLeaderboardHandler(deps))
	handlers["/nightowl"] = command("nightowl", NewNightOwlHandler(deps))

	handlers["/getbg"] = command("getbg", NewGetBackgroundHandler(deps))
	handlers["/setbg"] = command("setbg", NewSetBackgroundHandler(deps), adminOnly)
	handlers["/resetbg"] = command("resetbg", NewResetBackgroundHandler(deps), adminOnly)

	return handlers
}

// NewActivitySink returns the default handler for non-command messages.
// The observation middleware has already done its work by the time this
// runs, so there is nothing left to do.
func NewActivitySink(deps HandlerDeps) tgbot.HandlerFunc {
	return func(ctx context.Context, b *tgbot.Bot, update *models.Update) {}
}
