package handlers

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"wanderbot/internal/database"
	"wanderbot/internal/geo"
	"wanderbot/internal/stats"
)

// NewWorldMapHandler returns a handler for the /worldmap command, showing
// the sender's personal map. groupWide switches it to the whole chat for
// /worldmap_all.
func NewWorldMapHandler(deps HandlerDeps, groupWide bool) bot.HandlerFunc {
	return worldMapHandler{deps: deps, groupWide: groupWide}.Handle
}

type worldMapHandler struct {
	deps      HandlerDeps
	groupWide bool
}

func (h worldMapHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "worldmap", "group_wide", h.groupWide)

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "World-map handler received update with nil message or sender", "update_id", update.ID)
		return
	}
	chatID := update.Message.Chat.ID

	var logs []*database.TravelLog
	var title string
	var err error
	if h.groupWide {
		logs, err = h.deps.Store.GetTravelLogsInChat(ctx, platform, chatID)
		title = "Group world map"
	} else {
		logs, err = h.deps.Store.GetTravelLogsForUser(ctx, platform, chatID, update.Message.From.ID)
		title = displayName(update.Message.From) + "'s world map"
	}
	if err != nil {
		log.ErrorContext(ctx, "Failed to load travel logs", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	if len(logs) == 0 {
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.NoTrips)
		return
	}

	visits := stats.CountryVisits(logs)

	if h.deps.Renderer == nil {
		sendText(ctx, b, log, chatID, title+"\n"+formatVisits(visits))
		return
	}

	highlight := visits
	if !h.deps.Config.Map.Highlight {
		highlight = nil
	}
	svg := h.deps.Painter.Paint(highlight)

	img, filename, err := h.deps.Renderer.RenderWorldMap(ctx, title, svg)
	if err != nil {
		log.ErrorContext(ctx, "World-map rendering failed", "error", err, "chat_id", chatID)
		sendText(ctx, b, log, chatID, h.deps.Config.Messages.GeneralError)
		return
	}
	sendPhoto(ctx, b, log, chatID, filename, img, title)
}

// formatVisits is the text-mode fallback, one country per line.
func formatVisits(visits map[string]int) string {
	keys := make([]string, 0, len(visits))
	for key := range visits {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if visits[keys[i]] != visits[keys[j]] {
			return visits[keys[i]] > visits[keys[j]]
		}
		return keys[i] < keys[j]
	})

	var sb strings.Builder
	for _, key := range keys {
		name := key
		if english, ok := geo.EnglishName(key); ok {
			name = english
		}
		fmt.Fprintf(&sb, "%s: %d\n", name, visits[key])
	}
	return strings.TrimRight(sb.String(), "\n")
}
