// Package main contains the entrypoint for the Wanderbot Telegram bot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"wanderbot/internal/bot"
	"wanderbot/internal/bot/handlers"
	"wanderbot/internal/bot/tasks"
	"wanderbot/internal/config"
	"wanderbot/internal/database"
	"wanderbot/internal/gemini"
	"wanderbot/internal/imagecache"
	"wanderbot/internal/logger"
	"wanderbot/internal/photos"
	"wanderbot/internal/render"
	"wanderbot/internal/sun"
	"wanderbot/internal/telegram"
	"wanderbot/internal/travel"
	"wanderbot/internal/worldmap"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop() // Ensure context cancellation is signaled before exit
	os.Exit(exitCode)
}

// run initializes and starts all application components (config, logger,
// db, clients, bot, scheduler), handles graceful shutdown, and returns an
// exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	slog.SetDefault(log)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON)

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	gemClient, err := gemini.NewClient(ctx, cfg.Gemini, log)
	if err != nil {
		log.Error("Failed to initialize Gemini client", "error", err)
		return 1
	}

	runtime := travel.NewRuntime(travel.SystemClock())
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	var completer travel.Completer
	var imageGen travel.ImageGenerator
	if gemClient != nil {
		completer = gemClient
		imageGen = gemClient
	}
	var photoSearch travel.PhotoSearcher
	if chain := photos.NewChain(cfg.Photos, log); chain != nil {
		photoSearch = chain
	}
	resolver := travel.NewResolver(log, cfg, completer, photoSearch, runtime, rng)

	var cardRenderer *render.Renderer
	var footprintRenderer travel.FootprintRenderer
	if cfg.Render.OutputMode == "image" {
		cardRenderer = render.NewRenderer(log, cfg)
		defer cardRenderer.Close()
		footprintRenderer = cardRenderer
	}

	var uploader travel.Uploader
	if up := imagecache.NewUploader(cfg.Cache, log); up != nil {
		uploader = up
	}

	orchestrator := travel.NewOrchestrator(log, cfg, resolver, imageGen, footprintRenderer, uploader, store, runtime)

	hDeps := handlers.HandlerDeps{
		Logger:       log,
		Config:       cfg,
		Store:        store,
		Orchestrator: orchestrator,
		Runtime:      runtime,
		Painter:      worldmap.NewPainter(log),
		SunClient:    sun.NewClient(cfg.Behavior.SunriseTimeout),
	}
	if cardRenderer != nil {
		hDeps.Renderer = cardRenderer
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log), handlers.ObserveActivity(hDeps)),
		tgbot.WithDefaultHandler(handlers.NewActivitySink(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	// Retrieve bot info and store it in the config for runtime use
	cfg.Telegram.BotInfo, err = tg.GetMe(ctx)
	if err != nil {
		log.Error("Failed to get bot info", "error", err)
		return 1
	}
	log.Info("Retrieved bot info", "bot_id", cfg.Telegram.BotInfo.ID, "bot_username", cfg.Telegram.BotInfo.Username)

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	tDeps := tasks.TaskDeps{
		Logger:  log,
		Config:  cfg,
		Store:   store,
		Runtime: runtime,
		TgBot:   tg,
	}
	if cardRenderer != nil {
		tDeps.Renderer = cardRenderer
	}

	sched := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	app := bot.NewBot(log, cfg, db, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		// Allow logs to flush before exiting on error
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
