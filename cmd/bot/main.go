// Package main contains the entrypoint for PhraseBot.
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgard/phrasebot/internal/bot"
	"github.com/edgard/phrasebot/internal/bot/handlers"
	"github.com/edgard/phrasebot/internal/bot/tasks"
	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/config"
	"github.com/edgard/phrasebot/internal/database"
	"github.com/edgard/phrasebot/internal/logger"
	"github.com/edgard/phrasebot/internal/phrase"
	"github.com/edgard/phrasebot/internal/telegram"
	"github.com/edgard/phrasebot/internal/twitch"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run wires config, logger, journal, transport, handlers and scheduler,
// blocks until shutdown, and returns the process exit code.
func run(ctx context.Context) int {
	configPath := flag.String("config", "./config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		slog.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Logger.Level, cfg.Logger.JSON)
	log.Info("Logger initialized", "level", cfg.Logger.Level, "json", cfg.Logger.JSON, "transport", cfg.Transport)

	var store database.Store
	if cfg.Database.JournalEnabled() {
		db, err := database.Open(cfg.Database.Path, log)
		if err != nil {
			log.Error("Failed to open event journal", "path", cfg.Database.Path, "error", err)
			return 1
		}
		defer database.Close(db, log)
		store = database.NewStore(db, log)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		err = store.Ping(pingCtx)
		cancel()
		if err != nil {
			log.Error("Event journal is not reachable", "path", cfg.Database.Path, "error", err)
			return 1
		}
	} else {
		log.Info("Event journal disabled")
	}

	transport, err := newTransport(ctx, cfg, log)
	if err != nil {
		log.Error("Failed to create chat transport", "transport", cfg.Transport, "error", err)
		return 1
	}

	seed := cfg.Bot.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	states := phrase.NewStates(cfg.Bot.MinMessages, cfg.Bot.MaxMessages, phrase.SeededRand(seed))

	hDeps := handlers.HandlerDeps{
		Logger:  log,
		Config:  cfg,
		States:  states,
		Phrases: handlers.NewPhraseSet(cfg.Bot),
		Classifier: phrase.Classifier{
			BotName:       transport.Username(),
			CommandPrefix: cfg.Bot.CommandPrefix,
			IgnoredUsers:  cfg.Bot.IgnoredSet(),
		},
		Store: store,
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Config: cfg,
		States: states,
		Store:  store,
	}

	handler := chat.Chain(
		handlers.NewMessageRouter(hDeps, handlers.RegisterAllCommands(hDeps)),
		logger.Middleware(log),
		handlers.Recover(hDeps),
	)

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, transport, handler, sched)

	log.Info("Starting bot...", "min_messages", cfg.Bot.MinMessages, "max_messages", cfg.Bot.MaxMessages, "phrases", len(cfg.Bot.Phrases))
	runErr := app.Run(ctx)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	return 0
}

func newTransport(ctx context.Context, cfg *config.Config, log *slog.Logger) (chat.Transport, error) {
	switch cfg.Transport {
	case "telegram":
		return telegram.NewTransport(ctx, cfg.Telegram.Token, cfg.Telegram.ChatID, log)
	default:
		return twitch.NewClient(twitch.Config{
			ServerURL:  cfg.Twitch.ServerURL,
			Username:   cfg.Twitch.Username,
			OAuthToken: cfg.Twitch.OAuthToken,
			Channel:    cfg.Twitch.Channel,
			RateLimit:  cfg.Twitch.RateLimit,
			RatePeriod: cfg.Twitch.RatePeriod,
		}, log)
	}
}
