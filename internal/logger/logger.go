// Package logger provides structured logging functionality for PhraseBot.
// It uses Go's slog package for logging with configurable levels and formats.
package logger

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/phrasebot/internal/chat"
)

// NewLogger creates a new slog Logger with the specified level and format.
// If jsonOutput is true, logs will be formatted as JSON, otherwise as text.
func NewLogger(levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// Middleware creates a logging middleware for inbound chat messages.
// It logs each message before and after it is handled.
func Middleware(log *slog.Logger) chat.Middleware {
	return func(next chat.HandlerFunc) chat.HandlerFunc {
		return func(ctx context.Context, msg chat.Message) {
			startTime := time.Now()

			channel := ""
			if msg.Channel != nil {
				channel = msg.Channel.Name()
			}
			logEntry := log.With(
				"channel", channel,
				"author", msg.Author,
				"echo", msg.Echo,
			)

			logEntry.DebugContext(ctx, "Processing message", "text_preview", TruncateString(msg.Content, 50))

			next(ctx, msg)

			logEntry.DebugContext(ctx, "Finished processing message", "duration", time.Since(startTime))
		}
	}
}

// UpdateMiddleware creates a logging middleware for raw Telegram updates,
// ahead of their conversion to chat messages.
func UpdateMiddleware(log *slog.Logger) bot.Middleware {
	return func(next bot.HandlerFunc) bot.HandlerFunc {
		return func(ctx context.Context, b *bot.Bot, update *models.Update) {
			logEntry := log.With("update_id", update.ID)

			updateType := "other"
			if update.Message != nil {
				updateType = "message"
				logEntry = logEntry.With(
					"message_id", update.Message.ID,
					"chat_id", update.Message.Chat.ID,
				)
				if update.Message.From != nil {
					logEntry = logEntry.With("user_id", update.Message.From.ID)
				}
			}
			logEntry.DebugContext(ctx, "Received update", "update_type", updateType)

			next(ctx, b, update)
		}
	}
}

// TruncateString shortens s to at most maxLen bytes, marking the cut with
// "...". It never splits a UTF-8 sequence.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return "..."
	}
	cut := maxLen - 3
	for cut > 0 && !isRuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
