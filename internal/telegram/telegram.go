// Package telegram adapts a single Telegram chat to the chat transport
// interface using the go-telegram/bot library.
package telegram

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/logger"
)

// MaxMessageLength is Telegram's limit for a single text message.
const MaxMessageLength = 4096

// Transport serves one Telegram chat.
type Transport struct {
	bot    *bot.Bot
	logger *slog.Logger
	chatID int64
	me     *models.User

	mu      sync.RWMutex
	handler chat.HandlerFunc
}

var _ chat.Transport = (*Transport)(nil)

// NewTransport creates the Telegram bot instance and resolves its own
// identity. Only updates from chatID are delivered.
func NewTransport(ctx context.Context, token string, chatID int64, log *slog.Logger, opts ...bot.Option) (*Transport, error) {
	if token == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	if chatID == 0 {
		return nil, fmt.Errorf("telegram chat id cannot be zero")
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "telegram_bot")

	t := &Transport{logger: log, chatID: chatID}

	opts = append([]bot.Option{
		bot.WithMiddlewares(logger.UpdateMiddleware(log)),
		bot.WithDefaultHandler(t.handleUpdate),
	}, opts...)

	b, err := bot.New(token, opts...)
	if err != nil {
		log.Error("Failed to create Telegram bot instance", "error", err)
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	t.bot = b

	t.me, err = b.GetMe(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get bot info: %w", err)
	}

	log.Info("Telegram bot instance created successfully", "bot_id", t.me.ID, "bot_username", t.me.Username, "chat_id", chatID)
	return t, nil
}

// Username returns the bot's Telegram username.
func (t *Transport) Username() string {
	return strings.ToLower(t.me.Username)
}

// Run polls for updates until ctx is cancelled.
func (t *Transport) Run(ctx context.Context, handler chat.HandlerFunc) error {
	t.mu.Lock()
	t.handler = handler
	t.mu.Unlock()

	t.logger.Info("Starting Telegram bot listener...")
	t.bot.Start(ctx)
	t.logger.Info("Telegram bot listener stopped.")

	if ctx.Err() == nil {
		return fmt.Errorf("telegram listener stopped unexpectedly")
	}
	return nil
}

func (t *Transport) handleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	t.mu.RLock()
	handler := t.handler
	t.mu.RUnlock()
	if handler == nil {
		return
	}

	msg, ok := toMessage(update, t.chatID, t.me.ID)
	if !ok {
		t.logger.DebugContext(ctx, "Ignoring update", "update_id", update.ID)
		return
	}
	msg.Channel = chatChannel{bot: b, chatID: t.chatID}
	handler(ctx, msg)
}

// toMessage converts a text message update from chatID into a chat.Message.
func toMessage(update *models.Update, chatID, botID int64) (chat.Message, bool) {
	if update == nil || update.Message == nil || update.Message.From == nil {
		return chat.Message{}, false
	}
	m := update.Message
	if m.Chat.ID != chatID || m.Text == "" {
		return chat.Message{}, false
	}

	return chat.Message{
		Author:  authorName(m.From),
		Content: m.Text,
		Echo:    m.From.ID == botID,
	}, true
}

func authorName(u *models.User) string {
	switch {
	case u.Username != "":
		return strings.ToLower(u.Username)
	case u.FirstName != "":
		return u.FirstName
	default:
		return strconv.FormatInt(u.ID, 10)
	}
}

type chatChannel struct {
	bot    *bot.Bot
	chatID int64
}

func (c chatChannel) Name() string {
	return strconv.FormatInt(c.chatID, 10)
}

func (c chatChannel) Send(ctx context.Context, text string) error {
	if r := []rune(text); len(r) > MaxMessageLength {
		text = string(r[:MaxMessageLength])
	}
	if _, err := c.bot.SendMessage(ctx, &bot.SendMessageParams{ChatID: c.chatID, Text: text}); err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}
