// Package twitch implements the chat transport for Twitch chat, speaking
// IRC over Twitch's WebSocket endpoint.
package twitch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"golang.org/x/time/rate"
	"gopkg.in/irc.v4"

	"github.com/edgard/phrasebot/internal/chat"
)

const (
	// MaxMessageLength is Twitch's limit for a single chat message.
	MaxMessageLength = 500

	initialBackoff = time.Second
	maxBackoff     = time.Minute
	writeTimeout   = 10 * time.Second
)

var (
	// ErrAuthFailed is returned by Run when Twitch rejects the credentials.
	ErrAuthFailed = errors.New("twitch authentication failed")
	// ErrNotConnected is returned by Send while no connection is open.
	ErrNotConnected = errors.New("not connected to twitch")

	errReconnectRequested = errors.New("server requested reconnect")
)

// Config holds the connection settings for a Client.
type Config struct {
	ServerURL  string
	Username   string
	OAuthToken string
	// Channel is the channel login, without '#'.
	Channel    string
	RateLimit  int
	RatePeriod time.Duration
}

// Client is a chat.Transport for a single Twitch channel.
type Client struct {
	cfg     Config
	logger  *slog.Logger
	dialer  *websocket.Dialer
	limiter *rate.Limiter

	wmu  sync.Mutex
	conn *websocket.Conn
}

var _ chat.Transport = (*Client)(nil)

// NewClient creates a Twitch client. It does not connect until Run is called.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.ServerURL == "" || cfg.Username == "" || cfg.OAuthToken == "" || cfg.Channel == "" {
		return nil, fmt.Errorf("twitch server url, username, oauth token and channel are required")
	}
	if cfg.RateLimit <= 0 || cfg.RatePeriod <= 0 {
		return nil, fmt.Errorf("twitch rate limit must be positive, got %d per %v", cfg.RateLimit, cfg.RatePeriod)
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	cfg.Username = strings.ToLower(cfg.Username)
	cfg.Channel = strings.ToLower(strings.TrimPrefix(cfg.Channel, "#"))

	return &Client{
		cfg:     cfg,
		logger:  logger.With("component", "twitch"),
		dialer:  websocket.DefaultDialer,
		limiter: rate.NewLimiter(rate.Every(cfg.RatePeriod/time.Duration(cfg.RateLimit)), cfg.RateLimit),
	}, nil
}

// Username returns the bot's login name.
func (c *Client) Username() string {
	return c.cfg.Username
}

// Run connects, joins the channel and delivers its messages to handler
// until ctx is cancelled. Connection failures are retried with exponential
// backoff; rejected credentials end the loop with ErrAuthFailed.
func (c *Client) Run(ctx context.Context, handler chat.HandlerFunc) error {
	backoff := initialBackoff

	for {
		ready, err := c.session(ctx, handler)
		if ctx.Err() != nil {
			c.logger.Info("Twitch client stopped", "reason", ctx.Err())
			return nil
		}
		if errors.Is(err, ErrAuthFailed) {
			return err
		}
		if ready {
			backoff = initialBackoff
		}
		if errors.Is(err, errReconnectRequested) {
			c.logger.Info("Twitch requested reconnect, reconnecting now")
			continue
		}

		c.logger.Warn("Twitch connection lost, reconnecting", "error", err, "backoff", backoff)
		select {
		case <-ctx.Done():
			c.logger.Info("Twitch client stopped", "reason", ctx.Err())
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, maxBackoff)
	}
}

// session runs one connection from dial to disconnect. ready reports whether
// the server accepted the login before the session ended.
func (c *Client) session(ctx context.Context, handler chat.HandlerFunc) (ready bool, err error) {
	conn, _, err := c.dialer.DialContext(ctx, c.cfg.ServerURL, nil)
	if err != nil {
		return false, fmt.Errorf("failed to dial %s: %w", c.cfg.ServerURL, err)
	}

	c.wmu.Lock()
	c.conn = conn
	c.wmu.Unlock()

	done := make(chan struct{})
	defer func() {
		close(done)
		c.closeConn()
	}()
	go func() {
		select {
		case <-ctx.Done():
			c.closeConn()
		case <-done:
		}
	}()

	if err := c.register(); err != nil {
		return false, err
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return ready, fmt.Errorf("failed to read from twitch: %w", err)
		}

		for _, raw := range splitLines(string(data)) {
			line, err := irc.ParseMessage(raw)
			if err != nil {
				c.logger.Debug("Skipping unparsable line", "line", raw, "error", err)
				continue
			}
			if line.Command == "001" {
				ready = true
			}
			if err := c.dispatch(ctx, line, handler); err != nil {
				return ready, err
			}
		}
	}
}

func (c *Client) register() error {
	token := c.cfg.OAuthToken
	if !strings.HasPrefix(token, "oauth:") {
		token = "oauth:" + token
	}

	lines := []string{
		"CAP REQ :twitch.tv/tags twitch.tv/commands",
		"PASS " + token,
		"NICK " + c.cfg.Username,
		"JOIN #" + c.cfg.Channel,
	}
	for _, l := range lines {
		if err := c.write(l); err != nil {
			return fmt.Errorf("failed to register with twitch: %w", err)
		}
	}
	return nil
}

func (c *Client) dispatch(ctx context.Context, line *irc.Message, handler chat.HandlerFunc) error {
	switch line.Command {
	case "PING":
		return c.write("PONG :" + line.Trailing())
	case "RECONNECT":
		return errReconnectRequested
	case "NOTICE":
		notice := line.Trailing()
		if strings.Contains(notice, "Login authentication failed") || strings.Contains(notice, "Improperly formatted auth") {
			return fmt.Errorf("%w: %s", ErrAuthFailed, notice)
		}
		c.logger.Info("Twitch notice", "message", notice, "msg_id", line.Tags["msg-id"])
	case "001":
		c.logger.Info("Logged in to Twitch", "username", c.cfg.Username)
	case "JOIN":
		if strings.EqualFold(nick(line), c.cfg.Username) {
			c.logger.Info("Joined channel, bot is ready and listening for messages", "channel", param(line, 0))
		}
	case "PRIVMSG":
		target, text, ok := privmsgText(line)
		if !ok {
			c.logger.Debug("Skipping PRIVMSG without text", "line", line.String())
			return nil
		}
		if target != "#"+c.cfg.Channel {
			return nil
		}
		author := nick(line)
		handler(ctx, chat.Message{
			Author:  author,
			Content: text,
			Echo:    strings.EqualFold(author, c.cfg.Username),
			Channel: channel{client: c, name: c.cfg.Channel},
		})
	}
	return nil
}

// Say sends text to a channel, waiting for the rate limiter.
func (c *Client) Say(ctx context.Context, channelName, text string) error {
	text = sanitizeOutbound(text, MaxMessageLength)
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("refusing to send empty message")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}
	return c.write("PRIVMSG #" + strings.TrimPrefix(channelName, "#") + " :" + text)
}

func (c *Client) write(line string) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if c.conn == nil {
		return ErrNotConnected
	}
	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("failed to set write deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(line+"\r\n")); err != nil {
		return fmt.Errorf("failed to write to twitch: %w", err)
	}
	return nil
}

func (c *Client) closeConn() {
	c.wmu.Lock()
	defer c.wmu.Unlock()

	if c.conn == nil {
		return
	}
	_ = c.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "closing"),
		time.Now().Add(500*time.Millisecond))
	_ = c.conn.Close()
	c.conn = nil
}

// channel is the chat.Channel handle for the joined Twitch channel.
type channel struct {
	client *Client
	name   string
}

func (ch channel) Name() string {
	return "#" + ch.name
}

func (ch channel) Send(ctx context.Context, text string) error {
	return ch.client.Say(ctx, ch.name, text)
}
