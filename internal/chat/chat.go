// Package chat defines the transport-neutral message model shared by the
// Twitch and Telegram adapters and the bot handlers.
package chat

import "context"

// Channel is the destination a message arrived on. Replies are sent back
// through it.
type Channel interface {
	// Name identifies the channel; per-channel state is keyed by it.
	Name() string
	// Send posts plain text to the channel.
	Send(ctx context.Context, text string) error
}

// Message is a single inbound chat line.
type Message struct {
	Author  string
	Content string
	// Echo is true when the message was sent by the bot itself.
	Echo    bool
	Channel Channel
}

// HandlerFunc processes one inbound message. Transports call it sequentially
// for a given channel.
type HandlerFunc func(ctx context.Context, msg Message)

// Middleware wraps a HandlerFunc.
type Middleware func(next HandlerFunc) HandlerFunc

// Transport delivers inbound messages and owns the connection lifecycle.
type Transport interface {
	// Username is the bot's own login name on the platform, used for
	// mention detection.
	Username() string
	// Run blocks delivering messages to handler until ctx is cancelled or a
	// fatal error occurs.
	Run(ctx context.Context, handler HandlerFunc) error
}

// Chain applies middleware so that the first one in the slice is outermost.
func Chain(handler HandlerFunc, mw ...Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		handler = mw[i](handler)
	}
	return handler
}
