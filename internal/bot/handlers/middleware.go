// Package handlers contains the chat message router, the mention, phrase
// and command handlers, their registration logic and middleware.
package handlers

import (
	"context"
	"runtime/debug"

	"github.com/edgard/phrasebot/internal/chat"
)

// Recover creates a middleware that stops a panicking handler from taking
// down the transport's read loop. The panic is logged and the message is
// dropped.
func Recover(deps HandlerDeps) chat.Middleware {
	return func(next chat.HandlerFunc) chat.HandlerFunc {
		return func(ctx context.Context, msg chat.Message) {
			defer func() {
				if r := recover(); r != nil {
					channel := ""
					if msg.Channel != nil {
						channel = msg.Channel.Name()
					}
					deps.Logger.With("middleware", "Recover").ErrorContext(ctx, "Handler panicked",
						"panic", r, "channel", channel, "author", msg.Author, "stack", string(debug.Stack()))
				}
			}()

			next(ctx, msg)
		}
	}
}
