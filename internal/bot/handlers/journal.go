package handlers

import (
	"context"
	"time"

	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/database"
)

const (
	sendMessageTimeout = 10 * time.Second
	dbSaveTimeout      = 5 * time.Second
)

// sendWithTimeout sends text to ch, bounding the wait on the transport
// (including its rate limiter).
func sendWithTimeout(ctx context.Context, ch chat.Channel, text string) error {
	sendCtx, cancel := context.WithTimeout(ctx, sendMessageTimeout)
	defer cancel()
	return ch.Send(sendCtx, text)
}

// saveEvent records event in the journal when one is configured. Failures
// are logged and otherwise ignored.
func saveEvent(ctx context.Context, deps HandlerDeps, event *database.Event) {
	if deps.Store == nil {
		return
	}
	log := deps.Logger.With("handler", "journal")

	dbCtx, cancel := context.WithTimeout(ctx, dbSaveTimeout)
	defer cancel()

	if err := deps.Store.SaveEvent(dbCtx, event); err != nil {
		log.ErrorContext(ctx, "Failed to journal event", "error", err, "channel", event.Channel, "kind", event.Kind)
		return
	}
	log.DebugContext(ctx, "Event journaled", "event_id", event.ID, "channel", event.Channel, "kind", event.Kind)
}
