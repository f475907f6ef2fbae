package handlers

import (
	"context"

	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/database"
	"github.com/edgard/phrasebot/internal/phrase"
)

type mentionHandler struct {
	deps HandlerDeps
}

// newMentionHandler creates the handler that answers messages mentioning
// the bot with a canned yes, no or generic response.
func newMentionHandler(deps HandlerDeps) mentionHandler {
	return mentionHandler{deps}
}

func (h mentionHandler) Handle(ctx context.Context, msg chat.Message, state *phrase.State) {
	log := h.deps.Logger.With("handler", "mention")
	channel := msg.Channel.Name()

	kind, resp, err := h.deps.Phrases.MentionResponse(state.Rand, msg.Content)
	if err != nil {
		log.ErrorContext(ctx, "Failed to pick mention response", "error", err, "channel", channel)
		return
	}

	reply := phrase.Reply(msg.Author, resp)
	log.InfoContext(ctx, "Responding to mention", "channel", channel, "author", msg.Author, "kind", kind)

	if err := sendWithTimeout(ctx, msg.Channel, reply); err != nil {
		log.ErrorContext(ctx, "Failed to send mention response", "error", err, "channel", channel)
		return
	}

	saveEvent(ctx, h.deps, &database.Event{
		Channel:        channel,
		Kind:           database.EventMention,
		Author:         msg.Author,
		TriggerContent: msg.Content,
		SentContent:    reply,
	})
}
