package handlers

import (
	"context"

	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/database"
	"github.com/edgard/phrasebot/internal/phrase"
)

type phraseHandler struct {
	deps HandlerDeps
}

// newPhraseHandler creates the handler that counts messages and injects a
// phrase into the message that reaches the trigger threshold.
func newPhraseHandler(deps HandlerDeps) phraseHandler {
	return phraseHandler{deps}
}

func (h phraseHandler) Handle(ctx context.Context, msg chat.Message, state *phrase.State) {
	log := h.deps.Logger.With("handler", "phrase")
	channel := msg.Channel.Name()

	triggered := state.Counter.Observe()
	if !triggered {
		log.InfoContext(ctx, "Message counted", "channel", channel,
			"count", state.Counter.Count(), "next_trigger", state.Counter.Next())
		return
	}

	log.InfoContext(ctx, "Trigger threshold reached", "channel", channel, "next_trigger", state.Counter.Next())

	p, err := h.deps.Phrases.PhraseFor(state.Rand, msg.Author)
	if err != nil {
		log.ErrorContext(ctx, "Failed to pick phrase", "error", err, "channel", channel)
		return
	}

	text := phrase.Compose(msg.Content, p)
	if err := sendWithTimeout(ctx, msg.Channel, text); err != nil {
		log.ErrorContext(ctx, "Failed to send phrase message", "error", err, "channel", channel)
		return
	}
	log.InfoContext(ctx, "Sent phrase message", "channel", channel, "author", msg.Author, "phrase", p)

	saveEvent(ctx, h.deps, &database.Event{
		Channel:        channel,
		Kind:           database.EventPhrase,
		Author:         msg.Author,
		TriggerContent: msg.Content,
		SentContent:    text,
	})
}
