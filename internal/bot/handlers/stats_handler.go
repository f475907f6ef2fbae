package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/phrase"
)

// NewPhraseStatsHandler returns a handler for the phrasestats command. It
// reports how many messages remain until the next phrase and how many
// phrases there are.
func NewPhraseStatsHandler(deps HandlerDeps) CommandFunc {
	return func(ctx context.Context, msg chat.Message, state *phrase.State, _ []string) {
		log := deps.Logger.With("handler", "phrasestats")
		log.InfoContext(ctx, "Handling phrasestats command", "channel", msg.Channel.Name(), "author", msg.Author)

		text := fmt.Sprintf(deps.Config.Messages.PhraseStats, state.Counter.Remaining(), len(deps.Phrases.Phrases))
		if err := sendWithTimeout(ctx, msg.Channel, text); err != nil {
			log.ErrorContext(ctx, "Failed to send phrase stats", "error", err, "channel", msg.Channel.Name())
		}
	}
}

// NewPhraseListHandler returns a handler for the phrases command.
func NewPhraseListHandler(deps HandlerDeps) CommandFunc {
	return func(ctx context.Context, msg chat.Message, _ *phrase.State, _ []string) {
		log := deps.Logger.With("handler", "phrases")
		log.InfoContext(ctx, "Handling phrases command", "channel", msg.Channel.Name(), "author", msg.Author)

		text := fmt.Sprintf(deps.Config.Messages.PhraseList, strings.Join(deps.Phrases.Phrases, ", "))
		if err := sendWithTimeout(ctx, msg.Channel, text); err != nil {
			log.ErrorContext(ctx, "Failed to send phrase list", "error", err, "channel", msg.Channel.Name())
		}
	}
}
