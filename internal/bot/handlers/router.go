package handlers

import (
	"context"

	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/phrase"
)

type router struct {
	deps     HandlerDeps
	commands map[string]RegisteredCommand
	mention  mentionHandler
	phrase   phraseHandler
}

// NewMessageRouter returns the chat handler every inbound message goes
// through. It classifies the message and dispatches it to the mention,
// command or phrase handler while holding the channel's state lock.
func NewMessageRouter(deps HandlerDeps, commands map[string]RegisteredCommand) chat.HandlerFunc {
	return router{
		deps:     deps,
		commands: commands,
		mention:  newMentionHandler(deps),
		phrase:   newPhraseHandler(deps),
	}.Handle
}

func (r router) Handle(ctx context.Context, msg chat.Message) {
	log := r.deps.Logger.With("handler", "router")
	if msg.Channel == nil {
		log.WarnContext(ctx, "Ignoring message without channel", "author", msg.Author)
		return
	}
	channel := msg.Channel.Name()

	class := r.deps.Classifier.Classify(msg)
	switch class {
	case phrase.SelfEcho:
		return
	case phrase.IgnoredUser:
		log.DebugContext(ctx, "Ignoring message from ignored user", "channel", channel, "author", msg.Author)
		return
	}

	state, err := r.deps.States.Get(channel)
	if err != nil {
		log.ErrorContext(ctx, "Failed to get channel state", "error", err, "channel", channel)
		return
	}
	state.Lock()
	defer state.Unlock()

	switch class {
	case phrase.BotMention:
		r.mention.Handle(ctx, msg, state)
	case phrase.Command:
		r.command(ctx, msg, state)
	default:
		if class.Counts() {
			r.phrase.Handle(ctx, msg, state)
		}
	}
}

func (r router) command(ctx context.Context, msg chat.Message, state *phrase.State) {
	name, args, ok := phrase.ParseCommand(msg.Content, r.deps.Classifier.CommandPrefix)
	if !ok {
		return
	}
	cmd, exists := r.commands[name]
	if !exists || cmd.Handler == nil {
		r.deps.Logger.DebugContext(ctx, "Ignoring unknown command", "handler", "router",
			"command", name, "channel", msg.Channel.Name())
		return
	}
	cmd.Handler(ctx, msg, state, args)
}
