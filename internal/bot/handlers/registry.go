package handlers

import (
	"context"

	"github.com/edgard/phrasebot/internal/chat"
	"github.com/edgard/phrasebot/internal/phrase"
)

// CommandFunc handles one command invocation. The channel state is locked
// by the caller for the duration of the call.
type CommandFunc func(ctx context.Context, msg chat.Message, state *phrase.State, args []string)

// RegisteredCommand represents a command handler with its description.
type RegisteredCommand struct {
	Name        string
	Description string
	Handler     CommandFunc
}

// RegisterAllCommands initializes and returns all available bot commands,
// keyed by command name without the prefix.
func RegisterAllCommands(deps HandlerDeps) map[string]RegisteredCommand {
	commands := make(map[string]RegisteredCommand)

	commands["phrasestats"] = RegisteredCommand{
		Name:        "phrasestats",
		Description: "Show messages until the next phrase and the number of phrases",
		Handler:     NewPhraseStatsHandler(deps),
	}
	commands["phrases"] = RegisteredCommand{
		Name:        "phrases",
		Description: "List the possible phrases",
		Handler:     NewPhraseListHandler(deps),
	}

	return commands
}
